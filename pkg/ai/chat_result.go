package ai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

var (
	// ErrInvalidProposal is returned when a workflow-spec payload fails
	// schema validation.
	ErrInvalidProposal = errors.New("ai: invalid workflow proposal payload")
)

// ChatResult is a tagged union: exactly one of Reply or Proposal is set,
// discriminated by the service's shouldGenerateWorkflow flag.
type ChatResult struct {
	Reply    *NaturalReply
	Proposal *WorkflowProposal
}

// NaturalReply is conversational output with no workflow attached.
type NaturalReply struct {
	Text                string   `json:"text"`
	Intent              string   `json:"intent,omitempty"`
	ClarifyingQuestions []string `json:"clarifying_questions,omitempty"`
}

// WorkflowProposal is an AI-produced workflow spec. RefiningWorkflowID, when
// set, names the generated workflow this spec refines in place.
type WorkflowProposal struct {
	Name               string                    `json:"name"`
	Description        string                    `json:"description,omitempty"`
	Nodes              []*models.WorkflowNode    `json:"nodes"`
	Confidence         float64                   `json:"confidence"`
	Assumptions        []string                  `json:"assumptions,omitempty"`
	MissingInfo        []models.MissingInfoField `json:"missing_info,omitempty"`
	RefiningWorkflowID string                    `json:"refining_workflow_id,omitempty"`
	CustomIntegrations []string                  `json:"custom_integrations,omitempty"`
}

// chatEnvelope is the raw wire shape before the union is split.
type chatEnvelope struct {
	Text                   string          `json:"text"`
	ShouldGenerateWorkflow bool            `json:"shouldGenerateWorkflow"`
	Intent                 string          `json:"intent,omitempty"`
	ClarifyingQuestions    []string        `json:"clarifyingQuestions,omitempty"`
	WorkflowSpec           json.RawMessage `json:"workflowSpec,omitempty"`
	Confidence             float64         `json:"confidence,omitempty"`
	Assumptions            []string        `json:"assumptions,omitempty"`
	MissingInfo            []missingInfo   `json:"missingInfo,omitempty"`
	RefiningWorkflowID     string          `json:"refiningWorkflowId,omitempty"`
	CustomIntegrations     []string        `json:"customIntegrations,omitempty"`
}

type missingInfo struct {
	Field    string `json:"field"`
	Question string `json:"question,omitempty"`
	Example  string `json:"example,omitempty"`
}

type workflowSpec struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Nodes       []*models.WorkflowNode `json:"nodes"`
}

// workflowSpecSchema is the contract a workflowSpec payload must satisfy
// before it is allowed anywhere near the refinement resolver.
const workflowSpecSchema = `{
	"type": "object",
	"required": ["name", "nodes"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"nodes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "type", "category", "name"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"type": {"type": "string", "minLength": 1},
					"category": {"type": "string", "enum": ["trigger", "action"]},
					"name": {"type": "string", "minLength": 1},
					"integration": {"type": "string"},
					"config": {"type": "object"}
				}
			}
		}
	}
}`

var specSchema = gojsonschema.NewStringLoader(workflowSpecSchema)

// DecodeChatResponse splits a raw chat-service response into the tagged
// union. Workflow-spec payloads are schema-validated; a spec that fails
// validation is an ErrInvalidProposal, not a half-usable result.
func DecodeChatResponse(raw []byte) (*ChatResult, error) {
	var envelope chatEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("ai: malformed chat response: %w", err)
	}

	if !envelope.ShouldGenerateWorkflow {
		return &ChatResult{Reply: &NaturalReply{
			Text:                envelope.Text,
			Intent:              envelope.Intent,
			ClarifyingQuestions: envelope.ClarifyingQuestions,
		}}, nil
	}

	if len(envelope.WorkflowSpec) == 0 {
		return nil, fmt.Errorf("%w: shouldGenerateWorkflow set but workflowSpec missing", ErrInvalidProposal)
	}

	result, err := gojsonschema.Validate(specSchema, gojsonschema.NewBytesLoader(envelope.WorkflowSpec))
	if err != nil {
		return nil, fmt.Errorf("ai: schema validation failed: %w", err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProposal, result.Errors())
	}

	var spec workflowSpec
	if err := json.Unmarshal(envelope.WorkflowSpec, &spec); err != nil {
		return nil, fmt.Errorf("ai: malformed workflow spec: %w", err)
	}

	proposal := &WorkflowProposal{
		Name:               spec.Name,
		Description:        spec.Description,
		Nodes:              spec.Nodes,
		Confidence:         envelope.Confidence,
		Assumptions:        envelope.Assumptions,
		RefiningWorkflowID: envelope.RefiningWorkflowID,
		CustomIntegrations: envelope.CustomIntegrations,
	}

	for _, info := range envelope.MissingInfo {
		proposal.MissingInfo = append(proposal.MissingInfo, models.MissingInfoField{
			Field:    info.Field,
			Question: info.Question,
			Example:  info.Example,
		})
	}

	return &ChatResult{Proposal: proposal}, nil
}
