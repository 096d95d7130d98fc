// Package ai defines the contracts for the remote AI collaborators: intent
// analysis, workflow building, and free-form chat. The engine consumes their
// request/response shapes as-is and treats the services as black boxes.
package ai

import (
	"context"

	"github.com/draftflow/draftflow/pkg/models"
)

// AnalyzeOptions carries persona and history context for intent analysis.
type AnalyzeOptions struct {
	Persona string                        `json:"persona,omitempty"`
	History []*models.ConversationMessage `json:"history,omitempty"`
}

// IntentAnalysis is the template-path analysis of one user message.
type IntentAnalysis struct {
	Confidence     float64        `json:"confidence"`
	Understanding  string         `json:"understanding"`
	ExtractedInfo  map[string]any `json:"extracted_info,omitempty"`
	SuggestedTools []string       `json:"suggested_tools,omitempty"`
}

// IntentAnalyzer is the remote intent-analysis service.
type IntentAnalyzer interface {
	AnalyzeIntent(ctx context.Context, text string, opts AnalyzeOptions) (*IntentAnalysis, error)
}

// BuildRequest asks the builder service to produce a workflow from collected
// information.
type BuildRequest struct {
	Intent        string         `json:"intent"`
	CollectedInfo map[string]any `json:"collected_info,omitempty"`
	UserMessage   string         `json:"user_message"`
	Persona       string         `json:"persona,omitempty"`
}

// BuiltWorkflow is the builder service's output.
type BuiltWorkflow struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Nodes       []*models.WorkflowNode `json:"nodes"`
}

// WorkflowBuilder is the remote template-based workflow builder.
type WorkflowBuilder interface {
	BuildWorkflow(ctx context.Context, req BuildRequest) (*BuiltWorkflow, error)
}

// ChatOptions selects the chat mode for the conversational service.
type ChatOptions struct {
	ChatMode string `json:"chat_mode,omitempty"`
}

// ChatService is the remote conversational AI service.
type ChatService interface {
	Chat(ctx context.Context, text string, opts ChatOptions) (*ChatResult, error)
}
