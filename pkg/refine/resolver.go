// Package refine decides what happens to each AI-produced workflow spec:
// overwrite an existing generated workflow in place (refinement) or mint a
// new one, and derive the user-facing call to action.
package refine

import (
	"fmt"
	"strings"
	"time"

	"github.com/draftflow/draftflow/pkg/ai"
	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/session"
	"github.com/google/uuid"
)

// Confidence at or above this threshold means the workflow can be offered
// for immediate execution.
const executeThreshold = 0.85

// Resolution is the outcome of applying one proposal to a session.
type Resolution struct {
	Workflow     *models.GeneratedWorkflow
	Refined      bool
	CallToAction string
}

// Resolve applies an AI workflow proposal to the session store. Target
// resolution order: the proposal's refining id if it names an existing entry,
// else the session's active-workflow pointer if its entry still exists, else
// a new workflow. The active pointer always ends up on the result.
func Resolve(store *session.Store, proposal *ai.WorkflowProposal) *Resolution {
	now := time.Now().UTC()

	targetID := ""
	if proposal.RefiningWorkflowID != "" && store.Workflow(proposal.RefiningWorkflowID) != nil {
		targetID = proposal.RefiningWorkflowID
	} else if store.ActiveWorkflow() != nil {
		targetID = store.ActiveWorkflowID
	}

	refined := targetID != ""

	workflow := &models.GeneratedWorkflow{
		ID:          targetID,
		Name:        proposal.Name,
		Description: proposal.Description,
		Nodes:       proposal.Nodes,
		Confidence:  proposal.Confidence,
		Assumptions: proposal.Assumptions,
		MissingInfo: proposal.MissingInfo,
		Params:      make(map[string]any),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if refined {
		existing := store.Workflow(targetID)
		workflow.CreatedAt = existing.CreatedAt

		// Collected parameters survive a refinement; the spec is replaced,
		// the answers the user already gave are not.
		if existing.Params != nil {
			workflow.Params = existing.Params
		}
	} else {
		workflow.ID = uuid.New().String()
	}

	store.Put(workflow)

	return &Resolution{
		Workflow:     workflow,
		Refined:      refined,
		CallToAction: callToAction(proposal.Confidence, len(proposal.MissingInfo) > 0),
	}
}

// callToAction derives the CTA purely from (confidence, has missing info).
func callToAction(confidence float64, hasMissingInfo bool) string {
	switch {
	case confidence >= executeThreshold && !hasMissingInfo:
		return "Looks good? Say \"execute\" to run it now."
	case confidence >= executeThreshold && hasMissingInfo:
		return "You can execute this now, or answer the questions below to tighten it up first."
	case hasMissingInfo:
		return "Answer the questions below so I can fine-tune this workflow."
	default:
		return "Review my assumptions below, then say \"execute\" when you're happy."
	}
}

// Message builds the assistant message announcing the resolution. The
// workflow-preview reference is always attached, even when the prior turn
// rendered no card, so refinements never point at nothing.
func (r *Resolution) Message() *models.ConversationMessage {
	verb := "created"
	if r.Refined {
		verb = "updated"
	}

	var content strings.Builder

	fmt.Fprintf(&content, "I've %s the workflow %q. %s", verb, r.Workflow.Name, r.CallToAction)

	if len(r.Workflow.Assumptions) > 0 {
		content.WriteString("\n\nAssumptions:")

		for _, assumption := range r.Workflow.Assumptions {
			content.WriteString("\n- " + assumption)
		}
	}

	for _, info := range r.Workflow.MissingInfo {
		if info.Question != "" {
			content.WriteString("\n- " + info.Question)
		} else {
			fmt.Fprintf(&content, "\n- What should I use for %q?", info.Field)
		}
	}

	return &models.ConversationMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleAssistant,
		Type:    models.MessageTypePreview,
		Content: content.String(),
		Metadata: &models.MessageMetadata{
			WorkflowID: r.Workflow.ID,
		},
		CreatedAt: time.Now().UTC(),
	}
}
