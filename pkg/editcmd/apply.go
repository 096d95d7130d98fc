package editcmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/patterns"
	"github.com/draftflow/draftflow/pkg/session"
	"github.com/google/uuid"
)

// Result reports what applying a command did. Mutated is false for every
// disambiguation or error outcome; NodeID and WasTrigger describe the node
// that was added or removed when it is true.
type Result struct {
	Message    *models.ConversationMessage
	Mutated    bool
	NodeID     string
	WasTrigger bool
}

// Apply executes a parsed command against the session's active workflow.
func Apply(store *session.Store, command *Command) *Result {
	workflow := store.ActiveWorkflow()
	if workflow == nil {
		return assistantResult("There's no active workflow to edit. Describe a workflow first and I'll build one.", false)
	}

	switch command.Kind {
	case CommandRemove:
		return applyRemove(workflow, command.Target)
	case CommandAdd:
		return applyAdd(workflow, command.Target)
	default:
		return assistantResult("I didn't understand that edit command.", false)
	}
}

// applyRemove matches target against display-name substring, exact
// integration id, and exact node id. Exactly one match mutates; zero or more
// than one reports back without touching the workflow.
func applyRemove(workflow *models.GeneratedWorkflow, target string) *Result {
	lower := strings.ToLower(target)

	matches := make([]*models.WorkflowNode, 0, 1)

	for _, node := range workflow.Nodes {
		if strings.Contains(strings.ToLower(node.Name), lower) ||
			strings.EqualFold(node.Integration, target) ||
			node.ID == target {
			matches = append(matches, node)
		}
	}

	switch len(matches) {
	case 0:
		names := make([]string, 0, len(workflow.Nodes))
		for _, node := range workflow.Nodes {
			names = append(names, node.Name)
		}

		if len(names) == 0 {
			return assistantResult(fmt.Sprintf("I couldn't find a step matching %q - the workflow has no steps left.", target), false)
		}

		return assistantResult(fmt.Sprintf(
			"I couldn't find a step matching %q. Current steps: %s.",
			target, strings.Join(names, ", ")), false)

	case 1:
		node := matches[0]
		wasTrigger := node.IsTriggerNode()
		workflow.RemoveNode(node.ID)

		content := fmt.Sprintf("Removed %q. The workflow now has %d step(s).", node.Name, len(workflow.Nodes))
		if wasTrigger {
			content += " Heads up: that was the trigger, so the workflow will no longer start automatically."
		}

		result := assistantResult(content, true)
		result.NodeID = node.ID
		result.WasTrigger = wasTrigger

		return result

	default:
		lines := make([]string, 0, len(matches))
		for _, node := range matches {
			lines = append(lines, fmt.Sprintf("%q (%s)", node.Name, node.Integration))
		}

		return assistantResult(fmt.Sprintf(
			"%q matches several steps: %s. Tell me which one to remove, e.g. by its full name.",
			target, strings.Join(lines, ", ")), false)
	}
}

// applyAdd synthesizes a new action node for the integration, using the
// default-action table with a generic fallback.
func applyAdd(workflow *models.GeneratedWorkflow, integration string) *Result {
	actionType := patterns.DefaultActionType(integration)

	name := capitalize(integration) + " Action"
	icon := integration

	if preset := patterns.FindActionPreset(integration, actionType); preset != nil {
		name = preset.Name
		icon = preset.Icon
	}

	node := &models.WorkflowNode{
		ID:          uuid.New().String(),
		Type:        actionType,
		Category:    models.CategoryTypeAction,
		Name:        name,
		Icon:        icon,
		Integration: integration,
		Config:      make(map[string]any),
	}

	workflow.Nodes = append(workflow.Nodes, node)
	workflow.UpdatedAt = time.Now().UTC()

	result := assistantResult(fmt.Sprintf(
		"Added %q. The workflow now has %d step(s).", node.Name, len(workflow.Nodes)), true)
	result.NodeID = node.ID

	return result
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func assistantResult(content string, mutated bool) *Result {
	return &Result{
		Message: &models.ConversationMessage{
			ID:        uuid.New().String(),
			Role:      models.RoleAssistant,
			Type:      models.MessageTypeText,
			Content:   content,
			CreatedAt: time.Now().UTC(),
		},
		Mutated: mutated,
	}
}
