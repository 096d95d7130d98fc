package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/google/uuid"
)

func userMessage(content string) *models.ConversationMessage {
	return &models.ConversationMessage{
		ID:        uuid.New().String(),
		Role:      models.RoleUser,
		Type:      models.MessageTypeText,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func assistantText(content string) *models.ConversationMessage {
	return &models.ConversationMessage{
		ID:        uuid.New().String(),
		Role:      models.RoleAssistant,
		Type:      models.MessageTypeText,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

func suggestionMessage(msgType models.MessageType, content string, suggestions []models.NodeSuggestion) *models.ConversationMessage {
	return &models.ConversationMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleAssistant,
		Type:    msgType,
		Content: content,
		Metadata: &models.MessageMetadata{
			Suggestions: suggestions,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func previewMessage(content string, draft *models.WorkflowDraft) *models.ConversationMessage {
	return &models.ConversationMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleAssistant,
		Type:    models.MessageTypePreview,
		Content: content,
		Metadata: &models.MessageMetadata{
			Preview: draft.Clone(),
		},
		CreatedAt: time.Now().UTC(),
	}
}

func completeMessage(content string, draft *models.WorkflowDraft) *models.ConversationMessage {
	return &models.ConversationMessage{
		ID:      uuid.New().String(),
		Role:    models.RoleAssistant,
		Type:    models.MessageTypeComplete,
		Content: content,
		Metadata: &models.MessageMetadata{
			Preview: draft.Clone(),
		},
		CreatedAt: time.Now().UTC(),
	}
}

// summarize renders the review summary: the trigger plus numbered actions.
func summarize(draft *models.WorkflowDraft) string {
	var b strings.Builder

	b.WriteString("Here's your workflow so far:\n")

	if draft.Trigger != nil {
		fmt.Fprintf(&b, "\nWhen: %s", draft.Trigger.Name)
	} else {
		b.WriteString("\nWhen: (no trigger yet)")
	}

	for _, action := range draft.Actions {
		fmt.Fprintf(&b, "\n%d. %s", action.Order+1, action.Name)
	}

	return b.String()
}
