package conversation

import (
	"sync/atomic"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/session"
	"github.com/google/uuid"
)

// Session is the full per-conversation state: the draft being authored, the
// append-only message log, the creation-step pointer, and the store of
// AI-generated workflows. One user message is processed to completion before
// the next is accepted.
type Session struct {
	ID       string                        `json:"id"`
	Step     models.CreationStep           `json:"step"`
	Draft    *models.WorkflowDraft         `json:"draft"`
	Messages []*models.ConversationMessage `json:"messages"`
	Store    *session.Store                `json:"store"`

	inFlight atomic.Bool
}

// NewSession creates a session with an empty draft in the TRIGGER step.
func NewSession(id string) *Session {
	if id == "" {
		id = uuid.New().String()
	}

	return &Session{
		ID:       id,
		Step:     models.StepTrigger,
		Draft:    models.NewWorkflowDraft(uuid.New().String()),
		Messages: make([]*models.ConversationMessage, 0),
		Store:    session.NewStore(id),
	}
}

// MessageLog returns the ordered message log. The renderer must treat it as
// pure data; state changes go through the engine entry points only.
func (s *Session) MessageLog() []*models.ConversationMessage {
	return s.Messages
}

// Validation recomputes the draft's current validation errors.
func (s *Session) Validation() []models.ValidationError {
	return s.Draft.Validate()
}

func (s *Session) append(message *models.ConversationMessage) *models.ConversationMessage {
	s.Messages = append(s.Messages, message)

	return message
}
