// Package events defines the draft-lifecycle events published on every
// authoring mutation. Consumers (renderer, persistence audit) subscribe
// read-only; nothing in the authoring path depends on a subscriber existing.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const Topic = "draftflow.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	DraftCreatedEvent          EventType = "draft.created"
	DraftResetEvent            EventType = "draft.reset"
	TriggerSetEvent            EventType = "draft.trigger.set"
	ActionAddedEvent           EventType = "draft.action.added"
	NodeRemovedEvent           EventType = "workflow.node.removed"
	NodeAddedEvent             EventType = "workflow.node.added"
	WorkflowRefinedEvent       EventType = "workflow.refined"
	WorkflowGeneratedEvent     EventType = "workflow.generated"
	ConversationCompletedEvent EventType = "conversation.completed"
)

// Event is implemented by every published payload.
type Event interface {
	GetType() EventType
}

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBaseEvent(eventType EventType, sessionID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
	}
}

type DraftCreated struct {
	BaseEvent

	DraftID string `json:"draft_id"`
}

func (e DraftCreated) GetType() EventType { return DraftCreatedEvent }

// DraftReset marks an explicit reset: the old draft and generated workflows
// are gone and NewDraftID identifies the replacement.
type DraftReset struct {
	BaseEvent

	NewDraftID string `json:"new_draft_id"`
}

func (e DraftReset) GetType() EventType { return DraftResetEvent }

type TriggerSet struct {
	BaseEvent

	DraftID     string `json:"draft_id"`
	Integration string `json:"integration"`
	TriggerType string `json:"trigger_type"`
}

func (e TriggerSet) GetType() EventType { return TriggerSetEvent }

type ActionAdded struct {
	BaseEvent

	DraftID     string `json:"draft_id"`
	ActionID    string `json:"action_id"`
	Integration string `json:"integration"`
	ActionType  string `json:"action_type"`
	Order       int    `json:"order"`
}

func (e ActionAdded) GetType() EventType { return ActionAddedEvent }

type NodeRemoved struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
	NodeID     string `json:"node_id"`
	WasTrigger bool   `json:"was_trigger"`
}

func (e NodeRemoved) GetType() EventType { return NodeRemovedEvent }

type NodeAdded struct {
	BaseEvent

	WorkflowID  string `json:"workflow_id"`
	NodeID      string `json:"node_id"`
	Integration string `json:"integration"`
}

func (e NodeAdded) GetType() EventType { return NodeAddedEvent }

type WorkflowGenerated struct {
	BaseEvent

	WorkflowID string  `json:"workflow_id"`
	Refined    bool    `json:"refined"`
	Confidence float64 `json:"confidence"`
}

func (e WorkflowGenerated) GetType() EventType {
	if e.Refined {
		return WorkflowRefinedEvent
	}

	return WorkflowGeneratedEvent
}

type ConversationCompleted struct {
	BaseEvent

	DraftID     string `json:"draft_id"`
	ActionCount int    `json:"action_count"`
}

func (e ConversationCompleted) GetType() EventType { return ConversationCompletedEvent }
