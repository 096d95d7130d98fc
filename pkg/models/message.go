package models

import "time"

// MessageRole identifies who produced a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// MessageType tells the renderer what a message carries beyond plain text.
type MessageType string

const (
	MessageTypeText          MessageType = "text"
	MessageTypeSuggestion    MessageType = "suggestion"
	MessageTypeTriggerSelect MessageType = "trigger_select"
	MessageTypeActionSelect  MessageType = "action_select"
	MessageTypePreview       MessageType = "preview"
	MessageTypeComplete      MessageType = "complete"
)

// ConversationMessage is one append-only log entry. Messages are never
// mutated after creation; the renderer treats the log as pure data.
type ConversationMessage struct {
	ID        string           `json:"id"`
	Role      MessageRole      `json:"role"`
	Type      MessageType      `json:"type"`
	Content   string           `json:"content"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// MessageMetadata carries the structured payload some message types render:
// ranked suggestions, the node just created, or a draft preview snapshot.
type MessageMetadata struct {
	Suggestions []NodeSuggestion `json:"suggestions,omitempty"`
	Trigger     *TriggerNode     `json:"trigger,omitempty"`
	Action      *ActionNode      `json:"action,omitempty"`
	Preview     *WorkflowDraft   `json:"preview,omitempty"`
	WorkflowID  string           `json:"workflow_id,omitempty"`
}

// NodeSuggestion is an ephemeral ranked option shown when extraction found
// nothing concrete. It is consumed once to build a message and never persisted.
type NodeSuggestion struct {
	NodeType    string       `json:"node_type"`
	Integration string       `json:"integration"`
	Name        string       `json:"name"`
	Confidence  float64      `json:"confidence"`
	Category    CategoryType `json:"category"`
}
