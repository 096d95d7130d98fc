// Package models defines the core domain models for conversational workflow authoring.
package models

import "time"

// CreationStep is the single authoritative pointer for where a session is in
// the guided authoring flow. Only the conversation engine advances it.
type CreationStep string

const (
	StepTrigger   CreationStep = "trigger"
	StepActions   CreationStep = "actions"
	StepConfigure CreationStep = "configure" // valid state, no inbound transitions yet
	StepReview    CreationStep = "review"
	StepComplete  CreationStep = "complete"
)

// WorkflowDraft is the in-progress workflow definition being authored
// conversationally: at most one trigger plus an ordered list of actions.
type WorkflowDraft struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"        validate:"required,min=1"`
	Description string        `json:"description,omitempty"`
	Trigger     *TriggerNode  `json:"trigger,omitempty"`
	Actions     []*ActionNode `json:"actions"`
	Connections []*Connection `json:"connections"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewWorkflowDraft returns an empty draft. Sessions create one at start and
// reset to a fresh one on a new-chat signal.
func NewWorkflowDraft(id string) *WorkflowDraft {
	now := time.Now().UTC()

	return &WorkflowDraft{
		ID:          id,
		Name:        "Untitled Workflow",
		Actions:     make([]*ActionNode, 0),
		Connections: make([]*Connection, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy of the draft. Message previews and background
// saves work on clones so later turns cannot mutate what they captured.
func (d *WorkflowDraft) Clone() *WorkflowDraft {
	copied := *d

	if d.Trigger != nil {
		copied.Trigger = d.Trigger.Clone()
	}

	copied.Actions = make([]*ActionNode, len(d.Actions))
	for i, action := range d.Actions {
		copied.Actions[i] = action.Clone()
	}

	copied.Connections = make([]*Connection, len(d.Connections))
	for i, conn := range d.Connections {
		c := *conn
		copied.Connections[i] = &c
	}

	return &copied
}

// SetTrigger replaces the draft's trigger. A draft holds at most one trigger
// no matter how many times this is called.
func (d *WorkflowDraft) SetTrigger(trigger *TriggerNode) {
	d.Trigger = trigger
	d.UpdatedAt = time.Now().UTC()
}

// AddAction appends an action, assigning the next order slot.
func (d *WorkflowDraft) AddAction(action *ActionNode) {
	action.Order = len(d.Actions)
	d.Actions = append(d.Actions, action)
	d.UpdatedAt = time.Now().UTC()
}

// RemoveAction deletes the action with the given id and renumbers the rest so
// that Actions[i].Order == i always holds. Returns false when no action has
// that id.
func (d *WorkflowDraft) RemoveAction(id string) bool {
	for i, action := range d.Actions {
		if action.ID == id {
			d.Actions = append(d.Actions[:i], d.Actions[i+1:]...)
			d.renumber()
			d.UpdatedAt = time.Now().UTC()

			return true
		}
	}

	return false
}

// ReorderActions moves the action at position from to position to and
// renumbers. Out-of-range positions are ignored.
func (d *WorkflowDraft) ReorderActions(from, to int) {
	if from < 0 || from >= len(d.Actions) || to < 0 || to >= len(d.Actions) || from == to {
		return
	}

	action := d.Actions[from]
	d.Actions = append(d.Actions[:from], d.Actions[from+1:]...)

	rest := make([]*ActionNode, 0, len(d.Actions)+1)
	rest = append(rest, d.Actions[:to]...)
	rest = append(rest, action)
	rest = append(rest, d.Actions[to:]...)
	d.Actions = rest

	d.renumber()
	d.UpdatedAt = time.Now().UTC()
}

func (d *WorkflowDraft) renumber() {
	for i, action := range d.Actions {
		action.Order = i
	}
}

// Saveable reports whether the draft can be persisted as a complete workflow:
// a trigger is set and at least one action exists.
func (d *WorkflowDraft) Saveable() bool {
	return d.Trigger != nil && len(d.Actions) > 0
}
