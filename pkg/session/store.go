// Package session holds the per-conversation store of AI-generated workflows
// and the active-workflow pointer. It is an explicit object passed to the
// components that share it, never ambient package state, so tests can build
// independent sessions.
package session

import (
	"time"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/google/uuid"
)

// Store is single-writer state scoped to one conversation session. The
// one-turn-at-a-time discipline means no locking is needed, but callers must
// not process two turns concurrently.
type Store struct {
	ID               string                               `json:"id"`
	ActiveWorkflowID string                               `json:"active_workflow_id,omitempty"`
	Workflows        map[string]*models.GeneratedWorkflow `json:"workflows"`
	UserEmail        string                               `json:"user_email,omitempty"`
	CreatedAt        time.Time                            `json:"created_at"`
}

// NewStore creates an empty session store.
func NewStore(id string) *Store {
	if id == "" {
		id = uuid.New().String()
	}

	return &Store{
		ID:        id,
		Workflows: make(map[string]*models.GeneratedWorkflow),
		CreatedAt: time.Now().UTC(),
	}
}

// Clone returns a deep copy of the store, including every generated
// workflow. Background saves serialize a clone so the next turn's mutations
// cannot race the write.
func (s *Store) Clone() *Store {
	copied := *s

	copied.Workflows = make(map[string]*models.GeneratedWorkflow, len(s.Workflows))
	for id, workflow := range s.Workflows {
		copied.Workflows[id] = workflow.Clone()
	}

	return &copied
}

// Workflow returns the generated workflow with the given id, or nil.
func (s *Store) Workflow(id string) *models.GeneratedWorkflow {
	return s.Workflows[id]
}

// ActiveWorkflow resolves the active-workflow pointer. Returns nil when the
// pointer is unset or the entry it names no longer exists.
func (s *Store) ActiveWorkflow() *models.GeneratedWorkflow {
	if s.ActiveWorkflowID == "" {
		return nil
	}

	return s.Workflows[s.ActiveWorkflowID]
}

// Put inserts or overwrites a workflow and moves the active pointer to it.
func (s *Store) Put(workflow *models.GeneratedWorkflow) {
	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	s.Workflows[workflow.ID] = workflow
	s.ActiveWorkflowID = workflow.ID
}

// Reset drops all generated workflows and clears the pointer. Used on an
// explicit reset or new-session signal; there is no automatic expiry.
func (s *Store) Reset() {
	s.Workflows = make(map[string]*models.GeneratedWorkflow)
	s.ActiveWorkflowID = ""
}
