// Package persistence provides the storage abstraction for workflow drafts
// and conversation session snapshots.
package persistence

import (
	"context"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/session"
)

type Persistence interface {
	Drafts(ctx context.Context) ([]*models.WorkflowDraft, error)
	DraftByID(ctx context.Context, id string) (*models.WorkflowDraft, error)
	SaveDraft(ctx context.Context, draft *models.WorkflowDraft) error
	DeleteDraft(ctx context.Context, id string) error

	SessionByID(ctx context.Context, id string) (*session.Store, error)
	SaveSession(ctx context.Context, store *session.Store) error

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
