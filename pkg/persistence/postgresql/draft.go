package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
)

// DraftRepository handles draft-related database operations.
type DraftRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDraftRepository creates a new draft repository.
func NewDraftRepository(db *sql.DB, logger *slog.Logger) *DraftRepository {
	return &DraftRepository{db: db, logger: logger}
}

// GetAll returns all drafts that have not been soft deleted, newest first.
func (r *DraftRepository) GetAll(ctx context.Context) ([]*models.WorkflowDraft, error) {
	query := `
		SELECT
			id
		  , name
		  , description
		  , trigger_node
		  , actions
		  , connections
		  , created_at
		  , updated_at
		FROM drafts
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}

	defer func(ctx context.Context, r *DraftRepository) {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}(ctx, r)

	drafts := make([]*models.WorkflowDraft, 0)

	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}

		drafts = append(drafts, draft)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating drafts: %w", err)
	}

	return drafts, nil
}

// GetByID returns one draft. Returns persistence.ErrDraftNotFound when no
// live row exists.
func (r *DraftRepository) GetByID(ctx context.Context, id string) (*models.WorkflowDraft, error) {
	query := `
		SELECT
			id
		  , name
		  , description
		  , trigger_node
		  , actions
		  , connections
		  , created_at
		  , updated_at
		FROM drafts
		WHERE id = $1 AND deleted_at IS NULL
	`

	draft, err := scanDraft(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrDraftNotFound
		}

		return nil, fmt.Errorf("failed to scan draft: %w", err)
	}

	return draft, nil
}

// Save upserts a draft, storing its node structure as JSON documents.
func (r *DraftRepository) Save(ctx context.Context, draft *models.WorkflowDraft) error {
	now := time.Now().UTC()

	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}

	draft.UpdatedAt = now

	var (
		triggerJSON []byte
		err         error
	)

	if draft.Trigger != nil {
		triggerJSON, err = json.Marshal(draft.Trigger)
		if err != nil {
			return fmt.Errorf("failed to marshal trigger: %w", err)
		}
	}

	actionsJSON, err := json.Marshal(draft.Actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	connectionsJSON, err := json.Marshal(draft.Connections)
	if err != nil {
		return fmt.Errorf("failed to marshal connections: %w", err)
	}

	query := `
		INSERT INTO drafts (id, name, description, trigger_node, actions, connections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			trigger_node = EXCLUDED.trigger_node,
			actions = EXCLUDED.actions,
			connections = EXCLUDED.connections,
			updated_at = EXCLUDED.updated_at,
			deleted_at = NULL
	`

	_, err = r.db.ExecContext(ctx, query,
		draft.ID, draft.Name, draft.Description,
		nullableJSON(triggerJSON), actionsJSON, connectionsJSON,
		draft.CreatedAt, draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.ID, err)
	}

	return nil
}

// Delete soft deletes a draft by setting its deleted_at timestamp.
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE drafts SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete draft %s: %w", id, err)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDraft(row scanner) (*models.WorkflowDraft, error) {
	var (
		draft           models.WorkflowDraft
		triggerJSON     []byte
		actionsJSON     []byte
		connectionsJSON []byte
	)

	err := row.Scan(
		&draft.ID, &draft.Name, &draft.Description,
		&triggerJSON, &actionsJSON, &connectionsJSON,
		&draft.CreatedAt, &draft.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(triggerJSON) > 0 {
		if err := json.Unmarshal(triggerJSON, &draft.Trigger); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trigger: %w", err)
		}
	}

	if err := json.Unmarshal(actionsJSON, &draft.Actions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
	}

	if err := json.Unmarshal(connectionsJSON, &draft.Connections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	return &draft, nil
}

// nullableJSON maps an absent document to SQL NULL instead of an empty blob.
func nullableJSON(data []byte) any {
	if len(data) == 0 {
		return nil
	}

	return data
}
