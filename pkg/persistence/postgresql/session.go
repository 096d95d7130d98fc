package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/session"
)

// SessionRepository handles session snapshot database operations.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// GetByID returns one session snapshot. Returns
// persistence.ErrSessionNotFound when no row exists.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*session.Store, error) {
	query := `
		SELECT
			id
		  , active_workflow_id
		  , workflows
		  , user_email
		  , created_at
		FROM sessions
		WHERE id = $1
	`

	var (
		store            session.Store
		activeWorkflowID sql.NullString
		userEmail        sql.NullString
		workflowsJSON    []byte
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&store.ID, &activeWorkflowID, &workflowsJSON, &userEmail, &store.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.ErrSessionNotFound
		}

		return nil, fmt.Errorf("failed to scan session %s: %w", id, err)
	}

	store.ActiveWorkflowID = activeWorkflowID.String
	store.UserEmail = userEmail.String

	store.Workflows = make(map[string]*models.GeneratedWorkflow)
	if err := json.Unmarshal(workflowsJSON, &store.Workflows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflows for session %s: %w", id, err)
	}

	return &store, nil
}

// Save upserts a session snapshot.
func (r *SessionRepository) Save(ctx context.Context, store *session.Store) error {
	workflowsJSON, err := json.Marshal(store.Workflows)
	if err != nil {
		return fmt.Errorf("failed to marshal workflows for session %s: %w", store.ID, err)
	}

	if store.CreatedAt.IsZero() {
		store.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO sessions (id, active_workflow_id, workflows, user_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			active_workflow_id = EXCLUDED.active_workflow_id,
			workflows = EXCLUDED.workflows,
			user_email = EXCLUDED.user_email,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		store.ID,
		sql.NullString{String: store.ActiveWorkflowID, Valid: store.ActiveWorkflowID != ""},
		workflowsJSON,
		sql.NullString{String: store.UserEmail, Valid: store.UserEmail != ""},
		store.CreatedAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", store.ID, err)
	}

	return nil
}
