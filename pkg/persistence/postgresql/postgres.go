// Package postgresql provides PostgreSQL persistence for drafts and session
// snapshots.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence/sqlbase"
	"github.com/draftflow/draftflow/pkg/session"
)

// Persistence implements persistence.Persistence on a PostgreSQL database.
type Persistence struct {
	db          *sql.DB
	logger      *slog.Logger
	draftRepo   *DraftRepository
	sessionRepo *SessionRepository
}

// NewPersistence connects, runs migrations, and returns a ready store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:          database,
		logger:      logger,
		draftRepo:   NewDraftRepository(database, logger),
		sessionRepo: NewSessionRepository(database),
	}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) Drafts(ctx context.Context) ([]*models.WorkflowDraft, error) {
	return p.draftRepo.GetAll(ctx)
}

func (p *Persistence) DraftByID(ctx context.Context, id string) (*models.WorkflowDraft, error) {
	return p.draftRepo.GetByID(ctx, id)
}

func (p *Persistence) SaveDraft(ctx context.Context, draft *models.WorkflowDraft) error {
	return p.draftRepo.Save(ctx, draft)
}

// DeleteDraft soft deletes a draft by setting its deleted_at timestamp.
func (p *Persistence) DeleteDraft(ctx context.Context, id string) error {
	return p.draftRepo.Delete(ctx, id)
}

func (p *Persistence) SessionByID(ctx context.Context, id string) (*session.Store, error) {
	return p.sessionRepo.GetByID(ctx, id)
}

func (p *Persistence) SaveSession(ctx context.Context, store *session.Store) error {
	return p.sessionRepo.Save(ctx, store)
}
