package persistence

import (
	"context"
	"log/slog"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/session"
)

// FireAndForget wraps a Persistence so writes happen asynchronously: failures
// are logged and swallowed, never surfaced to the user and never retried.
// The Errors channel exists so a calling layer that wants to surface failures
// still can; nothing in the authoring path reads it.
type FireAndForget struct {
	inner  Persistence
	logger *slog.Logger
	errs   chan error
}

func NewFireAndForget(inner Persistence, logger *slog.Logger) *FireAndForget {
	return &FireAndForget{
		inner:  inner,
		logger: logger,
		errs:   make(chan error, 64),
	}
}

// Errors exposes write failures to callers that choose to observe them.
func (f *FireAndForget) Errors() <-chan error {
	return f.errs
}

// SaveDraft persists the draft in the background. The draft is cloned before
// the goroutine starts so the caller's next mutation cannot race the write.
func (f *FireAndForget) SaveDraft(ctx context.Context, draft *models.WorkflowDraft) {
	snapshot := draft.Clone()

	go func() {
		if err := f.inner.SaveDraft(context.WithoutCancel(ctx), snapshot); err != nil {
			f.logger.Warn("draft save failed", "draft_id", snapshot.ID, "error", err)
			f.report(err)
		}
	}()
}

// SaveSession persists the session snapshot in the background. Same cloning
// discipline as SaveDraft.
func (f *FireAndForget) SaveSession(ctx context.Context, store *session.Store) {
	snapshot := store.Clone()

	go func() {
		if err := f.inner.SaveSession(context.WithoutCancel(ctx), snapshot); err != nil {
			f.logger.Warn("session save failed", "session_id", snapshot.ID, "error", err)
			f.report(err)
		}
	}()
}

func (f *FireAndForget) report(err error) {
	select {
	case f.errs <- err:
	default: // nobody listening, drop rather than block
	}
}
