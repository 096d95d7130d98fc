package persistence_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingPersistence holds every save until released, then reports what it
// was given. It stands in for a slow backend whose write overlaps the
// caller's next mutation.
type blockingPersistence struct {
	release  chan struct{}
	drafts   chan *models.WorkflowDraft
	sessions chan *session.Store
	saveErr  error
}

func newBlockingPersistence() *blockingPersistence {
	return &blockingPersistence{
		release:  make(chan struct{}),
		drafts:   make(chan *models.WorkflowDraft, 1),
		sessions: make(chan *session.Store, 1),
	}
}

func (b *blockingPersistence) SaveDraft(_ context.Context, draft *models.WorkflowDraft) error {
	<-b.release
	b.drafts <- draft

	return b.saveErr
}

func (b *blockingPersistence) SaveSession(_ context.Context, store *session.Store) error {
	<-b.release
	b.sessions <- store

	return b.saveErr
}

func (b *blockingPersistence) Drafts(_ context.Context) ([]*models.WorkflowDraft, error) {
	return nil, nil
}

func (b *blockingPersistence) DraftByID(_ context.Context, _ string) (*models.WorkflowDraft, error) {
	return nil, persistence.ErrDraftNotFound
}

func (b *blockingPersistence) DeleteDraft(_ context.Context, _ string) error { return nil }

func (b *blockingPersistence) SessionByID(_ context.Context, _ string) (*session.Store, error) {
	return nil, persistence.ErrSessionNotFound
}

func (b *blockingPersistence) HealthCheck(_ context.Context) error { return nil }

func (b *blockingPersistence) Close(_ context.Context) error { return nil }

func waitForDraft(t *testing.T, ch <-chan *models.WorkflowDraft) *models.WorkflowDraft {
	t.Helper()

	select {
	case draft := <-ch:
		return draft
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for draft save")

		return nil
	}
}

func TestFireAndForget_SaveDraft_SnapshotsBeforeHandoff(t *testing.T) {
	t.Parallel()

	inner := newBlockingPersistence()
	ff := persistence.NewFireAndForget(inner, slog.Default())

	draft := models.NewWorkflowDraft("draft-1")
	ff.SaveDraft(t.Context(), draft)

	// The save is still in flight; the next turn mutates the live draft.
	draft.SetTrigger(&models.TriggerNode{ID: "t1", Type: "new_issue", Name: "New GitHub Issue", Integration: "github"})
	draft.AddAction(&models.ActionNode{ID: "a1", Type: "send_message", Name: "Send Slack Message", Integration: "slack"})

	close(inner.release)
	saved := waitForDraft(t, inner.drafts)

	require.NotSame(t, draft, saved)
	assert.Nil(t, saved.Trigger)
	assert.Empty(t, saved.Actions)
}

func TestFireAndForget_SaveSession_SnapshotsBeforeHandoff(t *testing.T) {
	t.Parallel()

	inner := newBlockingPersistence()
	ff := persistence.NewFireAndForget(inner, slog.Default())

	store := session.NewStore("session-1")
	store.Put(&models.GeneratedWorkflow{ID: "wf-1", Params: map[string]any{"email": "a@example.com"}})

	ff.SaveSession(t.Context(), store)

	store.Workflow("wf-1").Params["email"] = "b@example.com"
	store.Put(&models.GeneratedWorkflow{ID: "wf-2"})

	close(inner.release)

	select {
	case saved := <-inner.sessions:
		require.NotSame(t, store, saved)
		require.Len(t, saved.Workflows, 1)
		assert.Equal(t, "a@example.com", saved.Workflows["wf-1"].Params["email"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session save")
	}
}

func TestFireAndForget_ReportsErrors(t *testing.T) {
	t.Parallel()

	inner := newBlockingPersistence()
	inner.saveErr = errors.New("disk full")
	ff := persistence.NewFireAndForget(inner, slog.Default())

	ff.SaveDraft(t.Context(), models.NewWorkflowDraft("draft-1"))
	close(inner.release)
	waitForDraft(t, inner.drafts)

	select {
	case err := <-ff.Errors():
		assert.ErrorContains(t, err, "disk full")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reported error")
	}
}
