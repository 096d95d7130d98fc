package file

import (
	"testing"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/persistence"
	"github.com/draftflow/draftflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDraft_RoundTrip(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	draft := models.NewWorkflowDraft("draft-1")
	draft.Name = "Issue Alerts"
	draft.SetTrigger(&models.TriggerNode{
		ID:          "t1",
		Type:        "new_issue",
		Name:        "New GitHub Issue",
		Integration: "github",
		Config:      map[string]any{"repo": "acme/website"},
	})
	draft.AddAction(&models.ActionNode{
		ID:          "a1",
		Type:        "send_message",
		Name:        "Send Slack Message",
		Integration: "slack",
	})

	require.NoError(t, fp.SaveDraft(t.Context(), draft))

	loaded, err := fp.DraftByID(t.Context(), "draft-1")
	require.NoError(t, err)
	assert.Equal(t, draft.Name, loaded.Name)
	require.NotNil(t, loaded.Trigger)
	assert.Equal(t, "github", loaded.Trigger.Integration)
	assert.Equal(t, "acme/website", loaded.Trigger.Config["repo"])
	require.Len(t, loaded.Actions, 1)
	assert.Equal(t, "slack", loaded.Actions[0].Integration)
	assert.Equal(t, 0, loaded.Actions[0].Order)
}

func TestDraftByID_NotFound(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	_, err := fp.DraftByID(t.Context(), "missing")
	assert.ErrorIs(t, err, persistence.ErrDraftNotFound)
}

func TestDrafts_EmptyRoot(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	drafts, err := fp.Drafts(t.Context())
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestDrafts_ListsAll(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	for _, id := range []string{"d1", "d2", "d3"} {
		require.NoError(t, fp.SaveDraft(t.Context(), models.NewWorkflowDraft(id)))
	}

	drafts, err := fp.Drafts(t.Context())
	require.NoError(t, err)
	assert.Len(t, drafts, 3)
}

func TestDeleteDraft_MissingIsNoop(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	assert.NoError(t, fp.DeleteDraft(t.Context(), "missing"))
}

func TestSaveSession_RoundTrip(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	store := session.NewStore("s1")
	store.UserEmail = "me@example.com"
	store.Put(&models.GeneratedWorkflow{
		ID:         "wf-1",
		Name:       "Issue Alerts",
		Confidence: 0.8,
		Params:     map[string]any{"channel": "#alerts"},
	})

	require.NoError(t, fp.SaveSession(t.Context(), store))

	loaded, err := fp.SessionByID(t.Context(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "wf-1", loaded.ActiveWorkflowID)
	assert.Equal(t, "me@example.com", loaded.UserEmail)
	require.Contains(t, loaded.Workflows, "wf-1")
	assert.InDelta(t, 0.8, loaded.Workflows["wf-1"].Confidence, 1e-9)
}

func TestSessionByID_NotFound(t *testing.T) {
	fp := NewPersistence(t.TempDir())

	_, err := fp.SessionByID(t.Context(), "missing")
	assert.ErrorIs(t, err, persistence.ErrSessionNotFound)
}

func TestFileURLPrefixStripped(t *testing.T) {
	dir := t.TempDir()
	fp := NewPersistence("file://" + dir)

	require.NoError(t, fp.SaveDraft(t.Context(), models.NewWorkflowDraft("d1")))
	assert.NoError(t, fp.HealthCheck(t.Context()))
}
