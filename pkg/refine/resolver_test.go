package refine

import (
	"strings"
	"testing"

	"github.com/draftflow/draftflow/pkg/ai"
	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProposal(confidence float64, missing []models.MissingInfoField) *ai.WorkflowProposal {
	return &ai.WorkflowProposal{
		Name:       "Issue Alerts",
		Confidence: confidence,
		Nodes: []*models.WorkflowNode{
			{ID: "n1", Type: "new_issue", Category: models.CategoryTypeTrigger, Name: "New GitHub Issue", Integration: "github"},
			{ID: "n2", Type: "send_message", Category: models.CategoryTypeAction, Name: "Send Slack Message", Integration: "slack"},
		},
		MissingInfo: missing,
	}
}

func TestResolve_NewWorkflow_HighConfidence(t *testing.T) {
	store := session.NewStore("s1")

	resolution := Resolve(store, testProposal(0.9, nil))

	require.NotNil(t, resolution.Workflow)
	assert.False(t, resolution.Refined)
	assert.NotEmpty(t, resolution.Workflow.ID)
	assert.Equal(t, resolution.Workflow.ID, store.ActiveWorkflowID)
	assert.Contains(t, resolution.CallToAction, "execute")
	assert.NotContains(t, resolution.CallToAction, "questions")
}

func TestResolve_RefinesByExplicitID(t *testing.T) {
	store := session.NewStore("s1")
	first := Resolve(store, testProposal(0.9, nil))

	proposal := testProposal(0.6, []models.MissingInfoField{{Field: "email"}})
	proposal.RefiningWorkflowID = first.Workflow.ID

	second := Resolve(store, proposal)

	assert.True(t, second.Refined)
	assert.Equal(t, first.Workflow.ID, second.Workflow.ID)
	assert.Len(t, store.Workflows, 1)
	assert.Contains(t, strings.ToLower(second.CallToAction), "question")
}

func TestResolve_RefinesViaActivePointer(t *testing.T) {
	store := session.NewStore("s1")
	first := Resolve(store, testProposal(0.9, nil))

	// No refining id on the proposal; the active pointer picks the target.
	second := Resolve(store, testProposal(0.7, nil))

	assert.True(t, second.Refined)
	assert.Equal(t, first.Workflow.ID, second.Workflow.ID)
	assert.Len(t, store.Workflows, 1)
}

func TestResolve_UnknownRefiningID_FallsBackToPointer(t *testing.T) {
	store := session.NewStore("s1")
	first := Resolve(store, testProposal(0.9, nil))

	proposal := testProposal(0.8, nil)
	proposal.RefiningWorkflowID = "does-not-exist"

	second := Resolve(store, proposal)

	assert.True(t, second.Refined)
	assert.Equal(t, first.Workflow.ID, second.Workflow.ID)
}

func TestResolve_ParamsSurviveRefinement(t *testing.T) {
	store := session.NewStore("s1")
	first := Resolve(store, testProposal(0.9, nil))
	first.Workflow.Params["channel"] = "#alerts"

	second := Resolve(store, testProposal(0.9, nil))

	assert.Equal(t, "#alerts", second.Workflow.Params["channel"])
}

func TestCallToAction_Variants(t *testing.T) {
	tests := []struct {
		confidence float64
		missing    bool
		contains   string
	}{
		{0.9, false, "execute"},
		{0.9, true, "answer the questions"},
		{0.6, true, "fine-tune"},
		{0.6, false, "assumptions"},
	}

	for _, tc := range tests {
		cta := callToAction(tc.confidence, tc.missing)
		assert.Contains(t, strings.ToLower(cta), tc.contains,
			"confidence=%v missing=%v", tc.confidence, tc.missing)
	}
}

func TestResolution_Message_AlwaysReferencesWorkflow(t *testing.T) {
	store := session.NewStore("s1")
	resolution := Resolve(store, testProposal(0.6, []models.MissingInfoField{
		{Field: "email", Question: "Where should alerts go?"},
	}))

	message := resolution.Message()

	require.NotNil(t, message.Metadata)
	assert.Equal(t, resolution.Workflow.ID, message.Metadata.WorkflowID)
	assert.Equal(t, models.MessageTypePreview, message.Type)
	assert.Contains(t, message.Content, "Where should alerts go?")
}
