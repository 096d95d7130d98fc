package intent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_TriggerAndAction(t *testing.T) {
	extraction := Extract("When I get a new GitHub issue, send a Slack message")

	require.True(t, extraction.HasTrigger())
	assert.Equal(t, "github", extraction.TriggerIntegration)
	assert.Equal(t, "new_issue", extraction.TriggerType)

	require.Len(t, extraction.Actions, 1)
	assert.Equal(t, "slack", extraction.Actions[0].Integration)
	assert.Equal(t, "send_message", extraction.Actions[0].Type)
}

func TestExtract_FirstTriggerWins(t *testing.T) {
	// Both the github table entry and the schedule entry could match; only
	// the higher-priority one is returned.
	extraction := Extract("every morning check for a new github issue")

	assert.Equal(t, "github", extraction.TriggerIntegration)
}

func TestExtract_ActionsDedupedByIntegration(t *testing.T) {
	extraction := Extract("post to slack and also notify the team on slack")

	require.Len(t, extraction.Actions, 1)
	assert.Equal(t, "slack", extraction.Actions[0].Integration)
}

func TestExtract_MultipleActions(t *testing.T) {
	extraction := Extract("send a slack message and add a row to a spreadsheet")

	require.Len(t, extraction.Actions, 2)
	assert.Equal(t, "slack", extraction.Actions[0].Integration)
	assert.Equal(t, "sheets", extraction.Actions[1].Integration)
}

func TestExtract_NoMatches(t *testing.T) {
	extraction := Extract("hmm, not sure yet")

	assert.False(t, extraction.HasTrigger())
	assert.Empty(t, extraction.Actions)
	assert.Empty(t, extraction.WorkflowName)
	assert.Equal(t, "hmm, not sure yet", extraction.Description)
}

func TestExtract_WorkflowName(t *testing.T) {
	extraction := Extract(`make me a workflow called "Bug Triage" for github issues`)

	assert.Equal(t, "Bug Triage", extraction.WorkflowName)
}

func TestExtract_DescriptionTruncated(t *testing.T) {
	long := strings.Repeat("monitor my inbox and ", 10)
	extraction := Extract(long)

	assert.Len(t, extraction.Description, 103)
	assert.True(t, strings.HasSuffix(extraction.Description, "..."))
}

func TestExtract_DescriptionTruncatedOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("überwache mein Postfach ", 10)
	extraction := Extract(long)

	assert.True(t, utf8.ValidString(extraction.Description))
	assert.Equal(t, 103, utf8.RuneCountInString(extraction.Description))
	assert.True(t, strings.HasSuffix(extraction.Description, "..."))
}
