package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeChatResponse_NaturalReply(t *testing.T) {
	raw := []byte(`{
		"text": "Sure, tell me more about the trigger.",
		"shouldGenerateWorkflow": false,
		"clarifyingQuestions": ["Which repository?"]
	}`)

	result, err := DecodeChatResponse(raw)
	require.NoError(t, err)

	require.NotNil(t, result.Reply)
	assert.Nil(t, result.Proposal)
	assert.Equal(t, "Sure, tell me more about the trigger.", result.Reply.Text)
	assert.Equal(t, []string{"Which repository?"}, result.Reply.ClarifyingQuestions)
}

func TestDecodeChatResponse_Proposal(t *testing.T) {
	raw := []byte(`{
		"text": "Here is your workflow.",
		"shouldGenerateWorkflow": true,
		"confidence": 0.9,
		"assumptions": ["default channel is #general"],
		"missingInfo": [{"field": "email", "question": "Where should alerts go?"}],
		"refiningWorkflowId": "wf-123",
		"workflowSpec": {
			"name": "Issue Alerts",
			"nodes": [
				{"id": "n1", "type": "new_issue", "category": "trigger", "name": "New GitHub Issue", "integration": "github"},
				{"id": "n2", "type": "send_message", "category": "action", "name": "Send Slack Message", "integration": "slack"}
			]
		}
	}`)

	result, err := DecodeChatResponse(raw)
	require.NoError(t, err)

	require.NotNil(t, result.Proposal)
	assert.Nil(t, result.Reply)
	assert.Equal(t, "Issue Alerts", result.Proposal.Name)
	assert.Len(t, result.Proposal.Nodes, 2)
	assert.InDelta(t, 0.9, result.Proposal.Confidence, 1e-9)
	assert.Equal(t, "wf-123", result.Proposal.RefiningWorkflowID)
	require.Len(t, result.Proposal.MissingInfo, 1)
	assert.Equal(t, "email", result.Proposal.MissingInfo[0].Field)
}

func TestDecodeChatResponse_MissingSpec(t *testing.T) {
	raw := []byte(`{"text": "oops", "shouldGenerateWorkflow": true}`)

	_, err := DecodeChatResponse(raw)
	assert.ErrorIs(t, err, ErrInvalidProposal)
}

func TestDecodeChatResponse_SpecFailsSchema(t *testing.T) {
	// Node missing its category: the schema rejects it before the proposal
	// reaches the refinement resolver.
	raw := []byte(`{
		"shouldGenerateWorkflow": true,
		"workflowSpec": {
			"name": "Broken",
			"nodes": [{"id": "n1", "type": "x", "name": "X"}]
		}
	}`)

	_, err := DecodeChatResponse(raw)
	assert.ErrorIs(t, err, ErrInvalidProposal)
}

func TestDecodeChatResponse_MalformedJSON(t *testing.T) {
	_, err := DecodeChatResponse([]byte(`{not json`))
	assert.Error(t, err)
}
