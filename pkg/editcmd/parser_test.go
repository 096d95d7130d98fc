package editcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RemoveVariants(t *testing.T) {
	tests := []struct {
		text   string
		target string
	}{
		{"remove slack", "slack"},
		{"delete the gmail step", "gmail"},
		{"remove the node \"Send Slack Message\"", "Send Slack Message"},
		{"Remove 'gmail'", "gmail"},
		{"take out the slack step", "slack"},
		{"get rid of gmail", "gmail"},
	}

	for _, tc := range tests {
		command := Parse(tc.text)
		require.NotNil(t, command, "text %q", tc.text)
		assert.Equal(t, CommandRemove, command.Kind, "text %q", tc.text)
		assert.Equal(t, tc.target, command.Target, "text %q", tc.text)
	}
}

func TestParse_AddVariants(t *testing.T) {
	tests := []struct {
		text   string
		target string
	}{
		{"add slack", "slack"},
		{"add a new gmail step", "gmail"},
		{"Add \"trello\" action", "trello"},
	}

	for _, tc := range tests {
		command := Parse(tc.text)
		require.NotNil(t, command, "text %q", tc.text)
		assert.Equal(t, CommandAdd, command.Kind, "text %q", tc.text)
		assert.Equal(t, tc.target, command.Target, "text %q", tc.text)
	}
}

func TestParse_NonCommands(t *testing.T) {
	for _, text := range []string{
		"when I get a new github issue, send a slack message",
		"please remove the gmail step once we're done testing",
		"what does the slack step do?",
		"",
	} {
		assert.Nil(t, Parse(text), "text %q", text)
	}
}
