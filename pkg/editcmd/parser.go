// Package editcmd recognizes and applies direct edit commands ("remove
// gmail", "add slack") that bypass the conversation state machine and mutate
// an already-generated workflow.
package editcmd

import (
	"regexp"
	"strings"
)

// CommandKind is the edit command family.
type CommandKind string

const (
	CommandRemove CommandKind = "remove"
	CommandAdd    CommandKind = "add"
)

// Command is one parsed edit command. Target is free text for removals and
// an integration name for additions.
type Command struct {
	Kind   CommandKind
	Target string
}

// Anchored so a command must be the whole utterance; "please remove the
// gmail step eventually" is conversation, not a command.
var (
	removePattern = regexp.MustCompile(`(?i)^(?:remove|delete)\s+(?:the\s+)?(?:node\s+|step\s+)?["']?(.+?)["']?(?:\s+(?:step|node))?[.!]?$`)
	looseRemove   = regexp.MustCompile(`(?i)^(?:take\s+out|get\s+rid\s+of)\s+(?:the\s+)?["']?(.+?)["']?(?:\s+(?:step|node))?[.!]?$`)
	addPattern    = regexp.MustCompile(`(?i)^add\s+(?:a\s+)?(?:new\s+)?["']?([a-z0-9_-]+)["']?\s*(?:step|node|action)?[.!]?$`)
)

// Parse attempts to read text as an edit command. A nil result means no
// command matched and normal conversational flow should proceed.
func Parse(text string) *Command {
	trimmed := strings.TrimSpace(text)

	if m := removePattern.FindStringSubmatch(trimmed); m != nil {
		return &Command{Kind: CommandRemove, Target: strings.TrimSpace(m[1])}
	}

	if m := looseRemove.FindStringSubmatch(trimmed); m != nil {
		return &Command{Kind: CommandRemove, Target: strings.TrimSpace(m[1])}
	}

	if m := addPattern.FindStringSubmatch(trimmed); m != nil {
		return &Command{Kind: CommandAdd, Target: strings.ToLower(strings.TrimSpace(m[1]))}
	}

	return nil
}
