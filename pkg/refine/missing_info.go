package refine

import (
	"fmt"
	"strings"
	"time"

	"github.com/draftflow/draftflow/pkg/session"
)

// Confidence nudge applied when an outstanding question is answered.
const (
	confidenceIncrement = 0.1
	confidenceCeiling   = 0.95
)

// AnswerKind classifies what a missing-info answer actually was.
type AnswerKind string

const (
	AnswerRetry    AnswerKind = "retry"    // user wants the failed step retried
	AnswerHelp     AnswerKind = "help"     // user wants troubleshooting help
	AnswerResolved AnswerKind = "resolved" // a literal value was stored
	AnswerError    AnswerKind = "error"    // nothing was mutated
)

// AnswerResult reports how one answer was handled. HelpRequest, when set, is
// a synthesized troubleshooting prompt the caller forwards to the main
// conversational channel.
type AnswerResult struct {
	Kind        AnswerKind
	Message     string
	HelpRequest string
}

// AnswerMissingInfo processes one answer to a previously surfaced clarifying
// question on the session's active workflow. Classification priority:
// retry-action, help-action, self-reference, literal value.
func AnswerMissingInfo(store *session.Store, field, rawValue string) *AnswerResult {
	workflow := store.ActiveWorkflow()
	if workflow == nil {
		return &AnswerResult{
			Kind:    AnswerError,
			Message: "There's no active workflow to update right now.",
		}
	}

	lower := strings.ToLower(strings.TrimSpace(rawValue))

	if strings.Contains(lower, "retry") {
		if workflow.Params == nil {
			workflow.Params = make(map[string]any)
		}

		workflow.Params["_retryRequested"] = time.Now().UTC()
		workflow.UpdatedAt = time.Now().UTC()

		return &AnswerResult{
			Kind:    AnswerRetry,
			Message: "Okay, I'll retry that step.",
		}
	}

	if strings.Contains(lower, "help") || strings.Contains(lower, "describe") || strings.Contains(lower, "troubleshoot") {
		request := fmt.Sprintf("Help me troubleshoot the workflow %q", workflow.Name)
		if field != "" {
			request = fmt.Sprintf("Help me troubleshoot the %q step of workflow %q", field, workflow.Name)
		}

		return &AnswerResult{
			Kind:        AnswerHelp,
			Message:     "Let me pull up some troubleshooting help.",
			HelpRequest: request,
		}
	}

	value := rawValue

	if isSelfReference(lower) {
		if store.UserEmail == "" {
			return &AnswerResult{
				Kind:    AnswerError,
				Message: "I don't know your email address yet - please enter it manually.",
			}
		}

		value = store.UserEmail
	}

	workflow.ResolveMissingInfo(field)

	if workflow.Params == nil {
		workflow.Params = make(map[string]any)
	}

	workflow.Params[field] = value
	// Forces downstream change detection even when the same value is set twice.
	workflow.Params["_lastUpdated"] = time.Now().UTC()

	workflow.Confidence += confidenceIncrement
	if workflow.Confidence > confidenceCeiling {
		workflow.Confidence = confidenceCeiling
	}

	workflow.UpdatedAt = time.Now().UTC()

	remaining := len(workflow.MissingInfo)
	message := fmt.Sprintf("Got it, %s is set.", field)

	if remaining > 0 {
		message = fmt.Sprintf("Got it, %s is set. %d question(s) to go.", field, remaining)
	}

	return &AnswerResult{
		Kind:    AnswerResolved,
		Message: message,
	}
}

func isSelfReference(lower string) bool {
	return strings.Contains(lower, "send to myself") ||
		strings.Contains(lower, "my email address") ||
		lower == "myself" ||
		lower == "me"
}
