// Package intent extracts workflow intent from free-form user text using the
// static pattern tables. Matching is deterministic; no remote model is
// involved on this path.
package intent

import (
	"strings"
	"unicode/utf8"

	"github.com/draftflow/draftflow/pkg/patterns"
)

const maxDescriptionLength = 100

// ActionMatch is one recognized action, deduplicated by integration.
type ActionMatch struct {
	Integration string
	Type        string
}

// Extraction is the result of one pass over an input string. Absent fields
// mean the corresponding pattern tables had no match; that is a valid result,
// not an error.
type Extraction struct {
	TriggerIntegration string
	TriggerType        string
	Actions            []ActionMatch
	WorkflowName       string
	Description        string
}

// HasTrigger reports whether a trigger pattern matched.
func (e *Extraction) HasTrigger() bool {
	return e.TriggerIntegration != ""
}

// Extract applies the pattern library to one input string. The trigger table
// is scanned in priority order and the first match wins; every action match
// is kept but an integration is never added twice (first occurrence wins).
func Extract(text string) *Extraction {
	extraction := &Extraction{
		Actions:     make([]ActionMatch, 0),
		Description: truncateDescription(text),
	}

	for _, p := range patterns.TriggerPatterns {
		if p.Pattern.MatchString(text) {
			extraction.TriggerIntegration = p.Integration
			extraction.TriggerType = p.Type

			break
		}
	}

	seen := make(map[string]bool)

	for _, p := range patterns.ActionPatterns {
		if !p.Pattern.MatchString(text) {
			continue
		}

		if seen[p.Integration] {
			continue
		}

		seen[p.Integration] = true
		extraction.Actions = append(extraction.Actions, ActionMatch{
			Integration: p.Integration,
			Type:        p.Type,
		})
	}

	for _, pattern := range patterns.NamePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			extraction.WorkflowName = strings.TrimSpace(m[1])

			break
		}
	}

	return extraction
}

// truncateDescription limits the description to maxDescriptionLength
// characters, cutting on rune boundaries so multi-byte input stays valid.
func truncateDescription(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxDescriptionLength {
		return text
	}

	runes := []rune(text)

	return string(runes[:maxDescriptionLength]) + "..."
}
