// Package suggest ranks preset nodes against free text by keyword overlap.
// It backs the clarifying prompts the conversation engine shows when pattern
// extraction found nothing concrete.
package suggest

import (
	"sort"
	"strings"

	"github.com/draftflow/draftflow/pkg/models"
	"github.com/draftflow/draftflow/pkg/patterns"
)

const (
	maxSuggestions = 6
	scoreThreshold = 0.2
	shortInputLen  = 5
	confidenceCap  = 0.9
	confidenceLift = 0.3
)

// Rank scores the preset catalog for the given step against the input and
// returns the top matches by descending confidence. The result is never
// empty: very short input, or input no preset scores well against, falls
// back to the whole catalog so the engine always has options to show.
func Rank(input string, step models.CreationStep) []models.NodeSuggestion {
	catalog := patterns.ActionPresets
	if step == models.StepTrigger {
		catalog = patterns.TriggerPresets
	}

	lower := strings.ToLower(input)
	suggestions := make([]models.NodeSuggestion, 0, len(catalog))

	for _, preset := range catalog {
		score := keywordScore(lower, preset)
		if score > scoreThreshold {
			suggestions = append(suggestions, toSuggestion(preset, score))
		}
	}

	// Fall back to the full catalog with the confidence floor applied.
	if len(lower) < shortInputLen || len(suggestions) == 0 {
		suggestions = suggestions[:0]
		for _, preset := range catalog {
			suggestions = append(suggestions, toSuggestion(preset, keywordScore(lower, preset)))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return suggestions
}

func keywordScore(lowerInput string, preset patterns.Preset) float64 {
	keywords := []string{strings.ToLower(preset.Integration), strings.ToLower(preset.Type)}
	keywords = append(keywords, strings.Fields(strings.ToLower(preset.Name))...)

	found := 0

	for _, keyword := range keywords {
		if strings.Contains(lowerInput, keyword) {
			found++
		}
	}

	return float64(found) / float64(len(keywords))
}

func toSuggestion(preset patterns.Preset, score float64) models.NodeSuggestion {
	confidence := score + confidenceLift
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return models.NodeSuggestion{
		NodeType:    preset.Type,
		Integration: preset.Integration,
		Name:        preset.Name,
		Confidence:  confidence,
		Category:    preset.Category,
	}
}
