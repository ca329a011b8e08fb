package ai

import (
	"encoding/json"
	"strings"

	"github.com/bundlewise/go-api/pkg/models"
)

// Accepted group sizes; the model's output is filtered, never clamped.
const (
	MinGroupSize = 2
	MaxGroupSize = 9
)

var fenceReplacer = strings.NewReplacer(
	"```json", "",
	"```", "",
	"\r", "",
	"\n", "",
)

// CleanResponse strips Markdown code fences and newlines from model output
// and trims the result. The model is told to answer with bare JSON but is
// not fully compliant, so every parse goes through this first. Idempotent.
func CleanResponse(raw string) string {
	return strings.TrimSpace(fenceReplacer.Replace(raw))
}

// ParseGroups parses the grouping response into candidate groups and keeps
// only groups of MinGroupSize..MaxGroupSize ids. Out-of-range groups are
// dropped silently; unparseable text is a MalformedResponseError.
func ParseGroups(raw string) ([]models.CandidateGroup, error) {
	cleaned := CleanResponse(raw)

	var groups [][]int
	if err := json.Unmarshal([]byte(cleaned), &groups); err != nil {
		// The structured-output schema wraps the array in an object.
		var wrapped struct {
			Groups [][]int `json:"groups"`
		}
		if err2 := json.Unmarshal([]byte(cleaned), &wrapped); err2 != nil || wrapped.Groups == nil {
			return nil, &MalformedResponseError{Raw: raw, Cause: err}
		}
		groups = wrapped.Groups
	}

	out := make([]models.CandidateGroup, 0, len(groups))
	for _, g := range groups {
		if len(g) < MinGroupSize || len(g) > MaxGroupSize {
			continue
		}
		out = append(out, models.CandidateGroup(g))
	}
	return out, nil
}

// ParseName extracts a bundle name from the naming response. An empty name
// after cleaning is a GenerationFailure.
func ParseName(raw string) (string, error) {
	cleaned := CleanResponse(raw)

	// The model sometimes answers with a JSON-quoted string.
	var quoted string
	if err := json.Unmarshal([]byte(cleaned), &quoted); err == nil {
		cleaned = quoted
	} else {
		cleaned = strings.Trim(cleaned, `"`)
	}

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "", &GenerationFailure{Message: "AI returned an empty bundle name"}
	}
	return cleaned, nil
}

// ParseSuggestions parses the suggestion response as a JSON array of strings.
// Callers treat any error here as non-critical and fall back to the static
// suggestion list.
func ParseSuggestions(raw string) ([]string, error) {
	cleaned := CleanResponse(raw)

	var suggestions []string
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Cause: err}
	}
	return suggestions, nil
}
