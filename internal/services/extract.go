package services

import (
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"

	"orienta-backend/internal/catalog"
	"orienta-backend/internal/models"
)

// The two extraction grammars. Strict mode recovers a JSON payload from the
// completion; free-text mode recovers prose plus an enumerated list. They are
// separate code paths selected by the configured output contract and never
// fall back into each other.

var fencedJSONRegex = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")

var numberedLineRegex = regexp.MustCompile(`^\s*\d+\.\s+(.*)$`)

// rawSuggestion tolerates loosely typed provider output; percentageMatch may
// arrive as a number or a numeric string.
type rawSuggestion struct {
	Name            string `json:"name"`
	PercentageMatch any    `json:"percentageMatch"`
	Reason          string `json:"reason"`
}

type structuredPayload struct {
	ChatReply        string          `json:"chatReply"`
	SuggestedCareers []rawSuggestion `json:"suggestedCareers"`
}

// extractStructured parses a strict-mode completion. It prefers the interior
// of a fenced ```json block and otherwise parses the whole text; a parse
// failure is a hard *MalformedCompletionError with no fallback.
func extractStructured(raw string) (string, []models.SuggestedCareer, error) {
	candidate := strings.TrimSpace(raw)
	if match := fencedJSONRegex.FindStringSubmatch(raw); match != nil {
		candidate = match[1]
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return "", nil, &MalformedCompletionError{Raw: raw, Err: err}
	}

	suggestions := make([]models.SuggestedCareer, 0, len(payload.SuggestedCareers))
	for _, s := range payload.SuggestedCareers {
		validateCareerName(s.Name)
		suggestions = append(suggestions, models.SuggestedCareer{
			Name:            s.Name,
			PercentageMatch: coercePercentage(s.PercentageMatch),
			Reason:          s.Reason,
		})
	}

	return payload.ChatReply, suggestions, nil
}

// extractFreeText parses the legacy prose contract: everything before the
// first contiguous block of "N. text" lines is the reply, the block lines are
// the suggestion labels. A completion without such a block is a valid,
// degraded result with no suggestions.
func extractFreeText(raw string) (string, []models.SuggestedCareer) {
	lines := strings.Split(raw, "\n")

	start := -1
	end := -1
	for i, line := range lines {
		if numberedLineRegex.MatchString(line) {
			if start == -1 {
				start = i
			}
			end = i
		} else if start != -1 {
			// First contiguous block only.
			break
		}
	}

	if start == -1 {
		return strings.TrimSpace(raw), []models.SuggestedCareer{}
	}

	reply := strings.TrimSpace(strings.Join(lines[:start], "\n"))

	suggestions := make([]models.SuggestedCareer, 0, end-start+1)
	for _, line := range lines[start : end+1] {
		label := strings.TrimSpace(numberedLineRegex.FindStringSubmatch(line)[1])
		if label == "" {
			continue
		}
		validateCareerName(label)
		suggestions = append(suggestions, models.SuggestedCareer{Name: label})
	}

	return reply, suggestions
}

// coercePercentage turns the provider's percentageMatch value into an int in
// [0,100]. Non-numeric or out-of-range values clamp to 0; a single bad field
// never discards the suggestion list.
func coercePercentage(v any) int {
	var n float64
	switch val := v.(type) {
	case float64:
		n = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			log.Printf("WARNING: non-numeric percentageMatch %q, clamping to 0", val)
			return 0
		}
		n = parsed
	default:
		log.Printf("WARNING: non-numeric percentageMatch %v, clamping to 0", v)
		return 0
	}

	if n < 0 || n > 100 {
		log.Printf("WARNING: percentageMatch %v out of range, clamping to 0", n)
		return 0
	}
	return int(n)
}

// validateCareerName soft-checks the name against the catalog. Mismatches
// are kept so content drift never shrinks the suggestion list, but they are
// visible to operators.
func validateCareerName(name string) {
	if !catalog.Contains(name) {
		log.Printf("WARNING: suggested career %q is not in the catalog", name)
	}
}
