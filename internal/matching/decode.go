package matching

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// wireMatch mirrors the response schema. Model output may carry fractional
// scores, so the score is read as a number and rounded.
type wireMatch struct {
	Scholarship models.Scholarship `json:"scholarship"`
	Match       struct {
		ScholarshipID       string  `json:"scholarshipId"`
		MatchScore          float64 `json:"matchScore"`
		Reasoning           string  `json:"reasoning"`
		LocalCurrencyAmount string  `json:"localCurrencyAmount"`
	} `json:"match"`
}

// DecodeMatches parses a JSON array of scholarship matches. Blank input is an
// empty list. Scores are clamped to 0..100 and a missing match id falls back
// to the scholarship id.
func DecodeMatches(text string) ([]models.ScholarshipMatch, error) {
	text = strings.TrimSpace(stripFence(text))
	if text == "" {
		return []models.ScholarshipMatch{}, nil
	}

	var wire []wireMatch
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}

	out := make([]models.ScholarshipMatch, 0, len(wire))
	for _, w := range wire {
		id := w.Match.ScholarshipID
		if id == "" {
			id = w.Scholarship.ID
		}
		out = append(out, models.ScholarshipMatch{
			Scholarship: w.Scholarship,
			Match: models.MatchResult{
				ScholarshipID:       id,
				MatchScore:          clampScore(w.Match.MatchScore),
				Reasoning:           w.Match.Reasoning,
				LocalCurrencyAmount: w.Match.LocalCurrencyAmount,
			},
		})
	}
	return out, nil
}

func clampScore(f float64) int {
	n := int(math.Round(f))
	return max(0, min(100, n))
}

// stripFence removes a surrounding ```json fence some models add.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
