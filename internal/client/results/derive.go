package results

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

type SortKey string

const (
	SortMatch        SortKey = "Match"
	SortDeadlineAsc  SortKey = "DeadlineAsc"
	SortDeadlineDesc SortKey = "DeadlineDesc"
)

// ParseSortKey accepts the sort key names case-insensitively.
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range []SortKey{SortMatch, SortDeadlineAsc, SortDeadlineDesc} {
		if strings.EqualFold(s, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Controls are the list controls of the results view.
type Controls struct {
	Category      string
	CommunityOnly bool
	SearchText    string
	SortKey       SortKey
}

// DefaultControls is the view state of a fresh results page.
func DefaultControls() Controls {
	return Controls{Category: CategoryAll, SortKey: SortMatch}
}

// Derive filters and sorts results for display. The input is never
// modified. The sort is stable, so equal keys keep their input order, which
// makes Derive idempotent.
func Derive(results []models.ScholarshipMatch, c Controls) []models.ScholarshipMatch {
	out := make([]models.ScholarshipMatch, 0, len(results))
	query := strings.ToLower(c.SearchText)
	for _, r := range results {
		if keep(r.Scholarship, c, query) {
			out = append(out, r)
		}
	}

	switch c.SortKey {
	case SortDeadlineAsc:
		slices.SortStableFunc(out, func(a, b models.ScholarshipMatch) int {
			return ParseDeadline(a.Scholarship.Deadline).Compare(ParseDeadline(b.Scholarship.Deadline))
		})
	case SortDeadlineDesc:
		slices.SortStableFunc(out, func(a, b models.ScholarshipMatch) int {
			return ParseDeadline(b.Scholarship.Deadline).Compare(ParseDeadline(a.Scholarship.Deadline))
		})
	default:
		slices.SortStableFunc(out, func(a, b models.ScholarshipMatch) int {
			return b.Match.MatchScore - a.Match.MatchScore
		})
	}

	return out
}

func keep(s models.Scholarship, c Controls, query string) bool {
	if c.Category != "" && c.Category != CategoryAll && string(s.Category) != c.Category {
		return false
	}
	if c.CommunityOnly && !IsCommunityTargeted(s) {
		return false
	}
	return matchesQuery(s, query)
}

// IsCommunityTargeted reports whether the scholarship names a specific
// community.
func IsCommunityTargeted(s models.Scholarship) bool {
	tc := strings.ToLower(s.TargetCommunity)
	return tc != "" && tc != "general" && tc != "none"
}

func matchesQuery(s models.Scholarship, query string) bool {
	if strings.Contains(strings.ToLower(s.Title), query) ||
		strings.Contains(strings.ToLower(s.Provider), query) {
		return true
	}
	return s.TargetCommunity != "" && strings.Contains(strings.ToLower(s.TargetCommunity), query)
}
