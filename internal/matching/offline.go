package matching

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// CatalogMatcher ranks the reference catalog with keyword heuristics. It
// needs no network and backs the client when no API key or gateway is
// configured.
type CatalogMatcher struct {
	source catalog.Source
}

func NewCatalogMatcher(src catalog.Source) *CatalogMatcher {
	return &CatalogMatcher{source: src}
}

type signal struct {
	points int
	reason string
	hit    func(p models.UserProfile, s models.Scholarship, text string) bool
}

var femaleWords = []string{"women", "woman", "girl", "female"}

var levelWords = map[models.EducationLevel][]string{
	models.EducationHighSchool:    {"class 9", "class 12", "school"},
	models.EducationUndergraduate: {"undergraduate", "degree", "b.tech", "baccalaureate", "first year"},
	models.EducationPostgraduate:  {"master", "postgraduate", "graduate"},
	models.EducationDoctorate:     {"phd", "doctoral", "post-doctoral", "research"},
}

var signals = []signal{
	{
		points: 20,
		reason: "open to women applicants",
		hit: func(p models.UserProfile, _ models.Scholarship, text string) bool {
			return strings.EqualFold(p.Gender, "female") && containsWord(text, femaleWords)
		},
	},
	{
		points: 15,
		reason: "fits your education level",
		hit: func(p models.UserProfile, _ models.Scholarship, text string) bool {
			return containsWord(text, levelWords[p.EducationLevel])
		},
	},
	{
		points: 15,
		reason: "relevant to your field of study",
		hit: func(p models.UserProfile, _ models.Scholarship, text string) bool {
			return containsWord(text, fieldTerms(p.FieldOfStudy))
		},
	},
	{
		points: 10,
		reason: "available in your country",
		hit: func(p models.UserProfile, s models.Scholarship, text string) bool {
			if s.Scope == models.ScopeGlobal {
				return true
			}
			country := strings.ToLower(p.Country)
			return country != "" && (strings.Contains(text, country) || (country == "india" && strings.Contains(s.Amount, "₹")))
		},
	},
	{
		points: 10,
		reason: "supports your financial need",
		hit: func(p models.UserProfile, _ models.Scholarship, text string) bool {
			return p.IncomeBracket != "" && strings.Contains(text, "income")
		},
	},
	{
		points: 5,
		reason: "rewards academic merit",
		hit: func(p models.UserProfile, _ models.Scholarship, text string) bool {
			return p.GPA != "" && containsWord(text, []string{"merit", "gpa", "marks", "academic"})
		},
	},
}

// basePoints is the score of a scholarship that matches no signal.
const basePoints = 25

func (m *CatalogMatcher) FindMatches(ctx context.Context, p models.UserProfile) ([]models.ScholarshipMatch, error) {
	list, err := m.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	out := make([]models.ScholarshipMatch, 0, len(list))
	for _, s := range list {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, Score(p, s))
	}
	slices.SortStableFunc(out, func(a, b models.ScholarshipMatch) int {
		return b.Match.MatchScore - a.Match.MatchScore
	})
	return out, nil
}

// Score rates one scholarship against the profile.
func Score(p models.UserProfile, s models.Scholarship) models.ScholarshipMatch {
	text := strings.ToLower(s.Title + " " + s.EligibilityCriteria + " " + s.Description + " " + s.Provider)

	score := basePoints
	var reasons []string
	for _, sig := range signals {
		if sig.hit(p, s, text) {
			score += sig.points
			reasons = append(reasons, sig.reason)
		}
	}

	reasoning := "General eligibility; review the criteria."
	if len(reasons) > 0 {
		reasoning = "Matches because it is " + strings.Join(reasons, ", ") + "."
	}

	return models.ScholarshipMatch{
		Scholarship: s,
		Match: models.MatchResult{
			ScholarshipID: s.ID,
			MatchScore:    min(score, 100),
			Reasoning:     reasoning,
		},
	}
}

func containsWord(text string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// fieldTerms splits a field of study into search terms, dropping short
// connector words.
func fieldTerms(field string) []string {
	var terms []string
	for _, f := range strings.FieldsFunc(strings.ToLower(field), func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '&'
	}) {
		if len(f) > 3 {
			terms = append(terms, f)
		}
	}
	return terms
}
