package results

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

func match(id string, score int, opts ...func(*models.ScholarshipMatch)) models.ScholarshipMatch {
	m := models.ScholarshipMatch{
		Scholarship: models.Scholarship{
			ID:       id,
			Title:    "Scholarship " + id,
			Provider: "Provider " + id,
			Amount:   "$1,000",
			Deadline: "2026-06-01",
			Category: models.CategoryPrivate,
			Scope:    models.ScopeNational,
		},
		Match: models.MatchResult{ScholarshipID: id, MatchScore: score},
	}
	for _, o := range opts {
		o(&m)
	}
	return m
}

func withCategory(c models.Category) func(*models.ScholarshipMatch) {
	return func(m *models.ScholarshipMatch) { m.Scholarship.Category = c }
}

func withDeadline(d string) func(*models.ScholarshipMatch) {
	return func(m *models.ScholarshipMatch) { m.Scholarship.Deadline = d }
}

func withCommunity(c string) func(*models.ScholarshipMatch) {
	return func(m *models.ScholarshipMatch) { m.Scholarship.TargetCommunity = c }
}

func withAmount(a string) func(*models.ScholarshipMatch) {
	return func(m *models.ScholarshipMatch) { m.Scholarship.Amount = a }
}

func ids(rs []models.ScholarshipMatch) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Scholarship.ID)
	}
	return out
}

func TestParseDeadline_SentinelCases(t *testing.T) {
	for _, in := range []string{"Rolling Admissions", "Upcoming Fall 2027", "not a date", "", "ROLLING"} {
		assert.Equal(t, FarFuture, ParseDeadline(in), in)
	}
}

func TestParseDeadline_Layouts(t *testing.T) {
	want := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2026-12-15", "Dec 15, 2026", "December 15, 2026", "15 December 2026", "12/15/2026", " 2026-12-15 "} {
		assert.True(t, want.Equal(ParseDeadline(in)), in)
	}
}

func TestDerive_DefaultSortsByScoreDesc(t *testing.T) {
	in := []models.ScholarshipMatch{match("a", 40), match("b", 95), match("c", 70), match("d", 95)}

	out := Derive(in, DefaultControls())

	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(out))
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].Match.MatchScore, out[i].Match.MatchScore)
	}
}

func TestDerive_IsIdempotentAndPure(t *testing.T) {
	in := []models.ScholarshipMatch{
		match("a", 60, withDeadline("Rolling")),
		match("b", 60, withDeadline("2026-03-01"), withCommunity("SC/ST")),
		match("c", 90, withCategory(models.CategoryGovernment), withDeadline("Jan 5, 2027")),
		match("d", 10, withDeadline("garbage")),
	}
	snapshot := append([]models.ScholarshipMatch(nil), in...)

	for _, key := range []SortKey{SortMatch, SortDeadlineAsc, SortDeadlineDesc} {
		c := Controls{Category: CategoryAll, SortKey: key}
		once := Derive(in, c)
		twice := Derive(once, c)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("%s not idempotent (-once +twice):\n%s", key, diff)
		}
	}
	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Fatalf("input mutated:\n%s", diff)
	}
}

func TestDerive_DeadlineSort(t *testing.T) {
	in := []models.ScholarshipMatch{
		match("rolling", 50, withDeadline("Rolling")),
		match("late", 50, withDeadline("2027-01-01")),
		match("soon", 50, withDeadline("2026-03-01")),
		match("junk", 50, withDeadline("TBD")),
	}

	asc := Derive(in, Controls{SortKey: SortDeadlineAsc})
	assert.Equal(t, []string{"soon", "late", "rolling", "junk"}, ids(asc))

	desc := Derive(in, Controls{SortKey: SortDeadlineDesc})
	assert.Equal(t, []string{"rolling", "junk", "late", "soon"}, ids(desc))
}

func TestDerive_Filters(t *testing.T) {
	gov := match("gov", 50, withCategory(models.CategoryGovernment))
	priv := match("priv", 80)
	comm := match("comm", 30, withCommunity("Women in STEM"))
	general := match("general", 20, withCommunity("General"))
	none := match("none", 10, withCommunity("none"))
	in := []models.ScholarshipMatch{gov, priv, comm, general, none}

	tests := []struct {
		name string
		c    Controls
		want []string
	}{
		{"all", Controls{Category: CategoryAll}, []string{"priv", "gov", "comm", "general", "none"}},
		{"government", Controls{Category: "Government"}, []string{"gov"}},
		{"community only", Controls{CommunityOnly: true}, []string{"comm"}},
		{"search title", Controls{SearchText: "SCHOLARSHIP PRIV"}, []string{"priv"}},
		{"search provider", Controls{SearchText: "provider gov"}, []string{"gov"}},
		{"search community", Controls{SearchText: "women"}, []string{"comm"}},
		{"anded", Controls{Category: "Private", CommunityOnly: true, SearchText: "stem"}, []string{"comm"}},
		{"no hits", Controls{SearchText: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Derive(in, tt.c)))
		})
	}
}

func TestDerive_GovernmentFilterKeepsRelativeOrder(t *testing.T) {
	in := []models.ScholarshipMatch{
		match("g1", 70, withCategory(models.CategoryGovernment)),
		match("p1", 90),
		match("g2", 70, withCategory(models.CategoryGovernment)),
	}
	out := Derive(in, Controls{Category: "Government", SortKey: SortMatch})
	assert.Equal(t, []string{"g1", "g2"}, ids(out))
}

func TestParseSortKey(t *testing.T) {
	k, ok := ParseSortKey("deadlineasc")
	require.True(t, ok)
	assert.Equal(t, SortDeadlineAsc, k)

	_, ok = ParseSortKey("title")
	assert.False(t, ok)
}

func TestMatchQuality(t *testing.T) {
	assert.Equal(t, QualityHigh, MatchQuality(80))
	assert.Equal(t, QualityHigh, MatchQuality(100))
	assert.Equal(t, QualityMedium, MatchQuality(79))
	assert.Equal(t, QualityMedium, MatchQuality(50))
	assert.Equal(t, QualityLow, MatchQuality(49))
	assert.Equal(t, QualityLow, MatchQuality(0))
}

func TestIsPastDeadline(t *testing.T) {
	ref := time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsPastDeadline("2026-02-23", ref))
	assert.False(t, IsPastDeadline("2026-02-24", ref))
	assert.False(t, IsPastDeadline("2026-12-31", ref))
	assert.False(t, IsPastDeadline("Rolling", ref))
	assert.False(t, IsPastDeadline("Upcoming 2020", ref))
	assert.False(t, IsPastDeadline("soon", ref))
}

func TestShowLocalAmount(t *testing.T) {
	s := models.Scholarship{Amount: "$1,000"}
	assert.False(t, ShowLocalAmount(s, models.MatchResult{}))
	assert.False(t, ShowLocalAmount(s, models.MatchResult{LocalCurrencyAmount: "$1,000"}))
	assert.True(t, ShowLocalAmount(s, models.MatchResult{LocalCurrencyAmount: "₹83,000"}))
}
