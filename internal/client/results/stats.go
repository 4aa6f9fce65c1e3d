package results

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// NoDeadline is shown when no result carries a dated deadline.
const NoDeadline = "N/A"

// Count is one bar of a histogram.
type Count struct {
	Name  string
	Value int
}

type Stats struct {
	Total            int
	AvgAmount        int
	EarliestDeadline string
	RollingCount     int
	Topics           []Count
	Categories       []Count
}

type topic struct {
	name     string
	keywords []string
}

var topics = []topic{
	{"STEM", []string{"stem", "science", "tech"}},
	{"Merit", []string{"merit", "academic", "gpa"}},
	{"Need-based", []string{"income", "need", "financial"}},
	{"International", []string{"international", "abroad", "global"}},
	{"Research", []string{"research", "project"}},
	{"Community", []string{"community", "social", "service"}},
	{"Leadership", []string{"leader", "initiative"}},
}

// ComputeStats aggregates a result set for the dashboard.
func ComputeStats(results []models.ScholarshipMatch) Stats {
	st := Stats{Total: len(results), EarliestDeadline: NoDeadline}

	var total, withAmount int
	var earliest time.Time
	topicCounts := make([]int, len(topics))
	var categories []Count

	for _, r := range results {
		if n, ok := parseAmount(r.Scholarship.Amount); ok {
			total += n
			withAmount++
		}

		if strings.Contains(strings.ToLower(r.Scholarship.Deadline), "rolling") {
			st.RollingCount++
		} else if t, ok := parseDate(r.Scholarship.Deadline); ok {
			if earliest.IsZero() || t.Before(earliest) {
				earliest = t
			}
		}

		text := strings.ToLower(r.Match.Reasoning + " " + r.Scholarship.Description)
		for i, tp := range topics {
			if containsAny(text, tp.keywords) {
				topicCounts[i]++
			}
		}

		categories = increment(categories, categoryName(r.Scholarship.Category))
	}

	if withAmount > 0 {
		st.AvgAmount = int(math.Round(float64(total) / float64(withAmount)))
	}
	if !earliest.IsZero() {
		st.EarliestDeadline = earliest.Format("Jan 2, 2006")
	}

	for i, tp := range topics {
		if topicCounts[i] > 0 {
			st.Topics = append(st.Topics, Count{Name: tp.name, Value: topicCounts[i]})
		}
	}
	slices.SortStableFunc(st.Topics, func(a, b Count) int { return cmp.Compare(b.Value, a.Value) })
	st.Categories = categories

	return st
}

// parseAmount keeps only the digits of the amount text, so "$10,000" reads
// as 10000. Text without digits is not an amount.
func parseAmount(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func categoryName(c models.Category) string {
	if c == "" {
		return "Other"
	}
	return string(c)
}

func increment(counts []Count, name string) []Count {
	for i := range counts {
		if counts[i].Name == name {
			counts[i].Value++
			return counts
		}
	}
	return append(counts, Count{Name: name, Value: 1})
}
