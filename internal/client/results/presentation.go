package results

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

type Quality string

const (
	QualityHigh   Quality = "high"
	QualityMedium Quality = "medium"
	QualityLow    Quality = "low"
)

func MatchQuality(score int) Quality {
	switch {
	case score >= 80:
		return QualityHigh
	case score >= 50:
		return QualityMedium
	default:
		return QualityLow
	}
}

// IsPastDeadline reports whether a dated deadline falls strictly before ref.
// Undated and unparseable deadlines are never past due.
func IsPastDeadline(deadline string, ref time.Time) bool {
	if isUndated(strings.ToLower(deadline)) {
		return false
	}
	t, ok := parseDate(deadline)
	if !ok {
		return false
	}
	return t.Before(ref)
}

// ShowLocalAmount reports whether the converted amount adds information.
func ShowLocalAmount(s models.Scholarship, m models.MatchResult) bool {
	return m.LocalCurrencyAmount != "" && m.LocalCurrencyAmount != s.Amount
}
