package results

import (
	"strings"
	"time"
)

// FarFuture stands in for deadlines that have no calendar date. It sorts
// after every real deadline.
var FarFuture = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02 Jan 2006",
	"Monday, January 2, 2006",
	"January 2006",
	"Jan 2006",
}

// isUndated reports whether the text describes an open-ended deadline.
func isUndated(lower string) bool {
	return strings.Contains(lower, "rolling") || strings.Contains(lower, "upcoming")
}

// parseDate tries the known layouts against the trimmed text.
func parseDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDeadline maps deadline text to a point in time. Text mentioning
// "rolling" or "upcoming", and text that is not a recognizable date, map to
// FarFuture.
func ParseDeadline(text string) time.Time {
	if isUndated(strings.ToLower(text)) {
		return FarFuture
	}
	if t, ok := parseDate(text); ok {
		return t
	}
	return FarFuture
}
