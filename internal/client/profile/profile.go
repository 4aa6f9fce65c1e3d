// Package profile holds the intake form logic: defaults, completion and the
// presentation facts derived from the profile (currency symbol, application
// assistant fields). Essential-field validation is models.UserProfile.Validate.
package profile

import (
	"math"

	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// FieldCount is the number of fields of models.UserProfile counted by
// Completion.
const FieldCount = 17

// NewDefault returns the form as first shown to a new user.
func NewDefault() models.UserProfile {
	return models.UserProfile{
		Age:            20,
		Gender:         "Female",
		EducationLevel: models.EducationUndergraduate,
		YearOfStudy:    "1st Year",
		Country:        "India",
	}
}

// Submit hands the profile on unchanged. Required-field checks belong to the
// input layer (see models.UserProfile.Validate).
func Submit(current models.UserProfile) models.UserProfile {
	return current
}

// textFields returns every string field in declaration order, paired with
// its JSON name.
func textFields(p models.UserProfile) []struct{ name, value string } {
	return []struct{ name, value string }{
		{"fullName", p.FullName},
		{"gender", p.Gender},
		{"educationLevel", string(p.EducationLevel)},
		{"yearOfStudy", p.YearOfStudy},
		{"institution", p.Institution},
		{"fieldOfStudy", p.FieldOfStudy},
		{"gpa", p.GPA},
		{"country", p.Country},
		{"state", p.State},
		{"pincode", p.Pincode},
		{"address", p.Address},
		{"caste", p.Caste},
		{"incomeBracket", p.IncomeBracket},
		{"background", p.Background},
		{"careerGoals", p.CareerGoals},
		{"profileDeadline", p.ProfileDeadline},
	}
}

// Completion returns round(100 * filled / FieldCount). Age is numeric and
// always counts as filled, zero included.
func Completion(p models.UserProfile) int {
	filled := 1 // age
	for _, f := range textFields(p) {
		if f.value != "" {
			filled++
		}
	}
	return int(math.Round(float64(filled) * 100 / FieldCount))
}

// Band classifies a completion percentage for the progress bar.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

func CompletionBand(pct int) Band {
	switch {
	case pct < 30:
		return BandLow
	case pct < 70:
		return BandMedium
	default:
		return BandHigh
	}
}
