package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
)

// EssentialFields are the JSON names of the fields a profile needs before it
// can be matched, in the order the form lists them.
var EssentialFields = []string{
	"fullName", "educationLevel", "country", "incomeBracket", "gpa", "gender", "fieldOfStudy",
}

func (p UserProfile) essential(name string) string {
	switch name {
	case "fullName":
		return p.FullName
	case "educationLevel":
		return string(p.EducationLevel)
	case "country":
		return p.Country
	case "incomeBracket":
		return p.IncomeBracket
	case "gpa":
		return p.GPA
	case "gender":
		return p.Gender
	case "fieldOfStudy":
		return p.FieldOfStudy
	}
	return ""
}

// Missing returns the essential fields that are blank, in EssentialFields
// order.
func (p UserProfile) Missing() []string {
	var out []string
	for _, name := range EssentialFields {
		if strings.TrimSpace(p.essential(name)) == "" {
			out = append(out, name)
		}
	}
	return out
}

// Validate fails with common.ErrIncompleteProfile when an essential field is
// blank or the education level is unknown. The client form and the gateway
// both run it before matching.
func (p UserProfile) Validate() error {
	if missing := p.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", common.ErrIncompleteProfile, strings.Join(missing, ", "))
	}
	if _, err := ParseEducationLevel(string(p.EducationLevel)); err != nil {
		return err
	}
	return nil
}

// ParseEducationLevel matches s case-insensitively against EducationLevels.
func ParseEducationLevel(s string) (EducationLevel, error) {
	for _, l := range EducationLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown education level %q", common.ErrIncompleteProfile, s)
}
