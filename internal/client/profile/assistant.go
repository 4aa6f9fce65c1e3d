package profile

import "github.com/dmitrijs2005/scholarmatch/internal/models"

// AssistantField is one copyable line of the application assistant.
type AssistantField struct {
	Label string
	Value string
}

// AssistantFields lists the profile values most application forms ask for,
// in the order the assistant shows them.
func AssistantFields(p models.UserProfile) []AssistantField {
	return []AssistantField{
		{"Full Name", p.FullName},
		{"Education", string(p.EducationLevel)},
		{"Field of Study", p.FieldOfStudy},
		{"GPA", p.GPA},
		{"Income", p.IncomeBracket},
		{"Country", p.Country},
		{"State", p.State},
		{"Pincode", p.Pincode},
	}
}
