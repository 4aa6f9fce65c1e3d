package models

// EducationLevel is the academic stage of the applicant.
type EducationLevel string

const (
	EducationHighSchool    EducationLevel = "High School"
	EducationUndergraduate EducationLevel = "Undergraduate"
	EducationPostgraduate  EducationLevel = "Postgraduate"
	EducationDoctorate     EducationLevel = "Doctorate"
)

// EducationLevels lists the accepted levels in form order.
var EducationLevels = []EducationLevel{
	EducationHighSchool,
	EducationUndergraduate,
	EducationPostgraduate,
	EducationDoctorate,
}

// UserProfile is the intake form submitted for matching. There is one active
// profile per client install; it is not keyed by user.
type UserProfile struct {
	FullName        string         `json:"fullName"`
	Age             int            `json:"age"`
	Gender          string         `json:"gender"`
	EducationLevel  EducationLevel `json:"educationLevel"`
	YearOfStudy     string         `json:"yearOfStudy"`
	Institution     string         `json:"institution"`
	FieldOfStudy    string         `json:"fieldOfStudy"`
	GPA             string         `json:"gpa"`
	Country         string         `json:"country"`
	State           string         `json:"state"`
	Pincode         string         `json:"pincode"`
	Address         string         `json:"address"`
	Caste           string         `json:"caste"`
	IncomeBracket   string         `json:"incomeBracket"`
	Background      string         `json:"background"`
	CareerGoals     string         `json:"careerGoals"`
	ProfileDeadline string         `json:"profileDeadline,omitempty"`
}
