package models

import "time"

// SearchRecord is one entry of the search history shown on the dashboard.
type SearchRecord struct {
	Timestamp      time.Time      `json:"timestamp"`
	FieldOfStudy   string         `json:"fieldOfStudy"`
	EducationLevel EducationLevel `json:"educationLevel"`
	Country        string         `json:"country"`
	ResultCount    int            `json:"resultCount"`
}
