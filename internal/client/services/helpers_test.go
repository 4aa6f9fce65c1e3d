package services

import (
	"testing"

	"github.com/dmitrijs2005/scholarmatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/scholarmatch/internal/client/session"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

func newSession(t *testing.T) (*session.Store, *metadata.MemoryRepository) {
	t.Helper()
	repo := metadata.NewMemoryRepository()
	return session.New(repo, logging.Discard()), repo
}

func validProfile() models.UserProfile {
	return models.UserProfile{
		FullName:       "Asha Rao",
		Age:            20,
		Gender:         "Female",
		EducationLevel: models.EducationUndergraduate,
		FieldOfStudy:   "Physics",
		GPA:            "8.9",
		Country:        "India",
		IncomeBracket:  "Below 2.5 Lakh",
	}
}
