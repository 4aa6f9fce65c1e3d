package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/scholarmatch/internal/catalog"
	"github.com/dmitrijs2005/scholarmatch/internal/client/config"
	"github.com/dmitrijs2005/scholarmatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/matching"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

var refDate = time.Date(2026, time.February, 24, 0, 0, 0, 0, time.UTC)

func testConfig(postalURL string) *config.Config {
	return &config.Config{
		PostalBaseURL:  postalURL,
		PostalDebounce: 10 * time.Millisecond,
		ReferenceDate:  refDate,
	}
}

func newTestApp(t *testing.T, cfg *config.Config, repo metadata.Repository) (*App, *bytes.Buffer) {
	t.Helper()
	if cfg == nil {
		cfg = testConfig("http://127.0.0.1:1")
	}
	if repo == nil {
		repo = metadata.NewMemoryRepository()
	}
	finder := matching.NewCatalogMatcher(catalog.Static(catalog.Bundled()))
	a, err := newApp(context.Background(), cfg, logging.Discard(), repo, finder)
	require.NoError(t, err)

	var out bytes.Buffer
	a.out = &out
	a.reader = bufio.NewReader(strings.NewReader(""))
	t.Cleanup(a.Close)
	return a, &out
}

// feed replaces the app input with the given lines.
func feed(a *App, lines ...string) {
	a.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(*bufio.Reader, string, io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return nil, io.EOF
		}
		pw := []byte(pws[0])
		pws = pws[1:]
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func register(t *testing.T, a *App, email string) {
	t.Helper()
	feed(a, email, "Asha Rao", "")
	stubPasswords(t, "pw", "pw")
	require.NoError(t, a.Register(context.Background()))
}

func fillEssentials(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()
	for _, kv := range [][2]string{
		{"name", "Asha Rao"},
		{"field", "Computer Science"},
		{"gpa", "8.9"},
		{"income", "Below 2.5 Lakh"},
		{"country", "Canada"},
	} {
		require.NoError(t, a.setField(ctx, kv[0], kv[1]))
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, nil, nil)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "(guest)", a.getStatus())

	register(t, a, "asha@example.com")
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, Asha Rao!")
	assert.Equal(t, "(asha@example.com, 1 unread)", a.getStatus())

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())

	feed(a, "asha@example.com")
	stubPasswords(t, "wrong")
	assert.ErrorIs(t, a.Login(ctx), common.ErrInvalidCredentials)

	feed(a, "asha@example.com")
	stubPasswords(t, "pw")
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "asha@example.com", a.user.Email)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)

	feed(a, "asha@example.com", "Asha", "")
	stubPasswords(t, "pw", "other")

	assert.ErrorIs(t, a.Register(context.Background()), common.ErrPasswordMismatch)
	assert.False(t, a.isLoggedIn())
}

func TestSessionIsRestored(t *testing.T) {
	repo := metadata.NewMemoryRepository()
	a, _ := newTestApp(t, nil, repo)
	register(t, a, "asha@example.com")
	fillEssentials(t, a)
	require.NoError(t, a.Search(context.Background()))

	b, _ := newTestApp(t, nil, repo)
	assert.True(t, b.isLoggedIn())
	assert.Equal(t, "Computer Science", b.currentProfile().FieldOfStudy)
	assert.Len(t, b.search.Results(), len(catalog.Bundled()))
}

func TestProfileSetAndShow(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, nil, nil)

	require.NoError(t, a.Profile(ctx, []string{"set", "name", "Asha", "Rao"}))
	require.NoError(t, a.Profile(ctx, []string{"set", "age", "22"}))
	require.NoError(t, a.Profile(ctx, []string{"set", "education", "postgraduate"}))

	p := a.currentProfile()
	assert.Equal(t, "Asha Rao", p.FullName)
	assert.Equal(t, 22, p.Age)
	assert.Equal(t, models.EducationPostgraduate, p.EducationLevel)

	require.NoError(t, a.Profile(ctx, []string{"set", "name", "-"}))
	assert.Empty(t, a.currentProfile().FullName)

	assert.Error(t, a.Profile(ctx, []string{"set", "age", "old"}))
	assert.Error(t, a.Profile(ctx, []string{"set", "deadline", "next week"}))
	assert.Error(t, a.Profile(ctx, []string{"set", "nickname", "x"}))
	assert.Error(t, a.Profile(ctx, []string{"set"}))

	out.Reset()
	require.NoError(t, a.Profile(ctx, nil))
	assert.Contains(t, out.String(), "Completion:")
	assert.Contains(t, out.String(), "Missing required: fullName")

	st, err := a.store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, st.Profile)
	assert.Equal(t, 22, st.Profile.Age)
}

func TestSearch_IncompleteProfile(t *testing.T) {
	a, _ := newTestApp(t, nil, nil)
	register(t, a, "asha@example.com")

	assert.ErrorIs(t, a.Search(context.Background()), common.ErrIncompleteProfile)
	assert.Empty(t, a.search.Results())
}

func TestSearchAndList(t *testing.T) {
	ctx := context.Background()
	a, out := newTestApp(t, nil, nil)
	register(t, a, "asha@example.com")
	fillEssentials(t, a)

	require.NoError(t, a.Search(ctx))
	assert.Contains(t, out.String(), "Found 12 scholarships.")
	require.Len(t, a.view, 12)
	for i := 1; i < len(a.view); i++ {
		assert.GreaterOrEqual(t, a.view[i-1].Match.MatchScore, a.view[i].Match.MatchScore)
	}

	require.NoError(t, a.List(ctx, []string{"category=government"}))
	require.NotEmpty(t, a.view)
	for _, m := range a.view {
		assert.Equal(t, models.CategoryGovernment, m.Scholarship.Category)
	}
	assert.Equal(t, string(models.CategoryGovernment), a.controls.Category)

	require.NoError(t, a.List(ctx, []string{"reset"}))
	assert.Len(t, a.view, 12)

	assert.Error(t, a.List(ctx, []string{"sort=random"}))
	assert.Error(t, a.List(ctx, []string{"category"}))
	assert.Error(t, a.List(ctx, []string{"community=maybe"}))

	h, err := a.search.History(ctx)
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, 12, h[0].ResultCount)
	assert.Equal(t, 2, a.notes.UnreadCount())
}

func seeded(t *testing.T) *App {
	t.Helper()
	a, _ := newTestApp(t, nil, nil)
	register(t, a, "asha@example.com")
	a.search.Restore([]models.ScholarshipMatch{
		{
			Scholarship: models.Scholarship{ID: "open", Title: "Open Grant", Deadline: "2026-12-31", Amount: "$1,000",
				Category: models.CategoryPrivate, Link: "https://example.com/open"},
			Match: models.MatchResult{ScholarshipID: "open", MatchScore: 90, Reasoning: "Strong fit"},
		},
		{
			Scholarship: models.Scholarship{ID: "closed", Title: "Closed Grant", Deadline: "2025-01-01", Amount: "$3,000",
				Category: models.CategoryGovernment},
			Match: models.MatchResult{ScholarshipID: "closed", MatchScore: 60},
		},
	})
	require.NoError(t, a.List(context.Background(), nil))
	return a
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)

	assert.ErrorIs(t, a.Apply(ctx, []string{"2"}), common.ErrApplyClosed)
	assert.False(t, a.tracker.IsApplied("closed"))

	require.NoError(t, a.Apply(ctx, []string{"open"}))
	assert.True(t, a.tracker.IsApplied("open"))

	applied, err := a.store.LoadApplied(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"open"}, applied)

	assert.ErrorIs(t, a.Apply(ctx, []string{"9"}), common.ErrUnknownItem)
	assert.Error(t, a.Apply(ctx, nil))
}

func TestSaveAndSaved(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)
	out := a.out.(*bytes.Buffer)

	require.NoError(t, a.Save(ctx, []string{"1"}))
	assert.True(t, a.tracker.IsSaved("open"))

	out.Reset()
	require.NoError(t, a.Saved(ctx))
	assert.Contains(t, out.String(), "Open Grant")
	assert.NotContains(t, out.String(), "Closed Grant")

	require.NoError(t, a.Save(ctx, []string{"1"}))
	assert.False(t, a.tracker.IsSaved("open"))

	out.Reset()
	require.NoError(t, a.Saved(ctx))
	assert.Contains(t, out.String(), "Nothing saved yet.")
}

func TestShowTogglesDetails(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)
	out := a.out.(*bytes.Buffer)

	out.Reset()
	require.NoError(t, a.Show(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "Why it matches: Strong fit")
	assert.Contains(t, out.String(), "https://example.com/open")

	out.Reset()
	require.NoError(t, a.Show(ctx, []string{"1"}))
	assert.Contains(t, out.String(), "Open Grant collapsed.")

	out.Reset()
	require.NoError(t, a.Show(ctx, []string{"closed"}))
	assert.Contains(t, out.String(), "Applications are closed")

	// listing again collapses every card
	require.NoError(t, a.List(ctx, nil))
	assert.False(t, a.tracker.View(a.view[1], refDate).IsExpanded)
}

func TestStatsAndAssistant(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)
	out := a.out.(*bytes.Buffer)

	out.Reset()
	require.NoError(t, a.Stats(ctx))
	s := out.String()
	assert.Contains(t, s, "Total matches:     2")
	assert.Contains(t, s, "Average amount:    ₹2000")
	assert.Contains(t, s, "Earliest deadline: Jan 1, 2025")

	out.Reset()
	require.NoError(t, a.Assistant(ctx))
	assert.Contains(t, out.String(), "Country:")
	assert.Contains(t, out.String(), "India")
	assert.Contains(t, out.String(), "(not set)")
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)
	out := a.out.(*bytes.Buffer)

	out.Reset()
	require.NoError(t, a.Notifications(ctx, nil))
	assert.Contains(t, out.String(), "* [")

	require.NoError(t, a.Notifications(ctx, []string{"read"}))
	assert.Zero(t, a.notes.UnreadCount())
	assert.Equal(t, "(asha@example.com)", a.getStatus())
}

func TestLogoutKeepsDirectoryAndFeed(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)
	require.NoError(t, a.setField(ctx, "field", "Physics"))

	require.NoError(t, a.Logout(ctx))
	assert.Empty(t, a.search.Results())
	assert.Empty(t, a.currentProfile().FieldOfStudy)
	assert.NotEmpty(t, a.notes.List())

	st, err := a.store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st.CurrentUser)
	assert.Nil(t, st.Profile)

	accounts, err := a.store.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)

	assert.ErrorIs(t, a.Logout(ctx), common.ErrNotLoggedIn)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	a := seeded(t)
	require.NoError(t, a.Save(ctx, []string{"1"}))

	feed(a, "no")
	require.NoError(t, a.Reset(ctx))
	assert.True(t, a.isLoggedIn())

	feed(a, "yes")
	require.NoError(t, a.Reset(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.search.Results())
	assert.Empty(t, a.notes.List())
	assert.False(t, a.tracker.IsSaved("open"))

	accounts, err := a.store.LoadAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestEditProfile_PincodeAutofill(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pincode/110001" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`[{"Status":"Success","PostOffice":[{"Name":"Connaught Place","District":"New Delhi","State":"Delhi"}]}]`))
	}))
	t.Cleanup(srv.Close)

	a, out := newTestApp(t, testConfig(srv.URL), nil)
	feed(a,
		"Asha Rao", // name
		"abc",      // age, rejected
		"21",       // age
		"", "", "", // gender, education, year
		"IIT Delhi",
		"Physics",
		"9.1",
		"",       // country stays India
		"110001", // pincode
		"", "",   // state and address keep the looked-up values
		"", "Below 2.5 Lakh", "", "", "",
	)

	require.NoError(t, a.Profile(context.Background(), []string{"edit"}))

	p := a.currentProfile()
	assert.Equal(t, 21, p.Age)
	assert.Equal(t, "Delhi", p.State)
	assert.Equal(t, "Connaught Place, New Delhi, Delhi", p.Address)
	assert.Equal(t, "Below 2.5 Lakh", p.IncomeBracket)
	assert.Contains(t, out.String(), "Found: Connaught Place, New Delhi, Delhi")
	assert.Contains(t, out.String(), "invalid age")
}

func TestEditProfile_LookupFailureFallsBackToManualEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Status":"Error","PostOffice":null}]`))
	}))
	t.Cleanup(srv.Close)

	a, out := newTestApp(t, testConfig(srv.URL), nil)
	feed(a, "", "", "", "", "", "", "", "", "", "999999", "Kerala", "", "", "", "", "", "")

	require.NoError(t, a.Profile(context.Background(), []string{"edit"}))
	assert.Equal(t, "Kerala", a.currentProfile().State)
	assert.Contains(t, out.String(), "Pincode lookup failed")
}
