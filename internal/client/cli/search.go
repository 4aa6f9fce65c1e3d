package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/scholarmatch/internal/client/profile"
	"github.com/dmitrijs2005/scholarmatch/internal/client/results"
	"github.com/dmitrijs2005/scholarmatch/internal/client/tracking"
	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// Search submits the current profile and shows the new results.
func (a *App) Search(ctx context.Context) error {
	p := a.currentProfile()
	if err := p.Validate(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Finding scholarships for your profile...")
	found, err := a.search.Submit(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrSuperseded) {
			return nil
		}
		return err
	}

	a.controls = results.DefaultControls()
	if len(found) == 0 {
		a.view = nil
		fmt.Fprintln(a.out, "No scholarships found. Try widening your profile and search again.")
		return nil
	}
	fmt.Fprintf(a.out, "Found %d scholarships.\n", len(found))
	return a.List(ctx, nil)
}

// List applies list-control arguments and prints the derived list.
//
//	category=<All|Government|Private>  sort=<Match|DeadlineAsc|DeadlineDesc>
//	community=<on|off>  q=<text>  reset
func (a *App) List(_ context.Context, args []string) error {
	c, err := applyControls(a.controls, args)
	if err != nil {
		return err
	}
	a.controls = c

	all := a.search.Results()
	if len(all) == 0 {
		a.view = nil
		fmt.Fprintln(a.out, "No results yet. Fill your profile and run 'search'.")
		return nil
	}

	a.tracker.ResetExpanded()
	a.view = results.Derive(all, c)

	fmt.Fprintf(a.out, "Showing %d of %d (category=%s sort=%s community=%t q=%q)\n",
		len(a.view), len(all), c.Category, c.SortKey, c.CommunityOnly, c.SearchText)
	for i, m := range a.view {
		a.printRow(i+1, a.tracker.View(m, a.config.ReferenceDate))
	}
	return nil
}

func applyControls(c results.Controls, args []string) (results.Controls, error) {
	for _, arg := range args {
		if arg == "reset" {
			c = results.DefaultControls()
			continue
		}
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return c, fmt.Errorf("invalid list option %q, expected key=value", arg)
		}
		switch key {
		case "category":
			switch {
			case strings.EqualFold(value, results.CategoryAll):
				c.Category = results.CategoryAll
			case strings.EqualFold(value, string(models.CategoryGovernment)):
				c.Category = string(models.CategoryGovernment)
			case strings.EqualFold(value, string(models.CategoryPrivate)):
				c.Category = string(models.CategoryPrivate)
			default:
				return c, fmt.Errorf("unknown category %q", value)
			}
		case "sort":
			k, ok := results.ParseSortKey(value)
			if !ok {
				return c, fmt.Errorf("unknown sort key %q", value)
			}
			c.SortKey = k
		case "community":
			switch strings.ToLower(value) {
			case "on", "true", "yes":
				c.CommunityOnly = true
			case "off", "false", "no":
				c.CommunityOnly = false
			default:
				return c, fmt.Errorf("invalid community value %q", value)
			}
		case "q":
			c.SearchText = value
		default:
			return c, fmt.Errorf("unknown list option %q", key)
		}
	}
	return c, nil
}

func (a *App) printRow(n int, v tracking.ItemView) {
	s := v.Match.Scholarship
	var flags []string
	if v.IsApplied {
		flags = append(flags, "applied")
	}
	if v.IsSaved {
		flags = append(flags, "saved")
	}
	if v.PastDeadline {
		flags = append(flags, "closed")
	}
	if results.IsCommunityTargeted(s) {
		flags = append(flags, s.TargetCommunity)
	}

	amount := s.Amount
	if v.ShowLocalAmount {
		amount = fmt.Sprintf("%s (%s)", s.Amount, v.Match.Match.LocalCurrencyAmount)
	}

	fmt.Fprintf(a.out, "%2d. [%3d%% %s] %s - %s\n", n, v.Match.Match.MatchScore, v.Quality, s.Title, s.Provider)
	fmt.Fprintf(a.out, "    %s | due %s | %s/%s", amount, s.Deadline, s.Category, s.Scope)
	if len(flags) > 0 {
		fmt.Fprintf(a.out, " | %s", strings.Join(flags, ", "))
	}
	fmt.Fprintln(a.out)
}

// resolve finds an item by list position or scholarship id.
func (a *App) resolve(args []string) (models.ScholarshipMatch, error) {
	if len(args) == 0 {
		return models.ScholarshipMatch{}, errors.New("usage: <command> <number|id>")
	}
	ref := args[0]
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(a.view) {
		return a.view[n-1], nil
	}
	for _, m := range a.search.Results() {
		if m.Scholarship.ID == ref {
			return m, nil
		}
	}
	return models.ScholarshipMatch{}, fmt.Errorf("%w: %s", common.ErrUnknownItem, ref)
}

// Show toggles the details of one item.
func (a *App) Show(_ context.Context, args []string) error {
	m, err := a.resolve(args)
	if err != nil {
		return err
	}
	if !a.tracker.ToggleExpanded(m.Scholarship.ID) {
		fmt.Fprintf(a.out, "%s collapsed.\n", m.Scholarship.Title)
		return nil
	}

	v := a.tracker.View(m, a.config.ReferenceDate)
	s := m.Scholarship
	a.printRow(0, v)
	fmt.Fprintf(a.out, "  Why it matches: %s\n", m.Match.Reasoning)
	fmt.Fprintf(a.out, "  Eligibility:    %s\n", s.EligibilityCriteria)
	fmt.Fprintf(a.out, "  About:          %s\n", s.Description)
	if s.Link != "" {
		fmt.Fprintf(a.out, "  Apply at:       %s\n", s.Link)
	}
	if !v.ApplyEnabled {
		fmt.Fprintln(a.out, "  Applications are closed for this scholarship.")
	}
	return nil
}

// Apply marks an item as applied and prints the application assistant.
func (a *App) Apply(ctx context.Context, args []string) error {
	m, err := a.resolve(args)
	if err != nil {
		return err
	}
	if err := a.tracker.Apply(ctx, m, a.config.ReferenceDate); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Marked %q as applied.\n", m.Scholarship.Title)
	if m.Scholarship.Link != "" {
		fmt.Fprintf(a.out, "Open %s to complete the application.\n", m.Scholarship.Link)
	}
	return a.Assistant(ctx)
}

// Save toggles the saved flag of an item.
func (a *App) Save(ctx context.Context, args []string) error {
	m, err := a.resolve(args)
	if err != nil {
		return err
	}
	saved, err := a.tracker.ToggleSaved(ctx, m.Scholarship.ID)
	if err != nil {
		return err
	}
	if saved {
		fmt.Fprintf(a.out, "Saved %q.\n", m.Scholarship.Title)
	} else {
		fmt.Fprintf(a.out, "Removed %q from saved.\n", m.Scholarship.Title)
	}
	return nil
}

// Saved lists the saved items of the current result set.
func (a *App) Saved(context.Context) error {
	var n int
	for _, m := range a.search.Results() {
		if !a.tracker.IsSaved(m.Scholarship.ID) {
			continue
		}
		n++
		a.printRow(n, a.tracker.View(m, a.config.ReferenceDate))
	}
	if n == 0 {
		fmt.Fprintln(a.out, "Nothing saved yet.")
	}
	return nil
}

// Stats prints the dashboard aggregates over all results.
func (a *App) Stats(context.Context) error {
	st := results.ComputeStats(a.search.Results())
	symbol := profile.CurrencySymbol(a.currentProfile().Country)

	fmt.Fprintf(a.out, "Total matches:     %d\n", st.Total)
	fmt.Fprintf(a.out, "Average amount:    %s%d\n", symbol, st.AvgAmount)
	fmt.Fprintf(a.out, "Earliest deadline: %s\n", st.EarliestDeadline)
	fmt.Fprintf(a.out, "Rolling deadlines: %d\n", st.RollingCount)
	if len(st.Topics) > 0 {
		fmt.Fprintln(a.out, "Topics:")
		for _, c := range st.Topics {
			fmt.Fprintf(a.out, "  %-14s %d\n", c.Name, c.Value)
		}
	}
	if len(st.Categories) > 0 {
		fmt.Fprintln(a.out, "Categories:")
		for _, c := range st.Categories {
			fmt.Fprintf(a.out, "  %-14s %d\n", c.Name, c.Value)
		}
	}
	return nil
}

// History lists past searches, newest first.
func (a *App) History(ctx context.Context) error {
	h, err := a.search.History(ctx)
	if err != nil {
		return err
	}
	if len(h) == 0 {
		fmt.Fprintln(a.out, "No searches yet.")
		return nil
	}
	for _, r := range h {
		fmt.Fprintf(a.out, "%s  %s, %s, %s: %d results\n",
			r.Timestamp.Format("Jan 2, 2006 15:04"), r.FieldOfStudy, r.EducationLevel, r.Country, r.ResultCount)
	}
	return nil
}

// Notifications prints the feed; "notifications read" marks it read.
func (a *App) Notifications(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "read" {
		if err := a.notes.MarkAllRead(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "All notifications marked as read.")
		return nil
	}

	list := a.notes.List()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}
	for _, n := range list {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s [%s] %s: %s (%s)\n", mark, n.Type, n.Title, n.Message, n.Timestamp.Format("Jan 2 15:04"))
	}
	return nil
}

// Assistant prints the profile values most application forms ask for.
func (a *App) Assistant(context.Context) error {
	fmt.Fprintln(a.out, "Application assistant:")
	for _, f := range profile.AssistantFields(a.currentProfile()) {
		value := f.Value
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(a.out, "  %-15s %s\n", f.Label+":", value)
	}
	return nil
}
