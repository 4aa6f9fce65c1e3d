package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/client/postal"
	"github.com/dmitrijs2005/scholarmatch/internal/client/profile"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

const postalTimeout = 10 * time.Second

// clearValue erases a field in the wizard and in "profile set".
const clearValue = "-"

type formField struct {
	key   string
	label string
	get   func(p *models.UserProfile) string
	set   func(p *models.UserProfile, v string) error
}

func text(key, label string, field func(p *models.UserProfile) *string) formField {
	return formField{
		key:   key,
		label: label,
		get:   func(p *models.UserProfile) string { return *field(p) },
		set:   func(p *models.UserProfile, v string) error { *field(p) = v; return nil },
	}
}

// formFields is the profile form in the order the wizard asks for it.
// Pincode precedes state and address so a lookup can prefill them.
var formFields = []formField{
	text("name", "Full name", func(p *models.UserProfile) *string { return &p.FullName }),
	{
		key:   "age",
		label: "Age",
		get:   func(p *models.UserProfile) string { return strconv.Itoa(p.Age) },
		set: func(p *models.UserProfile, v string) error {
			if v == "" {
				p.Age = 0
				return nil
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid age %q", v)
			}
			p.Age = n
			return nil
		},
	},
	text("gender", "Gender", func(p *models.UserProfile) *string { return &p.Gender }),
	{
		key:   "education",
		label: "Education level",
		get:   func(p *models.UserProfile) string { return string(p.EducationLevel) },
		set: func(p *models.UserProfile, v string) error {
			if v == "" {
				p.EducationLevel = ""
				return nil
			}
			l, err := models.ParseEducationLevel(v)
			if err != nil {
				return err
			}
			p.EducationLevel = l
			return nil
		},
	},
	text("year", "Year of study", func(p *models.UserProfile) *string { return &p.YearOfStudy }),
	text("institution", "Institution", func(p *models.UserProfile) *string { return &p.Institution }),
	text("field", "Field of study", func(p *models.UserProfile) *string { return &p.FieldOfStudy }),
	text("gpa", "GPA / percentage", func(p *models.UserProfile) *string { return &p.GPA }),
	text("country", "Country", func(p *models.UserProfile) *string { return &p.Country }),
	text("pincode", "Pincode", func(p *models.UserProfile) *string { return &p.Pincode }),
	text("state", "State", func(p *models.UserProfile) *string { return &p.State }),
	text("address", "Address", func(p *models.UserProfile) *string { return &p.Address }),
	text("caste", "Caste / community", func(p *models.UserProfile) *string { return &p.Caste }),
	text("income", "Annual family income", func(p *models.UserProfile) *string { return &p.IncomeBracket }),
	text("background", "Background", func(p *models.UserProfile) *string { return &p.Background }),
	text("goals", "Career goals", func(p *models.UserProfile) *string { return &p.CareerGoals }),
	{
		key:   "deadline",
		label: "Apply before (YYYY-MM-DD)",
		get:   func(p *models.UserProfile) string { return p.ProfileDeadline },
		set: func(p *models.UserProfile, v string) error {
			if v != "" {
				if _, err := time.Parse(time.DateOnly, v); err != nil {
					return fmt.Errorf("invalid deadline %q: use YYYY-MM-DD", v)
				}
			}
			p.ProfileDeadline = v
			return nil
		},
	},
}

func lookupField(key string) (formField, bool) {
	for _, f := range formFields {
		if f.key == key {
			return f, true
		}
	}
	return formField{}, false
}

// Profile handles "profile", "profile edit" and "profile set <field> <value>".
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		a.showProfile()
		return nil
	}

	switch args[0] {
	case "edit":
		return a.editProfile(ctx)
	case "set":
		if len(args) < 2 {
			return errors.New("usage: profile set <field> <value>")
		}
		return a.setField(ctx, args[1], strings.Join(args[2:], " "))
	default:
		return fmt.Errorf("unknown profile command %q", args[0])
	}
}

func (a *App) showProfile() {
	p := a.currentProfile()
	for _, f := range formFields {
		fmt.Fprintf(a.out, "  %-28s %s\n", f.label+":", f.get(&p))
	}

	pct := profile.Completion(p)
	fmt.Fprintf(a.out, "Completion: %d%% (%s)\n", pct, profile.CompletionBand(pct))
	if missing := p.Missing(); len(missing) > 0 {
		fmt.Fprintf(a.out, "Missing required: %s\n", strings.Join(missing, ", "))
	}
}

func (a *App) setField(ctx context.Context, key, value string) error {
	f, ok := lookupField(key)
	if !ok {
		return fmt.Errorf("unknown profile field %q", key)
	}
	if value == clearValue {
		value = ""
	}

	p := a.currentProfile()
	if err := f.set(&p, strings.TrimSpace(value)); err != nil {
		return err
	}
	if err := a.saveProfile(ctx, p); err != nil {
		return err
	}

	if key == "pincode" || key == "country" {
		a.autofill.PincodeChanged(ctx, p.Country, p.Pincode, func(addr postal.Address, err error) {
			if err != nil {
				return
			}
			a.fillAddress(ctx, p.Pincode, addr)
		})
	}
	return nil
}

// fillAddress applies a lookup result unless the pincode changed meanwhile.
func (a *App) fillAddress(ctx context.Context, pincode string, addr postal.Address) {
	a.mu.Lock()
	if a.profile.Pincode != pincode {
		a.mu.Unlock()
		return
	}
	addr.Apply(&a.profile)
	p := a.profile
	a.mu.Unlock()

	if err := a.store.SaveProfile(ctx, &p); err != nil {
		a.log.Warn(ctx, "failed to save profile", "error", err)
	}
	a.log.Info(ctx, "address filled from pincode", "pincode", pincode)
}

// editProfile walks every field. An empty answer keeps the shown value and
// "-" clears it.
func (a *App) editProfile(ctx context.Context) error {
	p := a.currentProfile()
	fmt.Fprintln(a.out, "Press Enter to keep a value, '-' to clear it.")

	for _, f := range formFields {
		changed, err := a.askField(f, &p)
		if err != nil {
			return err
		}
		if changed && f.key == "pincode" {
			if addr, ok := a.awaitAddress(ctx, p.Country, p.Pincode); ok {
				addr.Apply(&p)
				fmt.Fprintf(a.out, "Found: %s\n", addr.Line())
			}
		}
	}

	if err := a.saveProfile(ctx, p); err != nil {
		return err
	}
	pct := profile.Completion(p)
	fmt.Fprintf(a.out, "Profile saved. Completion: %d%% (%s)\n", pct, profile.CompletionBand(pct))
	return nil
}

// askField prompts until the answer is accepted and reports whether the
// field changed.
func (a *App) askField(f formField, p *models.UserProfile) (bool, error) {
	for {
		answer, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, f.get(p)), a.out)
		if err != nil {
			return false, err
		}
		if answer == "" {
			return false, nil
		}
		if answer == clearValue {
			answer = ""
		}
		if err := f.set(p, answer); err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return true, nil
	}
}

// awaitAddress runs a debounced lookup and waits for its outcome. Failures
// leave the form for manual entry.
func (a *App) awaitAddress(ctx context.Context, country, pincode string) (postal.Address, bool) {
	type outcome struct {
		addr postal.Address
		err  error
	}
	done := make(chan outcome, 1)

	scheduled := a.autofill.PincodeChanged(ctx, country, pincode, func(addr postal.Address, err error) {
		done <- outcome{addr, err}
	})
	if !scheduled {
		return postal.Address{}, false
	}
	fmt.Fprintln(a.out, "Looking up pincode...")

	select {
	case o := <-done:
		if o.err != nil {
			fmt.Fprintln(a.out, "Pincode lookup failed, please enter state and address manually.")
			return postal.Address{}, false
		}
		return o.addr, true
	case <-time.After(a.config.PostalDebounce + postalTimeout):
		a.autofill.Stop()
		return postal.Address{}, false
	case <-ctx.Done():
		a.autofill.Stop()
		return postal.Address{}, false
	}
}

func (a *App) saveProfile(ctx context.Context, p models.UserProfile) error {
	if err := a.store.SaveProfile(ctx, &p); err != nil {
		return err
	}
	a.setProfile(p)
	return nil
}
