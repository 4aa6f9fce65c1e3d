package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/scholarmatch/internal/client/profile"
	"github.com/dmitrijs2005/scholarmatch/internal/client/results"
	"github.com/dmitrijs2005/scholarmatch/internal/client/services"
	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up form and creates a local account. The new
// user is logged in immediately. Password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Phone number (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	user, err := a.auth.Register(ctx, services.Registration{
		Email:           email,
		FullName:        fullName,
		PhoneNumber:     phone,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}

	return a.signedIn(ctx, user)
}

// Login prompts for credentials and authenticates against the local users
// directory.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	return a.signedIn(ctx, user)
}

func (a *App) signedIn(ctx context.Context, user *models.User) error {
	a.user = user
	if err := a.notes.Welcome(ctx); err != nil {
		a.log.Warn(ctx, "failed to post welcome notification", "error", err)
	}
	name := user.FullName
	if name == "" {
		name = user.Email
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", name)
	return nil
}

// Logout forgets the current user together with the profile and results.
// The users directory and the notification feed are kept.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}
	a.search.Cancel()
	a.autofill.Stop()
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}

	a.user = nil
	a.setProfile(profile.NewDefault())
	a.search.Restore(nil)
	a.controls = results.DefaultControls()
	a.view = nil
	a.tracker.ResetExpanded()

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Reset deletes every persisted slot after confirmation.
func (a *App) Reset(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes all local data, including accounts. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Reset cancelled.")
		return nil
	}

	a.search.Cancel()
	a.autofill.Stop()
	if err := a.store.ClearAll(ctx); err != nil {
		return err
	}
	if err := errors.Join(a.notes.Reload(ctx), a.tracker.Reload(ctx)); err != nil {
		return err
	}

	a.user = nil
	a.setProfile(profile.NewDefault())
	a.search.Restore(nil)
	a.controls = results.DefaultControls()
	a.view = nil

	fmt.Fprintln(a.out, "All local data removed.")
	return nil
}
