// Package services contains the application services of the terminal client:
// the local users directory, notifications and search orchestration.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/scholarmatch/internal/client/session"
	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"github.com/dmitrijs2005/scholarmatch/internal/cryptox"
	"github.com/dmitrijs2005/scholarmatch/internal/logging"
	"github.com/dmitrijs2005/scholarmatch/internal/models"
)

// AccountStore is the persistence the auth service needs.
type AccountStore interface {
	Load(ctx context.Context) (session.State, error)
	LoadAccounts(ctx context.Context) ([]models.Account, error)
	SaveAccounts(ctx context.Context, a []models.Account) error
	SaveUser(ctx context.Context, u *models.User) error
	ClearAccount(ctx context.Context) error
}

// Registration is the sign-up form.
type Registration struct {
	Email           string
	FullName        string
	PhoneNumber     string
	Password        []byte
	ConfirmPassword []byte
}

// AuthService manages the local users directory and the current user.
//
// Contract:
//   - Register: add a new account and log it in; the email must be unused.
//   - Login: verify the password against the stored salted hash.
//   - Logout: drop the current user, profile and results.
//   - Current: the logged-in user, or nil.
//
// Returned users never carry credentials.
type AuthService interface {
	Register(ctx context.Context, r Registration) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
}

type authService struct {
	store AccountStore
	log   logging.Logger
}

func NewAuthService(store AccountStore, log logging.Logger) AuthService {
	return &authService{store: store, log: log.With("module", "auth")}
}

func (a *authService) Register(ctx context.Context, r Registration) (*models.User, error) {
	email := strings.TrimSpace(r.Email)
	if email == "" || len(r.Password) == 0 {
		return nil, common.ErrMissingCredentials
	}
	if string(r.Password) != string(r.ConfirmPassword) {
		return nil, common.ErrPasswordMismatch
	}

	accounts, err := a.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		if acc.User.Email == email {
			return nil, common.ErrUserAlreadyExists
		}
	}

	hash, salt := cryptox.HashPassword(r.Password)
	user := models.User{
		ID:          uuid.NewString(),
		Email:       email,
		FullName:    strings.TrimSpace(r.FullName),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
	}
	accounts = append(accounts, models.Account{User: user, Salt: salt, PasswordHash: hash})
	if err := a.store.SaveAccounts(ctx, accounts); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	if err := a.store.SaveUser(ctx, &user); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "registered", "user_id", user.ID)
	return &user, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	accounts, err := a.store.LoadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	for _, acc := range accounts {
		if acc.User.Email != email {
			continue
		}
		if !cryptox.VerifyPassword(password, acc.Salt, acc.PasswordHash) {
			break
		}
		user := acc.User
		if err := a.store.SaveUser(ctx, &user); err != nil {
			return nil, err
		}
		a.log.Info(ctx, "logged in", "user_id", user.ID)
		return &user, nil
	}

	a.log.Warn(ctx, "login rejected")
	return nil, common.ErrInvalidCredentials
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.ClearAccount(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.User, error) {
	st, err := a.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return st.CurrentUser, nil
}
