// Package common defines shared constants and sentinel errors used across
// client and server layers of ScholarMatch. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Credential errors, surfaced to the user as inline text.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrMissingCredentials = errors.New("email and password are required")

	// Profile errors.
	ErrIncompleteProfile = errors.New("incomplete profile")

	// Presentation state errors.
	ErrApplyClosed = errors.New("deadline has passed")
	ErrUnknownItem = errors.New("unknown scholarship")

	// Remote collaborator errors.
	ErrLookupFailed    = errors.New("lookup failed")
	ErrPincodeNotFound = errors.New("pincode not found")
	ErrSuperseded      = errors.New("superseded by a newer request")
)
