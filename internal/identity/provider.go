// Package identity adapts the hosted identity provider behind a narrow
// capability interface: sign-up, sign-in and profile lookup. All account
// storage, password handling and email verification live in the provider;
// this package only translates calls and failures.
package identity

import (
	"context"
	"errors"
)

// Sentinel errors returned by Provider implementations.
var (
	// ErrInvalidCredentials covers every sign-in rejection that is not a
	// pending email verification, so provider-internal detail never
	// reaches the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotConfirmed is returned when the provider rejects a sign-in
	// because the account's email address has not been verified yet.
	ErrEmailNotConfirmed = errors.New("email address not confirmed")

	// ErrSignupFailed is returned when the provider rejects a registration.
	ErrSignupFailed = errors.New("signup rejected by identity provider")

	// ErrLookupFailed is returned when a profile lookup cannot be served.
	ErrLookupFailed = errors.New("profile lookup failed")
)

// Provider is the capability interface over the external identity provider.
type Provider interface {
	// SignUp registers a new account. When the provider withholds a
	// session pending email verification, the result has Pending set and
	// the caller must not be handed a token.
	SignUp(ctx context.Context, email, password, displayName string) (*SignupResult, error)

	// SignIn exchanges credentials for the account's Principal.
	SignIn(ctx context.Context, email, password string) (*Principal, error)

	// GetProfile fetches the stored profile for a subject id.
	GetProfile(ctx context.Context, subjectID string) (*Profile, error)
}
