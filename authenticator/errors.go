package authenticator

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned when a platform name is not in the
// provider table. This is a caller error and is always surfaced.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// ErrMissingCredentials is returned when the client ID or secret for a
// platform is absent from the environment. This is process misconfiguration,
// not a user error.
var ErrMissingCredentials = errors.New("missing OAuth credentials")

// TokenExchangeError reports a failed authorization-code exchange: either the
// provider rejected the code or the token endpoint could not be reached. The
// description is safe to show to the user; it never contains token material.
type TokenExchangeError struct {
	Platform    Platform
	Description string
	Err         error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange with %s failed: %s", e.Platform, e.Description)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// IdentityError reports a failed userinfo lookup after a successful token
// exchange. Callers surface it distinctly because the access token itself may
// still be usable.
type IdentityError struct {
	Reason string
	Err    error
}

func (e *IdentityError) Error() string {
	return "failed to resolve user identity: " + e.Reason
}

func (e *IdentityError) Unwrap() error {
	return e.Err
}
