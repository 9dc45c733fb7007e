// Package publisher posts composed summaries to the connected social
// platforms and maps platform API failures onto a small error taxonomy the
// web layer can act on.
package publisher

import "fmt"

// AuthError means the stored access token was rejected and the account must
// reconnect before posting again.
type AuthError struct {
	Platform string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s rejected the access token, reconnect the account", e.Platform)
}

// RateLimitError means the platform throttled the request. RetryAfter is in
// seconds, taken from the Retry-After header when present.
type RateLimitError struct {
	Platform   string
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limit hit, retry after %d seconds", e.Platform, e.RetryAfter)
}

// APIError covers every other non-success response from a platform API.
type APIError struct {
	Platform   string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s API returned status %d", e.Platform, e.StatusCode)
	}
	return fmt.Sprintf("%s API returned status %d: %s", e.Platform, e.StatusCode, e.Detail)
}

// defaultRetryAfter is used when a 429 arrives without a Retry-After header.
const defaultRetryAfter = 900
