package authenticator

import (
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// Platform identifies a social platform supported for login and posting.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
)

// ParsePlatform validates a platform name from user input (route params, forms).
func ParsePlatform(name string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(name))) {
	case PlatformTwitter:
		return PlatformTwitter, nil
	case PlatformLinkedIn:
		return PlatformLinkedIn, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, name)
	}
}

// ProviderConfig holds the OAuth2 endpoints and behavioral knobs for one
// platform. Client credentials are referenced by environment variable name and
// read at call time, never stored here.
type ProviderConfig struct {
	AuthURL  string
	TokenURL string

	// RevokeURL is empty for platforms without a revocation endpoint
	// (LinkedIn has none).
	RevokeURL string

	// UserInfoURL is the OpenID Connect userinfo endpoint, where the
	// platform exposes one.
	UserInfoURL string

	// Scopes are joined with spaces when transmitted.
	Scopes []string

	ClientIDEnv     string
	ClientSecretEnv string

	// RequirePKCE controls whether code_challenge/code_verifier are sent.
	// Twitter mandates PKCE; LinkedIn requires manual activation for it,
	// so it is left off there.
	RequirePKCE bool

	// AuthStyle selects how client credentials reach the token endpoint:
	// AuthStyleInHeader (HTTP Basic) for Twitter, AuthStyleInParams (form
	// body fields) for LinkedIn. The platforms genuinely diverge here.
	AuthStyle oauth2.AuthStyle
}

// DefaultProviders returns the built-in provider table. Endpoints live in
// config fields rather than constants so tests can point them at local
// servers.
func DefaultProviders() map[Platform]*ProviderConfig {
	return map[Platform]*ProviderConfig{
		PlatformTwitter: {
			AuthURL:         "https://twitter.com/i/oauth2/authorize",
			TokenURL:        "https://api.twitter.com/2/oauth2/token",
			RevokeURL:       "https://api.twitter.com/2/oauth2/revoke",
			Scopes:          []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
			ClientIDEnv:     "TWITTER_CLIENT_ID",
			ClientSecretEnv: "TWITTER_CLIENT_SECRET",
			RequirePKCE:     true,
			AuthStyle:       oauth2.AuthStyleInHeader,
		},
		PlatformLinkedIn: {
			AuthURL:         "https://www.linkedin.com/oauth/v2/authorization",
			TokenURL:        "https://www.linkedin.com/oauth/v2/accessToken",
			UserInfoURL:     "https://api.linkedin.com/v2/userinfo",
			Scopes:          []string{"openid", "profile", "w_member_social"},
			ClientIDEnv:     "LINKEDIN_CLIENT_ID",
			ClientSecretEnv: "LINKEDIN_CLIENT_SECRET",
			AuthStyle:       oauth2.AuthStyleInParams,
		},
	}
}
