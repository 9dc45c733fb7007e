package authenticator

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// DefaultRedirectURI is used when neither the caller nor the environment
// supplies a redirect URI.
const DefaultRedirectURI = "http://localhost:8501/"

const (
	stateLength    = 16
	requestTimeout = 30 * time.Second
)

// Token is the provider's token-endpoint response handed back to the caller.
// It is held in the user's session only and must never be persisted or logged.
type Token struct {
	AccessToken  string
	TokenType    string
	RefreshToken string
	Expiry       time.Time
	Scope        string
}

// Valid reports whether the token carries an access token.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != ""
}

// Coordinator drives the OAuth2 authorization-code flow for the supported
// platforms: building authorization URLs with PKCE and anti-CSRF state,
// correlating provider callbacks through the process-wide pending registry,
// exchanging codes for tokens, resolving the LinkedIn member identity, and
// best-effort revocation on logout.
type Coordinator struct {
	providers   map[Platform]*ProviderConfig
	pending     *PendingAuthStore
	redirectURI string
	client      *http.Client
}

// NewCoordinator builds a coordinator over the default provider table.
// defaultRedirectURI is used for attempts that do not specify their own; when
// empty it falls back to DefaultRedirectURI.
func NewCoordinator(defaultRedirectURI string) *Coordinator {
	if defaultRedirectURI == "" {
		defaultRedirectURI = DefaultRedirectURI
	}
	return &Coordinator{
		providers:   DefaultProviders(),
		pending:     NewPendingAuthStore(PendingAuthTTL),
		redirectURI: defaultRedirectURI,
		client:      &http.Client{Timeout: requestTimeout},
	}
}

// AuthURL generates the authorization URL for a new login attempt and
// registers the attempt in the pending registry. It returns the URL to send
// the user to and the state value that the provider will round-trip back on
// the callback.
func (c *Coordinator) AuthURL(platform Platform, redirectURI string) (string, string, error) {
	cfg, ok := c.providers[platform]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}

	clientID := os.Getenv(cfg.ClientIDEnv)
	if clientID == "" {
		return "", "", fmt.Errorf("%w: %s is not set", ErrMissingCredentials, cfg.ClientIDEnv)
	}

	if redirectURI == "" {
		redirectURI = c.redirectURI
	}

	verifier := oauth2.GenerateVerifier()
	state, err := generateState()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}

	c.pending.Put(&PendingAuth{
		State:    state,
		Verifier: verifier,
		Platform: platform,
	})

	conf := c.oauthConfig(cfg, clientID, "", redirectURI)
	var opts []oauth2.AuthCodeOption
	if cfg.RequirePKCE {
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	return conf.AuthCodeURL(state, opts...), state, nil
}

// TakePendingAuth atomically retrieves and removes the login attempt for the
// given callback state. A state is redeemable exactly once; unknown, replayed,
// and expired states return ok=false. This is the expected outcome for a
// forged or stale callback, not an error.
func (c *Coordinator) TakePendingAuth(state string) (*PendingAuth, bool) {
	return c.pending.Take(state)
}

// Exchange trades an authorization code for an access token. The verifier
// must come from the matching pending attempt and redirectURI must equal the
// one used when the attempt began (the provider enforces this). A failed
// exchange does not restore the consumed pending entry; the user restarts
// from AuthURL.
func (c *Coordinator) Exchange(ctx context.Context, platform Platform, code, verifier, redirectURI string) (*Token, error) {
	cfg, ok := c.providers[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, platform)
	}

	clientID := os.Getenv(cfg.ClientIDEnv)
	clientSecret := os.Getenv(cfg.ClientSecretEnv)
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingCredentials, platform)
	}

	if redirectURI == "" {
		redirectURI = c.redirectURI
	}

	conf := c.oauthConfig(cfg, clientID, clientSecret, redirectURI)
	var opts []oauth2.AuthCodeOption
	if cfg.RequirePKCE && verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.client)
	tok, err := conf.Exchange(ctx, code, opts...)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			desc := retrieveErr.ErrorDescription
			if desc == "" {
				desc = strings.TrimSpace(string(retrieveErr.Body))
			}
			return nil, &TokenExchangeError{Platform: platform, Description: desc, Err: err}
		}
		return nil, &TokenExchangeError{Platform: platform, Description: "token endpoint unreachable", Err: err}
	}

	return newToken(tok), nil
}

// LinkedInUserID resolves the authenticated member's OpenID Connect subject
// identifier, which LinkedIn requires to attribute a post.
func (c *Coordinator) LinkedInUserID(ctx context.Context, accessToken string) (string, error) {
	cfg, ok := c.providers[PlatformLinkedIn]
	if !ok || cfg.UserInfoURL == "" {
		return "", &IdentityError{Reason: "no userinfo endpoint configured"}
	}

	ctx = oidc.ClientContext(ctx, c.client)
	provider := (&oidc.ProviderConfig{UserInfoURL: cfg.UserInfoURL}).NewProvider(ctx)

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	info, err := provider.UserInfo(ctx, source)
	if err != nil {
		return "", &IdentityError{Reason: "userinfo request failed", Err: err}
	}
	if info.Subject == "" {
		return "", &IdentityError{Reason: "userinfo response has no sub claim"}
	}
	return info.Subject, nil
}

// Revoke invalidates a token at the provider, where the provider supports it.
// Platforms without a revocation endpoint report success immediately: the
// caller discards its session copy of the token either way. All failure modes
// collapse to false; revocation is best effort and must never block a logout.
func (c *Coordinator) Revoke(ctx context.Context, platform Platform, token string) bool {
	cfg, ok := c.providers[platform]
	if !ok {
		return false
	}
	if cfg.RevokeURL == "" {
		return true
	}

	clientID := os.Getenv(cfg.ClientIDEnv)
	clientSecret := os.Getenv(cfg.ClientSecretEnv)
	if clientID == "" || clientSecret == "" {
		return false
	}

	form := url.Values{}
	form.Set("token", token)
	if cfg.AuthStyle == oauth2.AuthStyleInHeader {
		form.Set("token_type_hint", "access_token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.RevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cfg.AuthStyle == oauth2.AuthStyleInHeader {
		req.SetBasicAuth(clientID, clientSecret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	return resp.StatusCode == http.StatusOK
}

// oauthConfig assembles the x/oauth2 config for one attempt. AuthStyle is set
// explicitly per provider so the library never probes.
func (c *Coordinator) oauthConfig(cfg *ProviderConfig, clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   cfg.AuthURL,
			TokenURL:  cfg.TokenURL,
			AuthStyle: cfg.AuthStyle,
		},
	}
}

// generateState produces the anti-CSRF state parameter: 16 random bytes,
// URL-safe encoded, also used as the pending-registry key.
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func newToken(t *oauth2.Token) *Token {
	tok := &Token{
		AccessToken:  t.AccessToken,
		TokenType:    t.TokenType,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
	}
	if scope, ok := t.Extra("scope").(string); ok {
		tok.Scope = scope
	}
	return tok
}
