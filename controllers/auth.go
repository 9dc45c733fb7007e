package controllers

import (
	"errors"
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"

	"github.com/clipdigest/clipdigest/authenticator"
)

// AuthController handles connecting and disconnecting platform accounts
type AuthController struct {
	coordinator *authenticator.Coordinator
}

// NewAuthController creates a new auth controller
func NewAuthController(coordinator *authenticator.Coordinator) *AuthController {
	return &AuthController{coordinator: coordinator}
}

// Login handles GET /auth/{platform}/login and redirects the browser to the
// platform's authorization page.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	platform, err := authenticator.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		http.Error(w, "Unknown platform", http.StatusNotFound)
		return
	}

	authURL, _, err := ac.coordinator.AuthURL(platform, "")
	if err != nil {
		if errors.Is(err, authenticator.ErrMissingCredentials) {
			setFlash(r, "error", "Platform credentials are not configured")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// Callback handles GET /callback for every platform. The state parameter
// identifies which pending authorization the redirect belongs to.
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errCode := query.Get("error"); errCode != "" {
		setFlash(r, "error", "Authorization was denied: "+errCode)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	state := query.Get("state")
	code := query.Get("code")
	if state == "" || code == "" {
		setFlash(r, "error", "Authorization response was incomplete")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	pending, ok := ac.coordinator.TakePendingAuth(state)
	if !ok {
		setFlash(r, "error", "This authorization link expired or was already used. Please connect the account again.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token, err := ac.coordinator.Exchange(r.Context(), pending.Platform, code, pending.Verifier, "")
	if err != nil {
		var exchangeErr *authenticator.TokenExchangeError
		if errors.As(err, &exchangeErr) {
			setFlash(r, "error", "The platform rejected the authorization: "+exchangeErr.Description)
		} else {
			setFlash(r, "error", "Could not complete the authorization. Please try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sess := session.GetSession(r)
	sess.Set(string(pending.Platform)+"_token", token.AccessToken)

	if pending.Platform == authenticator.PlatformLinkedIn {
		personID, err := ac.coordinator.LinkedInUserID(r.Context(), token.AccessToken)
		if err != nil {
			// The token works, posting just needs another connect attempt
			// to pick up the person ID.
			setFlash(r, "error", "Connected, but could not resolve your LinkedIn profile. Posting may fail.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		sess.Set("linkedin_urn", personID)
	}

	setFlash(r, "success", "Connected "+string(pending.Platform)+" account")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /auth/{platform}/logout. The token is revoked at the
// platform on a best effort basis and always dropped from the session.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	platform, err := authenticator.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		http.Error(w, "Unknown platform", http.StatusNotFound)
		return
	}

	sess := session.GetSession(r)
	tokenKey := string(platform) + "_token"

	if token, ok := sess.Get(tokenKey).(string); ok && token != "" {
		ac.coordinator.Revoke(r.Context(), platform, token)
	}

	sess.Delete(tokenKey)
	if platform == authenticator.PlatformLinkedIn {
		sess.Delete("linkedin_urn")
	}

	setFlash(r, "success", "Disconnected "+string(platform)+" account")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
