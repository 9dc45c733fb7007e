package middleware

import (
	"net/http"
	"strings"

	"gitea.com/go-chi/session"

	"github.com/clipdigest/clipdigest/userctx"
)

// ConnectedAccounts records which platform accounts the session has
// connected, so downstream handlers and the audit log can name the actor
// without ever touching the tokens themselves.
func ConnectedAccounts(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		var accounts []string
		if sess.Get("twitter_token") != nil {
			accounts = append(accounts, "twitter")
		}
		if sess.Get("linkedin_token") != nil {
			accounts = append(accounts, "linkedin")
		}

		ctx := r.Context()
		if len(accounts) > 0 {
			ctx = userctx.SetActor(ctx, strings.Join(accounts, ","))
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
