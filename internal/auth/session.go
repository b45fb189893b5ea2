package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "zoho-auth-session"

var store *sessions.CookieStore

// InitSessionStore initializes the cookie store that carries the OAuth
// state nonce between /zoho/auth and /zoho/callback.
func InitSessionStore(secret []byte) {
	store = sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		// Lax, not Strict: the callback arrives as a top-level redirect
		// from Zoho and must still see the cookie.
		SameSite: http.SameSiteLaxMode,
	}
}

// GetSession retrieves the session.
func GetSession(r *http.Request) *sessions.Session {
	session, _ := store.Get(r, sessionName)
	return session
}
