// Package auth carries the session cookie and the per-request session value.
// Token verification happens in the session service; this package only moves
// the token between the browser and the request context.
package auth

import (
	"context"
	"net/http"
	"time"
)

// CookieName is the cookie holding the access token.
const CookieName = "sb-access-token"

type ctxKey string

const sessionCtxKey = ctxKey("session")

// Session is the resolved identity of the current request.
type Session struct {
	UserID      string
	Email       string
	AccessToken string
}

// CookieOptions controls how the session cookie is written.
type CookieOptions struct {
	Secure bool
}

// SetSessionCookie stores token until expiresAt. A zero expiresAt yields a
// browser-session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if !expiresAt.IsZero() {
		c.Expires = expiresAt
		c.MaxAge = int(time.Until(expiresAt).Seconds())
		if c.MaxAge <= 0 {
			c.MaxAge = -1
		}
	}
	http.SetCookie(w, c)
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// TokenFromRequest returns the cookie token, or "".
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// HasSessionCookie reports cookie presence only. It says nothing about
// whether the token is valid.
func HasSessionCookie(r *http.Request) bool {
	return TokenFromRequest(r) != ""
}

// WithSession stores s in context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// SessionFromContext extracts the session placed by the session middleware.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	if !ok || s.UserID == "" {
		return Session{}, false
	}
	return s, true
}

// AccessTokenFromContext feeds the REST client so store calls run as the
// signed-in user. It returns "" outside an authenticated request.
func AccessTokenFromContext(ctx context.Context) string {
	s, _ := SessionFromContext(ctx)
	return s.AccessToken
}
