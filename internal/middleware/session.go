package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/session"
)

// Resolver turns a token into its user. *session.CachedResolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*session.User, error)
}

func resolve(r *http.Request, res Resolver) (auth.Session, error) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		return auth.Session{}, session.ErrInvalidSession
	}
	u, err := res.Resolve(r.Context(), token)
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{UserID: u.ID, Email: u.Email, AccessToken: token}, nil
}

// RequireSession resolves the cookie token once per request and stores the
// session in the context. Requests without a valid session lose their
// cookie and are sent to the login page.
func RequireSession(res Resolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := resolve(r, res)
			if err != nil {
				if !errors.Is(err, session.ErrInvalidSession) {
					log.WithFields(map[string]any{"path": r.URL.Path, "error": err.Error()}).Warn("Session resolution failed")
				}
				auth.ClearSession(w)
				auth.Unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

// OptionalSession attaches the session when the token is valid and lets the
// request through either way.
func OptionalSession(res Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if s, err := resolve(r, res); err == nil {
				r = r.WithContext(auth.WithSession(r.Context(), s))
			}
			next.ServeHTTP(w, r)
		})
	}
}
