package auth

import (
	"net/http"
	"path"
	"strings"
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Decision is the outcome of the route guard.
type Decision int

const (
	Pass Decision = iota
	RedirectLogin
)

func (d Decision) String() string {
	if d == RedirectLogin {
		return "redirect " + LoginPath
	}
	return "pass"
}

// PublicPrefixes are reachable without a session. Matching is a plain string
// prefix, so "/portfolio" also opens "/portfolios".
var PublicPrefixes = []string{"/login", "/cadastro", "/portfolio"}

// Decide lets public paths through without looking at the cookie. Anything
// else needs the session cookie to be present.
func Decide(p string, hasCookie bool) Decision {
	if p == "/" {
		return Pass
	}
	for _, prefix := range PublicPrefixes {
		if strings.HasPrefix(p, prefix) {
			return Pass
		}
	}
	if hasCookie {
		return Pass
	}
	return RedirectLogin
}

var assetExts = map[string]bool{
	".svg": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".webp": true, ".ico": true, ".css": true, ".js": true,
}

// skipGuard matches requests the guard never inspects.
func skipGuard(p string) bool {
	if p == "/healthz" || strings.HasPrefix(p, "/static/") {
		return true
	}
	return assetExts[strings.ToLower(path.Ext(p))]
}

// Guard redirects protected requests without a session cookie to the login
// page. JSON clients get 401 instead.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skipGuard(r.URL.Path) || Decide(r.URL.Path, HasSessionCookie(r)) == Pass {
			next.ServeHTTP(w, r)
			return
		}
		Unauthorized(w, r)
	})
}

// Unauthorized redirects to /login (HTML) or returns 401 JSON.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}
