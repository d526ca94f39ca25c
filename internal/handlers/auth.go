package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/session"
)

// TokenInvalidator drops a token from the session cache on logout.
type TokenInvalidator interface {
	Invalidate(token string)
}

// AuthHandler serves login, signup and logout. Credentials are checked by
// the session service; this handler only translates its answers.
type AuthHandler struct {
	sessions session.Service
	cache    TokenInvalidator
	cookie   auth.CookieOptions
	log      logger.Logger
}

func NewAuthHandler(sessions session.Service, cache TokenInvalidator, cookie auth.CookieOptions, log logger.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, cache: cache, cookie: cookie, log: log}
}

// Home sends signed-in users to the dashboard and everyone else to login.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		notFound(w, r, h.log)
		return
	}
	if _, ok := auth.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	data := map[string]any{"Email": r.URL.Query().Get("email")}
	if r.URL.Query().Get("cadastro") == "confirmar" {
		data["Info"] = tr(r, "auth.confirm_email")
	}
	render(w, r, h.log, http.StatusOK, "login.html", data)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	data := map[string]any{"Email": email}

	if email == "" {
		data["Error"] = tr(r, "auth.email_required")
		render(w, r, h.log, http.StatusUnprocessableEntity, "login.html", data)
		return
	}

	sess, err := h.sessions.SignIn(r.Context(), email, password)
	if err != nil {
		status, msg := h.translate(r, err, "auth.login_failed")
		h.log.WithFields(map[string]any{"email": email, "status": status, "error": err.Error()}).Warn("Login failed")
		data["Error"] = msg
		render(w, r, h.log, status, "login.html", data)
		return
	}
	h.start(w, r, sess)
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	render(w, r, h.log, http.StatusOK, "signup.html", map[string]any{"Email": ""})
}

// Signup checks the confirmation and the password length before the
// service is contacted.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	data := map[string]any{"Email": email}

	var problem string
	switch {
	case email == "":
		problem = "auth.email_required"
	case password != confirm:
		problem = "auth.password_mismatch"
	case len([]rune(password)) < session.MinPasswordLength:
		problem = "auth.password_too_short"
	}
	if problem != "" {
		data["Error"] = tr(r, problem)
		render(w, r, h.log, http.StatusUnprocessableEntity, "signup.html", data)
		return
	}

	sess, err := h.sessions.SignUp(r.Context(), email, password)
	if err != nil {
		status, msg := h.translate(r, err, "auth.signup_failed")
		h.log.WithFields(map[string]any{"email": email, "status": status, "error": err.Error()}).Warn("Signup failed")
		data["Error"] = msg
		render(w, r, h.log, status, "signup.html", data)
		return
	}
	h.log.WithField("user_id", sess.User.ID).Info("Account created")
	if sess.AccessToken == "" {
		// The service wants the e-mail confirmed before the first login.
		http.Redirect(w, r, auth.LoginPath+"?cadastro=confirmar&email="+url.QueryEscape(email), http.StatusSeeOther)
		return
	}
	h.start(w, r, sess)
}

// Logout revokes the token, forgets it and clears the cookie. A failing
// service does not keep the user signed in.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := auth.TokenFromRequest(r); token != "" {
		if err := h.sessions.SignOut(r.Context(), token); err != nil {
			h.log.WithField("error", err.Error()).Warn("Sign out failed")
		}
		if h.cache != nil {
			h.cache.Invalidate(token)
		}
	}
	auth.ClearSession(w)
	http.Redirect(w, r, auth.LoginPath, http.StatusSeeOther)
}

func (h *AuthHandler) start(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	auth.SetSessionCookie(w, sess.AccessToken, sess.ExpiresAt, h.cookie)
	h.log.WithField("user_id", sess.User.ID).Info("Signed in")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// translate turns a session service failure into a status and the message
// shown on the form. Two service messages are translated, a configuration
// fault gets the setup instructions, other service messages are shown as
// they are and anything else reads as a connection problem.
func (h *AuthHandler) translate(r *http.Request, err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, config.ErrNotConfigured):
		return http.StatusServiceUnavailable, tr(r, "auth.not_configured")
	case session.IsInvalidCredentials(err):
		return http.StatusUnauthorized, tr(r, "auth.invalid_credentials")
	case session.IsAlreadyRegistered(err):
		return http.StatusConflict, tr(r, "auth.already_registered")
	}
	if msg, ok := session.MessageOf(err); ok {
		var se *session.Error
		if errors.As(err, &se) && se.Status >= 400 && se.Status < 500 {
			return se.Status, msg
		}
		return http.StatusBadGateway, msg
	}
	return http.StatusBadGateway, tr(r, fallback)
}
