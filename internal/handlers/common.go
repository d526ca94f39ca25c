// Package handlers implements the HTTP pages of the application. Every
// handler under /dashboard expects the session placed in the context by the
// session middleware.
package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/i18n"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/store"
	"github.com/diewo77/go-photodesk/validation"
	"github.com/diewo77/go-photodesk/view"
)

func tr(r *http.Request, code string) string {
	return i18n.T(i18n.LangFromContext(r.Context()), code)
}

// currentSession answers 401 (or redirects to login) when the request
// carries no session.
func currentSession(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	s, ok := auth.SessionFromContext(r.Context())
	if !ok {
		auth.Unauthorized(w, r)
	}
	return s, ok
}

// render writes a page, falling back to a plain 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, name string, data map[string]any) {
	if err := view.RenderStatus(w, r, status, name, data); err != nil {
		log.WithFields(map[string]any{"template": name, "error": err.Error()}).Error("Render failed")
		http.Error(w, tr(r, "error.internal"), http.StatusInternalServerError)
	}
}

// renderError shows the error page, or a JSON error body to API clients.
func renderError(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, code string) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, code, nil)
		return
	}
	render(w, r, log, status, "error.html", map[string]any{
		"Status":  status,
		"Message": tr(r, code),
	})
}

func notFound(w http.ResponseWriter, r *http.Request, log logger.Logger) {
	renderError(w, r, log, http.StatusNotFound, "error.not_found")
}

// storeMessage is what the page shows for a failed store call: the setup
// instructions for a configuration fault, the backend's own message when
// there is one, fallback otherwise.
func storeMessage(r *http.Request, err error, fallback string) string {
	if errors.Is(err, config.ErrNotConfigured) {
		return tr(r, "auth.not_configured")
	}
	return store.MessageOf(err, tr(r, fallback))
}

// storeStatus maps a failed store call to a response status.
func storeStatus(err error) int {
	switch {
	case errors.Is(err, config.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// formFailed answers a form that did not validate. HTML clients get the form
// back with the violations, API clients a 422 with the violation codes.
func formFailed(w http.ResponseWriter, r *http.Request, log logger.Logger, name string, data map[string]any, v validation.Violations) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}
	data["Errors"] = v
	render(w, r, log, http.StatusUnprocessableEntity, name, data)
}

// saveFailed answers a form whose write was rejected by the store.
func saveFailed(w http.ResponseWriter, r *http.Request, log logger.Logger, name string, data map[string]any, err error) {
	status := storeStatus(err)
	msg := storeMessage(r, err, "form.save_failed")
	log.WithFields(map[string]any{"path": r.URL.Path, "error": err.Error()}).Error("Save failed")
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, msg, nil)
		return
	}
	data["Error"] = msg
	render(w, r, log, status, name, data)
}

// saved redirects HTML clients to location and answers API clients with
// the written row.
func saved(w http.ResponseWriter, r *http.Request, status int, location string, row any) {
	if httpx.WantsJSON(r) {
		httpx.JSON(w, status, row)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// lookupFailed answers a failed single-row read.
func lookupFailed(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if errors.Is(err, store.ErrNotFound) {
		notFound(w, r, log)
		return
	}
	log.WithFields(map[string]any{"path": r.URL.Path, "error": err.Error()}).Error("Lookup failed")
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, storeStatus(err), storeMessage(r, err, "list.load_failed"), nil)
		return
	}
	render(w, r, log, storeStatus(err), "error.html", map[string]any{
		"Status":  storeStatus(err),
		"Message": storeMessage(r, err, "list.load_failed"),
	})
}

// formValues returns the posted fields. An unparsable body reads as empty.
func formValues(r *http.Request) url.Values {
	if err := r.ParseForm(); err != nil {
		return url.Values{}
	}
	return r.PostForm
}
