package main

import (
	"context"
	"net/http"
	"time"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/httpx"
	"github.com/diewo77/go-photodesk/internal/backend"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/handlers"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/middleware"
	"github.com/diewo77/go-photodesk/internal/repository"
	"github.com/diewo77/go-photodesk/internal/services"
	"github.com/diewo77/go-photodesk/internal/session"
	"github.com/diewo77/go-photodesk/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	handler  http.Handler
	backend  *backend.Backend
	sessions *session.CachedResolver
	log      logger.Logger

	auth      *handlers.AuthHandler
	dashboard *handlers.DashboardHandler
	clients   *handlers.ClientHandler
	quotes    *handlers.QuoteHandler
	jobs      *handlers.JobHandler
	templates *handlers.TemplateHandler
	portfolio *handlers.PortfolioHandler
}

// NewApp wires handlers over b. b may carry a configuration fault; every
// page then explains the missing settings instead of failing to start.
func NewApp(cfg *config.Config, b *backend.Backend, log logger.Logger) *App {
	loc := cfg.App.Location()
	view.SetLocation(loc)

	set := repository.NewSet(b.Store)
	sessions := session.NewCachedResolver(b.Sessions, cfg.Session.CacheTTL)
	cookie := auth.CookieOptions{Secure: !cfg.App.Dev}

	app := &App{
		mux:       http.NewServeMux(),
		backend:   b,
		sessions:  sessions,
		log:       log,
		auth:      handlers.NewAuthHandler(b.Sessions, sessions, cookie, log),
		dashboard: handlers.NewDashboardHandler(services.NewDashboardService(set, log), log),
		clients:   handlers.NewClientHandler(set.Clients, log),
		quotes:    handlers.NewQuoteHandler(set.Quotes, set.Clients, loc, log),
		jobs:      handlers.NewJobHandler(set.Jobs, set.Quotes, set.Clients, log),
		templates: handlers.NewTemplateHandler(set.Templates, set.Clients, services.NewTemplateService(), log),
		portfolio: handlers.NewPortfolioHandler(set.Portfolio, log),
	}
	app.setupRoutes()

	var h http.Handler = app.mux
	h = auth.Guard(h)
	h = middleware.Preferences(cfg.App.DefaultLang)(h)
	h = middleware.Logging(log)(h)
	h = middleware.Recover(log)(h)
	app.handler = h
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	// Public routes
	a.mux.Handle("GET /static/", view.Static())
	a.mux.HandleFunc("GET /healthz", a.health)

	a.mux.Handle("GET /", a.public(a.auth.Home))
	a.mux.Handle("GET /login", a.public(a.auth.LoginPage))
	a.mux.Handle("POST /login", a.public(a.auth.Login))
	a.mux.Handle("GET /cadastro", a.public(a.auth.SignupPage))
	a.mux.Handle("POST /cadastro", a.public(a.auth.Signup))
	a.mux.HandleFunc("POST /logout", a.auth.Logout)
	a.mux.Handle("GET /portfolio/{userID}", a.public(a.portfolio.Public))

	// Signed-in routes
	a.mux.Handle("GET /dashboard", a.private(a.dashboard.Show))

	a.records("/dashboard/clientes", a.clients.Index, a.clients.New, a.clients.Create, a.clients.Delete)
	a.mux.Handle("GET /dashboard/clientes/{id}/editar", a.private(a.clients.Edit))
	a.mux.Handle("POST /dashboard/clientes/{id}/editar", a.private(a.clients.Update))

	a.records("/dashboard/orcamentos", a.quotes.Index, a.quotes.New, a.quotes.Create, a.quotes.Delete)
	a.mux.Handle("GET /dashboard/orcamentos/{id}/pdf", a.private(a.quotes.PDF))

	a.records("/dashboard/jobs", a.jobs.Index, a.jobs.New, a.jobs.Create, a.jobs.Delete)

	a.records("/dashboard/templates", a.templates.Index, a.templates.New, a.templates.Create, a.templates.Delete)
	a.mux.Handle("GET /dashboard/templates/{id}/preview", a.private(a.templates.Preview))

	a.records("/dashboard/portfolio", a.portfolio.Index, a.portfolio.New, a.portfolio.Create, a.portfolio.Delete)
}

// records registers the list, create and delete routes shared by every
// record type.
func (a *App) records(base string, index, newForm, create, del http.HandlerFunc) {
	a.mux.Handle("GET "+base, a.private(index))
	a.mux.Handle("GET "+base+"/novo", a.private(newForm))
	a.mux.Handle("POST "+base+"/novo", a.private(create))
	a.mux.Handle("POST "+base+"/{id}/delete", a.private(del))
}

func (a *App) private(h http.HandlerFunc) http.Handler {
	return middleware.RequireSession(a.sessions, a.log)(h)
}

// public attaches the session when there is one, so signed-in users can be
// sent on to the dashboard.
func (a *App) public(h http.HandlerFunc) http.Handler {
	return middleware.OptionalSession(a.sessions)(h)
}

func (a *App) health(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if a.backend.Fault != nil {
		status = "not_configured"
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"status": status, "backend": a.backend.Name})
}

// pruneSessions drops expired cache entries until ctx ends.
func (a *App) pruneSessions(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.sessions.Prune(); n > 0 {
				a.log.WithField("entries", n).Debug("Pruned session cache")
			}
		}
	}
}
