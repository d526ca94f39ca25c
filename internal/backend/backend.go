// Package backend assembles the store and the session service selected by
// configuration.
package backend

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/session"
	"github.com/diewo77/go-photodesk/internal/session/gotrue"
	"github.com/diewo77/go-photodesk/internal/session/local"
	"github.com/diewo77/go-photodesk/internal/store"
	"github.com/diewo77/go-photodesk/internal/store/gormstore"
	"github.com/diewo77/go-photodesk/internal/store/postgrest"
)

// Backend is the pair every handler works with.
type Backend struct {
	Name     string
	Store    store.Store
	Sessions session.Service
	// Fault is the configuration error found at startup, if any. Store and
	// Sessions then fail every call with it.
	Fault error
}

// New validates the settings once. On a configuration fault it returns the
// fault together with a Backend whose calls all fail with it, so the server
// can start and show setup instructions. db is only used by the local
// backend.
func New(cfg *config.Config, db *gorm.DB, log logger.Logger) (*Backend, error) {
	switch cfg.App.Backend {
	case config.BackendLocal:
		if db == nil {
			return nil, errors.New("backend: local backend needs a database")
		}
		log.WithField("driver", cfg.Database.Driver).Info("Using self-hosted backend")
		return &Backend{
			Name:     config.BackendLocal,
			Store:    gormstore.New(db),
			Sessions: local.New(db, cfg.Session.Secret, cfg.Session.TTL),
		}, nil

	case config.BackendSupabase:
		st, err := postgrest.New(cfg.Supabase, postgrest.WithTokenSource(auth.AccessTokenFromContext))
		if err != nil {
			return unconfigured(err, log), err
		}
		sessions, err := gotrue.New(cfg.Supabase)
		if err != nil {
			return unconfigured(err, log), err
		}
		log.WithField("url", cfg.Supabase.URL).Info("Using Supabase backend")
		return &Backend{Name: config.BackendSupabase, Store: st, Sessions: sessions}, nil
	}
	return nil, fmt.Errorf("backend: unknown backend %q", cfg.App.Backend)
}

func unconfigured(fault error, log logger.Logger) *Backend {
	log.Warn("Backend not configured: " + fault.Error())
	return &Backend{
		Name:     config.BackendSupabase,
		Store:    Unconfigured{Fault: fault},
		Sessions: Unconfigured{Fault: fault},
		Fault:    fault,
	}
}

// Unconfigured stands in for both services when settings are missing.
type Unconfigured struct {
	Fault error
}

var (
	_ store.Store     = Unconfigured{}
	_ session.Service = Unconfigured{}
)

func (u Unconfigured) Select(context.Context, string, store.Query, any) error { return u.Fault }

func (u Unconfigured) Count(context.Context, string, ...store.Filter) (int64, error) {
	return 0, u.Fault
}

func (u Unconfigured) Insert(context.Context, string, any) error { return u.Fault }

func (u Unconfigured) Update(context.Context, string, any, ...store.Filter) error { return u.Fault }

func (u Unconfigured) Delete(context.Context, string, ...store.Filter) error { return u.Fault }

func (u Unconfigured) User(context.Context, string) (*session.User, error) { return nil, u.Fault }

func (u Unconfigured) SignIn(context.Context, string, string) (*session.Session, error) {
	return nil, u.Fault
}

func (u Unconfigured) SignUp(context.Context, string, string) (*session.Session, error) {
	return nil, u.Fault
}

func (u Unconfigured) SignOut(context.Context, string) error { return u.Fault }
