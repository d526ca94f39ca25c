package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/db"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
	"github.com/diewo77/go-photodesk/internal/store"
)

func TestNew_UnconfiguredSupabaseStillYieldsBackend(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Backend: config.BackendSupabase}}
	b, err := New(cfg, nil, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotConfigured)
	require.NotNil(t, b)
	assert.ErrorIs(t, b.Fault, config.ErrNotConfigured)

	ctx := context.Background()
	var rows []models.Client
	assert.ErrorIs(t, b.Store.Select(ctx, store.Clients, store.Query{}, &rows), config.ErrNotConfigured)
	_, err = b.Store.Count(ctx, store.Quotes)
	assert.ErrorIs(t, err, config.ErrNotConfigured)
	_, err = b.Sessions.SignIn(ctx, "ana@x.com", "secret1")
	assert.ErrorIs(t, err, config.ErrNotConfigured)

	var missing *config.MissingSettingsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"SUPABASE_URL", "SUPABASE_ANON_KEY"}, missing.Keys)
}

func TestNew_SupabaseRunsStoreCallsAsTheUser(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := &config.Config{
		App:      config.AppConfig{Backend: config.BackendSupabase},
		Supabase: config.SupabaseConfig{URL: srv.URL, AnonKey: "anon"},
	}
	b, err := New(cfg, nil, logger.Nop())
	require.NoError(t, err)
	assert.NoError(t, b.Fault)

	ctx := auth.WithSession(context.Background(), auth.Session{UserID: "u1", AccessToken: "user-jwt"})
	var rows []models.Client
	require.NoError(t, b.Store.Select(ctx, store.Clients, store.Query{}, &rows))
	assert.Equal(t, "Bearer user-jwt", gotAuth.Load())
}

func TestNew_NetworkFailureIsNotAConfigurationFault(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := &config.Config{
		App:      config.AppConfig{Backend: config.BackendSupabase},
		Supabase: config.SupabaseConfig{URL: url, AnonKey: "anon"},
	}
	b, err := New(cfg, nil, logger.Nop())
	require.NoError(t, err)

	_, err = b.Sessions.SignIn(context.Background(), "ana@x.com", "secret1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, config.ErrNotConfigured))
}

func TestNew_Local(t *testing.T) {
	dbCfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")}
	conn, err := db.Connect(dbCfg, false, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn, dbCfg, false))

	cfg := &config.Config{
		App:      config.AppConfig{Backend: config.BackendLocal},
		Database: dbCfg,
		Session:  config.SessionConfig{Secret: "s3cret", TTL: time.Hour},
	}
	b, err := New(cfg, conn, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, config.BackendLocal, b.Name)

	ctx := context.Background()
	s, err := b.Sessions.SignUp(ctx, "ana@x.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, b.Store.Insert(ctx, store.Clients, &models.Client{Owned: models.Owned{UserID: s.User.ID}, Name: "Ana", Status: models.ClientLead}))
	n, err := b.Store.Count(ctx, store.Clients, store.Eq("user_id", s.User.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNew_LocalWithoutDatabase(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Backend: config.BackendLocal}}
	b, err := New(cfg, nil, logger.Nop())
	assert.Error(t, err)
	assert.Nil(t, b)
	assert.False(t, errors.Is(err, config.ErrNotConfigured))
}
