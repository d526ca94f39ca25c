package db

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/logger"
)

func TestConnectAndAutoMigrateSQLite(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "photodesk.db")}
	db, err := Connect(cfg, false, logger.Nop())
	require.NoError(t, err)

	// sqlSource is ignored for sqlite
	require.NoError(t, Migrate(db, cfg, true))
	for _, table := range []string{"users", "clients", "quotes", "jobs", "email_templates", "portfolio_items"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("portfolio_items", "order"))

	// idempotent
	require.NoError(t, Migrate(db, cfg, false))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)
	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs)

	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init.up.sql")
	require.NoError(t, err)
	for _, table := range []string{"clients", "quotes", "jobs", "email_templates", "portfolio_items"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
