package db

import (
	"embed"
	"errors"
	"fmt"
	"regexp"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// registers the postgres database driver for golang-migrate
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/logger"
	"github.com/diewo77/go-photodesk/internal/models"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const connectAttempts = 10

var passwordRe = regexp.MustCompile(`(password=)(\S+)`)

// Connect opens the self-hosted database. Postgres is retried for a while so
// the app can start alongside its database container.
func Connect(cfg config.DatabaseConfig, debug bool, log logger.Logger) (*gorm.DB, error) {
	level := gormlogger.Silent
	if debug {
		level = gormlogger.Info
	}
	gcfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level), TranslateError: true}

	if cfg.Driver == "sqlite" {
		db, err := gorm.Open(sqlite.Open(cfg.Path), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		log.WithField("path", cfg.Path).Info("Connected to sqlite")
		return db, nil
	}

	dsn := cfg.DSN()
	log.WithField("dsn", passwordRe.ReplaceAllString(dsn, "${1}***")).Info("Connecting to database")
	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		log.WithField("attempt", i+1).Warn("Retrying DB connection: " + err.Error())
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return db, nil
}

// Migrate brings the schema up to date. With sqlSource on Postgres the
// embedded SQL migrations run through golang-migrate; otherwise gorm's
// AutoMigrate is used.
func Migrate(db *gorm.DB, cfg config.DatabaseConfig, sqlSource bool) error {
	if sqlSource && cfg.Driver == "postgres" {
		if err := runSQLMigrations(cfg.URL()); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range models.All() {
			if err := db.AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
	}

	for _, table := range []string{"users", "clients", "quotes", "jobs", "email_templates", "portfolio_items"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
