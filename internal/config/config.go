// Package config provides application configuration loaded from the environment
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Backend names accepted by BACKEND.
const (
	BackendSupabase = "supabase"
	BackendLocal    = "local"
)

const devSessionSecret = "devsessionsecret"

// ErrNotConfigured marks a missing connection setting for the hosted backend.
var ErrNotConfigured = errors.New("backend not configured")

// MissingSettingsError lists the settings that are absent.
type MissingSettingsError struct {
	Keys []string
}

func (e *MissingSettingsError) Error() string {
	return "supabase is not configured: missing " + strings.Join(e.Keys, ", ")
}

func (e *MissingSettingsError) Unwrap() error { return ErrNotConfigured }

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Session  SessionConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds settings for the self-hosted backend.
type DatabaseConfig struct {
	Driver   string // postgres or sqlite
	Path     string // sqlite file
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SupabaseConfig points at a hosted project (REST + auth endpoints).
type SupabaseConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

// SessionConfig drives token issuance for the local backend and the
// token resolution cache for both backends.
type SessionConfig struct {
	Secret   string
	TTL      time.Duration
	CacheTTL time.Duration
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev         bool
	Migrations  bool
	Backend     string
	LogLevel    string
	DefaultLang string
	TimeZone    string
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Validate reports which connection settings are missing. It never touches
// the network.
func (s SupabaseConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(s.URL) == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if strings.TrimSpace(s.AnonKey) == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 {
		return &MissingSettingsError{Keys: missing}
	}
	return nil
}

// Location resolves TimeZone, falling back to UTC.
func (a AppConfig) Location() *time.Location {
	if a.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // optional env file, e.g. ".env"
}

// Load reads .env from the working directory then the process environment.
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 60)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "photodesk.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "photodesk")
	v.SetDefault("DB_PASSWORD", "photodesk")
	v.SetDefault("DB_NAME", "photodesk")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_ANON_KEY", "")
	v.SetDefault("SUPABASE_TIMEOUT", "10s")

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_CACHE_TTL", "30s")

	v.SetDefault("DEV", true)
	v.SetDefault("MIGRATIONS", false)
	v.SetDefault("BACKEND", BackendSupabase)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_LANG", "pt")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// a missing file is fine
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("SERVER_PORT"),
			ReadTimeout:  v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetInt("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:  v.GetInt("SERVER_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Path:     v.GetString("DB_PATH"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Supabase: SupabaseConfig{
			URL:     strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
			AnonKey: v.GetString("SUPABASE_ANON_KEY"),
			Timeout: v.GetDuration("SUPABASE_TIMEOUT"),
		},
		Session: SessionConfig{
			Secret:   v.GetString("SESSION_SECRET"),
			TTL:      v.GetDuration("SESSION_TTL"),
			CacheTTL: v.GetDuration("SESSION_CACHE_TTL"),
		},
		App: AppConfig{
			Dev:         v.GetBool("DEV"),
			Migrations:  v.GetBool("MIGRATIONS"),
			Backend:     strings.ToLower(v.GetString("BACKEND")),
			LogLevel:    v.GetString("LOG_LEVEL"),
			DefaultLang: v.GetString("DEFAULT_LANG"),
			TimeZone:    v.GetString("TIMEZONE"),
		},
	}

	switch cfg.App.Backend {
	case BackendSupabase, BackendLocal:
	default:
		return nil, fmt.Errorf("BACKEND must be %q or %q, got %q", BackendSupabase, BackendLocal, cfg.App.Backend)
	}
	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.Database.Driver)
	}

	if cfg.Session.Secret == "" {
		if cfg.App.Backend == BackendLocal && !cfg.App.Dev {
			return nil, fmt.Errorf("SESSION_SECRET is required for the local backend outside dev mode")
		}
		cfg.Session.Secret = devSessionSecret
	}

	return cfg, nil
}
