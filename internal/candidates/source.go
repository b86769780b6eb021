package candidates

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/lente/internal/secrets"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceSupabase = "supabase"
)

// Source supplies the candidate set for a search. Every source returns candidates
// ordered by name.
type Source interface {
	Name() string
	Load(ctx context.Context) (*Candidates, error)
	Close() error
}

type SourceConfig struct {
	Kind     string          `mapstructure:"kind"`
	File     string          `mapstructure:"file"`
	SQLite   string          `mapstructure:"sqlite"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Supabase *SupabaseConfig `mapstructure:"supabase"`
}

type PostgresConfig struct {
	URL     string `mapstructure:"url"`
	URLFile string `mapstructure:"url-file"`
	Table   string `mapstructure:"table"`
}

type SupabaseConfig struct {
	URL         string `mapstructure:"url"`
	AnonKey     string `mapstructure:"anon-key"`
	AnonKeyFile string `mapstructure:"anon-key-file"`
	Table       string `mapstructure:"table"`
	PageSize    int    `mapstructure:"page-size"`
	MaxRetries  int    `mapstructure:"max-retries"`
	// RequestsPerSecond caps the request rate; zero keeps the client default.
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
}

// NewSource builds the source selected by cfg.Kind. An empty kind means file.
func NewSource(ctx context.Context, cfg *SourceConfig, logger *zap.Logger) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source configuration is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	switch kind {
	case "", SourceFile:
		if strings.TrimSpace(cfg.File) == "" {
			return nil, fmt.Errorf("source.file is required for the %s source", SourceFile)
		}
		return NewFileSource(cfg.File), nil
	case SourceSQLite:
		if strings.TrimSpace(cfg.SQLite) == "" {
			return nil, fmt.Errorf("source.sqlite is required for the %s source", SourceSQLite)
		}
		return NewSQLiteStore(cfg.SQLite)
	case SourcePostgres:
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("source.postgres section is required for the %s source", SourcePostgres)
		}
		url, err := secrets.Load(secrets.Source{
			Name:  "postgres url",
			Value: cfg.Postgres.URL,
			File:  cfg.Postgres.URLFile,
			Env:   "LENTE_DATABASE_URL",
		})
		if err != nil {
			return nil, err
		}
		return NewPostgresSource(ctx, url, cfg.Postgres.Table, logger)
	case SourceSupabase:
		if cfg.Supabase == nil {
			return nil, fmt.Errorf("source.supabase section is required for the %s source", SourceSupabase)
		}
		key, err := secrets.Load(secrets.Source{
			Name:  "supabase anon key",
			Value: cfg.Supabase.AnonKey,
			File:  cfg.Supabase.AnonKeyFile,
			Env:   "LENTE_SUPABASE_ANON_KEY",
		})
		if err != nil {
			return nil, err
		}
		client, err := NewSupabaseClient(cfg.Supabase.URL, key, logger)
		if err != nil {
			return nil, err
		}
		if table := strings.TrimSpace(cfg.Supabase.Table); table != "" {
			client.Table = table
		}
		if cfg.Supabase.PageSize > 0 {
			client.PageSize = cfg.Supabase.PageSize
		}
		if cfg.Supabase.MaxRetries > 0 {
			client.MaxRetries = cfg.Supabase.MaxRetries
		}
		if rps := cfg.Supabase.RequestsPerSecond; rps > 0 {
			client.Limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported candidate source: %s", cfg.Kind)
	}
}
