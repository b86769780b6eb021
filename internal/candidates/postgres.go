package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const defaultTable = "candidates"

// PostgresSource reads candidates from a Postgres table with text[] skill and language columns.
type PostgresSource struct {
	pool   *pgxpool.Pool
	table  string
	logger *zap.Logger
}

// NewPostgresSource connects to databaseURL and verifies the connection.
func NewPostgresSource(ctx context.Context, databaseURL, table string, logger *zap.Logger) (*PostgresSource, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("postgres url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	config.MaxConns = 4
	config.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if table = strings.TrimSpace(table); table == "" {
		table = defaultTable
	}

	logger.Debug("postgres connected", zap.String("host", config.ConnConfig.Host), zap.String("table", table))

	return &PostgresSource{pool: pool, table: table, logger: logger}, nil
}

func (s *PostgresSource) Name() string { return SourcePostgres + ":" + s.table }

func (s *PostgresSource) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresSource) Load(ctx context.Context) (*Candidates, error) {
	rows, err := s.pool.Query(ctx, selectCandidatesSQL(s.table))
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Candidate, error) {
		var c Candidate
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Location, &c.Skills, &c.Languages, &c.CreatedAt)
		return &c, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning candidates: %w", err)
	}

	result := &Candidates{Items: items}
	result.normalize()
	return result, nil
}

func selectCandidatesSQL(table string) string {
	ident := pgx.Identifier(strings.Split(table, "."))
	return fmt.Sprintf(`SELECT id::text, name, coalesce(description, ''), coalesce(location, ''),
		coalesce(skills, '{}'::text[]), coalesce(languages, '{}'::text[]), coalesce(created_at::text, '')
		FROM %s ORDER BY name`, ident.Sanitize())
}
