package candidates

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS candidates (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	location    TEXT NOT NULL DEFAULT '',
	skills      TEXT NOT NULL DEFAULT '[]',
	languages   TEXT NOT NULL DEFAULT '[]',
	created_at  TEXT NOT NULL
)`

// SQLiteStore keeps candidates in a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path and applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Name() string { return SourceSQLite + ":" + s.path }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (*Candidates, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description, location, skills, languages, created_at
		FROM candidates ORDER BY name, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	result := &Candidates{}
	for rows.Next() {
		var (
			c                 Candidate
			skills, languages string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Location, &skills, &languages, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		if err := json.Unmarshal([]byte(skills), &c.Skills); err != nil {
			return nil, fmt.Errorf("decoding skills of %s: %w", c.ID, err)
		}
		if err := json.Unmarshal([]byte(languages), &c.Languages); err != nil {
			return nil, fmt.Errorf("decoding languages of %s: %w", c.ID, err)
		}
		c.Normalize()
		result.Items = append(result.Items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}

	return result, nil
}

// Save upserts the candidates. Missing IDs and creation times are filled in place.
func (s *SQLiteStore) Save(ctx context.Context, v *Candidates) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO candidates (id, name, description, location, skills, languages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			location = excluded.location,
			skills = excluded.skills,
			languages = excluded.languages`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range v.Items {
		c.Normalize()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if c.CreatedAt == "" {
			c.CreatedAt = now
		}

		skills, err := json.Marshal(c.Skills)
		if err != nil {
			return fmt.Errorf("encoding skills of %s: %w", c.ID, err)
		}
		languages, err := json.Marshal(c.Languages)
		if err != nil {
			return fmt.Errorf("encoding languages of %s: %w", c.ID, err)
		}

		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, c.Description, c.Location, string(skills), string(languages), c.CreatedAt); err != nil {
			return fmt.Errorf("saving candidate %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing candidates: %w", err)
	}
	return nil
}
