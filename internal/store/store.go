// Package store persists schemas and submitted responses as JSON
// documents in SQLite. Schemas are stored whole rather than row per
// field; the editor always loads and saves a complete document.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matthewbaird/formcanvas/internal/codec"
	"github.com/matthewbaird/formcanvas/internal/schema"
)

// ErrNotFound is returned when a schema or response id does not exist.
var ErrNotFound = errors.New("store: not found")

// SchemaInfo is the listing row for a stored schema.
type SchemaInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Response is a stored submission against a schema.
type Response struct {
	ID          string         `json:"id"`
	SchemaID    string         `json:"schemaId"`
	Values      map[string]any `json:"values"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// Store is the persistence interface for schemas and responses.
type Store interface {
	SaveSchema(ctx context.Context, s *schema.Schema) error
	GetSchema(ctx context.Context, id string) (*schema.Schema, error)
	ListSchemas(ctx context.Context) ([]SchemaInfo, error)
	DeleteSchema(ctx context.Context, id string) error

	SaveResponse(ctx context.Context, schemaID string, values map[string]any, submittedAt time.Time) (string, error)
	ListResponses(ctx context.Context, schemaID string) ([]Response, error)
}

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and bootstraps the tables.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.createTables(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createTables(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schemas (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS responses (
			id           TEXT PRIMARY KEY,
			schema_id    TEXT NOT NULL REFERENCES schemas(id) ON DELETE CASCADE,
			body         TEXT NOT NULL,
			submitted_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_responses_schema_time
			ON responses (schema_id, submitted_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// SaveSchema inserts or replaces a schema document.
func (s *SQLiteStore) SaveSchema(ctx context.Context, sc *schema.Schema) error {
	body, err := codec.MarshalSchema(sc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO schemas (id, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			updated_at = excluded.updated_at
	`, sc.ID, sc.Title, string(body),
		sc.CreatedAt.Format(time.RFC3339Nano), sc.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save schema %s: %w", sc.ID, err)
	}
	return nil
}

// GetSchema loads a schema document by id.
func (s *SQLiteStore) GetSchema(ctx context.Context, id string) (*schema.Schema, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM schemas WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schema %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get schema %s: %w", id, err)
	}
	return codec.UnmarshalSchema([]byte(body))
}

// ListSchemas returns listing rows for all stored schemas, newest first.
func (s *SQLiteStore) ListSchemas(ctx context.Context) ([]SchemaInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at
		FROM schemas
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list schemas: %w", err)
	}
	defer rows.Close()

	var infos []SchemaInfo
	for rows.Next() {
		var info SchemaInfo
		var created, updated string
		if err := rows.Scan(&info.ID, &info.Title, &created, &updated); err != nil {
			return nil, err
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteSchema removes a schema and, via the foreign key, its responses.
func (s *SQLiteStore) DeleteSchema(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schemas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete schema %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("schema %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveResponse stores a submitted value map and returns the new response id.
func (s *SQLiteStore) SaveResponse(ctx context.Context, schemaID string, values map[string]any, submittedAt time.Time) (string, error) {
	body, err := codec.MarshalValues(values)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO responses (id, schema_id, body, submitted_at)
		VALUES (?, ?, ?, ?)
	`, id, schemaID, string(body), submittedAt.Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("save response for schema %s: %w", schemaID, err)
	}
	return id, nil
}

// ListResponses returns stored responses for a schema, newest first.
func (s *SQLiteStore) ListResponses(ctx context.Context, schemaID string) ([]Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, body, submitted_at
		FROM responses
		WHERE schema_id = ?
		ORDER BY submitted_at DESC
	`, schemaID)
	if err != nil {
		return nil, fmt.Errorf("list responses for schema %s: %w", schemaID, err)
	}
	defer rows.Close()

	var out []Response
	for rows.Next() {
		var r Response
		var body, submitted string
		if err := rows.Scan(&r.ID, &body, &submitted); err != nil {
			return nil, err
		}
		r.SchemaID = schemaID
		r.SubmittedAt, _ = time.Parse(time.RFC3339Nano, submitted)
		if r.Values, err = codec.UnmarshalValues([]byte(body)); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
