package kv

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const collectionsSchema = `
	CREATE TABLE IF NOT EXISTS kv_collections (
		name VARCHAR NOT NULL PRIMARY KEY,
		value JSON,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	collectionsSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the local database file and bootstraps the collections
// table.
func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(settings.DbPath, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}

type dbStore struct {
	db *sql.DB
}

// NewStore wraps an open database in the Store interface.
func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &dbStore{db: db}, nil
}

func (s *dbStore) Get(ctx context.Context, name string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv_collections WHERE name = ?`, name).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", name, err)
	}
	return blob, nil
}

func (s *dbStore) Set(ctx context.Context, name string, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_collections (name, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP`,
		name, blob)
	if err != nil {
		return fmt.Errorf("set collection %q: %w", name, err)
	}
	return nil
}

func (s *dbStore) Delete(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv_collections WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete collection %q: %w", name, err)
	}
	return nil
}
