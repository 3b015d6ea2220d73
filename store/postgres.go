package store

import (
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"
)

const migrationSQL = `
CREATE TABLE IF NOT EXISTS collections (
    name TEXT PRIMARY KEY,
    data JSONB NOT NULL
);`

// PostgresStore keeps each collection as a single jsonb row, preserving
// the read-whole/write-whole contract of Store. It trades row-level
// access for shape compatibility with the other backends.
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

// Migrate creates the collections table if it does not exist.
func (s *PostgresStore) Migrate() error {
	_, err := s.DB.Exec(migrationSQL)
	return err
}

func (s *PostgresStore) Read(collection string, out any) error {
	var raw []byte
	err := s.DB.QueryRow(`SELECT data FROM collections WHERE name = $1`, collection).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *PostgresStore) Write(collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(`
		INSERT INTO collections (name, data) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data
	`, collection, raw)
	return err
}

func (s *PostgresStore) Close() error { return s.DB.Close() }
