package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
	name TEXT PRIMARY KEY,
	data TEXT NOT NULL
);
`

// SQLStorage persists documents in a single table on SQLite or PostgreSQL.
type SQLStorage struct {
	documentStore
	db     *sql.DB
	driver string
}

// OpenSQLite opens (creating if needed) a SQLite database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLStorage, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return newSQLStorage(ctx, db, BackendSQLite)
}

// OpenPostgres connects to PostgreSQL using a pgx connection string.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return newSQLStorage(ctx, db, BackendPostgres)
}

func newSQLStorage(ctx context.Context, db *sql.DB, driver string) (*SQLStorage, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, createDocumentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}

	s := &SQLStorage{db: db, driver: driver}
	s.documentStore = documentStore{raw: s}
	return s, nil
}

// Driver reports which SQL engine backs the store.
func (s *SQLStorage) Driver() string {
	return s.driver
}

// Close releases the database handle.
func (s *SQLStorage) Close() error {
	return s.db.Close()
}

func (s *SQLStorage) get(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT data FROM documents WHERE name = ?`), key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

func (s *SQLStorage) put(ctx context.Context, key string, data []byte) error {
	query := `INSERT INTO documents (name, data) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data`
	_, err := s.db.ExecContext(ctx, s.rebind(query), key, string(data))
	return err
}

// rebind rewrites ? placeholders as $n for PostgreSQL and passes through for SQLite.
func (s *SQLStorage) rebind(query string) string {
	if s.driver != BackendPostgres {
		return query
	}
	out := make([]byte, 0, len(query)+8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}
