package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/Movers_Api.git/internal/database"
)

// SQLStore guarda el documento en la tabla cache_documents (SQLite o PostgreSQL)
type SQLStore struct {
	db     *sql.DB
	driver string
	key    string
}

func NewSQLStore(db *sql.DB, driver, key string) *SQLStore {
	return &SQLStore{db: db, driver: driver, key: key}
}

func (s *SQLStore) Load(ctx context.Context) ([]byte, error) {
	query := database.Rebind(s.driver, `SELECT value FROM cache_documents WHERE key = ?`)

	var value string
	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLStore) Save(ctx context.Context, data []byte) error {
	query := database.Rebind(s.driver, `
		INSERT INTO cache_documents (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)

	_, err := s.db.ExecContext(ctx, query, s.key, string(data), time.Now().Unix())
	return err
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
