package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/phillip-england/dayflow/internal/models"
)

// PostgresStore shares sessions between several client instances.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgresStore connects using a lib/pq connection string.
func OpenPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres session store requires a connection string")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}
	s, err := NewPostgresStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS client_sessions (
	id TEXT PRIMARY KEY,
	access_token TEXT NOT NULL DEFAULT '',
	refresh_token TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure client_sessions schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, id string) (Session, error) {
	const q = `SELECT access_token, refresh_token, role, display_name FROM client_sessions WHERE id = $1`
	var sess Session
	var role string
	err := s.db.QueryRowContext(ctx, q, id).Scan(&sess.AccessToken, &sess.RefreshToken, &role, &sess.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("query session: %w", err)
	}
	sess.Role, _ = models.ParseRole(role)
	return sess, nil
}

func (s *PostgresStore) Save(ctx context.Context, id string, sess Session) error {
	const q = `
INSERT INTO client_sessions (id, access_token, refresh_token, role, display_name, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
	access_token = EXCLUDED.access_token,
	refresh_token = EXCLUDED.refresh_token,
	role = EXCLUDED.role,
	display_name = EXCLUDED.display_name,
	updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, q, id, sess.AccessToken, sess.RefreshToken, sess.Role.String(), sess.DisplayName, time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM client_sessions WHERE updated_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return res.RowsAffected()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
