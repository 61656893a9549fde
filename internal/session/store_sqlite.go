package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phillip-england/dayflow/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps sessions in a local SQLite file so a restart of the
// client does not sign everybody out.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and creates when missing) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create session database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS client_sessions (
	id TEXT PRIMARY KEY,
	access_token TEXT NOT NULL DEFAULT '',
	refresh_token TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure client_sessions schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (Session, error) {
	var sess Session
	var role string
	err := s.db.QueryRowContext(ctx, `
SELECT access_token, refresh_token, role, display_name
FROM client_sessions WHERE id = ?`, id).Scan(&sess.AccessToken, &sess.RefreshToken, &role, &sess.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	sess.Role, _ = models.ParseRole(role)
	return sess, nil
}

func (s *SQLiteStore) Save(ctx context.Context, id string, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO client_sessions (id, access_token, refresh_token, role, display_name, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	access_token = excluded.access_token,
	refresh_token = excluded.refresh_token,
	role = excluded.role,
	display_name = excluded.display_name,
	updated_at = excluded.updated_at`,
		id, sess.AccessToken, sess.RefreshToken, sess.Role.String(), sess.DisplayName, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM client_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteStale drops sessions last saved before cutoff.
func (s *SQLiteStore) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM client_sessions WHERE updated_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
