package session

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phillip-england/dayflow/internal/models"
)

func TestNewPostgresStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS client_sessions").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := NewPostgresStore(db); err != nil {
		t.Fatalf("NewPostgresStore() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresStoreSaveLoadDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS client_sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewPostgresStore(db)
	if err != nil {
		t.Fatalf("NewPostgresStore() error: %v", err)
	}
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO client_sessions").
		WithArgs("sid1", "tok", "ref", "HR", "Hana", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := store.Save(ctx, "sid1", Session{AccessToken: "tok", RefreshToken: "ref", Role: models.RoleHR, DisplayName: "Hana"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	selectQ := regexp.QuoteMeta("SELECT access_token, refresh_token, role, display_name FROM client_sessions WHERE id = $1")
	mock.ExpectQuery(selectQ).WithArgs("sid1").
		WillReturnRows(sqlmock.NewRows([]string{"access_token", "refresh_token", "role", "display_name"}).
			AddRow("tok", "ref", "HR", "Hana"))
	loaded, err := store.Load(ctx, "sid1")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Role != models.RoleHR || loaded.AccessToken != "tok" {
		t.Fatalf("unexpected session: %+v", loaded)
	}

	mock.ExpectExec("DELETE FROM client_sessions").WithArgs("sid1").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := store.Delete(ctx, "sid1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	mock.ExpectQuery(selectQ).WithArgs("sid1").
		WillReturnRows(sqlmock.NewRows([]string{"access_token", "refresh_token", "role", "display_name"}))
	if _, err := store.Load(ctx, "sid1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresStoreDeleteStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS client_sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	store, err := NewPostgresStore(db)
	if err != nil {
		t.Fatalf("NewPostgresStore() error: %v", err)
	}

	cutoff := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_sessions WHERE updated_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))
	n, err := store.DeleteStale(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteStale() error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows removed, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
