package guard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phillip-england/dayflow/internal/models"
	"github.com/phillip-england/dayflow/internal/session"
)

func TestEvaluate(t *testing.T) {
	hr := session.Session{AccessToken: "tok", Role: models.RoleHR}
	cases := []struct {
		name    string
		sess    session.Session
		present bool
		allowed []models.Role
		want    Decision
	}{
		{"no session", session.Session{}, false, nil, RedirectLogin},
		{"no token", session.Session{Role: models.RoleHR}, true, nil, RedirectLogin},
		{"any role", hr, true, nil, Allow},
		{"role allowed", hr, true, []models.Role{models.RoleHR}, Allow},
		{"role not allowed", hr, true, []models.Role{models.RoleEmployee}, RedirectLogin},
		{"unknown role", session.Session{AccessToken: "tok"}, true, []models.Role{models.RoleAdmin}, RedirectLogin},
	}
	for _, tc := range cases {
		if got := Evaluate(tc.sess, tc.present, tc.allowed); got != tc.want {
			t.Fatalf("%s: Evaluate() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

type fakeRefresher struct {
	token string
	err   error
	calls int
}

func (f *fakeRefresher) Refresh(context.Context, string) (string, error) {
	f.calls++
	return f.token, f.err
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newSignedIn(t *testing.T, store session.Store, sess session.Session) (*session.Manager, *http.Cookie) {
	t.Helper()
	mgr := session.NewManager(store, session.ManagerConfig{})
	rec := httptest.NewRecorder()
	if _, err := mgr.Set(rec, httptest.NewRequest(http.MethodPost, "/", nil), sess); err != nil {
		t.Fatalf("set session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	return mgr, cookies[0]
}

func TestRequireRedirectsWrongRole(t *testing.T) {
	mgr, cookie := newSignedIn(t, session.NewMemoryStore(), session.Session{AccessToken: "tok", Role: models.RoleEmployee})
	called := false
	h := New(mgr, nil, nil).Require(models.RoleHR)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/hr-dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if called {
		t.Fatalf("wrapped handler must not run")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected redirect to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRequireRedirectsWithoutCookie(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), session.ManagerConfig{})
	h := New(mgr, nil, nil).Require()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("wrapped handler must not run")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/profile", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
}

func TestRequirePassesSessionThrough(t *testing.T) {
	mgr, cookie := newSignedIn(t, session.NewMemoryStore(), session.Session{AccessToken: "tok", Role: models.RoleAdmin, DisplayName: "Ada"})
	var got session.Session
	h := New(mgr, nil, nil).Require(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, id, ok := SessionFromContext(r.Context())
		if !ok || id != cookie.Value {
			t.Fatalf("session missing from context")
		}
		got = sess
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin-dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || got.DisplayName != "Ada" {
		t.Fatalf("unexpected result %d %+v", rec.Code, got)
	}
}

func TestRequireRefreshesExpiredToken(t *testing.T) {
	store := session.NewMemoryStore()
	expired := signedToken(t, time.Now().Add(-time.Minute))
	mgr, cookie := newSignedIn(t, store, session.Session{AccessToken: expired, RefreshToken: "refresh", Role: models.RoleEmployee})
	refresher := &fakeRefresher{token: "fresh"}

	var seen string
	h := New(mgr, refresher, nil).Require(models.RoleEmployee)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _, _ := SessionFromContext(r.Context())
		seen = sess.AccessToken
	}))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if refresher.calls != 1 || seen != "fresh" {
		t.Fatalf("expected refreshed token, calls=%d seen=%q", refresher.calls, seen)
	}
	stored, err := store.Load(context.Background(), cookie.Value)
	if err != nil || stored.AccessToken != "fresh" {
		t.Fatalf("expected stored token to be refreshed, got %+v %v", stored, err)
	}
}

func TestRequireClearsSessionWhenRefreshFails(t *testing.T) {
	store := session.NewMemoryStore()
	expired := signedToken(t, time.Now().Add(-time.Minute))
	mgr, cookie := newSignedIn(t, store, session.Session{AccessToken: expired, RefreshToken: "refresh", Role: models.RoleEmployee})

	h := New(mgr, &fakeRefresher{err: errors.New("revoked")}, nil).Require()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("wrapped handler must not run")
	}))
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Location") != "/?error=Session+expired" {
		t.Fatalf("unexpected redirect %q", rec.Header().Get("Location"))
	}
	if _, err := store.Load(context.Background(), cookie.Value); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected session to be cleared, got %v", err)
	}
}
