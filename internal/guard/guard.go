package guard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/phillip-england/dayflow/internal/models"
	"github.com/phillip-england/dayflow/internal/session"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	}
	return "unknown"
}

// LoginPath is where rejected requests are sent.
const LoginPath = "/"

const expiredPath = "/?error=Session+expired"

// Evaluate decides whether a session may see a view restricted to allowed.
// An empty allowed list admits any signed-in role.
func Evaluate(sess session.Session, present bool, allowed []models.Role) Decision {
	if !present || !sess.HasToken() {
		return RedirectLogin
	}
	if len(allowed) > 0 && !sess.Role.In(allowed) {
		return RedirectLogin
	}
	return Allow
}

// Refresher trades a refresh token for a new access token.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type Guard struct {
	sessions  *session.Manager
	refresher Refresher
	logger    *slog.Logger
	now       func() time.Time
}

// New builds a Guard. refresher may be nil, in which case expired sessions
// are always cleared.
func New(sessions *session.Manager, refresher Refresher, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		sessions:  sessions,
		refresher: refresher,
		logger:    logger,
		now:       time.Now,
	}
}

// Require wraps next so it only runs for sessions whose role is in allowed.
func (g *Guard) Require(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, id, err := g.sessions.Get(r)
			present := err == nil
			if err != nil && !errors.Is(err, session.ErrNotFound) {
				g.logger.Error("load session failed", "path", r.URL.Path, "err", err)
			}
			if Evaluate(sess, present, allowed) == RedirectLogin {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			if session.TokenExpired(sess.AccessToken, g.now()) {
				refreshed, ok := g.refresh(r, id, sess)
				if !ok {
					if err := g.sessions.Clear(w, r); err != nil {
						g.logger.Error("clear expired session failed", "err", err)
					}
					http.Redirect(w, r, expiredPath, http.StatusSeeOther)
					return
				}
				sess = refreshed
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), id, sess)))
		})
	}
}

func (g *Guard) refresh(r *http.Request, id string, sess session.Session) (session.Session, bool) {
	if g.refresher == nil || sess.RefreshToken == "" || session.TokenExpired(sess.RefreshToken, g.now()) {
		return sess, false
	}
	token, err := g.refresher.Refresh(r.Context(), sess.RefreshToken)
	if err != nil {
		g.logger.Warn("token refresh failed", "path", r.URL.Path, "err", err)
		return sess, false
	}
	sess.AccessToken = token
	if err := g.sessions.Update(r.Context(), id, sess); err != nil {
		g.logger.Error("save refreshed session failed", "err", err)
		return sess, false
	}
	return sess, true
}

type ctxKey struct{}

type bound struct {
	id   string
	sess session.Session
}

func WithSession(ctx context.Context, id string, sess session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, bound{id: id, sess: sess})
}

// SessionFromContext returns the session admitted by Require along with its id.
func SessionFromContext(ctx context.Context) (session.Session, string, bool) {
	b, ok := ctx.Value(ctxKey{}).(bound)
	return b.sess, b.id, ok
}
