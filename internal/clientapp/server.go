package clientapp

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phillip-england/dayflow/internal/apiclient"
	"github.com/phillip-england/dayflow/internal/attendance"
	"github.com/phillip-england/dayflow/internal/guard"
	"github.com/phillip-england/dayflow/internal/middleware"
	"github.com/phillip-england/dayflow/internal/models"
	"github.com/phillip-england/dayflow/internal/security"
	"github.com/phillip-england/dayflow/internal/session"
)

//go:embed templates/*.html assets/app.css
var templatesFS embed.FS

type Config struct {
	Addr         string
	APIBaseURL   string
	APITimeout   time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Secret signs CSRF tokens. A random one is generated when empty, which
	// invalidates open forms on restart.
	Secret       string
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration

	Sessions session.Store
	Logger   *slog.Logger
}

type server struct {
	api      *apiclient.Client
	sessions *session.Manager
	guard    *guard.Guard
	tracker  *attendance.Tracker
	reviewer *attendance.Reviewer
	secret   string
	logger   *slog.Logger
	now      func() time.Time

	cookieSecure bool

	loginTmpl              *template.Template
	signupTmpl             *template.Template
	landingTmpl            *template.Template
	dashboardTmpl          *template.Template
	employeeAttendanceTmpl *template.Template
	leaveTmpl              *template.Template
	profileTmpl            *template.Template
	hrDashboardTmpl        *template.Template
	hrAttendanceTmpl       *template.Template
	adminTmpl              *template.Template
}

var templateFuncs = template.FuncMap{
	"button": func(label, variant, name, value string) buttonView {
		return buttonView{Label: label, Variant: variant, Name: name, Value: value}
	},
	"stat": func(title string, value any) statView {
		return statView{Title: title, Value: value}
	},
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templatesFS, "templates/partials.html", "templates/"+name))
}

func newServer(cfg Config) (*server, error) {
	if cfg.Sessions == nil {
		return nil, errors.New("clientapp: session store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	secret := cfg.Secret
	if strings.TrimSpace(secret) == "" {
		generated, err := security.NewSecret()
		if err != nil {
			return nil, err
		}
		logger.Warn("SESSION_SECRET is not set; using a per-process secret")
		secret = generated
	}
	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	api := apiclient.New(cfg.APIBaseURL, timeout)
	sessions := session.NewManager(cfg.Sessions, session.ManagerConfig{
		CookieName: cfg.CookieName,
		Secure:     cfg.CookieSecure,
		MaxAge:     cfg.SessionTTL,
	})

	return &server{
		api:      api,
		sessions: sessions,
		guard:    guard.New(sessions, api, logger),
		tracker:  attendance.NewTracker(api),
		reviewer: attendance.NewReviewer(api),
		secret:   secret,
		logger:   logger,
		now:      time.Now,

		cookieSecure: cfg.CookieSecure,

		loginTmpl:              parsePage("login.html"),
		signupTmpl:             parsePage("signup.html"),
		landingTmpl:            parsePage("landing.html"),
		dashboardTmpl:          parsePage("dashboard.html"),
		employeeAttendanceTmpl: parsePage("employee_attendance.html"),
		leaveTmpl:              parsePage("leave.html"),
		profileTmpl:            parsePage("profile.html"),
		hrDashboardTmpl:        parsePage("hr_dashboard.html"),
		hrAttendanceTmpl:       parsePage("hr_attendance.html"),
		adminTmpl:              parsePage("admin.html"),
	}, nil
}

// route is one mux entry. Public routes skip the guard; a guarded route with
// no roles admits any signed-in user.
type route struct {
	path    string
	public  bool
	roles   []models.Role
	handler http.HandlerFunc
}

func (s *server) routeTable() []route {
	employee := []models.Role{models.RoleEmployee}
	hr := []models.Role{models.RoleHR}
	admin := []models.Role{models.RoleAdmin}

	return []route{
		{path: "/", public: true, handler: s.loginRoute},
		{path: "/signup", public: true, handler: s.signupRoute},
		{path: "/welcome", public: true, handler: s.landingPage},
		{path: "/logout", public: true, handler: s.logout},
		{path: "/assets/app.css", public: true, handler: s.appCSSFile},

		{path: "/dashboard", roles: employee, handler: s.employeeDashboard},
		{path: "/employee-attendance", roles: employee, handler: s.employeeAttendancePage},
		{path: "/employee-attendance/checkin", roles: employee, handler: s.checkIn},
		{path: "/employee-attendance/checkout", roles: employee, handler: s.checkOut},
		{path: "/employee-attendance/export.xlsx", roles: employee, handler: s.exportHistory},
		{path: "/leave", roles: employee, handler: s.leaveRoute},
		{path: "/profile", handler: s.profilePage},

		{path: "/hr-dashboard", roles: hr, handler: s.hrDashboard},
		{path: "/hr-attendance", roles: hr, handler: s.hrAttendancePage},
		{path: "/hr-attendance/review", roles: hr, handler: s.hrReview},
		{path: "/hr-attendance/export.xlsx", roles: hr, handler: s.exportDay},

		{path: "/admin-dashboard", roles: admin, handler: s.adminDashboard},
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	for _, rt := range s.routeTable() {
		var h http.Handler = rt.handler
		if !rt.public {
			h = s.guard.Require(rt.roles...)(h)
		}
		mux.Handle(rt.path, h)
	}

	csp := strings.Join([]string{
		"default-src 'self'",
		"style-src 'self'",
		"img-src 'self' data:",
		"form-action 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.RequestLog(s.logger),
		middleware.Recover(s.logger),
		middleware.SecurityHeaders(middleware.SecurityHeadersConfig{ContentSecurityPolicy: csp}),
	)
}

// NewHandler returns the client's full HTTP handler without starting a listener.
func NewHandler(cfg Config) (http.Handler, error) {
	s, err := newServer(cfg)
	if err != nil {
		return nil, err
	}
	return s.routes(), nil
}

func Run(ctx context.Context, cfg Config) error {
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("client listening", "addr", cfg.Addr, "api", cfg.APIBaseURL)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// page starts the view model shared by every signed-in screen.
func (s *server) page(r *http.Request, title, active string) pageData {
	sess, id, _ := guard.SessionFromContext(r.Context())
	name := sess.DisplayName
	if name == "" {
		name = "User"
	}
	q := r.URL.Query()
	return pageData{
		Title:     title,
		Error:     q.Get("error"),
		Message:   q.Get("message"),
		CSRF:      s.csrfToken(id),
		UserName:  name,
		RoleLabel: sess.Role.Label(),
		Nav:       sidebarLinks(sess.Role, active),
	}
}

func (s *server) csrfToken(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	token, err := security.CSRFToken(s.secret, sessionID)
	if err != nil {
		s.logger.Error("csrf token failed", "err", err)
		return ""
	}
	return token
}

// validForm parses the form and checks its CSRF token against the session
// bound by the guard.
func (s *server) validForm(r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		return false
	}
	_, id, ok := guard.SessionFromContext(r.Context())
	if !ok {
		return false
	}
	return security.VerifyCSRF(s.secret, id, r.PostFormValue("csrf_token"))
}

func (s *server) token(r *http.Request) string {
	sess, _, _ := guard.SessionFromContext(r.Context())
	return sess.AccessToken
}

// gone reports whether the browser abandoned the request; any result
// fetched for it is dropped.
func (s *server) gone(r *http.Request) bool {
	if err := r.Context().Err(); err != nil {
		s.logger.Debug("request abandoned", "id", middleware.RequestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
		return true
	}
	return false
}

func (s *server) logFailure(r *http.Request, what string, err error) {
	s.logger.Warn(what,
		"id", middleware.RequestIDFrom(r.Context()),
		"path", r.URL.Path,
		"kind", apiclient.KindOf(err).String(),
		"err", err,
	)
}

func (s *server) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data pageData) {
	if s.gone(r) {
		return
	}
	if err := renderHTMLTemplate(w, tmpl, data); err != nil {
		http.Error(w, "template render failed", http.StatusInternalServerError)
		s.logger.Error("template render failed", "template", tmpl.Name(), "err", err)
	}
}

func renderHTMLTemplate(w http.ResponseWriter, tmpl *template.Template, data pageData) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}

func redirectWith(w http.ResponseWriter, r *http.Request, path, key, msg string) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	http.Redirect(w, r, path+sep+key+"="+url.QueryEscape(msg), http.StatusFound)
}

func redirectError(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWith(w, r, path, "error", msg)
}

func redirectMessage(w http.ResponseWriter, r *http.Request, path, msg string) {
	redirectWith(w, r, path, "message", msg)
}

func failedToLoad(what string) string {
	return fmt.Sprintf("Failed to load %s. Please try again.", what)
}
