package clientapp

import (
	"net/http"
	"strings"

	"github.com/phillip-england/dayflow/internal/apiclient"
	"github.com/phillip-england/dayflow/internal/middleware"
	"github.com/phillip-england/dayflow/internal/models"
	"github.com/phillip-england/dayflow/internal/security"
	"github.com/phillip-england/dayflow/internal/session"
)

const formExpired = "This form has expired. Please try again."

func (s *server) loginRoute(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.loginPage(w, r)
	case http.MethodPost:
		s.login(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) loginPage(w http.ResponseWriter, r *http.Request) {
	if sess, _, err := s.sessions.Get(r); err == nil && sess.HasToken() && sess.Role.Valid() {
		http.Redirect(w, r, sess.Role.HomePath(), http.StatusFound)
		return
	}
	q := r.URL.Query()
	s.render(w, r, s.loginTmpl, pageData{
		Title:   "Sign in",
		Error:   q.Get("error"),
		Message: q.Get("message"),
		CSRF:    s.formToken(w, r),
	})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "/", "Invalid form submission")
		return
	}
	if !s.validPreSessionForm(r) {
		redirectError(w, r, "/", formExpired)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		redirectError(w, r, "/", "Email and password are required")
		return
	}

	resp, err := s.api.Login(r.Context(), email, password)
	if s.gone(r) {
		return
	}
	if err != nil {
		s.logFailure(r, "login failed", err)
		redirectError(w, r, "/", apiclient.MessageOf(err, "Invalid email or password"))
		return
	}
	role := resp.User.Role
	if !role.Valid() {
		s.logger.Warn("login returned an unsupported role", "user_id", resp.User.ID)
		redirectError(w, r, "/", "Your account role is not supported")
		return
	}

	name := "User"
	if resp.Employee != nil {
		name = displayName(resp.Employee.FirstName, resp.Employee.LastName)
	}
	sess := session.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Role:         role,
		DisplayName:  name,
	}
	if _, err := s.sessions.Set(w, r, sess); err != nil {
		s.logger.Error("save session failed", "err", err)
		redirectError(w, r, "/", "Unable to start session")
		return
	}
	http.Redirect(w, r, role.HomePath(), http.StatusFound)
}

func (s *server) signupRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		s.render(w, r, s.signupTmpl, pageData{
			Title:   "Create account",
			Error:   q.Get("error"),
			Message: q.Get("message"),
			CSRF:    s.formToken(w, r),
			Roles:   roleOptions(),
		})
	case http.MethodPost:
		s.signup(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectError(w, r, "/signup", "Invalid form submission")
		return
	}
	if !s.validPreSessionForm(r) {
		redirectError(w, r, "/signup", formExpired)
		return
	}
	reg := models.Registration{
		FirstName:     strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:      strings.TrimSpace(r.PostFormValue("last_name")),
		Email:         strings.TrimSpace(r.PostFormValue("email")),
		Password:      r.PostFormValue("password"),
		DateOfJoining: strings.TrimSpace(r.PostFormValue("date_of_joining")),
	}
	if reg.FirstName == "" || reg.LastName == "" || reg.Email == "" || reg.Password == "" || reg.DateOfJoining == "" {
		redirectError(w, r, "/signup", "All fields are required")
		return
	}
	role, ok := models.ParseRole(r.PostFormValue("role"))
	if !ok {
		redirectError(w, r, "/signup", "Select a valid role")
		return
	}
	reg.Role = role

	err := s.api.Register(r.Context(), reg)
	if s.gone(r) {
		return
	}
	if err != nil {
		s.logFailure(r, "registration failed", err)
		redirectError(w, r, "/signup", apiclient.MessageOf(err, "Registration failed"))
		return
	}
	redirectMessage(w, r, "/", "Account created. Please sign in.")
}

// logout always ends the session. A bad csrf token, e.g. one signed with
// the secret of a previous process, is only logged.
func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id, ok := s.sessions.ID(r); ok {
		if err := r.ParseForm(); err != nil || !security.VerifyCSRF(s.secret, id, r.PostFormValue("csrf_token")) {
			s.logger.Warn("logout without a valid csrf token", "id", middleware.RequestIDFrom(r.Context()))
		}
	}
	if err := s.sessions.Clear(w, r); err != nil {
		s.logger.Error("clear session failed", "err", err)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
