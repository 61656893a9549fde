package clientapp

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/phillip-england/dayflow/internal/security"
)

// preSessionCookie carries a random nonce for browsers that are not signed
// in yet. The sign-in and sign-up forms echo an HMAC of it, so a cross-site
// post cannot sign the victim into someone else's account.
const preSessionCookie = "dayflow_form"

const preSessionTTL = 24 * time.Hour

func preSessionID(nonce string) string {
	return "form:" + nonce
}

// formToken returns the csrf token for a pre-session form, issuing the
// nonce cookie first when the browser has none.
func (s *server) formToken(w http.ResponseWriter, r *http.Request) string {
	nonce := ""
	if c, err := r.Cookie(preSessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			nonce = c.Value
		}
	}
	if nonce == "" {
		nonce = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     preSessionCookie,
			Value:    nonce,
			Path:     "/",
			MaxAge:   int(preSessionTTL.Seconds()),
			HttpOnly: true,
			Secure:   s.cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.csrfToken(preSessionID(nonce))
}

// validPreSessionForm checks a parsed sign-in or sign-up form against the
// nonce cookie.
func (s *server) validPreSessionForm(r *http.Request) bool {
	c, err := r.Cookie(preSessionCookie)
	if err != nil || c.Value == "" {
		return false
	}
	return security.VerifyCSRF(s.secret, preSessionID(c.Value), r.PostFormValue("csrf_token"))
}
