package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const secretBytes = 32

// NewSecret returns a random base64url secret suitable for SESSION_SECRET.
func NewSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CSRFToken binds a form token to one session id.
func CSRFToken(secret, sessionID string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("csrf secret is empty")
	}
	if sessionID == "" {
		return "", errors.New("session id is empty")
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("csrf:"))
	mac.Write([]byte(sessionID))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

func VerifyCSRF(secret, sessionID, token string) bool {
	if token == "" {
		return false
	}
	expected, err := CSRFToken(secret, sessionID)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
