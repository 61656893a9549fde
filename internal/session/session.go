package session

import (
	"context"
	"errors"

	"github.com/phillip-england/dayflow/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Key names one of the four persisted session fields.
type Key string

const (
	KeyAccessToken  Key = "access_token"
	KeyRefreshToken Key = "refresh_token"
	KeyRole         Key = "userRole"
	KeyDisplayName  Key = "userName"
)

// Keys lists every field a Session persists.
var Keys = []Key{KeyAccessToken, KeyRefreshToken, KeyRole, KeyDisplayName}

// Session is the client-held proof of authentication plus the cached role
// and display name. The zero value is an empty (signed-out) session.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         models.Role
	DisplayName  string
}

// Field returns the stored value for key and whether it is present.
func (s Session) Field(key Key) (string, bool) {
	var value string
	switch key {
	case KeyAccessToken:
		value = s.AccessToken
	case KeyRefreshToken:
		value = s.RefreshToken
	case KeyRole:
		value = s.Role.String()
	case KeyDisplayName:
		value = s.DisplayName
	}
	return value, value != ""
}

func (s Session) HasToken() bool {
	return s.AccessToken != ""
}

// Store persists sessions by opaque id. Save overwrites all four fields;
// Delete removes them. Load returns ErrNotFound for unknown ids.
type Store interface {
	Load(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, id string, sess Session) error
	Delete(ctx context.Context, id string) error
}
