package models

import (
	"encoding/json"
	"strings"
)

// Role is the closed set of account roles the backend assigns.
type Role int

const (
	RoleUnknown Role = iota
	RoleEmployee
	RoleHR
	RoleAdmin
)

// Roles lists every assignable role in display order.
var Roles = []Role{RoleEmployee, RoleHR, RoleAdmin}

// ParseRole maps the backend wire value onto a Role. Matching ignores case
// and surrounding whitespace.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "employee":
		return RoleEmployee, true
	case "hr":
		return RoleHR, true
	case "admin":
		return RoleAdmin, true
	default:
		return RoleUnknown, false
	}
}

// String returns the wire value sent to and received from the backend.
func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleHR:
		return "HR"
	case RoleAdmin:
		return "Admin"
	case RoleUnknown:
		return ""
	}
	return ""
}

func (r Role) Label() string {
	switch r {
	case RoleEmployee:
		return "Employee"
	case RoleHR:
		return "HR"
	case RoleAdmin:
		return "Administrator"
	case RoleUnknown:
		return "Guest"
	}
	return "Guest"
}

// HomePath is where a freshly signed-in user of this role lands.
func (r Role) HomePath() string {
	switch r {
	case RoleEmployee:
		return "/dashboard"
	case RoleHR:
		return "/hr-dashboard"
	case RoleAdmin:
		return "/admin-dashboard"
	case RoleUnknown:
		return "/"
	}
	return "/"
}

func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleHR || r == RoleAdmin
}

// In reports whether r is one of allowed.
func (r Role) In(allowed []Role) bool {
	for _, candidate := range allowed {
		if candidate == r {
			return true
		}
	}
	return false
}

// MarshalJSON and UnmarshalJSON keep Role on the wire as its string form.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, _ := ParseRole(raw)
	*r = parsed
	return nil
}
