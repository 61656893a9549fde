package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies why a backend call failed.
type Kind int

const (
	// KindTransport covers network failures and cancelled requests.
	KindTransport Kind = iota + 1
	// KindStatus is a non-2xx response; Payload holds the parsed error body.
	KindStatus
	// KindShape is a 2xx response that lacks a field the caller relies on.
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindShape:
		return "shape"
	default:
		return "unknown"
	}
}

// Error is the single failure type returned by Client.
type Error struct {
	Kind    Kind
	Method  string
	Path    string
	Status  int
	Payload json.RawMessage
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if msg := e.Message(); msg != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	default:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the backend's "error" string when the payload has one.
func (e *Error) Message() string {
	if len(e.Payload) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Payload, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Message)
}

// KindOf returns the Kind of an *Error anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// MessageOf returns the backend message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return fallback
}

func shapeError(method, path, format string, args ...any) *Error {
	return &Error{Kind: KindShape, Method: method, Path: path, Err: fmt.Errorf(format, args...)}
}
