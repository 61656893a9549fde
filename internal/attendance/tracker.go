package attendance

import (
	"context"
	"fmt"

	"github.com/phillip-england/dayflow/internal/models"
)

// API is the slice of the backend client the tracker needs.
type API interface {
	Today(ctx context.Context, token string) (*models.Attendance, error)
	CheckIn(ctx context.Context, token string) (*models.Attendance, error)
	CheckOut(ctx context.Context, token string) (*models.Attendance, error)
}

// Tracker drives the per-employee punch state machine against the backend.
type Tracker struct {
	api API
}

func NewTracker(api API) *Tracker {
	return &Tracker{api: api}
}

// Today fetches the current record and its derived status.
func (t *Tracker) Today(ctx context.Context, token string) (*models.Attendance, Status, error) {
	rec, err := t.api.Today(ctx, token)
	if err != nil {
		return nil, NotCheckedIn, err
	}
	if err := Validate(rec); err != nil {
		return nil, NotCheckedIn, err
	}
	return rec, Derive(rec), nil
}

func (t *Tracker) CheckIn(ctx context.Context, token string) (*models.Attendance, error) {
	return t.apply(ctx, token, ActionCheckIn)
}

func (t *Tracker) CheckOut(ctx context.Context, token string) (*models.Attendance, error) {
	return t.apply(ctx, token, ActionCheckOut)
}

// apply re-reads today's record, refuses the action locally when the state
// does not allow it, then returns the record the backend wrote.
func (t *Tracker) apply(ctx context.Context, token string, a Action) (*models.Attendance, error) {
	_, current, err := t.Today(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load today's attendance: %w", err)
	}
	want, err := Transition(current, a)
	if err != nil {
		return nil, err
	}

	var rec *models.Attendance
	switch a {
	case ActionCheckIn:
		rec, err = t.api.CheckIn(ctx, token)
	case ActionCheckOut:
		rec, err = t.api.CheckOut(ctx, token)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a, err)
	}
	if err := Validate(rec); err != nil {
		return nil, err
	}
	if got := Derive(rec); got != want {
		return nil, fmt.Errorf("%w: backend returned %s after %s", ErrInconsistentRecord, got, a)
	}
	return rec, nil
}
