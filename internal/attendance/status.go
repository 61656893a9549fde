package attendance

import (
	"errors"
	"fmt"

	"github.com/phillip-england/dayflow/internal/models"
)

var (
	ErrInvalidTransition  = errors.New("attendance transition not allowed")
	ErrInconsistentRecord = errors.New("attendance record is inconsistent")
)

// Status is the employee's punch state for the current day.
type Status int

const (
	NotCheckedIn Status = iota
	CheckedIn
	CheckedOut
)

func (s Status) String() string {
	switch s {
	case NotCheckedIn:
		return "Not Checked In"
	case CheckedIn:
		return "Checked In"
	case CheckedOut:
		return "Checked Out"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) CanCheckIn() bool  { return s == NotCheckedIn }
func (s Status) CanCheckOut() bool { return s == CheckedIn }

// Done is true once the day is complete; nothing leaves CheckedOut.
func (s Status) Done() bool { return s == CheckedOut }

// Derive maps today's record onto a Status. A nil record, or one with no
// check-in yet (for example an HR override), is NotCheckedIn.
func Derive(rec *models.Attendance) Status {
	switch {
	case rec == nil:
		return NotCheckedIn
	case rec.HasCheckOut():
		return CheckedOut
	case rec.HasCheckIn():
		return CheckedIn
	default:
		return NotCheckedIn
	}
}

// Validate rejects a record that claims a check-out without a check-in.
func Validate(rec *models.Attendance) error {
	if rec != nil && rec.HasCheckOut() && !rec.HasCheckIn() {
		return fmt.Errorf("%w: check-out on %s without check-in", ErrInconsistentRecord, rec.Date)
	}
	return nil
}

type Action int

const (
	ActionCheckIn Action = iota + 1
	ActionCheckOut
)

func (a Action) String() string {
	switch a {
	case ActionCheckIn:
		return "check-in"
	case ActionCheckOut:
		return "check-out"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Transition returns the state reached by applying a to from.
func Transition(from Status, a Action) (Status, error) {
	switch a {
	case ActionCheckIn:
		if from.CanCheckIn() {
			return CheckedIn, nil
		}
	case ActionCheckOut:
		if from.CanCheckOut() {
			return CheckedOut, nil
		}
	}
	return from, fmt.Errorf("%w: %s while %s", ErrInvalidTransition, a, from)
}
