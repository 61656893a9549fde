package attendance

import (
	"context"
	"fmt"
	"strings"

	"github.com/phillip-england/dayflow/internal/models"
)

// Decision is HR's verdict on a leave-flagged attendance row.
type Decision int

const (
	Approve Decision = iota + 1
	Reject
)

func ParseDecision(raw string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approve":
		return Approve, nil
	case "reject":
		return Reject, nil
	default:
		return 0, fmt.Errorf("unknown review decision %q", raw)
	}
}

func (d Decision) String() string {
	switch d {
	case Approve:
		return "approve"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("Decision(%d)", int(d))
}

// Status is the attendance status the manual override writes for d.
// Approving a leave day marks it Present; rejecting marks it Absent.
func (d Decision) Status() models.DayStatus {
	if d == Approve {
		return models.DayPresent
	}
	return models.DayAbsent
}

type ManualAPI interface {
	ManualAttendance(ctx context.Context, token string, body models.ManualAttendance) (*models.Attendance, error)
}

type Reviewer struct {
	api ManualAPI
}

func NewReviewer(api ManualAPI) *Reviewer {
	return &Reviewer{api: api}
}

// Review issues the manual attendance override for one employee and date.
// Repeated submissions are not deduplicated.
func (r *Reviewer) Review(ctx context.Context, token string, employeeID int64, date string, d Decision) (*models.Attendance, error) {
	if employeeID <= 0 {
		return nil, fmt.Errorf("employee id is required")
	}
	if strings.TrimSpace(date) == "" {
		return nil, fmt.Errorf("date is required")
	}
	if d != Approve && d != Reject {
		return nil, fmt.Errorf("unknown review decision %d", d)
	}
	return r.api.ManualAttendance(ctx, token, models.ManualAttendance{
		EmployeeID: employeeID,
		Date:       strings.TrimSpace(date),
		Status:     d.Status(),
	})
}
