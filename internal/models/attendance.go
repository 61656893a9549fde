package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DayStatus is the backend's per-day attendance classification.
type DayStatus string

const (
	DayPresent DayStatus = "Present"
	DayAbsent  DayStatus = "Absent"
	DayLeave   DayStatus = "Leave"
	DayHalf    DayStatus = "Half-day"
)

func ParseDayStatus(raw string) (DayStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "present":
		return DayPresent, nil
	case "absent":
		return DayAbsent, nil
	case "leave":
		return DayLeave, nil
	case "half-day", "halfday", "half day":
		return DayHalf, nil
	default:
		return "", fmt.Errorf("unknown attendance status %q", raw)
	}
}

func (s DayStatus) String() string { return string(s) }

// UnmarshalJSON normalises the status spelling. Unknown values are kept
// verbatim so a view can still show them.
func (s *DayStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseDayStatus(raw); err == nil {
		*s = parsed
		return nil
	}
	*s = DayStatus(raw)
	return nil
}

// Attendance mirrors the backend attendance row. CheckIn and CheckOut are
// "HH:MM:SS" strings and nil when the punch has not happened.
type Attendance struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Department   string    `json:"department,omitempty"`
	Date         string    `json:"date"`
	Status       DayStatus `json:"status"`
	CheckIn      *string   `json:"check_in"`
	CheckOut     *string   `json:"check_out"`
	WorkHours    *float64  `json:"work_hours"`
	Notes        *string   `json:"notes"`
}

func (a Attendance) HasCheckIn() bool {
	return a.CheckIn != nil && strings.TrimSpace(*a.CheckIn) != ""
}

func (a Attendance) HasCheckOut() bool {
	return a.CheckOut != nil && strings.TrimSpace(*a.CheckOut) != ""
}

// AttendanceSummary is the per-day rollup returned next to /attendance/all.
type AttendanceSummary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
	OnLeave int `json:"on_leave"`
}

// ManualAttendance is the HR override body for POST /attendance/manual.
type ManualAttendance struct {
	EmployeeID int64     `json:"employee_id"`
	Date       string    `json:"date"`
	Status     DayStatus `json:"status"`
}
