package clientapp

import (
	"github.com/phillip-england/dayflow/internal/attendance"
	"github.com/phillip-england/dayflow/internal/models"
)

type pageData struct {
	Title   string
	Error   string
	Message string
	Notice  string
	CSRF    string

	UserName  string
	RoleLabel string
	Nav       []navLink

	Roles      []roleOption
	LeaveTypes []leaveTypeOption

	Today       *attendanceView
	CanCheckIn  bool
	CanCheckOut bool
	DayDone     bool
	History     []attendanceView
	Week        attendance.Summary

	Date       string
	Rows       []attendanceView
	DaySummary models.AttendanceSummary
	LeaveRows  []attendanceView
	Leaves     []leaveView

	Stats models.AdminStats
	Users []userView

	Profile *profileView
}

type roleOption struct {
	Value string
	Label string
}

type leaveTypeOption struct {
	Value string
	Label string
}

type attendanceView struct {
	EmployeeID   int64
	EmployeeName string
	Department   string
	Date         string
	DateDisplay  string
	Status       string
	StatusClass  string
	CheckIn      string
	CheckOut     string
	WorkHours    string
	NeedsReview  bool
}

type leaveView struct {
	EmployeeName string
	LeaveType    string
	Dates        string
	TotalDays    float64
	Reason       string
	Status       string
}

type userView struct {
	ID        int64
	Email     string
	Role      string
	Active    bool
	CreatedAt string
}

type profileView struct {
	Name           string
	EmployeeCode   string
	Email          string
	Phone          string
	Address        string
	Department     string
	Designation    string
	DateOfJoining  string
	EmploymentType string
}

type buttonView struct {
	Label   string
	Variant string
	Name    string
	Value   string
}

type statView struct {
	Title string
	Value any
}

func roleOptions() []roleOption {
	out := make([]roleOption, 0, len(models.Roles))
	for _, role := range models.Roles {
		out = append(out, roleOption{Value: role.String(), Label: role.Label()})
	}
	return out
}

func leaveTypeOptions() []leaveTypeOption {
	out := make([]leaveTypeOption, 0, len(models.LeaveTypes))
	for _, lt := range models.LeaveTypes {
		out = append(out, leaveTypeOption{Value: lt.Value, Label: lt.Label})
	}
	return out
}

func statusClass(status models.DayStatus) string {
	switch status {
	case models.DayPresent:
		return "status-present"
	case models.DayAbsent:
		return "status-absent"
	case models.DayLeave:
		return "status-leave"
	case models.DayHalf:
		return "status-half"
	}
	return "status-other"
}

func toAttendanceView(rec models.Attendance) attendanceView {
	return attendanceView{
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Department:   rec.Department,
		Date:         rec.Date,
		DateDisplay:  formatDateDisplay(rec.Date),
		Status:       rec.Status.String(),
		StatusClass:  statusClass(rec.Status),
		CheckIn:      formatPunchClockDisplay(rec.CheckIn),
		CheckOut:     formatPunchClockDisplay(rec.CheckOut),
		WorkHours:    formatHours(rec.WorkHours),
		NeedsReview:  rec.Status == models.DayLeave,
	}
}

func toAttendanceViews(records []models.Attendance) []attendanceView {
	out := make([]attendanceView, 0, len(records))
	for _, rec := range records {
		out = append(out, toAttendanceView(rec))
	}
	return out
}

func toLeaveViews(leaves []models.LeaveRequest) []leaveView {
	out := make([]leaveView, 0, len(leaves))
	for _, l := range leaves {
		dates := formatDateDisplay(l.StartDate)
		if l.EndDate != "" && l.EndDate != l.StartDate {
			dates += " - " + formatDateDisplay(l.EndDate)
		}
		out = append(out, leaveView{
			EmployeeName: l.EmployeeName,
			LeaveType:    l.LeaveType,
			Dates:        dates,
			TotalDays:    l.TotalDays,
			Reason:       l.Reason,
			Status:       l.Status,
		})
	}
	return out
}

func toUserViews(users []models.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{
			ID:        u.ID,
			Email:     u.Email,
			Role:      u.Role.Label(),
			Active:    u.IsActive,
			CreatedAt: formatDateDisplay(u.CreatedAt),
		})
	}
	return out
}

func toProfileView(e *models.Employee) *profileView {
	if e == nil {
		return nil
	}
	return &profileView{
		Name:           displayName(e.FirstName, e.LastName),
		EmployeeCode:   e.EmployeeCode,
		Email:          e.Email,
		Phone:          e.Phone,
		Address:        e.Address,
		Department:     e.Department,
		Designation:    e.Designation,
		DateOfJoining:  formatDateDisplay(e.DateOfJoining),
		EmploymentType: e.EmploymentType,
	}
}
