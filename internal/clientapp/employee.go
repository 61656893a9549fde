package clientapp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phillip-england/dayflow/internal/apiclient"
	"github.com/phillip-england/dayflow/internal/attendance"
	"github.com/phillip-england/dayflow/internal/models"
)

const recentHistoryRows = 5

func (s *server) employeeDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.page(r, "Dashboard", "/dashboard")
	token := s.token(r)

	me, err := s.api.Me(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load account failed", err)
		data.Notice = failedToLoad("your account")
	} else if me.Employee != nil {
		data.Profile = toProfileView(me.Employee)
		data.UserName = data.Profile.Name
	}

	rec, status, err := s.tracker.Today(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load today's attendance failed", err)
		data.Notice = failedToLoad("attendance")
	} else {
		s.applyStatus(&data, rec, status)
	}

	history, err := s.api.MyHistory(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load attendance history failed", err)
		data.Notice = failedToLoad("attendance")
		history = nil
	}
	data.Week = attendance.Summarize(attendance.Week(history, s.now()))
	if len(history) > recentHistoryRows {
		history = history[:recentHistoryRows]
	}
	data.History = toAttendanceViews(history)

	s.render(w, r, s.dashboardTmpl, data)
}

func (s *server) employeeAttendancePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.page(r, "My Attendance", "/employee-attendance")
	token := s.token(r)

	rec, status, err := s.tracker.Today(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load today's attendance failed", err)
		data.Notice = failedToLoad("attendance")
	} else {
		s.applyStatus(&data, rec, status)
	}

	history, err := s.api.MyHistory(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load attendance history failed", err)
		data.Notice = failedToLoad("attendance")
		history = nil
	}
	data.History = toAttendanceViews(history)

	s.render(w, r, s.employeeAttendanceTmpl, data)
}

// applyStatus exposes exactly the control the current state allows.
func (s *server) applyStatus(data *pageData, rec *models.Attendance, status attendance.Status) {
	if rec != nil {
		view := toAttendanceView(*rec)
		data.Today = &view
	}
	data.CanCheckIn = status.CanCheckIn()
	data.CanCheckOut = status.CanCheckOut()
	data.DayDone = status.Done()
}

func (s *server) checkIn(w http.ResponseWriter, r *http.Request) {
	s.punch(w, r, attendance.ActionCheckIn)
}

func (s *server) checkOut(w http.ResponseWriter, r *http.Request) {
	s.punch(w, r, attendance.ActionCheckOut)
}

func (s *server) punch(w http.ResponseWriter, r *http.Request, action attendance.Action) {
	const back = "/employee-attendance"
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.validForm(r) {
		redirectError(w, r, back, "Your form expired. Please try again.")
		return
	}

	var (
		rec *models.Attendance
		err error
	)
	switch action {
	case attendance.ActionCheckIn:
		rec, err = s.tracker.CheckIn(r.Context(), s.token(r))
	case attendance.ActionCheckOut:
		rec, err = s.tracker.CheckOut(r.Context(), s.token(r))
	}
	if s.gone(r) {
		return
	}
	if err != nil {
		s.logFailure(r, action.String()+" failed", err)
		redirectError(w, r, back, punchErrorMessage(action, err))
		return
	}

	switch action {
	case attendance.ActionCheckIn:
		redirectMessage(w, r, back, "Checked in at "+formatPunchClockDisplay(rec.CheckIn))
	case attendance.ActionCheckOut:
		redirectMessage(w, r, back, "Checked out at "+formatPunchClockDisplay(rec.CheckOut))
	}
}

func punchErrorMessage(action attendance.Action, err error) string {
	if errors.Is(err, attendance.ErrInvalidTransition) {
		switch action {
		case attendance.ActionCheckIn:
			return "You have already checked in today"
		case attendance.ActionCheckOut:
			return "You need to check in before checking out"
		}
	}
	if errors.Is(err, attendance.ErrInconsistentRecord) {
		return "The attendance service returned an unexpected record"
	}
	switch action {
	case attendance.ActionCheckIn:
		return apiclient.MessageOf(err, "Check-in failed")
	default:
		return apiclient.MessageOf(err, "Check-out failed")
	}
}

func (s *server) exportHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	history, err := s.api.MyHistory(r.Context(), s.token(r))
	if s.gone(r) {
		return
	}
	if err != nil {
		s.logFailure(r, "export attendance history failed", err)
		redirectError(w, r, "/employee-attendance", apiclient.MessageOf(err, "Unable to export attendance"))
		return
	}
	s.writeAttendanceWorkbook(w, r, "History", "attendance-history.xlsx", history, false)
}

func (s *server) leaveRoute(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data := s.page(r, "Leave Management", "/leave")
		data.LeaveTypes = leaveTypeOptions()
		s.render(w, r, s.leaveTmpl, data)
	case http.MethodPost:
		s.submitLeave(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// submitLeave validates the form and discards it; the backend exposes no
// endpoint for employees to file requests.
func (s *server) submitLeave(w http.ResponseWriter, r *http.Request) {
	if !s.validForm(r) {
		redirectError(w, r, "/leave", "Your form expired. Please try again.")
		return
	}
	leaveType := strings.TrimSpace(r.PostFormValue("leave_type"))
	start, okStart := validDateParam(r.PostFormValue("start_date"))
	end, okEnd := validDateParam(r.PostFormValue("end_date"))
	if leaveType == "" || !okStart || !okEnd {
		redirectError(w, r, "/leave", "Leave type, start date and end date are required")
		return
	}
	if end < start {
		redirectError(w, r, "/leave", "End date must not be before start date")
		return
	}
	s.logger.Info("leave form submitted", "type", leaveType, "start", start, "end", end)
	redirectMessage(w, r, "/leave", "Leave request submitted successfully!")
}
