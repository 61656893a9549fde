package clientapp

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phillip-england/dayflow/internal/apiclient"
	"github.com/phillip-england/dayflow/internal/attendance"
)

func (s *server) hrDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.page(r, "HR Dashboard", "/hr-dashboard")
	token := s.token(r)

	day, err := s.api.AllAttendance(r.Context(), token, "")
	if err != nil {
		s.logFailure(r, "load today's attendance failed", err)
		data.Notice = failedToLoad("attendance")
	} else {
		data.Date = day.Date
		data.DaySummary = day.Summary
		data.LeaveRows = toAttendanceViews(attendance.NeedsReview(day.Attendances))
	}

	leaves, err := s.api.AllLeaves(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load leave requests failed", err)
		data.Notice = failedToLoad("leave requests")
	}
	data.Leaves = toLeaveViews(leaves)

	s.render(w, r, s.hrDashboardTmpl, data)
}

func (s *server) hrAttendancePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.page(r, "Attendance Control", "/hr-attendance")
	date, _ := validDateParam(r.URL.Query().Get("date"))

	day, err := s.api.AllAttendance(r.Context(), s.token(r), date)
	if err != nil {
		s.logFailure(r, "load attendance failed", err)
		data.Notice = failedToLoad("attendance")
		data.Date = date
		data.Rows = []attendanceView{}
	} else {
		data.Date = day.Date
		data.DaySummary = day.Summary
		data.Rows = toAttendanceViews(day.Attendances)
	}
	if data.Date == "" {
		data.Date = todayISO(s.now())
	}

	s.render(w, r, s.hrAttendanceTmpl, data)
}

// hrReview applies an approve/reject decision as a manual attendance
// override and sends HR back to the refreshed list.
func (s *server) hrReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.validForm(r) {
		redirectError(w, r, "/hr-attendance", "Your form expired. Please try again.")
		return
	}

	back := "/hr-attendance"
	if d, ok := validDateParam(r.PostFormValue("list_date")); ok {
		back += "?date=" + url.QueryEscape(d)
	}

	employeeID, err := strconv.ParseInt(strings.TrimSpace(r.PostFormValue("employee_id")), 10, 64)
	if err != nil || employeeID <= 0 {
		redirectError(w, r, back, "Invalid employee")
		return
	}
	date, ok := validDateParam(r.PostFormValue("date"))
	if !ok {
		redirectError(w, r, back, "Invalid date")
		return
	}
	decision, err := attendance.ParseDecision(r.PostFormValue("decision"))
	if err != nil {
		redirectError(w, r, back, "Invalid decision")
		return
	}

	_, err = s.reviewer.Review(r.Context(), s.token(r), employeeID, date, decision)
	if s.gone(r) {
		return
	}
	if err != nil {
		s.logFailure(r, "attendance review failed", err)
		redirectError(w, r, back, apiclient.MessageOf(err, "Unable to update attendance"))
		return
	}
	s.logger.Info("attendance reviewed", "employee_id", employeeID, "date", date, "decision", decision.String())
	redirectMessage(w, r, back, "Attendance marked "+decision.Status().String())
}

func (s *server) exportDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	date, _ := validDateParam(r.URL.Query().Get("date"))
	day, err := s.api.AllAttendance(r.Context(), s.token(r), date)
	if s.gone(r) {
		return
	}
	if err != nil {
		s.logFailure(r, "export attendance failed", err)
		redirectError(w, r, "/hr-attendance", apiclient.MessageOf(err, "Unable to export attendance"))
		return
	}
	name := "attendance.xlsx"
	if day.Date != "" {
		name = "attendance-" + day.Date + ".xlsx"
	}
	s.writeAttendanceWorkbook(w, r, "Attendance", name, day.Attendances, true)
}
