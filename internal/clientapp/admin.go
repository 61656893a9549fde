package clientapp

import "net/http"

func (s *server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.page(r, "Admin Dashboard", "/admin-dashboard")
	token := s.token(r)

	stats, err := s.api.AdminStats(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load admin stats failed", err)
		data.Notice = failedToLoad("statistics")
	} else {
		data.Stats = *stats
	}

	users, err := s.api.AdminUsers(r.Context(), token)
	if err != nil {
		s.logFailure(r, "load users failed", err)
		data.Notice = failedToLoad("users")
	}
	data.Users = toUserViews(users)

	s.render(w, r, s.adminTmpl, data)
}
