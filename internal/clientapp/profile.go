package clientapp

import "net/http"

func (s *server) profilePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := s.page(r, "My Profile", "/profile")

	employee, err := s.api.MyProfile(r.Context(), s.token(r))
	if err != nil {
		s.logFailure(r, "load profile failed", err)
		data.Notice = failedToLoad("profile")
	} else {
		data.Profile = toProfileView(employee)
	}

	s.render(w, r, s.profileTmpl, data)
}
