package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phillip-england/dayflow/internal/models"
)

func TestRequestAttachesBearerTokenOnlyWhenPresent(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has := r.Header["Authorization"]
		if has {
			seen = append(seen, r.Header.Get("Authorization"))
		} else {
			seen = append(seen, "<none>")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	if err := client.Request(context.Background(), "abc123", http.MethodGet, "/auth/me", nil, nil); err != nil {
		t.Fatalf("request with token: %v", err)
	}
	if err := client.Request(context.Background(), "", http.MethodGet, "/auth/me", nil, nil); err != nil {
		t.Fatalf("request without token: %v", err)
	}
	if len(seen) != 2 || seen[0] != "Bearer abc123" || seen[1] != "<none>" {
		t.Fatalf("unexpected Authorization headers: %v", seen)
	}
}

func TestRequestSerializesJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		raw, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	var echoed map[string]string
	err := New(srv.URL, time.Second).Request(context.Background(), "", http.MethodPost, "/echo", map[string]string{"hello": "world"}, &echoed)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if echoed["hello"] != "world" {
		t.Fatalf("unexpected echo: %v", echoed)
	}
}

func TestRequestSurfacesErrorPayloadVerbatim(t *testing.T) {
	payload := `{"error":"Already checked in today","code":42}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Request(context.Background(), "t", http.MethodPost, "/attendance/checkin", nil, nil)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T %v", err, err)
	}
	if apiErr.Kind != KindStatus || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if string(apiErr.Payload) != payload {
		t.Fatalf("payload = %s, want %s", apiErr.Payload, payload)
	}
	if apiErr.Message() != "Already checked in today" {
		t.Fatalf("unexpected message %q", apiErr.Message())
	}
	if MessageOf(err, "fallback") != "Already checked in today" {
		t.Fatalf("MessageOf did not use the payload")
	}
}

func TestRequestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, time.Second).Request(context.Background(), "", http.MethodGet, "/auth/me", nil, nil)
	if KindOf(err) != KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if MessageOf(err, "fallback") != "fallback" {
		t.Fatalf("expected fallback message for transport failures")
	}
}

func TestRequestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New(srv.URL, time.Second).Request(ctx, "", http.MethodGet, "/attendance/today", nil, nil)
	if KindOf(err) != KindTransport || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled transport error, got %v", err)
	}
}

func TestLoginRequiresTokenAndUser(t *testing.T) {
	body := `{"message":"Login successful","user":{"id":1,"role":"HR"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Login(context.Background(), "a@b.c", "pw")
	if KindOf(err) != KindShape {
		t.Fatalf("expected shape error, got %v", err)
	}

	body = `{"access_token":"A","refresh_token":"R","user":{"id":1,"role":"HR"},"employee":{"first_name":"Hana","last_name":"Lee"}}`
	resp, err := New(srv.URL, time.Second).Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.Role != models.RoleHR || resp.Employee.FullName() != "Hana Lee" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestManualAttendanceBody(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/attendance/manual" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"attendance":{"employee_id":7,"date":"2024-06-01","status":"Present"}}`))
	}))
	defer srv.Close()

	rec, err := New(srv.URL+"/api/", time.Second).ManualAttendance(context.Background(), "t", models.ManualAttendance{
		EmployeeID: 7,
		Date:       "2024-06-01",
		Status:     models.DayPresent,
	})
	if err != nil {
		t.Fatalf("manual attendance: %v", err)
	}
	if got["employee_id"] != float64(7) || got["date"] != "2024-06-01" || got["status"] != "Present" {
		t.Fatalf("unexpected body: %v", got)
	}
	if rec.Status != models.DayPresent {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestAllAttendanceDateQueryAndTodayNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/attendance/all":
			if r.URL.Query().Get("date") != "2024-06-01" {
				t.Errorf("missing date filter: %s", r.URL.RawQuery)
			}
			_, _ = w.Write([]byte(`{"date":"2024-06-01","attendances":[{"id":1,"employee_id":7,"status":"Leave"}],"summary":{"total":1,"on_leave":1}}`))
		case "/attendance/today":
			_, _ = w.Write([]byte(`{"attendance":null}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second)
	all, err := client.AllAttendance(context.Background(), "t", "2024-06-01")
	if err != nil {
		t.Fatalf("all attendance: %v", err)
	}
	if len(all.Attendances) != 1 || all.Attendances[0].Status != models.DayLeave || all.Summary.OnLeave != 1 {
		t.Fatalf("unexpected response: %+v", all)
	}
	today, err := client.Today(context.Background(), "t")
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if today != nil {
		t.Fatalf("expected nil record, got %+v", today)
	}
}

func TestMyProfileAcceptsWrappedAndFlatShapes(t *testing.T) {
	body := `{"employee":{"id":3,"first_name":"Ana","last_name":"Ng"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()
	client := New(srv.URL, time.Second)

	emp, err := client.MyProfile(context.Background(), "t")
	if err != nil || emp.FullName() != "Ana Ng" {
		t.Fatalf("wrapped profile: %+v %v", emp, err)
	}
	body = `{"id":4,"first_name":"Bo","last_name":"Ek"}`
	emp, err = client.MyProfile(context.Background(), "t")
	if err != nil || emp.ID != 4 {
		t.Fatalf("flat profile: %+v %v", emp, err)
	}
	body = `{}`
	if _, err := client.MyProfile(context.Background(), "t"); KindOf(err) != KindShape {
		t.Fatalf("expected shape error, got %v", err)
	}
}
