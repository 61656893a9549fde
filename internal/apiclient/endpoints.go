package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/phillip-england/dayflow/internal/models"
)

type LoginResponse struct {
	Message      string           `json:"message"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *models.User     `json:"user"`
	Employee     *models.Employee `json:"employee"`
}

type MeResponse struct {
	User     *models.User     `json:"user"`
	Employee *models.Employee `json:"employee"`
}

type AllAttendanceResponse struct {
	Date        string                   `json:"date"`
	Attendances []models.Attendance      `json:"attendances"`
	Summary     models.AttendanceSummary `json:"summary"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	const path = "/auth/login"
	var out LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.Request(ctx, "", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" || out.User == nil {
		return nil, shapeError(http.MethodPost, path, "login response is missing access_token or user")
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.Request(ctx, "", http.MethodPost, "/auth/register", reg, nil)
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const path = "/auth/refresh"
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.Request(ctx, refreshToken, http.MethodPost, path, nil, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", shapeError(http.MethodPost, path, "refresh response is missing access_token")
	}
	return out.AccessToken, nil
}

func (c *Client) Me(ctx context.Context, token string) (*MeResponse, error) {
	var out MeResponse
	if err := c.Request(ctx, token, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyProfile accepts both {"employee": {...}} and a bare employee object.
func (c *Client) MyProfile(ctx context.Context, token string) (*models.Employee, error) {
	const path = "/employees/me"
	var raw json.RawMessage
	if err := c.Request(ctx, token, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	var wrapped struct {
		Employee *models.Employee `json:"employee"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Employee != nil {
		return wrapped.Employee, nil
	}
	var flat models.Employee
	if err := json.Unmarshal(raw, &flat); err != nil || (flat.ID == 0 && flat.FullName() == "") {
		return nil, shapeError(http.MethodGet, path, "profile response has no employee")
	}
	return &flat, nil
}

func (c *Client) AdminStats(ctx context.Context, token string) (*models.AdminStats, error) {
	var out models.AdminStats
	if err := c.Request(ctx, token, http.MethodGet, "/employees/admin/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUsers(ctx context.Context, token string) ([]models.User, error) {
	var out struct {
		Users []models.User `json:"users"`
	}
	if err := c.Request(ctx, token, http.MethodGet, "/employees/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) CheckIn(ctx context.Context, token string) (*models.Attendance, error) {
	return c.punch(ctx, token, "/attendance/checkin")
}

func (c *Client) CheckOut(ctx context.Context, token string) (*models.Attendance, error) {
	return c.punch(ctx, token, "/attendance/checkout")
}

func (c *Client) punch(ctx context.Context, token, path string) (*models.Attendance, error) {
	var out struct {
		Attendance *models.Attendance `json:"attendance"`
	}
	if err := c.Request(ctx, token, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Attendance == nil {
		return nil, shapeError(http.MethodPost, path, "response is missing attendance")
	}
	return out.Attendance, nil
}

// Today returns nil when the employee has no record for the current date.
func (c *Client) Today(ctx context.Context, token string) (*models.Attendance, error) {
	var out struct {
		Attendance *models.Attendance `json:"attendance"`
	}
	if err := c.Request(ctx, token, http.MethodGet, "/attendance/today", nil, &out); err != nil {
		return nil, err
	}
	return out.Attendance, nil
}

func (c *Client) MyHistory(ctx context.Context, token string) ([]models.Attendance, error) {
	var out struct {
		Attendances []models.Attendance `json:"attendances"`
	}
	if err := c.Request(ctx, token, http.MethodGet, "/attendance/my-history", nil, &out); err != nil {
		return nil, err
	}
	return out.Attendances, nil
}

// AllAttendance lists every employee's rows; an empty date lets the backend
// pick today.
func (c *Client) AllAttendance(ctx context.Context, token, date string) (*AllAttendanceResponse, error) {
	path := "/attendance/all"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out AllAttendanceResponse
	if err := c.Request(ctx, token, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ManualAttendance(ctx context.Context, token string, body models.ManualAttendance) (*models.Attendance, error) {
	var out struct {
		Attendance *models.Attendance `json:"attendance"`
	}
	if err := c.Request(ctx, token, http.MethodPost, "/attendance/manual", body, &out); err != nil {
		return nil, err
	}
	return out.Attendance, nil
}

func (c *Client) AllLeaves(ctx context.Context, token string) ([]models.LeaveRequest, error) {
	var out struct {
		Leaves []models.LeaveRequest `json:"leaves"`
	}
	if err := c.Request(ctx, token, http.MethodGet, "/leaves/all", nil, &out); err != nil {
		return nil, err
	}
	return out.Leaves, nil
}
