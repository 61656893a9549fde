package models

import "strings"

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type Employee struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	EmployeeCode   string `json:"employee_code"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Department     string `json:"department"`
	Designation    string `json:"designation"`
	DateOfJoining  string `json:"date_of_joining"`
	EmploymentType string `json:"employment_type"`
	Role           Role   `json:"role"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

type AdminStats struct {
	TotalUsers             int `json:"total_users"`
	TotalEmployees         int `json:"total_employees"`
	TotalAttendanceRecords int `json:"total_attendance_records"`
}

// Registration is the sign-up payload for POST /auth/register.
type Registration struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfJoining string `json:"date_of_joining"`
	Role          Role   `json:"role"`
}
