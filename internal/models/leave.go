package models

type LeaveRequest struct {
	ID           int64   `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    float64 `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// LeaveTypes are the choices offered on the leave application form.
var LeaveTypes = []struct {
	Value string
	Label string
}{
	{Value: "sick", Label: "Sick Leave"},
	{Value: "vacation", Label: "Vacation"},
	{Value: "personal", Label: "Personal Leave"},
	{Value: "emergency", Label: "Emergency Leave"},
}
