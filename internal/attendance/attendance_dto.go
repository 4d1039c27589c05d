package attendance

type MarkPresentRequest struct {
	Source string  `json:"source"`
	Notes  *string `json:"notes"`
}

type ClockOutRequest struct {
	Notes *string `json:"notes"`
}

type CorrectRequest struct {
	Status string `json:"status" binding:"required"`
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	Status         string   `json:"status"`
	ClockIn        *string  `json:"clock_in,omitempty"`
	ClockOut       *string  `json:"clock_out,omitempty"`
	WorkHours      *float64 `json:"work_hours,omitempty"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}

type SummaryResponse struct {
	EmployeeID           string  `json:"employee_id"`
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	WorkingDays          int     `json:"working_days"`
	PresentDays          int     `json:"present_days"`
	LeaveDays            int     `json:"leave_days"`
	AbsentDays           int     `json:"absent_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	TotalWorkHours       float64 `json:"total_work_hours"`
}
