package report

type MemberReport struct {
	EmployeeID           string  `json:"employee_id"`
	FullName             string  `json:"full_name"`
	WorkingDays          int     `json:"working_days"`
	PresentDays          int     `json:"present_days"`
	LeaveDays            int     `json:"leave_days"`
	AbsentDays           int     `json:"absent_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	TotalWorkHours       float64 `json:"total_work_hours"`
	LeaveAllocated       int     `json:"leave_allocated"`
	LeaveUsed            int     `json:"leave_used"`
	// Degraded marks a member whose sub-queries failed. The row carries
	// zeroes instead of aborting the whole report.
	Degraded bool `json:"degraded,omitempty"`
}

type DepartmentReport struct {
	DepartmentID         string         `json:"department_id"`
	DepartmentName       string         `json:"department_name"`
	Month                int            `json:"month"`
	Year                 int            `json:"year"`
	MemberCount          int            `json:"member_count"`
	AveragePercentage    float64        `json:"average_percentage"`
	TotalWorkHours       float64        `json:"total_work_hours"`
	TotalLeaveDaysTaken  int            `json:"total_leave_days_taken"`
	Members              []MemberReport `json:"members"`
}
