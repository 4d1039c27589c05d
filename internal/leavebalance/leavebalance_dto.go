package leavebalance

type SeedBalancesRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
}

type AdjustBalanceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,min=2000,max=2100"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Days        int    `json:"days" binding:"required,min=1"`
	Direction   string `json:"direction" binding:"required,oneof=credit debit"`
}

type BalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	Year          int    `json:"year"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeCode string `json:"leave_type_code,omitempty"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Allocated     int    `json:"allocated"`
	Used          int    `json:"used"`
	Remaining     int    `json:"remaining"`
}
