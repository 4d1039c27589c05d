package leavetype

type CreateLeaveTypeRequest struct {
	Code           string `json:"code" binding:"required,max=30"`
	Name           string `json:"name" binding:"required,max=100"`
	MaxDaysPerYear int    `json:"max_days_per_year" binding:"min=0"`
}

type UpdateLeaveTypeRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	MaxDaysPerYear int    `json:"max_days_per_year" binding:"min=0"`
}

type LeaveTypeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
	IsActive       bool   `json:"is_active"`
}
