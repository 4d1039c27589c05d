package events

import "time"

const (
	LeaveLifecycleTopic    = "hr.leave.lifecycle.v1"
	LeaveApprovedEventType = "leave.approved"
)

// LeaveApprovedEvent is emitted through the outbox when a leave request
// reaches APPROVED. Downstream consumers (payroll, notifications) read it
// from the lifecycle topic.
type LeaveApprovedEvent struct {
	EventType     string    `json:"event_type"`
	LeaveID       string    `json:"leave_id"`
	CompanyID     string    `json:"company_id"`
	EmployeeID    string    `json:"employee_id"`
	LeaveTypeCode string    `json:"leave_type_code"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	TotalDays     int       `json:"total_days"`
	ApprovedBy    string    `json:"approved_by"`
	OccurredAt    time.Time `json:"occurred_at"`
}
