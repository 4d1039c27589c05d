package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

type LeaveBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_employee_year_type"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:uq_leave_balance_employee_year_type"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balance_employee_year_type"`

	// Invariant enforced by the conditional updates in the repository:
	// 0 <= Used <= Allocated after every mutation.
	Allocated int `gorm:"type:int;not null;default:0"`
	Used      int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	LeaveType *LeaveTypeRef `gorm:"foreignKey:LeaveTypeID;references:ID"`
}

func (LeaveBalance) TableName() string {
	return "leave_balances"
}

type LeaveTypeRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"column:code"`
	Name string    `gorm:"column:name"`
}

func (LeaveTypeRef) TableName() string {
	return "leave_types"
}
