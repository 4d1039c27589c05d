package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_company_status"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	// TotalDays is the count of Monday-Friday days in [StartDate, EndDate],
	// fixed at submission. This is the amount the balance ledger is debited
	// at approval.
	TotalDays int    `gorm:"type:int;not null"`
	Reason    string `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`

	LeaveType *LeaveTypeRef `gorm:"foreignKey:LeaveTypeID;references:ID"`
	Employee  *EmployeeRef  `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

type LeaveTypeRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"column:code"`
	Name string    `gorm:"column:name"`
}

func (LeaveTypeRef) TableName() string {
	return "leave_types"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
