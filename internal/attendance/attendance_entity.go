package attendance

import (
	"time"

	"github.com/google/uuid"
)

type Attendance struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`

	EmployeeID     uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	AttendanceDate time.Time `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`

	// ClockIn/ClockOut are nil for rows written by leave backfill or holiday
	// import. WorkHours is derived at clock-out.
	ClockIn   *time.Time `gorm:"column:clock_in;type:timestamptz"`
	ClockOut  *time.Time `gorm:"column:clock_out;type:timestamptz"`
	WorkHours *float64   `gorm:"column:work_hours;type:numeric(5,2)"`

	Source string  `gorm:"column:source;type:varchar(30);not null;default:MANUAL"`
	Notes  *string `gorm:"column:notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
