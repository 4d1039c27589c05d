package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_type_company_code"`

	Code           string `gorm:"type:varchar(30);not null;uniqueIndex:uq_leave_type_company_code"`
	Name           string `gorm:"type:varchar(100);not null"`
	MaxDaysPerYear int    `gorm:"type:int;not null;default:0"`
	IsActive       bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
