// Package employee is the directory lookup surface the accounting engine
// reads from. Directory management (onboarding, transfers, offboarding) is
// owned elsewhere; this package never writes.
package employee

import (
	"context"

	"go-hrops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	FindAllByDepartment(ctx context.Context, companyID, departmentID string) ([]Employee, error)
	GetDepartmentName(ctx context.Context, companyID, departmentID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, companyID, departmentID string) ([]Employee, error) {
	var emps []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Where("is_active = ?", true).
		Order("full_name ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) GetDepartmentName(ctx context.Context, companyID, departmentID string) (string, error) {
	var name string
	err := r.db.WithContext(ctx).
		Table("departments").
		Select("name").
		Where("id = ?", departmentID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Scan(&name).Error
	return name, err
}
