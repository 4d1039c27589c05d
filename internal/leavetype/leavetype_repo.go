package leavetype

import (
	"context"
	"database/sql"

	"go-hrops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAllByCompany(ctx context.Context, companyID string, includeInactive bool) ([]LeaveType, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error)
	FindByCodeAndCompany(ctx context.Context, companyID, code string) (*LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, includeInactive bool) ([]LeaveType, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID))
	if !includeInactive {
		db = db.Where("is_active = ?", true)
	}

	var types []LeaveType
	err := db.Order("code ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) FindByCodeAndCompany(ctx context.Context, companyID, code string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&lt, "code = ?", code).Error
	return &lt, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}
