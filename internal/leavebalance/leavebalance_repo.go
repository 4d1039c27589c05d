package leavebalance

import (
	"context"
	"database/sql"

	"go-hrops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	FindByKey(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string) (*LeaveBalance, error)
	// DebitConditional increments used by days only when the result stays
	// within the allocation. Returns true when a row was updated. The check
	// and the increment execute as one statement, so concurrent debits on the
	// same row cannot both pass the check against a stale read.
	DebitConditional(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) (bool, error)
	// CreditFloored decrements used by days, floored at zero. Returns true
	// when a row was updated (row exists).
	CreditFloored(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) (bool, error)
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Preload("LeaveType").
		Order("created_at ASC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) FindByKey(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Where("leave_type_id = ?", leaveTypeID).
		First(&b).Error
	return &b, err
}

func (r *repository) DebitConditional(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Where("leave_type_id = ?", leaveTypeID).
		Where("used + ? <= allocated", days).
		Update("used", gorm.Expr("used + ?", days))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CreditFloored(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("year = ?", year).
		Where("leave_type_id = ?", leaveTypeID).
		Update("used", gorm.Expr("GREATEST(used - ?, 0)", days))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
