package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Leave, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	// HasOverlappingRequest reports whether any PENDING or APPROVED request
	// for the employee intersects [startDate, endDate] inclusive.
	HasOverlappingRequest(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	// UpdateStatusIfPending flips the request out of PENDING with a
	// conditional update. Returns false when the request was not pending,
	// which is how a second concurrent resolver loses the race.
	UpdateStatusIfPending(ctx context.Context, companyID, id string, fields map[string]any) (bool, error)
	// DeleteIfPendingOwned removes a pending request owned by employeeID.
	// Returns false when no such row matched.
	DeleteIfPendingOwned(ctx context.Context, companyID, id, employeeID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		Preload("Employee").
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Preload("LeaveType").
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("LeaveType").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) HasOverlappingRequest(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdateStatusIfPending(ctx context.Context, companyID, id string, fields map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) DeleteIfPendingOwned(ctx context.Context, companyID, id, employeeID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusPending).
		Delete(&Leave{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
