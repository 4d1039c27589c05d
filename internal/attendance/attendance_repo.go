package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrops/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error)
	FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error)
	FindByID(ctx context.Context, companyID, id string) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	DeleteByEmployeeAndDates(ctx context.Context, companyID, employeeID string, dates []time.Time) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date >= ?", from.Format("2006-01-02")).
		Where("attendance_date <= ?", to.Format("2006-01-02")).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// DeleteByEmployeeAndDates removes the given day rows. Only the leave
// workflow's backfill compensation uses this; attendance rows are otherwise
// never deleted.
func (r *repository) DeleteByEmployeeAndDates(ctx context.Context, companyID, employeeID string, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	days := make([]string, len(dates))
	for i, d := range dates {
		days[i] = d.Format("2006-01-02")
	}

	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("attendance_date IN ?", days).
		Delete(&Attendance{}).Error
}
