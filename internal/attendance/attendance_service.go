package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/shared/clock"
	"go-hrops/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusOnLeave = "ON_LEAVE"
	StatusHoliday = "HOLIDAY"

	SourceManual        = "MANUAL"
	SourceLogin         = "LOGIN"
	SourceLeaveApproval = "LEAVE_APPROVAL"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// MarkPresent records the caller as present for the current day. Calling
	// it again the same day returns the existing record unchanged, so it is
	// safe to invoke on every login.
	MarkPresent(ctx context.Context, companyID, employeeID string, req MarkPresentRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	Correct(ctx context.Context, companyID, recordID string, req CorrectRequest) (AttendanceResponse, error)
	Query(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceResponse, error)
	Summarize(ctx context.Context, companyID, employeeID string, month time.Month, year int) (SummaryResponse, error)

	// EnsureOnLeave backfills ON_LEAVE rows for the given days, skipping days
	// that already have a record. Returns the days it actually created so the
	// caller can compensate on a later failure.
	EnsureOnLeave(ctx context.Context, companyID, employeeID string, days []time.Time) ([]time.Time, error)
	// RemoveBackfill deletes rows previously created by EnsureOnLeave.
	RemoveBackfill(ctx context.Context, companyID, employeeID string, days []time.Time) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	clock  clock.Clock
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, clk clock.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, clock: clk, logger: l}
}

func (s *service) MarkPresent(ctx context.Context, companyID, employeeID string, req MarkPresentRequest) (AttendanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark present begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := s.clock.Now()
	today := dateutil.Truncate(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if err == nil {
		// Already marked (present, on leave, or holiday): the first write
		// wins and later marks are no-ops.
		return mapToResponse(*existing), nil
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeID:     employeeUUID,
		AttendanceDate: today,
		Status:         StatusPresent,
		ClockIn:        &now,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		if isDuplicateDay(err) {
			// Lost the insert race; the winner's record is the day's record.
			winner, findErr := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
			if findErr != nil {
				return AttendanceResponse{}, findErr
			}
			return mapToResponse(*winner), nil
		}
		s.logger.Error("mark present persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark present commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark present success",
		zap.String("employee_id", employeeID),
		zap.String("attendance_date", today.Format("2006-01-02")),
	)
	return mapToResponse(*row), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("clock out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := s.clock.Now()
	today := dateutil.Truncate(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoOpenRecord
		}
		return AttendanceResponse{}, err
	}
	if row.Status != StatusPresent || row.ClockIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotPresentRecord
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClosed
	}

	row.ClockOut = &now
	hours := roundHours(now.Sub(*row.ClockIn))
	row.WorkHours = &hours
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("clock out persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("clock out commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("employee_id", employeeID),
		zap.Float64("work_hours", hours),
	)
	return mapToResponse(*row), nil
}

func (s *service) Correct(ctx context.Context, companyID, recordID string, req CorrectRequest) (AttendanceResponse, error) {
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	switch status {
	case StatusPresent, StatusOnLeave, StatusHoliday:
	default:
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("correct attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, companyID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrRecordNotFound
		}
		return AttendanceResponse{}, err
	}

	row.Status = status

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("correct attendance persist failed",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("correct attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("correct attendance success",
		zap.String("record_id", recordID),
		zap.String("status", status),
	)
	return mapToResponse(*row), nil
}

func (s *service) Query(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]AttendanceResponse, error) {
	if from.After(to) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, companyID, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		resp[i] = mapToResponse(r)
	}
	return resp, nil
}

// Summarize computes the monthly attendance statistics. ON_LEAVE days count as
// present: approved leave is paid presence, and the same policy applies to the
// department report so the two endpoints never diverge.
func (s *service) Summarize(ctx context.Context, companyID, employeeID string, month time.Month, year int) (SummaryResponse, error) {
	if month < time.January || month > time.December {
		return SummaryResponse{}, attendanceerrors.ErrInvalidMonth
	}

	first, last := dateutil.MonthBounds(month, year)
	workingDays := dateutil.CountWorkingDays(first, last)

	rows, err := s.repo.FindByEmployeeAndRange(ctx, companyID, employeeID, first, last)
	if err != nil {
		return SummaryResponse{}, err
	}

	today := dateutil.Truncate(s.clock.Now())

	presentDays := 0
	leaveDays := 0
	totalHours := decimal.Zero
	for _, r := range rows {
		day := dateutil.Truncate(r.AttendanceDate)

		// Today's still-open check-in is not yet a complete day: it stays in
		// the working-day denominator but not in the present-day numerator.
		inProgress := r.Status == StatusPresent && day.Equal(today) && r.ClockOut == nil

		switch r.Status {
		case StatusPresent:
			if !inProgress {
				presentDays++
			}
		case StatusOnLeave:
			presentDays++
			leaveDays++
		}

		if r.WorkHours != nil {
			totalHours = totalHours.Add(decimal.NewFromFloat(*r.WorkHours))
		}
	}

	absentDays := workingDays - presentDays
	if absentDays < 0 {
		absentDays = 0
	}

	percentage := 0.0
	if workingDays > 0 {
		percentage = decimal.NewFromInt(int64(presentDays * 100)).
			Div(decimal.NewFromInt(int64(workingDays))).
			Round(2).
			InexactFloat64()
	}

	return SummaryResponse{
		EmployeeID:           employeeID,
		Month:                int(month),
		Year:                 year,
		WorkingDays:          workingDays,
		PresentDays:          presentDays,
		LeaveDays:            leaveDays,
		AbsentDays:           absentDays,
		AttendancePercentage: percentage,
		TotalWorkHours:       totalHours.Round(2).InexactFloat64(),
	}, nil
}

func (s *service) EnsureOnLeave(ctx context.Context, companyID, employeeID string, days []time.Time) ([]time.Time, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidEmployeeID
	}

	var created []time.Time
	for _, day := range days {
		day = dateutil.Truncate(day)

		_, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
		if err == nil {
			// The day already has a record (e.g., the employee checked in).
			// Leave approval augments attendance, it never overwrites it.
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, err
		}

		row := &Attendance{
			ID:             uuid.New(),
			CompanyID:      companyUUID,
			EmployeeID:     employeeUUID,
			AttendanceDate: day,
			Status:         StatusOnLeave,
			Source:         SourceLeaveApproval,
		}
		if err := s.repo.Create(ctx, row); err != nil {
			if isDuplicateDay(err) {
				continue
			}
			return created, err
		}
		created = append(created, day)
	}

	s.logger.Debug("leave backfill done",
		zap.String("employee_id", employeeID),
		zap.Int("requested_days", len(days)),
		zap.Int("created_days", len(created)),
	)
	return created, nil
}

func (s *service) RemoveBackfill(ctx context.Context, companyID, employeeID string, days []time.Time) error {
	return s.repo.DeleteByEmployeeAndDates(ctx, companyID, employeeID, days)
}

func isDuplicateDay(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_employee_date"
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_attendance_employee_date")
}

func roundHours(d time.Duration) float64 {
	return decimal.NewFromFloat(d.Hours()).Round(2).InexactFloat64()
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		EmployeeID:     a.EmployeeID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		Status:         a.Status,
		WorkHours:      a.WorkHours,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.ClockIn != nil {
		v := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
