package leavebalance

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	leavebalanceerrors "go-hrops/internal/leavebalance/errors"
	"go-hrops/internal/leavetype"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	// EnsureSeeded creates a balance row for every active leave type that
	// lacks one for (employee, year). Safe to call redundantly and
	// concurrently; the unique constraint resolves seeding races.
	EnsureSeeded(ctx context.Context, companyID, employeeID string, year int) error
	GetByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error)
	// Debit charges days against a balance row; fails with
	// InsufficientBalance when the row would exceed its allocation and leaves
	// the row unchanged.
	Debit(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) error
	// Credit returns days to a balance row, floored at zero. Admin correction
	// path and the compensation step of leave-approval rollback.
	Credit(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) error
	Adjust(ctx context.Context, companyID string, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	typeRepo leavetype.Repository
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, typeRepo leavetype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, typeRepo: typeRepo, logger: l}
}

func (s *service) EnsureSeeded(ctx context.Context, companyID, employeeID string, year int) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return leavebalanceerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return leavebalanceerrors.ErrInvalidEmployeeID
	}

	types, err := s.typeRepo.FindAllByCompany(ctx, companyID, false)
	if err != nil {
		s.logger.Error("seed balances list leave types failed", zap.Error(err))
		return err
	}

	existing, err := s.repo.FindByEmployeeAndYear(ctx, companyID, employeeID, year)
	if err != nil {
		s.logger.Error("seed balances list existing failed", zap.Error(err))
		return err
	}
	seeded := make(map[uuid.UUID]struct{}, len(existing))
	for _, b := range existing {
		seeded[b.LeaveTypeID] = struct{}{}
	}

	for _, lt := range types {
		if _, ok := seeded[lt.ID]; ok {
			continue
		}

		b := &LeaveBalance{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  employeeUUID,
			Year:        year,
			LeaveTypeID: lt.ID,
			Allocated:   lt.MaxDaysPerYear,
			Used:        0,
		}
		if err := s.repo.Create(ctx, b); err != nil {
			if isDuplicateBalance(err) {
				// Another caller seeded this row between our read and write.
				continue
			}
			s.logger.Error("seed balances create failed",
				zap.String("employee_id", employeeID),
				zap.String("leave_type_id", lt.ID.String()),
				zap.Error(err),
			)
			return err
		}
	}

	s.logger.Debug("seed balances done",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("leave_types", len(types)),
	)
	return nil
}

func (s *service) GetByEmployeeAndYear(ctx context.Context, companyID, employeeID string, year int) ([]BalanceResponse, error) {
	balances, err := s.repo.FindByEmployeeAndYear(ctx, companyID, employeeID, year)
	if err != nil {
		return nil, err
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Debit(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) error {
	if days <= 0 {
		return leavebalanceerrors.ErrInvalidDays
	}

	updated, err := s.repo.DebitConditional(ctx, companyID, employeeID, year, leaveTypeID, days)
	if err != nil {
		s.logger.Error("debit balance failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Error(err),
		)
		return err
	}
	if updated {
		s.logger.Info("debit balance success",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Int("year", year),
			zap.Int("days", days),
		)
		return nil
	}

	// Zero rows: either the row is missing or the debit would exceed the
	// allocation. Distinguish for the caller.
	if _, err := s.repo.FindByKey(ctx, companyID, employeeID, year, leaveTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavebalanceerrors.ErrBalanceNotFound
		}
		return err
	}

	s.logger.Warn("debit balance insufficient",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.Int("days", days),
	)
	return leavebalanceerrors.ErrInsufficientBalance
}

func (s *service) Credit(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int) error {
	if days <= 0 {
		return leavebalanceerrors.ErrInvalidDays
	}

	updated, err := s.repo.CreditFloored(ctx, companyID, employeeID, year, leaveTypeID, days)
	if err != nil {
		s.logger.Error("credit balance failed",
			zap.String("employee_id", employeeID),
			zap.String("leave_type_id", leaveTypeID),
			zap.Error(err),
		)
		return err
	}
	if !updated {
		return leavebalanceerrors.ErrBalanceNotFound
	}

	s.logger.Info("credit balance success",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", leaveTypeID),
		zap.Int("year", year),
		zap.Int("days", days),
	)
	return nil
}

func (s *service) Adjust(ctx context.Context, companyID string, req AdjustBalanceRequest) (BalanceResponse, error) {
	var err error
	switch req.Direction {
	case "debit":
		err = s.Debit(ctx, companyID, req.EmployeeID, req.Year, req.LeaveTypeID, req.Days)
	default:
		err = s.Credit(ctx, companyID, req.EmployeeID, req.Year, req.LeaveTypeID, req.Days)
	}
	if err != nil {
		return BalanceResponse{}, err
	}

	b, err := s.repo.FindByKey(ctx, companyID, req.EmployeeID, req.Year, req.LeaveTypeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func isDuplicateBalance(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_leave_balance_employee_year_type"
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_leave_balance_employee_year_type")
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	resp := BalanceResponse{
		ID:          b.ID.String(),
		EmployeeID:  b.EmployeeID.String(),
		Year:        b.Year,
		LeaveTypeID: b.LeaveTypeID.String(),
		Allocated:   b.Allocated,
		Used:        b.Used,
		Remaining:   b.Allocated - b.Used,
	}
	if b.LeaveType != nil {
		resp.LeaveTypeCode = b.LeaveType.Code
		resp.LeaveTypeName = b.LeaveType.Name
	}
	return resp
}
