package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrops/internal/attendance"
	"go-hrops/internal/employee"
	"go-hrops/internal/events"
	leaveerrors "go-hrops/internal/leave/errors"
	"go-hrops/internal/leavebalance"
	"go-hrops/internal/leavetype"
	leavetypeerrors "go-hrops/internal/leavetype/errors"
	"go-hrops/internal/messaging/kafka"
	"go-hrops/internal/shared/clock"
	"go-hrops/internal/shared/contextutil"
	"go-hrops/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, approverID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, approverID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, companyID, employeeID, id string) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	typeRepo      leavetype.Repository
	employeeRepo  employee.Repository
	balances      leavebalance.Service
	attendanceSvc attendance.Service
	outbox        kafka.OutboxRepository
	clock         clock.Clock
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	typeRepo leavetype.Repository,
	employeeRepo employee.Repository,
	balances leavebalance.Service,
	attendanceSvc attendance.Service,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, typeRepo, employeeRepo, balances, attendanceSvc, nil, clk, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	typeRepo leavetype.Repository,
	employeeRepo employee.Repository,
	balances leavebalance.Service,
	attendanceSvc attendance.Service,
	outboxRepo kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		typeRepo:      typeRepo,
		employeeRepo:  employeeRepo,
		balances:      balances,
		attendanceSvc: attendanceSvc,
		outbox:        outboxRepo,
		clock:         clk,
		logger:        l,
	}
}

func (s *service) Submit(ctx context.Context, companyID, employeeID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	// Weekend-only ranges are rejected outright, never silently zero-costed.
	totalDays := dateutil.CountWorkingDays(startDate, endDate)
	if totalDays == 0 {
		s.logger.Warn("submit leave no working days",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrNoWorkingDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := s.typeRepo.FindByIDAndCompany(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}
	if !lt.IsActive {
		return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeInactive
	}

	emp, err := s.employeeRepo.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}
	if !emp.IsActive {
		return LeaveResponse{}, leaveerrors.ErrEmployeeInactive
	}

	overlap, err := qtx.HasOverlappingRequest(ctx, companyID, employeeID, startDate, endDate)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		LeaveTypeID: lt.ID,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
		CreatedBy:   employeeUUID,
	}

	// No balance mutation here: the ledger is only touched at approval, so
	// pending requests never double-charge it.
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", totalDays),
	)

	l.LeaveType = &LeaveTypeRef{ID: lt.ID, Code: lt.Code, Name: lt.Name}
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if canReadAll {
		leaves, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		leaves, err = s.repo.FindAllByEmployee(ctx, companyID, actorID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, companyID, approverID, id string) (LeaveResponse, error) {
	return s.resolve(ctx, companyID, approverID, id, DecisionApproved, "")
}

func (s *service) Reject(ctx context.Context, companyID, approverID, id, rejectionReason string) (LeaveResponse, error) {
	return s.resolve(ctx, companyID, approverID, id, DecisionRejected, rejectionReason)
}

// resolve is the one-shot pending -> approved|rejected transition. Approval
// runs as a saga: balance debit, attendance backfill, then a conditional
// status flip; any later step failing compensates the earlier ones so the
// caller never observes a half-applied approval.
func (s *service) resolve(ctx context.Context, companyID, approverID, id, decision, rejectionReason string) (LeaveResponse, error) {
	s.logger.Debug("resolve leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("approver_id", approverID),
		zap.String("decision", decision),
	)

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("resolve leave not pending",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	now := s.clock.Now()

	if decision == DecisionRejected {
		if rejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}

		updated, err := qtx.UpdateStatusIfPending(ctx, companyID, id, map[string]any{
			"status":           StatusRejected,
			"approved_by":      approverUUID,
			"approved_at":      now,
			"rejection_reason": rejectionReason,
		})
		if err != nil {
			s.logger.Error("reject leave persist failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if !updated {
			return LeaveResponse{}, leaveerrors.ErrNotPending
		}
		if err := tx.Commit(); err != nil {
			s.logger.Error("reject leave commit failed", zap.Error(err))
			return LeaveResponse{}, err
		}

		s.logger.Info("reject leave success", zap.String("leave_id", id))
		l.Status = StatusRejected
		l.ApprovedBy = &approverUUID
		l.ApprovedAt = &now
		l.RejectionReason = &rejectionReason
		return mapToResponse(*l), nil
	}

	employeeID := l.EmployeeID.String()
	leaveTypeID := l.LeaveTypeID.String()
	// A range crossing Dec 31 is charged entirely against the year it starts
	// in.
	year := l.StartDate.Year()

	if err := s.balances.EnsureSeeded(ctx, companyID, employeeID, year); err != nil {
		s.logger.Error("approve leave seed balances failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Debit before any attendance write: an insufficient balance must abort
	// with nothing applied.
	if err := s.balances.Debit(ctx, companyID, employeeID, year, leaveTypeID, l.TotalDays); err != nil {
		s.logger.Warn("approve leave debit failed",
			zap.String("leave_id", id),
			zap.Int("total_days", l.TotalDays),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	days := dateutil.WeekdaysBetween(l.StartDate, l.EndDate)
	created, err := s.attendanceSvc.EnsureOnLeave(ctx, companyID, employeeID, days)
	if err != nil {
		s.logger.Error("approve leave backfill failed, compensating",
			zap.String("leave_id", id),
			zap.Int("created_days", len(created)),
			zap.Error(err),
		)
		s.compensate(ctx, companyID, employeeID, year, leaveTypeID, l.TotalDays, created)
		return LeaveResponse{}, err
	}

	if s.outbox != nil {
		if err := s.writeApprovedEvent(ctx, tx, l, approverID, now); err != nil {
			s.logger.Error("approve leave outbox write failed, compensating",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			s.compensate(ctx, companyID, employeeID, year, leaveTypeID, l.TotalDays, created)
			return LeaveResponse{}, err
		}
	}

	updated, err := qtx.UpdateStatusIfPending(ctx, companyID, id, map[string]any{
		"status":      StatusApproved,
		"approved_by": approverUUID,
		"approved_at": now,
	})
	if err != nil || !updated {
		// Either the store failed or a concurrent resolver won the race.
		// Undo the debit and the rows this call created; the winner's own
		// effects stay intact.
		s.compensate(ctx, companyID, employeeID, year, leaveTypeID, l.TotalDays, created)
		if err != nil {
			s.logger.Error("approve leave status flip failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
		zap.Int("total_days", l.TotalDays),
		zap.Int("backfilled_days", len(created)),
	)

	l.Status = StatusApproved
	l.ApprovedBy = &approverUUID
	l.ApprovedAt = &now
	return mapToResponse(*l), nil
}

func (s *service) compensate(ctx context.Context, companyID, employeeID string, year int, leaveTypeID string, days int, createdDays []time.Time) {
	if err := s.balances.Credit(ctx, companyID, employeeID, year, leaveTypeID, days); err != nil {
		s.logger.Error("compensate credit failed",
			zap.String("employee_id", employeeID),
			zap.Int("days", days),
			zap.Error(err),
		)
	}
	if err := s.attendanceSvc.RemoveBackfill(ctx, companyID, employeeID, createdDays); err != nil {
		s.logger.Error("compensate remove backfill failed",
			zap.String("employee_id", employeeID),
			zap.Int("days", len(createdDays)),
			zap.Error(err),
		)
	}
}

func (s *service) writeApprovedEvent(ctx context.Context, tx *sql.Tx, l *Leave, approverID string, now time.Time) error {
	leaveTypeCode := ""
	if l.LeaveType != nil {
		leaveTypeCode = l.LeaveType.Code
	}

	payload, err := json.Marshal(events.LeaveApprovedEvent{
		EventType:     events.LeaveApprovedEventType,
		LeaveID:       l.ID.String(),
		CompanyID:     l.CompanyID.String(),
		EmployeeID:    l.EmployeeID.String(),
		LeaveTypeCode: leaveTypeCode,
		StartDate:     l.StartDate.Format("2006-01-02"),
		EndDate:       l.EndDate.Format("2006-01-02"),
		TotalDays:     l.TotalDays,
		ApprovedBy:    approverID,
		OccurredAt:    now,
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     events.LeaveApprovedEventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Cancel(ctx context.Context, companyID, employeeID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if l.EmployeeID.String() != employeeID {
		return leaveerrors.ErrNotOwner
	}

	// Conditional delete: a request approved or rejected between the read
	// and the delete must not be cancellable.
	deleted, err := qtx.DeleteIfPendingOwned(ctx, companyID, id, employeeID)
	if err != nil {
		return err
	}
	if !deleted {
		return leaveerrors.ErrNotPending
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("cancel leave success",
		zap.String("leave_id", id),
		zap.String("employee_id", employeeID),
	)
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		CompanyID:   l.CompanyID.String(),
		EmployeeID:  l.EmployeeID.String(),
		LeaveTypeID: l.LeaveTypeID.String(),
		StartDate:   l.StartDate.Format("2006-01-02"),
		EndDate:     l.EndDate.Format("2006-01-02"),
		TotalDays:   l.TotalDays,
		Reason:      l.Reason,
		Status:      l.Status,
		CreatedBy:   l.CreatedBy.String(),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.LeaveType != nil {
		resp.LeaveTypeCode = l.LeaveType.Code
		resp.LeaveTypeName = l.LeaveType.Name
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}
