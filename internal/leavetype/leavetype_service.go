package leavetype

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	leavetypeerrors "go-hrops/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, companyID string, includeInactive bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Deactivate(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
	Activate(ctx context.Context, companyID, id string) (LeaveTypeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// NormalizeCode canonicalizes a leave type code for lookup and storage.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *service) Create(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("create leave type requested",
		zap.String("company_id", companyID),
		zap.String("code", req.Code),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code := NormalizeCode(req.Code)
	_, err = qtx.FindByCodeAndCompany(ctx, companyID, code)
	if err == nil {
		s.logger.Warn("create leave type code exists",
			zap.String("company_id", companyID),
			zap.String("code", code),
		)
		return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeCodeExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveTypeResponse{}, err
	}

	lt := &LeaveType{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		Code:           code,
		Name:           req.Name,
		MaxDaysPerYear: req.MaxDaysPerYear,
		IsActive:       true,
	}

	// The unique constraint is the backstop when two creates race past the
	// pre-read.
	if err := qtx.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("code", lt.Code),
	)

	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, includeInactive bool) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAllByCompany(ctx, companyID, includeInactive)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	return s.mutate(ctx, companyID, id, func(lt *LeaveType) {
		lt.Name = req.Name
		lt.MaxDaysPerYear = req.MaxDaysPerYear
	})
}

// Deactivate flips the active flag. Rows are never deleted so historical
// requests keep resolving their display names.
func (s *service) Deactivate(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	return s.mutate(ctx, companyID, id, func(lt *LeaveType) {
		lt.IsActive = false
	})
}

func (s *service) Activate(ctx context.Context, companyID, id string) (LeaveTypeResponse, error) {
	return s.mutate(ctx, companyID, id, func(lt *LeaveType) {
		lt.IsActive = true
	})
}

func (s *service) mutate(ctx context.Context, companyID, id string, apply func(*LeaveType)) (LeaveTypeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mutate leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	apply(lt)

	if err := qtx.Update(ctx, lt); err != nil {
		s.logger.Error("mutate leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mutate leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	s.logger.Info("mutate leave type success",
		zap.String("leave_type_id", id),
		zap.Bool("is_active", lt.IsActive),
	)

	return mapToResponse(*lt), nil
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:             lt.ID.String(),
		CompanyID:      lt.CompanyID.String(),
		Code:           lt.Code,
		Name:           lt.Name,
		MaxDaysPerYear: lt.MaxDaysPerYear,
		IsActive:       lt.IsActive,
	}
}
