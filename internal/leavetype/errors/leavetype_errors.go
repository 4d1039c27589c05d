package leavetypeerrors

import (
	"net/http"

	"go-hrops/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeCodeExists = apperror.New(
		apperror.CodeConflict,
		"leave type code already exists",
		http.StatusConflict,
	)
	ErrLeaveTypeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is inactive",
		http.StatusBadRequest,
	)
)
