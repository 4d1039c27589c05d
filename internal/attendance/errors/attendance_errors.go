package attendanceerrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidRange,
		"from must be before or equal to",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of PRESENT, ON_LEAVE, HOLIDAY",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrNoOpenRecord = apperror.New(
		apperror.CodeNotFound,
		"no open attendance record for today",
		http.StatusNotFound,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeConflict,
		"attendance record already clocked out",
		http.StatusConflict,
	)
	ErrNotPresentRecord = apperror.New(
		apperror.CodeInvalidState,
		"today's record is not a check-in record",
		http.StatusConflict,
	)
)
