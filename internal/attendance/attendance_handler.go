package attendance

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	attendanceerrors "go-hrops/internal/attendance/errors"
	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) MarkPresent(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	var req MarkPresentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.MarkPresent(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ClockOut(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	var req ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ClockOut(c.Request.Context(), companyID, employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Correct(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req CorrectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Correct(c.Request.Context(), companyID, c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Query(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	if target := c.Query("employee_id"); target != "" && isPrivilegedRole(c.GetString("role")) {
		employeeID = target
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}

	resp, err := h.service.Query(c.Request.Context(), companyID, employeeID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")
	if target := c.Query("employee_id"); target != "" && isPrivilegedRole(c.GetString("role")) {
		employeeID = target
	}

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	if month == 0 || year == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "month and year query parameters are required", nil)
		return
	}

	resp, err := h.service.Summarize(c.Request.Context(), companyID, employeeID, time.Month(month), year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func isPrivilegedRole(role string) bool {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case "SUPER_ADMIN", "ADMIN", "HR", "MANAGER":
		return true
	default:
		return false
	}
}
