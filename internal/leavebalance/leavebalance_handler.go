package leavebalance

import (
	"net/http"
	"strconv"

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

// GetMine returns the caller's balances for the requested (default: current
// request) year.
func (h *Handler) GetMine(c *gin.Context) {
	companyID := c.GetString("company_id")
	employeeID := c.GetString("employee_id")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year query parameter is required", nil)
		return
	}

	resp, err := h.service.GetByEmployeeAndYear(c.Request.Context(), companyID, employeeID, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	companyID := c.GetString("company_id")

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year query parameter is required", nil)
		return
	}

	resp, err := h.service.GetByEmployeeAndYear(c.Request.Context(), companyID, c.Param("employeeId"), year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Seed(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req SeedBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.EnsureSeeded(c.Request.Context(), companyID, req.EmployeeID, req.Year); err != nil {
		writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetByEmployeeAndYear(c.Request.Context(), companyID, req.EmployeeID, req.Year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Adjust(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
