package report

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-hrops/internal/shared/apperror"
	"go-hrops/internal/shared/response"
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

func monthYearFromQuery(c *gin.Context) (time.Month, int, bool) {
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	if month == 0 || year == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "month and year query parameters are required", nil)
		return 0, 0, false
	}
	return time.Month(month), year, true
}

func (h *Handler) DepartmentReport(c *gin.Context) {
	companyID := c.GetString("company_id")

	month, year, ok := monthYearFromQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.DepartmentReport(c.Request.Context(), companyID, c.Param("id"), month, year)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	companyID := c.GetString("company_id")
	departmentID := c.Param("id")

	month, year, ok := monthYearFromQuery(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("attendance_%s_%04d-%02d.csv", departmentID, year, int(month))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.service.ExportCSV(c.Request.Context(), c.Writer, companyID, departmentID, month, year); err != nil {
		// Headers may already be out; only write an error body if not.
		if !c.Writer.Written() {
			writeServiceError(c, err)
		}
		return
	}
}
