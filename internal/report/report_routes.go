package report

import (
	"github.com/gin-gonic/gin"

	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.GET("/departments/:id", rbac.Authorize(rbacService, "report", "read"), h.DepartmentReport)
		reports.GET("/departments/:id/export", rbac.Authorize(rbacService, "report", "read"), h.ExportCSV)
	}
}
