package attendance

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", rbac.Authorize(rbacService, "attendance", "read"), h.Query)
		attendances.GET("/summary", rbac.Authorize(rbacService, "attendance", "read"), h.Summary)
		attendances.POST("/mark-present", rbac.Authorize(rbacService, "attendance", "create"), h.MarkPresent)
		attendances.POST("/clock-out", rbac.Authorize(rbacService, "attendance", "create"), h.ClockOut)
		attendances.PUT("/:id/correct", rbac.Authorize(rbacService, "attendance", "correct"), h.Correct)
	}
}
