package leavetype

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.AuthMiddleware())
	{
		leaveTypes.GET("", rbac.Authorize(rbacService, "leave_type", "read"), h.GetAll)
		leaveTypes.GET("/:id", rbac.Authorize(rbacService, "leave_type", "read"), h.GetByID)
		leaveTypes.POST("", rbac.Authorize(rbacService, "leave_type", "create"), h.Create)
		leaveTypes.PUT("/:id", rbac.Authorize(rbacService, "leave_type", "update"), h.Update)
		leaveTypes.POST("/:id/deactivate", rbac.Authorize(rbacService, "leave_type", "update"), h.Deactivate)
		leaveTypes.POST("/:id/activate", rbac.Authorize(rbacService, "leave_type", "update"), h.Activate)
	}
}
