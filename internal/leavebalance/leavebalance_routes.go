package leavebalance

import (
	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", rbac.Authorize(rbacService, "leave_balance", "read"), h.GetMine)
		balances.GET("/employees/:employeeId", rbac.Authorize(rbacService, "leave_balance", "read_all"), h.GetByEmployee)
		balances.POST("/seed", rbac.Authorize(rbacService, "leave_balance", "manage"), h.Seed)
		balances.POST("/adjust", rbac.Authorize(rbacService, "leave_balance", "manage"), h.Adjust)
	}
}
