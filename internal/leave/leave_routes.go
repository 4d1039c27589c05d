package leave

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-hrops/internal/middleware"
	"go-hrops/internal/rbac"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, redisClient *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(rbacService, "leave", "read"), h.GetAll)
		leaves.GET("/:id", rbac.Authorize(rbacService, "leave", "read"), h.GetByID)
		if redisClient != nil {
			leaves.POST("",
				middleware.Idempotency(redisClient),
				rbac.Authorize(rbacService, "leave", "create"),
				h.Submit,
			)
		} else {
			leaves.POST("", rbac.Authorize(rbacService, "leave", "create"), h.Submit)
		}
		leaves.POST("/:id/approve", rbac.Authorize(rbacService, "leave", "approve"), h.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(rbacService, "leave", "approve"), h.Reject)
		leaves.DELETE("/:id", rbac.Authorize(rbacService, "leave", "create"), h.Cancel)
	}
}
