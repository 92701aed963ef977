package leave

import (
	"github.com/shkhalid/maxerp/internal/balance"
	"github.com/shkhalid/maxerp/internal/domain"
	"github.com/shkhalid/maxerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	balanceHandler *balance.Handler,
) {
	leaves := r.Group("/leave")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("/apply", middleware.RequireCapability(domain.CapApplyLeave), handler.Apply)
		leaves.GET("/pending", middleware.RequireCapability(domain.CapReviewLeaveRequests), handler.Pending)
		leaves.POST("/approve/:id", middleware.RequireCapability(domain.CapReviewLeaveRequests), handler.Decide)
		leaves.GET("/requests", handler.MyRequests)
		leaves.GET("/balances", balanceHandler.List)
		leaves.GET("/on-leave-today", middleware.RequireCapability(domain.CapViewTeamReports), handler.OnLeaveToday)
	}
}
