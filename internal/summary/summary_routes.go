package summary

import (
	"github.com/shkhalid/maxerp/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leave")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("/summary", handler.Monthly)
	}
}
