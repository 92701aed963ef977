package app

import (
	"github.com/shkhalid/maxerp/internal/auth"
	"github.com/shkhalid/maxerp/internal/balance"
	"github.com/shkhalid/maxerp/internal/leave"
	"github.com/shkhalid/maxerp/internal/messaging/kafka"
	"github.com/shkhalid/maxerp/internal/middleware"
	"github.com/shkhalid/maxerp/internal/summary"
	"github.com/shkhalid/maxerp/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(db)
	balanceRepo := balance.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(userRepo)
	balanceService := balance.NewService(balanceRepo)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, balanceRepo, userRepo, outboxRepo)
	summaryService := summary.NewService(leaveRepo, userRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	balanceHandler := balance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	summaryHandler := summary.NewHandler(summaryService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		summary.RegisterRoutes(api, summaryHandler)
		leave.RegisterRoutes(api, leaveHandler, balanceHandler)
	}

	return nil
}
