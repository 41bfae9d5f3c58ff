package handler

import (
	"tripwallet/internal/adapter/http/middleware"
	"tripwallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	PointsSvc      ports.PointsService
	BookingSvc     ports.BookingService
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.ReportingSvc)
	txnHandler := NewTransactionHandler(deps.ReportingSvc)
	pointsHandler := NewPointsHandler(deps.PointsSvc)
	tourHandler := NewTourHandler(deps.BookingSvc)

	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.POST("", walletHandler.Open)
		wallets.GET("", walletHandler.List)
		wallets.GET("/:id", walletHandler.Get)
		wallets.POST("/:id/fund", walletHandler.Fund)
		wallets.POST("/:id/transfer", walletHandler.Transfer)
		wallets.GET("/:id/summary", walletHandler.Summary)
		wallets.GET("/:id/transactions", walletHandler.Transactions)
	}

	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.GET("", txnHandler.ListMine)
		transactions.GET("/summary", txnHandler.MySummary)
		transactions.GET("/:id", txnHandler.Get)
		transactions.PATCH("/:id/status", walletHandler.UpdateTransactionStatus)
	}

	points := v1.Group("/points", jwtAuth)
	{
		points.POST("/earn", pointsHandler.Earn)
		points.POST("/redeem", pointsHandler.Redeem)
		points.GET("/balance", pointsHandler.Balance)
		points.GET("/history", pointsHandler.History)
	}

	tours := v1.Group("/tours", jwtAuth)
	{
		tours.GET("", tourHandler.List)
		tours.POST("/:id/book", tourHandler.Book)
	}

	v1.GET("/bookings", jwtAuth, tourHandler.Bookings)

	return r
}
