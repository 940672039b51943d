// Package server assembles the HTTP surface: middleware, routes and the
// services behind them.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/MateusMunaro/financial-manager/internal/config"
	"github.com/MateusMunaro/financial-manager/internal/handlers"
	"github.com/MateusMunaro/financial-manager/internal/middleware"
	"github.com/MateusMunaro/financial-manager/internal/services"
)

// Rate-limited endpoint names, used as part of the request fingerprint.
const (
	endpointExpenses     = "expenses"
	endpointExpenseStats = "expenses/stats"
	endpointDashboard    = "dashboard"
)

// NewRouter builds the gin engine for the API. Read endpoints that clients
// tend to poll are throttled per user and query through limiter.
func NewRouter(db *gorm.DB, cfg *config.Config, limiter middleware.Throttler) *gin.Engine {
	// Services
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	recurringService := services.NewRecurringExpenseService(db)
	paymentMethodService := services.NewPaymentMethodService(db)
	investmentService := services.NewInvestmentService(db)
	dashboardService := services.NewDashboardService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	recurringHandler := handlers.NewRecurringExpenseHandler(recurringService, auditService)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(paymentMethodService, auditService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	session := protected.Group("/auth")
	session.POST("/logout", authHandler.Logout)
	session.GET("/me", authHandler.Me)
	session.PUT("/profile", authHandler.UpdateProfile)
	session.POST("/change-password", authHandler.ChangePassword)

	expenses := protected.Group("/expenses")
	expenses.GET("", middleware.RateLimit(limiter, endpointExpenses), expenseHandler.GetExpenses)
	expenses.GET("/stats", middleware.RateLimit(limiter, endpointExpenseStats), expenseHandler.GetExpenseStats)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	recurring := protected.Group("/recurring-expenses")
	recurring.GET("", recurringHandler.GetRecurringExpenses)
	recurring.POST("", recurringHandler.CreateRecurringExpense)
	recurring.GET("/:id", recurringHandler.GetRecurringExpense)
	recurring.PUT("/:id", recurringHandler.UpdateRecurringExpense)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurringExpense)
	recurring.PATCH("/:id/toggle-active", recurringHandler.ToggleActive)
	recurring.POST("/:id/generate", recurringHandler.GenerateExpenses)

	paymentMethods := protected.Group("/payment-methods")
	paymentMethods.GET("", paymentMethodHandler.GetPaymentMethods)
	paymentMethods.POST("", paymentMethodHandler.CreatePaymentMethod)
	paymentMethods.GET("/:id", paymentMethodHandler.GetPaymentMethod)
	paymentMethods.PUT("/:id", paymentMethodHandler.UpdatePaymentMethod)
	paymentMethods.DELETE("/:id", paymentMethodHandler.DeletePaymentMethod)
	paymentMethods.PATCH("/:id/set-default", paymentMethodHandler.SetDefault)

	investments := protected.Group("/investments")
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/stats", investmentHandler.GetInvestmentStats)
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.GET("/:id/history", investmentHandler.GetInvestmentHistory)
	investments.PATCH("/:id/update-value", investmentHandler.UpdateValue)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("", middleware.RateLimit(limiter, endpointDashboard), dashboardHandler.GetDashboard)
	dashboard.GET("/summary", dashboardHandler.GetSummary)
	dashboard.GET("/recent-transactions", dashboardHandler.GetRecentTransactions)
	dashboard.GET("/category-spending", dashboardHandler.GetCategorySpending)
	dashboard.GET("/monthly-trend", dashboardHandler.GetMonthlyTrend)

	return router
}
