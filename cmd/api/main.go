package main

import (
	"fmt"
	"net/http"
	"os"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/mailer"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Fintrack API
// @version         1.0
// @description     Fintrack is a personal finance tracker for recording expenses, recurring bills, installment purchases, and earnings, with per-month spending summaries.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validation tags
	validator.Register()

	// Reset codes go out over SMTP when a relay is configured, otherwise
	// they are logged so the flow stays usable in development.
	var resetMailer mailer.Mailer
	if appConfig.SMTPHost != "" {
		resetMailer = mailer.NewSMTPMailer(appConfig.SMTPHost, appConfig.SMTPPort,
			appConfig.SMTPUser, appConfig.SMTPPass, appConfig.SMTPFrom)
	} else {
		resetMailer = mailer.LogMailer{}
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	resetService := services.NewPasswordResetService(db, userService, resetMailer, appConfig.ResetCodeTTL)
	expenseService := services.NewExpenseService(db)
	earningService := services.NewEarningService(db)
	incomeService := services.NewIncomeService(db)
	statsService := services.NewStatsService(db)
	recurringService := services.NewRecurringService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, resetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	earningHandler := handlers.NewEarningHandler(earningService, auditService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	statsHandler := handlers.NewStatsHandler(statsService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// Scheduler-triggered routes, guarded by a shared API key
	cron := v1.Group("/cron")
	cron.Use(middleware.CronAuthMiddleware(appConfig.CronAPIKey))
	cron.POST("/recurring/run", recurringHandler.RunAll)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.POST("/:id/pay", expenseHandler.PayExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Earning routes
	earnings := protected.Group("/earnings")
	earnings.POST("", earningHandler.CreateEarning)
	earnings.GET("", earningHandler.GetEarnings)
	earnings.GET("/:id", earningHandler.GetEarning)
	earnings.PUT("/:id", earningHandler.UpdateEarning)
	earnings.DELETE("/:id", earningHandler.DeleteEarning)

	// Monthly income routes
	income := protected.Group("/income")
	income.GET("/:year/:month", incomeHandler.GetIncome)
	income.PUT("/:year/:month", incomeHandler.SetIncome)

	// Stats routes
	stats := protected.Group("/stats")
	stats.GET("/summary", statsHandler.GetSummary)

	// Recurring expense materializer, scoped to the caller
	recurring := protected.Group("/recurring")
	recurring.POST("/run", recurringHandler.Run)

	log.Infof("Starting Fintrack backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
