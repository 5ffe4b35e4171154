package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/robfig/cron/v3"

	"github.com/petmanager/petmanager-be/internal/core/analytics"
	"github.com/petmanager/petmanager-be/internal/core/auth"
	"github.com/petmanager/petmanager-be/internal/core/jobs"
	"github.com/petmanager/petmanager-be/internal/core/notification"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/alerts"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/handlers"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/models"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/repositories"
	"github.com/petmanager/petmanager-be/internal/modules/petstore/services"
	"github.com/petmanager/petmanager-be/internal/shared/config"
	"github.com/petmanager/petmanager-be/internal/shared/database"
	"github.com/petmanager/petmanager-be/internal/shared/utils"
)

// @title PetManager API
// @version 1.0
// @description Pet store administration backend: transactions, approvals, reports, and access control
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting petmanager-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	transactionRepo := repositories.NewTransactionRepo(db.GORM)
	accessRepo := repositories.NewAccessRepo(db.GORM)

	// Init auth
	authService := auth.NewService(db.GORM, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	// Init email provider: Resend when configured, log-only otherwise
	var mailer notification.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = notification.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	} else {
		mailer = notification.NewLogMailer()
	}
	notifier := notification.NewService(mailer, cfg.ManagerEmail)
	log.Printf("📧 Using email provider: %s", mailer.GetProviderName())

	// Init job queue and worker for high-value alerts
	queue := jobs.NewQueue(db.GORM)
	worker := jobs.NewWorker(queue, jobs.DefaultWorkerConfig(cfg.AlertQueue))
	worker.RegisterHandler(alerts.NewHandler(notifier))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker.Start(ctx)
	defer worker.Stop()

	// Init services
	dispatcher := alerts.NewDispatcher(queue, cfg.AlertQueue)
	transactionService := services.NewTransactionService(transactionRepo, dispatcher, cfg.HighValueThreshold)
	reportService := services.NewReportService(transactionRepo)
	accessService := services.NewAccessService(accessRepo)
	dashboardService := services.NewDashboardService(transactionRepo, analytics.NewAggregator(db.GORM), cfg.HighValueThreshold)

	// Scheduled work: daily pending digest plus queue cleanup
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DigestSchedule, func() {
		counts, err := transactionService.StatusCounts(context.Background())
		if err != nil {
			utils.LogError("❌ Digest count failed", err, nil)
			return
		}
		if err := notifier.NotifyPendingDigest(counts.Pending); err != nil {
			utils.LogError("❌ Digest send failed", err, nil)
		}
	}); err != nil {
		log.Fatalf("❌ Invalid digest schedule %q: %v", cfg.DigestSchedule, err)
	}
	if _, err := scheduler.AddFunc("@daily", func() {
		deleted, err := queue.DeleteOldJobs(context.Background(), 7*24*time.Hour)
		if err != nil {
			utils.LogError("❌ Job cleanup failed", err, nil)
			return
		}
		utils.LogInfo("🧹 Old jobs purged", map[string]interface{}{"deleted": deleted})
	}); err != nil {
		log.Fatalf("❌ Failed to schedule job cleanup: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Init handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reportHandler := handlers.NewReportHandler(reportService)
	accessHandler := handlers.NewAccessHandler(accessService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(db)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "PetManager API",
	})

	// Middleware
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Auth routes
	app.Post("/auth/register", authHandler.Register)
	app.Post("/auth/login", authHandler.Login)
	app.Post("/auth/refresh", authHandler.RefreshToken)

	// Everything under /api requires a valid token
	api := app.Group("/api", auth.AuthMiddleware(authService))
	app.Post("/auth/logout", auth.AuthMiddleware(authService), authHandler.Logout)
	app.Get("/auth/me", auth.AuthMiddleware(authService), authHandler.Me)

	// Transaction routes
	api.Get("/transactions/stats", transactionHandler.Stats)
	api.Post("/transactions", transactionHandler.Create)
	api.Get("/transactions", transactionHandler.List)
	api.Get("/transactions/:id", transactionHandler.Get)
	api.Put("/transactions/:id", transactionHandler.Update)
	api.Delete("/transactions/:id", transactionHandler.Delete)
	api.Patch("/transactions/:id/status", auth.RequireRole(models.RoleAdmin), transactionHandler.SetStatus)

	// Report routes
	api.Get("/reports/purchases", reportHandler.Purchases)
	api.Get("/reports/sales", reportHandler.Sales)

	// Dashboard route
	api.Get("/dashboard/summary", dashboardHandler.Summary)

	// Access routes (admin only)
	access := api.Group("/access", auth.RequireRole(models.RoleAdmin))
	access.Get("/", accessHandler.List)
	access.Get("/:id", accessHandler.Get)
	access.Put("/:id", accessHandler.Update)

	log.Printf("✅ petmanager-api running at :%s", cfg.Port)
	log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
