package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"banana/jobboard/internal/config"
	"banana/jobboard/internal/handlers"
	"banana/jobboard/internal/models"
	"banana/jobboard/internal/repositories"
	"banana/jobboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractorService := services.NewExtractorService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	generatorService, err := services.NewGeminiGenerator(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	retrievalService := services.NewRetrievalService(generatorService, vectorStore)

	// Initialize mailer
	mailer := services.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		cfg.SMTP.Workers,
	)
	mailer.Start()
	log.Println("✅ Mailer started successfully")

	// Initialize auth
	authService := services.NewAuthService(
		accountRepo,
		mailer,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		cfg.Auth.BcryptCost,
	)

	// Initialize pipeline
	pipelineService := services.NewPipelineService(
		appRepo,
		jobRepo,
		accountRepo,
		extractorService,
		generatorService,
		retrievalService,
		mailer,
		cfg.Pipeline.QuestionCount,
		cfg.Pipeline.GenerateTimeout,
		cfg.Pipeline.RetryMaxAttempts,
	)
	log.Println("✅ Pipeline service initialized")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	jobHandler := handlers.NewJobHandler(jobRepo, retrievalService)
	applicationHandler := handlers.NewApplicationHandler(
		pipelineService,
		storageService,
		appRepo,
		jobRepo,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Banana Job Board API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth endpoints
	api.Post("/auth/register", authHandler.HandleRegister)
	api.Post("/auth/login", authHandler.HandleLogin)

	// Job endpoints
	requireAuth := handlers.RequireAuth(authService)
	api.Post("/jobs", requireAuth, handlers.RequireRole(models.RoleRecruiter), jobHandler.HandleCreate)
	api.Get("/jobs", requireAuth, jobHandler.HandleList)
	api.Get("/jobs/:id", requireAuth, jobHandler.HandleGet)

	// Application endpoints
	api.Post("/applications", requireAuth, handlers.RequireRole(models.RoleApplicant), applicationHandler.HandleBegin)
	api.Post("/applications/:id/submit", requireAuth, handlers.RequireRole(models.RoleApplicant), applicationHandler.HandleSubmit)
	api.Post("/applications/:id/decision", requireAuth, handlers.RequireRole(models.RoleRecruiter), applicationHandler.HandleDecide)
	api.Get("/applications/:id", requireAuth, applicationHandler.HandleGet)
	api.Get("/applications", requireAuth, applicationHandler.HandleList)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Banana Job Board API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/applications",
				"POST /api/v1/applications/:id/submit",
				"POST /api/v1/applications/:id/decision",
				"GET /api/v1/applications/:id",
				"GET /api/v1/applications",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		mailer.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
