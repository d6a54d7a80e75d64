package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/coder-rancho/Disaster-Response-Coordination-Platform/docs"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/config"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/database"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/handlers"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/middleware"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/realtime"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/services"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/telemetry"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/gemini"
	applogger "github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/logger"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/pkg/nominatim"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

const serviceName = "disaster-response-api"

// @title Disaster Response Coordination Platform API
// @version 1.0.0
// @description Backend API for coordinating disaster records, field reports and resources
// @host localhost:3000
// @BasePath /
// @schemes http https
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := applogger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer applogger.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry Tracer
	ctx := context.Background()
	tracerShutdown, err := telemetry.InitTracer(ctx, serviceName, cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Initialize OpenTelemetry Metrics
	meterShutdown, err := telemetry.InitMeter(ctx, serviceName, cfg.SigNozEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Connection pool gauges for Prometheus
	poolCtx, cancelPool := context.WithCancel(ctx)
	defer cancelPool()
	go database.StartConnectionPoolMetricsCollector(poolCtx, db.DB, 15*time.Second)

	// Gemini client backs both location extraction and image verification
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, AI-backed endpoints will fail upstream")
	}
	ai, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiTextModel, cfg.GeminiVisionModel)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer ai.Close()

	// Services
	hub := realtime.NewHub()
	geocoder := services.NewNominatimGeocoder(nominatim.New(cfg.NominatimBaseURL))
	extractor := services.NewLocationExtractor(ai)
	verifier := services.NewImageVerifier(ai, cfg.VerifyStatusStrict)
	cache := services.NewVerificationCacheService(db, cfg.CacheReadEnabled)

	disasterService := services.NewDisasterService(db, geocoder, extractor, hub)
	reportService := services.NewReportService(db, verifier, cache, hub)
	resourceService := services.NewResourceService(db, geocoder, hub)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Disaster Response Coordination Platform API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	// JSON structured access logging
	app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
		TimeZone:   "UTC",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: serviceName,
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.ClientURL,
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, Origin, User-Agent, X-Requested-With",
		AllowCredentials: true,
	}))

	// Setup routes
	setupRoutes(app, db, cfg, hub, disasterService, reportService, resourceService)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(
	app *fiber.App,
	db *database.DB,
	cfg *config.Config,
	hub *realtime.Hub,
	disasterService *services.DisasterService,
	reportService *services.ReportService,
	resourceService *services.ResourceService,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Disaster Response Coordination Platform API",
		})
	})

	// Swagger UI
	app.Get("/docs/*", swagger.HandlerDefault)

	// Prometheus scrape endpoint
	app.Get("/metrics", middleware.PrometheusHandler())

	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/readiness", handlers.ReadinessCheck(db))
	app.Get("/liveness", handlers.LivenessCheck)

	// WebSocket endpoint for realtime change events
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.Handler()))

	api := app.Group("/api", middleware.Principal(cfg))

	disasters := api.Group("/disasters")
	handlers.SetupDisasterRoutes(disasters, disasterService)

	reports := disasters.Group("/:disaster_id/reports")
	handlers.SetupReportRoutes(reports, reportService)

	resources := disasters.Group("/:disaster_id/resources")
	handlers.SetupResourceRoutes(resources, resourceService)

	// Nearby search without a disaster scope
	standalone := api.Group("/resources")
	handlers.SetupStandaloneResourceRoutes(standalone, resourceService)
}
