package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"xraysim/docs"
	"xraysim/internal/config"
	"xraysim/internal/database"
	"xraysim/internal/database/migration"
	handlers "xraysim/internal/http/handler"
	"xraysim/internal/http/middleware"
	"xraysim/internal/logjson"
	xotel "xraysim/internal/otel"
	"xraysim/internal/physics"
	"xraysim/internal/repository/postgres"
	"xraysim/internal/service"
	"xraysim/internal/storage"
)

// @title X-ray Simulator API
// @version 1.0
// @description Beer-Lambert radiographs of a spherical phantom.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}
	logger := logjson.Stdout(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := xotel.Init(ctx, logger)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	calc := physics.NewCalculator(cfg.Physics)
	repo := postgres.NewRadiographPostgres(db)
	svc := service.NewRadiographService(calc, objStore, repo, service.Limits{
		MaxDimension:  cfg.Render.MaxDimension,
		PresignExpiry: time.Duration(cfg.MinIO.PresignExpirySec) * time.Second,
	})

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// RequestID first so the logger and error envelope can read it
	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(otelfiber.Middleware())
	app.Use(metrics.Handler())

	app.Get("/metrics", middleware.MetricsHandler(prometheus.DefaultGatherer))
	handlers.RegisterRoutes(app, db, svc, cfg.Render)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Log(map[string]any{"level": "error", "msg": "shutdown_failed", "error": err.Error()})
		}
	}()

	addr := ":" + cfg.Port
	logger.Log(map[string]any{"msg": "server_starting", "addr": addr})

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
