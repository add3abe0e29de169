package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adoptapi/internal/app"
	"adoptapi/internal/auth"
	"adoptapi/internal/config"
	handlers "adoptapi/internal/http/handler"
	"adoptapi/internal/http/middleware"
	"adoptapi/internal/mocking"
	"adoptapi/internal/model"
	"adoptapi/internal/otel"
	"adoptapi/internal/repository"
	"adoptapi/internal/service"
	"adoptapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := middleware.NewJSONLogger(os.Stdout, cfg.LogLevel, time.UTC)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		fatal(log, "failed to initialize tracing", err)
	}

	backend, err := app.NewBackend(ctx, cfg, log)
	if err != nil {
		fatal(log, "failed to connect to store", err)
	}

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		fatal(log, "invalid session token settings (JWT_SECRET)", err)
	}

	// Object storage is optional; without it the attachment endpoints answer 503.
	var objStore storage.Storage
	if cfg.MinIO.Endpoint != "" {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			fatal(log, "failed to initialize object storage", err)
		}
	} else {
		log.WarnContext(ctx, "object_storage_disabled", "detail", "MINIO_ENDPOINT is empty")
	}

	pets := repository.New[model.Pet](backend.Pets)
	users := repository.NewUsersRepository(backend.Users, auth.NewBcryptHasher(cfg.Auth.BcryptCost))
	adoptions := repository.New[model.Adoption](backend.Adoptions)

	gen := mocking.New(uint64(time.Now().UnixNano()), users, mocking.WithMaxQuantity(cfg.MockMaxQuantity))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		fatal(log, "failed to register metrics", err)
	}

	server := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	server.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	server.Use(middleware.RequestID())
	server.Use(middleware.Recover(log))
	server.Use(middleware.AccessLog(log))
	server.Use(metrics.Handler())

	server.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(server, handlers.Deps{
		Store:           backend,
		Pets:            pets,
		Users:           users,
		Adoptions:       adoptions,
		Seed:            service.NewSeedService(gen, users, pets),
		Media:           service.NewMediaService(objStore, pets, users),
		Auth:            service.NewAuthService(users, tokens),
		Tokens:          tokens,
		MockQuantity:    cfg.MockQuantity,
		MaxMockQuantity: cfg.MockMaxQuantity,
	})

	addr := ":" + cfg.Port
	go func() {
		log.InfoContext(ctx, "server_start", "addr", addr, "store_backend", backend.Name)
		if err := server.Listen(addr); err != nil {
			log.ErrorContext(ctx, "server_stopped", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "server_shutdown_failed", "error", err.Error())
	}
	if err := backend.Close(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "store_close_failed", "error", err.Error())
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "tracing_shutdown_failed", "error", err.Error())
	}
	log.InfoContext(shutdownCtx, "server_shutdown", "status", "done")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err.Error())
	os.Exit(1)
}
