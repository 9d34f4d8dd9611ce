package main

import (
	"context"
	"errors"
	"fmt"
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
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"docsite/docs"
	"docsite/internal/auth"
	"docsite/internal/config"
	"docsite/internal/database"
	"docsite/internal/database/migration"
	handlers "docsite/internal/http/handler"
	"docsite/internal/http/middleware"
	"docsite/internal/http/page"
	"docsite/internal/i18n"
	"docsite/internal/logger"
	"docsite/internal/otel"
	"docsite/internal/repository/sqlstore"
	"docsite/internal/service"
	"docsite/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title       Docsite API
// @version     1.0
// @description Multi-locale documentation site with an admin CMS.
// @BasePath    /
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.AppConfig, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	if cfg.Auth.UsesInsecureSecret() {
		log.Warn().Str("event", "insecure_auth_secret").Msg("AUTH_SECRET is not set; sessions are signed with the built-in development secret")
	}

	db, dialect, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, dialect, log); err != nil {
		return err
	}

	objStore, err := storage.Open(cfg.Storage, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	var revoker auth.TokenRevoker = auth.NoopRevoker{}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		revoker = auth.NewRedisRevoker(client)
	} else {
		log.Info().Msg("REDIS_ADDR not set; logout will not revoke issued sessions")
	}

	defaultLocale := i18n.ParseOr(cfg.Locale.Default, i18n.Default)
	sessions := auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL)

	docSvc := service.NewDocumentService(sqlstore.NewDocumentStore(db), defaultLocale)
	imageSvc := service.NewImageService(sqlstore.NewImageStore(db), objStore, cfg.Upload.MaxFiles, log)
	credSvc := service.NewCredentialService(sqlstore.NewUserStore(db))

	pages, err := page.New(page.Config{
		Documents:    docSvc,
		Credentials:  credSvc,
		Sessions:     sessions,
		Revoker:      revoker,
		CookieName:   cfg.Auth.CookieName,
		CookieSecure: cfg.Auth.CookieSecure,
		MaxUploads:   cfg.Upload.MaxFiles,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             cfg.Upload.MaxBodyBytes,
		DisableStartupMessage: true,
	})

	app.Use(middleware.Recover(log))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.SessionResolver(middleware.SessionConfig{
		Sessions:   sessions,
		Revoker:    revoker,
		CookieName: cfg.Auth.CookieName,
		Logger:     log,
	}))
	app.Use(middleware.Locale(middleware.LocaleConfig{Default: defaultLocale, CookieName: cfg.Locale.CookieName}))
	app.Use(middleware.AdminGuard(pages.Loading))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:        db,
		Documents: docSvc,
		Images:    imageSvc,
		Storage:   objStore,
		Gatherer:  prometheus.DefaultGatherer,
		Auth: &handlers.AuthHandler{
			Credentials:  credSvc,
			Sessions:     sessions,
			Revoker:      revoker,
			CookieName:   cfg.Auth.CookieName,
			CookieSecure: cfg.Auth.CookieSecure,
			Log:          log,
		},
		DefaultLocale: defaultLocale,
		LocaleCookie:  cfg.Locale.CookieName,
	})

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

	pages.Register(app)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info().Str("event", "server_start").Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Str("event", "server_shutdown").Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
