package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docsite/internal/http/middleware"
	"docsite/internal/i18n"
	"docsite/internal/service"
	"docsite/internal/storage"
)

// Dependencies are the collaborators of the JSON API and ops routes.
type Dependencies struct {
	DB            *sql.DB
	Documents     service.DocumentService
	Images        service.ImageService
	Auth          *AuthHandler
	Storage       storage.Storage
	Gatherer      prometheus.Gatherer
	DefaultLocale i18n.Locale
	LocaleCookie  string

	// LoginAttempts per client IP per minute; 0 uses the default of 10.
	LoginAttempts int
}

// RegisterRoutes attaches the ops, uploads and /api routes to app.
// Session resolution must already be installed as an app-level middleware.
func RegisterRoutes(app *fiber.App, d Dependencies) {
	if d.DefaultLocale == "" {
		d.DefaultLocale = i18n.Default
	}
	if d.LocaleCookie == "" {
		d.LocaleCookie = "preferred_language"
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	if d.DB != nil {
		app.Get("/health", HealthCheck(d.DB))
	}
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))

	if d.Storage != nil {
		app.Get("/uploads/:filename", ServeUpload(d.Storage))
	}

	api := app.Group("/api")
	authed := middleware.RequireSession()

	api.Get("/translations", GetTranslations(d.DefaultLocale))
	api.Get("/locale", SetLocale(d.LocaleCookie))

	if d.Documents != nil {
		api.Get("/documents", ListDocuments(d.Documents))
		api.Post("/documents", authed, CreateDocument(d.Documents))
		api.Get("/documents/count", CountDocuments(d.Documents))
		api.Get("/documents/:idOrSlug", GetDocument(d.Documents, d.DefaultLocale))
		api.Put("/documents/:id", authed, UpdateDocument(d.Documents))
		api.Delete("/documents/:id", authed, DeleteDocument(d.Documents))
		api.Get("/search", SearchDocuments(d.Documents))
	}

	if d.Images != nil {
		api.Get("/images", ListImages(d.Images))
		api.Post("/images", authed, UploadImages(d.Images))
		api.Delete("/images", authed, DeleteImage(d.Images))
	}

	if d.Auth != nil {
		attempts := d.LoginAttempts
		if attempts <= 0 {
			attempts = 10
		}
		api.Post("/auth/login", limiter.New(limiter.Config{
			Max:        attempts,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return writeError(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many login attempts, try again later")
			},
		}), d.Auth.Login())
		api.Post("/auth/logout", d.Auth.Logout())
		api.Get("/auth/session", authed, d.Auth.Session())
		api.Post("/auth/reset-password", authed, d.Auth.ResetPassword())
	}
}
