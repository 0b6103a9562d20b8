package routes

import (
	"time"

	"github.com/daybook-app/daybook-server/internal/config"
	"github.com/daybook-app/daybook-server/internal/handlers"
	"github.com/daybook-app/daybook-server/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	entryHandler *handlers.EntryHandler,
	tagHandler *handlers.TagHandler,
	aiHandler *handlers.AIHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes get the JWT middleware individually so the
	// public /auth group stays public.
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Journal entries
	entries := api.Group("/entries", middleware.JWTProtected(cfg))
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/date/:date", entryHandler.GetByDate)
	entries.Get("/:id", entryHandler.Get)
	entries.Put("/:id", entryHandler.Update)
	entries.Delete("/:id", entryHandler.Delete)

	// Statistics
	api.Get("/streak", middleware.JWTProtected(cfg), entryHandler.Streak)
	api.Get("/heatmap", middleware.JWTProtected(cfg), entryHandler.HeatMap)
	api.Get("/average-mood", middleware.JWTProtected(cfg), entryHandler.AverageMood)

	// Tags
	tags := api.Group("/tags", middleware.JWTProtected(cfg))
	tags.Get("/", tagHandler.List)
	tags.Get("/:name/entries", tagHandler.Entries)

	// AI
	ai := api.Group("/ai", middleware.JWTProtected(cfg))
	ai.Post("/query", aiHandler.Query)
	ai.Post("/enhance", aiHandler.Enhance)
	ai.Get("/usage", aiHandler.Usage)
	ai.Get("/health", aiHandler.Health)

	// Admin stats
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/stats", adminHandler.Stats)
}
