package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/handler"
	"perfect-cfw/internal/middleware"
	"perfect-cfw/internal/repository"
	"perfect-cfw/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := config.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching and rate limiting disabled)", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if err := services.Auth.EnsureSuperAdmin(context.Background()); err != nil {
		log.Fatalf("Failed to seed superadmin account: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(cfg),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	limiter := middleware.NewRedisLimiter(redisClient)
	setupRoutes(app, handlers, services, limiter, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, limiter *middleware.RedisLimiter, cfg *config.Config) {
	api := app.Group("/api", middleware.RateLimit(limiter, cfg.RateLimitMax, cfg.RateLimitWindow))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Get("/verify", middleware.AuthRequired(services.Auth), h.Auth.Verify)

	admins := api.Group("/admins", middleware.AuthRequired(services.Auth))
	admins.Get("/check-superadmin", h.Admin.CheckSuperAdmin)
	admins.Get("/", middleware.RequireSuperAdmin(), h.Admin.List)
	admins.Post("/", middleware.RequireSuperAdmin(), h.Admin.Create)
	admins.Delete("/:id", middleware.RequireSuperAdmin(), h.Admin.Delete)

	discordAuth := api.Group("/discord-auth")
	discordAuth.Get("/discord", h.Discord.AuthURL)
	discordAuth.Get("/callback", h.Discord.Callback)
	discordAuth.Get("/me", h.Discord.Me)
	discordAuth.Post("/logout", h.Discord.Logout)

	questions := api.Group("/questions")
	questions.Get("/for-application", h.Question.ForApplication)
	questions.Get("/", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Question.List)
	questions.Get("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Question.Get)
	questions.Post("/", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Question.Create)
	questions.Put("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Question.Update)
	questions.Delete("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Question.Delete)
	questions.Patch("/:id/toggle", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Question.ToggleActive)

	applications := api.Group("/applications")
	applications.Get("/status", h.Application.Status)
	applications.Post("/submit", h.Application.Submit)
	applications.Get("/my-application/:userId", h.Application.MyApplication)
	applications.Post("/toggle", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Application.Toggle)
	applications.Get("/all", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Application.List)
	applications.Get("/stats/overview", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Application.Stats)
	applications.Get("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Application.Get)
	applications.Post("/:id/accept", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Application.Accept)
	applications.Post("/:id/reject", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Application.Reject)

	notifications := api.Group("/notifications")
	notifications.Get("/user/:userId", h.Notification.ListByUser)
	notifications.Get("/user/:userId/unread-count", h.Notification.UnreadCount)
	notifications.Post("/user/:userId/read-all", h.Notification.MarkAllAsRead)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	products := api.Group("/products")
	products.Get("/", h.Product.List)
	products.Get("/admin/stats", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Product.Stats)
	products.Get("/:id", h.Product.Get)
	products.Post("/", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Product.Create)
	products.Put("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Product.Update)
	products.Delete("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Product.Delete)
	products.Post("/:id/image", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Product.UploadImage)

	discountCodes := api.Group("/discount-codes")
	discountCodes.Get("/active", h.Discount.ListActive)
	discountCodes.Post("/validate", h.Discount.Validate)
	discountCodes.Post("/apply", h.Discount.Apply)
	discountCodes.Get("/", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Discount.List)
	discountCodes.Post("/", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Discount.Create)
	discountCodes.Put("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Discount.Update)
	discountCodes.Delete("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Discount.Delete)

	rules := api.Group("/rules")
	rules.Get("/", h.Rules.ListPublic)
	rules.Get("/all", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.ListAll)
	rules.Get("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.Get)
	rules.Post("/", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.Create)
	rules.Put("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.Update)
	rules.Delete("/:id", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.Delete)
	rules.Put("/:id/reorder", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.Reorder)
	rules.Post("/:id/rules", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.AddRule)
	rules.Put("/:id/rules/:ruleId", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.UpdateRule)
	rules.Delete("/:id/rules/:ruleId", middleware.AuthRequired(services.Auth), middleware.RequireAdmin(), h.Rules.RemoveRule)

	activityLogs := api.Group("/activity-logs", middleware.AuthRequired(services.Auth), middleware.RequireAdmin())
	activityLogs.Get("/", h.Activity.List)
	activityLogs.Get("/stats", h.Activity.Stats)
	activityLogs.Delete("/clear", h.Activity.Clear)
}
