package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tailpair/internal/config"
	"tailpair/internal/handler"
	"tailpair/internal/metrics"
	"tailpair/internal/middleware"
	"tailpair/internal/repository"
	"tailpair/internal/service"
	"tailpair/internal/service/auth"
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

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (caching disabled)", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	m := metrics.New()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg, m)
	handlers := handler.NewHandlers(services)

	go cleanupSessions(repos.Session)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.HTTPMetrics(m))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)
	authRoutes.Post("/logout", h.Auth.Logout)
	authRoutes.Get("/me", middleware.AuthRequired(authService), h.Auth.Me)

	users := api.Group("/users", middleware.AuthRequired(authService))
	users.Put("/me", h.User.UpdateMe)
	users.Get("/search", middleware.RequireRole("ADMIN"), h.User.Search)
	users.Get("/", middleware.RequireRole("ADMIN"), h.User.List)
	users.Get("/username/:username", h.User.GetByUsername)
	users.Get("/exists/username/:username", middleware.RequireRole("ADMIN"), h.User.ExistsByUsername)
	users.Get("/exists/email/:email", middleware.RequireRole("ADMIN"), h.User.ExistsByEmail)
	users.Get("/:id", h.User.GetByID)
	users.Put("/:id/enabled", middleware.RequireRole("ADMIN"), h.User.SetEnabled)
	users.Delete("/:id", middleware.RequireRole("ADMIN"), h.User.Delete)

	shelters := api.Group("/shelters")
	shelters.Get("/", h.Shelter.List)
	shelters.Get("/search", h.Shelter.Search)
	shelters.Get("/nearby", h.Shelter.ByLocation)
	shelters.Get("/me", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Shelter.GetMine)
	shelters.Get("/:id", h.Shelter.GetByID)
	shelters.Get("/:id/pending-adoptions", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Shelter.PendingAdoptionsCount)
	shelters.Post("/", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Shelter.Create)
	shelters.Put("/:id", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Shelter.Update)
	shelters.Put("/:id/verify", middleware.AuthRequired(authService), middleware.RequireRole("ADMIN"), h.Shelter.Verify)
	shelters.Delete("/:id", middleware.AuthRequired(authService), middleware.RequireRole("ADMIN"), h.Shelter.Delete)

	animals := api.Group("/animals")
	animals.Get("/", h.Animal.ListAvailable)
	animals.Get("/search", h.Animal.Search)
	animals.Get("/filter", h.Animal.Filter)
	animals.Get("/shelter/:shelterId", h.Animal.ListByShelter)
	animals.Get("/:id", middleware.AuthOptional(authService), h.Animal.GetByID)
	animals.Post("/", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Animal.Create)
	animals.Put("/:id", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Animal.Update)
	animals.Delete("/:id", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Animal.Delete)
	animals.Post("/:id/images", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Animal.UploadImage)
	animals.Delete("/:id/images", middleware.AuthRequired(authService), middleware.RequireRole("SHELTER_ADMIN"), h.Animal.RemoveImage)

	adoptions := api.Group("/adoptions", middleware.AuthRequired(authService))
	adoptions.Post("/", h.Adoption.Create)
	adoptions.Get("/mine", h.Adoption.ListMine)
	adoptions.Get("/shelter", middleware.RequireRole("SHELTER_ADMIN"), h.Adoption.ListForShelter)
	adoptions.Get("/by-status", middleware.RequireRole("ADMIN"), h.Adoption.ListByStatus)
	adoptions.Get("/:id", h.Adoption.GetByID)
	adoptions.Put("/:id/approve", middleware.RequireRole("SHELTER_ADMIN"), h.Adoption.Approve)
	adoptions.Put("/:id/reject", middleware.RequireRole("SHELTER_ADMIN"), h.Adoption.Reject)
	adoptions.Put("/:id/complete", middleware.RequireRole("SHELTER_ADMIN"), h.Adoption.Complete)
	adoptions.Put("/:id/cancel", h.Adoption.Cancel)

	favorites := api.Group("/favorites", middleware.AuthRequired(authService))
	favorites.Get("/", h.Favorite.List)
	favorites.Post("/:animalId", h.Favorite.Add)
	favorites.Delete("/:animalId", h.Favorite.Remove)
	favorites.Get("/:animalId/check", h.Favorite.Check)
	favorites.Get("/:animalId/count", h.Favorite.Count)

	messages := api.Group("/messages", middleware.AuthRequired(authService))
	messages.Post("/", h.Message.Send)
	messages.Get("/", h.Message.List)
	messages.Get("/unread-count", h.Message.UnreadCount)
	messages.Get("/animal/:animalId", h.Message.ListByAnimal)
	messages.Get("/:id", h.Message.GetByID)
	messages.Put("/:id/read", h.Message.MarkAsRead)
	messages.Delete("/:id", h.Message.Delete)

	notifications := api.Group("/notifications", middleware.AuthRequired(authService))
	notifications.Post("/", middleware.RequireRole("ADMIN"), h.Notification.Create)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Get("/:id", h.Notification.GetByID)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)
}

// cleanupSessions prunes expired refresh sessions once an hour.
func cleanupSessions(sessions repository.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := sessions.DeleteExpired(context.Background()); err != nil {
			log.Printf("Warning: failed to delete expired sessions: %v", err)
		}
	}
}
