package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stridepath/goal_service/config"
	"github.com/stridepath/goal_service/infra/queue"
	"github.com/stridepath/goal_service/internal/api/rest/handlers"
	"github.com/stridepath/goal_service/internal/api/rest/middleware"
	"github.com/stridepath/goal_service/internal/domain"
	"github.com/stridepath/goal_service/internal/helper"
	"github.com/stridepath/goal_service/internal/repository"
	"github.com/stridepath/goal_service/internal/services"
)

func StartServer(cfg config.Config) {
	app := fiber.New()

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Goal{},
		&domain.Step{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)

	if cfg.AccessSecret == "" {
		log.Fatal("ACCESS_SECRET is required")
	}
	authHelper := helper.SetupAuth(cfg.AccessSecret, cfg.AccessTTL)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	goalRepo := repository.NewGoalRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, kafkaProducer, authHelper)
	goalSvc := services.NewGoalService(goalRepo, kafkaProducer)

	// ---------- Handlers ----------
	authRequired := middleware.AuthMiddleware(userSvc, true)

	userHandler := handlers.NewUserHandler(userSvc, authHelper)
	userHandler.SetupRoutes(app, authRequired)

	goalHandler := handlers.NewGoalHandler(goalSvc, authHelper)
	goalHandler.SetupRoutes(app, authRequired)

	// ---------- Health ----------
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	log.Println("listening on", cfg.ServerPort)
	log.Fatal(app.Listen(cfg.ServerPort))
}
