package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/cache"
	"github.com/taskfixer/servicios-api/internal/config"
	"github.com/taskfixer/servicios-api/internal/handlers"
	"github.com/taskfixer/servicios-api/internal/identity"
	"github.com/taskfixer/servicios-api/internal/logger"
	"github.com/taskfixer/servicios-api/internal/middleware"
	"github.com/taskfixer/servicios-api/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init("servicios-api", cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	db := client.Database(cfg.MongoDBName)

	provider, err := identity.NewFirebase(ctx, cfg.FirebaseCredsBase64, cfg.FirebaseCredsFile, cfg.FirebaseAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("firebase init failed")
	}

	rdb := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if rdb != nil {
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, caching disabled")
			rdb = nil
		}
	}
	profCache := cache.NewProfessionCache(rdb)

	users := storage.NewUserStore(db)
	professions := storage.NewProfessionStore(db)
	services := storage.NewServiceOfferingStore(db)
	reservations := storage.NewReservationStore(db)
	reservationServices := storage.NewReservationServiceStore(db)
	reviews := storage.NewReviewStore(db)
	serviceReviews := storage.NewServiceReviewStore(db)

	authH := handlers.NewAuthHandler(users, provider, cfg.JWTSecret)
	professionH := handlers.NewProfessionHandler(professions, profCache)
	serviceH := handlers.NewServiceOfferingHandler(services, professions)
	reservationH := handlers.NewReservationHandler(reservations, users, cfg.HoursBeforeUpdate)
	reservationServiceH := handlers.NewReservationServiceHandler(reservationServices)
	reviewH := handlers.NewReviewHandler(reviews, services)
	serviceReviewH := handlers.NewServiceReviewHandler(serviceReviews)
	publicH := handlers.NewPublicHandler(professions, profCache)
	healthH := handlers.NewHealthHandler(func(ctx context.Context) error {
		return storage.Ping(ctx, client)
	}, rdb)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperr.ErrorHandler,
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// public
	app.Get("/", healthH.Root)
	app.Get("/health", healthH.Health)
	app.Get("/ready", healthH.Ready)
	app.Post("/users", authH.Register)
	app.Post("/login", authH.Login)
	app.Get("/public/professions", publicH.Professions)

	// gated
	protected := app.Group("/", middleware.Protected(cfg.JWTSecret))

	prof := protected.Group("/professions")
	prof.Post("/", professionH.Create)
	prof.Get("/", professionH.List)
	prof.Get("/with-service-count", professionH.WithServiceCount)
	prof.Get("/search", professionH.Search)
	prof.Get("/:id", professionH.GetByID)
	prof.Get("/:id/usage", professionH.Usage)
	prof.Put("/:id", professionH.Update)
	prof.Delete("/:id", professionH.Delete)

	svc := protected.Group("/service_offering")
	svc.Get("/", serviceH.List)
	svc.Get("/:id", serviceH.GetByID)
	svc.Post("/", middleware.Require(middleware.RoleAdminOrProfessional), serviceH.Create)
	svc.Put("/:id", serviceH.Update)
	svc.Delete("/:id", serviceH.Delete)

	res := protected.Group("/reservations")
	res.Post("/", reservationH.Create)
	res.Get("/", middleware.Require(middleware.RoleAdmin), reservationH.List)
	res.Get("/:id", reservationH.GetByID)
	res.Put("/:id", reservationH.Update)
	res.Delete("/:id", middleware.Require(middleware.RoleAdmin), reservationH.Delete)

	resSvc := protected.Group("/reservation_services")
	resSvc.Post("/", reservationServiceH.Create)
	resSvc.Get("/", middleware.Require(middleware.RoleAdmin), reservationServiceH.List)
	resSvc.Get("/:id", reservationServiceH.GetByID)
	resSvc.Put("/:id", reservationServiceH.Update)
	resSvc.Delete("/:id", middleware.Require(middleware.RoleAdmin), reservationServiceH.Delete)

	rev := protected.Group("/reviews")
	rev.Post("/", reviewH.Create)
	rev.Get("/", middleware.Require(middleware.RoleAdmin), reviewH.List)
	rev.Get("/stats", middleware.Require(middleware.RoleAdmin), reviewH.Stats)
	rev.Get("/:id", reviewH.GetByID)
	rev.Put("/:id", reviewH.Update)
	rev.Delete("/:id", middleware.Require(middleware.RoleAdmin), reviewH.Delete)

	srev := protected.Group("/service_reviews")
	srev.Post("/", serviceReviewH.Create)
	srev.Get("/", middleware.Require(middleware.RoleAdmin), serviceReviewH.List)
	srev.Get("/:id", serviceReviewH.GetByID)
	srev.Delete("/:id", middleware.Require(middleware.RoleAdmin), serviceReviewH.Delete)

	log.Info().Str("port", cfg.AppPort).Msg("listening")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
