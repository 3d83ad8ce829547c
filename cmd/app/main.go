package main

import (
	"context"
	"fmt"
	"log"

	"coursemarket/config"
	"coursemarket/internal/auth"
	"coursemarket/internal/domain"
	"coursemarket/internal/media"
	"coursemarket/internal/middleware"
	"coursemarket/internal/payment"
	"coursemarket/internal/repository"
	"coursemarket/internal/service"
	handlers "coursemarket/internal/transport/http"
	"coursemarket/internal/webhook"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("DB Connection failed:", err)
	}

	// Миграция
	db.AutoMigrate(
		&domain.User{},
		&domain.Course{},
		&domain.Chapter{},
		&domain.Lecture{},
		&domain.Purchase{},
		&domain.CourseProgress{},
		&domain.CompletedLecture{},
		&domain.Rating{},
	)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	// Внешние адаптеры: передаются явно, не глобальными синглтонами
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	uploader, err := media.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("Failed to init media uploader: %v", err)
	}

	clerkVerifier, err := webhook.NewClerkVerifier(cfg.ClerkWebhookSecret)
	if err != nil {
		log.Fatalf("Failed to init clerk verifier: %v", err)
	}
	stripeVerifier := webhook.NewStripeVerifier(cfg.StripeWebhookSecret)

	// Репозитории
	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db, rdb)
	purchaseRepo := repository.NewPurchaseRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Сервисы
	purchaseService := service.NewPurchaseService(userRepo, courseRepo, purchaseRepo, gateway, cfg.Currency)
	identityService := service.NewIdentityService(userRepo)
	catalogService := service.NewCatalogService(userRepo, courseRepo)
	progressService := service.NewProgressService(progressRepo)
	ratingService := service.NewRatingService(userRepo, courseRepo)
	educatorService := service.NewEducatorService(userRepo, courseRepo, purchaseRepo, uploader)

	// HTTP
	verifier := auth.NewTokenVerifier(cfg.ClerkJWTKey)
	limiter := middleware.NewRateLimiter(rdb)

	userHandler := handlers.NewUserHandler(userRepo, catalogService, purchaseService, progressService, ratingService)
	courseHandler := handlers.NewCourseHandler(catalogService)
	educatorHandler := handlers.NewEducatorHandler(educatorService)
	webhookHandler := handlers.NewWebhookHandler(clerkVerifier, stripeVerifier, identityService, purchaseService)

	router := handlers.NewRouter(userHandler, courseHandler, educatorHandler, webhookHandler, verifier, limiter, userRepo, cfg.AllowedOrigins)

	log.Printf("Server running on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
