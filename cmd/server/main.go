package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/devconnect/adapters/event"
	httpAdapter "github.com/khoahotran/devconnect/adapters/http"
	"github.com/khoahotran/devconnect/adapters/persistence"
	profileUC "github.com/khoahotran/devconnect/internal/application/usecase/profile"
	"github.com/khoahotran/devconnect/internal/config"
	"github.com/khoahotran/devconnect/pkg/auth"
	"github.com/khoahotran/devconnect/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Start DevConnect API Server...")

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	profileCache := persistence.NewRedisProfileCache(redisClient, cfg.Redis.CacheTTL, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, kafkaClient, profileCache, appLogger)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)
	errorMiddleware := httpAdapter.ErrorMiddleware(appLogger)

	// Setup Gin router
	router := gin.Default()
	router.Use(errorMiddleware)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profileRoutes := api.Group("/profile")
		{
			profileRoutes.GET("/all", profileHandler.ListProfiles)
			profileRoutes.GET("/handle/:handle", profileHandler.GetProfileByHandle)
			profileRoutes.GET("/user/:user_id", profileHandler.GetProfileByUserID)

			private := profileRoutes.Group("")
			private.Use(authMiddleware)
			{
				private.GET("", profileHandler.GetOwnProfile)
				private.POST("", profileHandler.UpsertProfile)
				private.POST("/experience", profileHandler.AddExperience)
				private.POST("/education", profileHandler.AddEducation)
				private.DELETE("/experience/:exp_id", profileHandler.RemoveExperience)
				private.DELETE("/education/:edu_id", profileHandler.RemoveEducation)
				private.DELETE("", profileHandler.DeleteAccount)
			}
		}
	}

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
