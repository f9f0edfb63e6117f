package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"topic-board/config"
	"topic-board/handlers"
	"topic-board/helper"
	"topic-board/middleware"
	"topic-board/models"
	"topic-board/repositories"
	"topic-board/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found")
	}

	config.InitLogger()
	cfg := config.Load()

	// Credential manager; the iteration count is a deliberate cost knob.
	pwm := helper.NewPasswordManager()
	if cfg.PBKDF2Iterations > 0 {
		pwm.Iterations = cfg.PBKDF2Iterations
	}

	// The relational engine always holds users; topics live there too
	// unless the file backend is selected.
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	switch cfg.Backend {
	case config.BackendPostgres:
		if err := db.AutoMigrate(&models.User{}, &models.Topic{}); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate schema")
		}
	default:
		if err := repositories.EnsureSchema(db, cfg.MigrationDir); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, pwm)
	var topicRepo repositories.TopicRepository
	if cfg.Backend == config.BackendFile {
		topicRepo, err = repositories.NewFileTopicRepository(cfg.TopicsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open topics directory")
		}
	} else {
		topicRepo = repositories.NewSQLTopicRepository(db)
	}
	log.Info().Str("backend", cfg.Backend).Msg("topic store ready")

	// Initialize services
	authService := services.NewAuthService(userRepo)
	topicService := services.NewTopicService(topicRepo, helper.NewMarkdownRenderer())
	omikujiService := services.NewOmikujiService(topicRepo)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	topicHandler := handlers.NewTopicHandler(topicService, omikujiService, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public topic routes
		topics := v1.Group("/topics")
		{
			topics.GET("", topicHandler.ListTopics)
			topics.GET("/search", topicHandler.SearchTopics)
			topics.GET("/:id", topicHandler.GetTopic)
			topics.POST("/preview", topicHandler.PreviewTopic)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile/password", authHandler.ChangePassword)
			protected.POST("/topics", topicHandler.CreateTopic)

			// Admin only
			admin := protected.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.DELETE("/topics/:id", topicHandler.DeleteTopic)
				admin.GET("/omikuji", topicHandler.Omikuji)
			}
		}
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
