package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mharfe/storyforge-server/internal/api"
	"github.com/mharfe/storyforge-server/internal/config"
	"github.com/mharfe/storyforge-server/internal/queue"
	"github.com/mharfe/storyforge-server/internal/ratelimit"
	"github.com/mharfe/storyforge-server/internal/repository"
	"github.com/mharfe/storyforge-server/internal/service"
	"github.com/mharfe/storyforge-server/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	logger := utils.NewLogger()

	// Select the storage backend
	var repo repository.Repository
	switch cfg.Database.Backend {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		repo = repository.NewMemoryRepository()
	default:
		db, err := config.SetupDatabase(cfg)
		if err != nil {
			logger.WithError(err).Fatal("failed to set up database")
		}
		defer db.Close()
		repo = repository.NewPostgresRepository(db)
	}

	// Login rate limiter, enabled when Redis is configured
	var loginLimiter *ratelimit.FixedWindowLimiter
	if cfg.Redis.Addr != "" {
		var err error
		loginLimiter, err = ratelimit.NewFixedWindowLimiter(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			"storyforge:login",
			cfg.Redis.LoginLimit,
			cfg.Redis.LoginWindow,
		)
		if err != nil {
			logger.WithError(err).Fatal("failed to set up rate limiter")
		}
	}

	// Generation event publisher, enabled when RabbitMQ is configured
	var publisher queue.Publisher = queue.NoopPublisher{}
	if cfg.Queue.URL != "" {
		publisher = queue.NewAMQPPublisher(cfg.Queue.URL, cfg.Queue.QueueName, logger)
	}

	tokens := utils.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Create service
	svc := service.NewDefaultService(repo, tokens, publisher, cfg.Tokens, logger)

	// Create API handler
	handler := api.NewHandler(svc, repo, tokens, loginLimiter, cfg.Auth.AllowUserIDHeader, logger)

	// Set up Gin router
	router := gin.Default()
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.WithField("addr", serverAddr).Info("starting server")
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		logger.WithError(err).Fatal("failed to start server")
	}
}
