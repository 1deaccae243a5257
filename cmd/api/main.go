package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tastery/backend/config"
	"github.com/tastery/backend/internal/api"
	"github.com/tastery/backend/internal/database"
	"github.com/tastery/backend/internal/middleware"
	"github.com/tastery/backend/internal/router"
	"github.com/tastery/backend/internal/server"
	"github.com/tastery/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db, ingredientService)
	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL)

	// Image uploads and rate limiting are optional capabilities; the server
	// runs without them when S3 or Redis is not configured.
	var imageService *service.ImageService
	if s3Cfg, err := config.NewS3Config(context.Background(), cfg); err != nil {
		log.Printf("Image uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Cfg)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Rate limiting disabled: %v", err)
		} else {
			rateLimiter = middleware.NewRecipeWriteRateLimiter(redisClient)
		}
	}

	authHandler := api.NewAuthHandler(authService)
	recipeHandler := api.NewRecipeHandler(recipeService, ingredientService, imageService)

	engine := router.SetupRouter(cfg, authHandler, recipeHandler, authService, rateLimiter)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
