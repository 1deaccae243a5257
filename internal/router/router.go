package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tastery/backend/config"
	"github.com/tastery/backend/internal/api"
	"github.com/tastery/backend/internal/middleware"
)

// SetupRouter configures the application routes. rateLimiter may be nil when
// Redis is not configured; recipe writes then run unthrottled.
func SetupRouter(
	cfg *config.Config,
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	validator middleware.TokenValidator,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	root := router.Group("/api")

	auth := root.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(validator), authHandler.Me)
	}

	recipes := root.Group("/recipes")
	{
		// Reads are public; recipes are not scoped per user.
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/:id", recipeHandler.GetRecipe)
		recipes.GET("/ingredients/search", recipeHandler.SearchIngredients)

		gated := recipes.Group("")
		gated.Use(middleware.AuthMiddleware(validator))
		if rateLimiter != nil {
			gated.Use(rateLimiter.RateLimitMiddleware())
		}
		{
			gated.POST("", recipeHandler.CreateRecipe)
			gated.PATCH("/:id", recipeHandler.UpdateRecipe)
			gated.DELETE("/:id", recipeHandler.DeleteRecipe)
			gated.POST("/:id/image", recipeHandler.UploadRecipeImage)
			gated.POST("/ingredients", recipeHandler.CreateIngredient)
		}
	}

	return router
}
