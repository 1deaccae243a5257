package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastery/backend/internal/service"
	"github.com/tastery/backend/internal/types"
)

const maxImageSize = 5 << 20 // 5 MiB

// RecipeHandler exposes recipe and ingredient endpoints.
type RecipeHandler struct {
	recipeService     *service.RecipeService
	ingredientService *service.IngredientService
	imageService      *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler instance. imageService may be
// nil when no object storage is configured.
func NewRecipeHandler(recipeService *service.RecipeService, ingredientService *service.IngredientService, imageService *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		ingredientService: ingredientService,
		imageService:      imageService,
	}
}

// ListRecipes returns all recipes with their ingredient lines, name-ordered.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe with its ingredient lines.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe persists a recipe with its ingredient lines atomically.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var input types.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), &input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe applies a partial update of scalar fields.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var patch types.RecipeUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, &patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe and its ingredient lines.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted", "id": id})
}

// UploadRecipeImage stores a recipe image and records its URL.
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds maximum size"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), id, data, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	if err := h.recipeService.SetImageURL(c.Request.Context(), id, url); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// SearchIngredients returns up to 5 ingredients matching the query.
func (h *RecipeHandler) SearchIngredients(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	ingredients, err := h.ingredientService.Search(c.Request.Context(), query, 5)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

// CreateIngredient finds or creates an ingredient by name. Responds 201 when
// a row was created and 200 when an existing one matched.
func (h *RecipeHandler) CreateIngredient(c *gin.Context) {
	var input types.IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrorResponse(err))
		return
	}

	ingredient, created, err := h.ingredientService.FindOrCreate(c.Request.Context(), input.Name, input.Category)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ingredient)
}
