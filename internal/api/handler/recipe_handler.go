package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-catalog/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations.
type RecipeHandler struct {
	recipes ports.RecipeService
}

func NewRecipeHandler(recipes ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// List handles GET /v1/recipes. Without an owner query parameter it returns
// the public seed listing; with one it returns that owner's recipes. Both are
// public reads.
func (h *RecipeHandler) List(c echo.Context) error {
	var ownerID *string
	if owner := c.QueryParam("owner"); owner != "" {
		ownerID = &owner
	}

	recipes, err := h.recipes.List(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipes)
}

// Get handles GET /v1/recipes/:id — a public read.
func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, err := h.recipes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}

// Create handles POST /v1/recipes.
func (h *RecipeHandler) Create(c echo.Context) error {
	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	recipe, err := h.recipes.Create(c.Request().Context(), ports.CreateRecipeInput{
		Name:            req.Name,
		HeroIngredient:  req.HeroIngredient,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		PhotoRef:        req.PhotoRef,
		OwnerID:         ctxActor(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, recipe)
}

// Update handles PATCH /v1/recipes/:id.
func (h *RecipeHandler) Update(c echo.Context) error {
	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	recipe, err := h.recipes.Update(c.Request().Context(), ctxActor(c), c.Param("id"), ports.UpdateRecipeInput{
		Name:            req.Name,
		HeroIngredient:  req.HeroIngredient,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		PhotoRef:        req.PhotoRef,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}

// Delete handles DELETE /v1/recipes/:id.
func (h *RecipeHandler) Delete(c echo.Context) error {
	if err := h.recipes.Delete(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
