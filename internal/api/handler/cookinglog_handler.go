package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-catalog/internal/core/ports"
)

// CookingLogHandler handles cooking log mutations on a recipe.
type CookingLogHandler struct {
	log ports.CookingLogService
}

func NewCookingLogHandler(log ports.CookingLogService) *CookingLogHandler {
	return &CookingLogHandler{log: log}
}

// Add handles POST /v1/recipes/:id/log — records a cooking session and
// returns the recipe with its recomputed rating.
func (h *CookingLogHandler) Add(c echo.Context) error {
	var req cookingLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.CookingLogInput{
		Notes:  req.Notes,
		Rating: req.Rating,
	}
	if req.Timestamp != nil {
		in.Timestamp = *req.Timestamp
	}

	recipe, err := h.log.Add(c.Request().Context(), ctxActor(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}

// Remove handles DELETE /v1/recipes/:id/log/:index.
func (h *CookingLogHandler) Remove(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "log index must be an integer")
	}

	recipe, err := h.log.Remove(c.Request().Context(), ctxActor(c), c.Param("id"), index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recipe)
}
