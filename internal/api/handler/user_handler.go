package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/platefull/recipe-catalog/internal/core/ports"
)

// UserHandler handles the authenticated user's own profile.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /v1/users/me.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), ctxActor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PATCH /v1/users/me. Only the authenticated user's own
// profile is reachable; there is no path parameter to point elsewhere.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), ctxActor(c), ports.UpdateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /v1/users/me. Owned recipes are removed with the
// account.
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), ctxActor(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
