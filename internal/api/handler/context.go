package handler

import "github.com/labstack/echo/v4"

// ctxActor extracts the authenticated user id injected by the Auth
// middleware. An empty return means the caller is anonymous; services treat
// that as unauthenticated on their own, independent of the HTTP-layer check.
func ctxActor(c echo.Context) string {
	actorID, _ := c.Get("user_id").(string)
	return actorID
}
