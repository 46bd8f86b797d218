package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the authenticated username injected by the Auth
// middleware. Presence proves the middleware ran; an empty value means the
// route was wired without it.
func ctxActor(c echo.Context) (string, error) {
	actor, _ := c.Get("username").(string)
	if actor == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
