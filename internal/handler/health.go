package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the unauthenticated liveness endpoint used by load balancers.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
