package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/tahmid-rayat/momentgram/backend/internal/models"
)

// getUserIDFromContext returns the verified actor id set by the JWT
// middleware, or 0 when the request is unauthenticated.
func getUserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get("userID").(uint); ok {
		return id
	}
	if claims, ok := c.Get("user").(*models.JwtCustomClaims); ok {
		return claims.UserID
	}
	return 0
}
