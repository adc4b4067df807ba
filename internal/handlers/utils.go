package handlers

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized signals that the authenticated user could not be
// resolved from the request context.
var ErrUnauthorized = errors.New("unauthorized")

// getUserIDFromContext reads the user ID the auth middleware placed in
// the context.
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}
	return userID, nil
}

// getIntQueryParam parses an integer query parameter, falling back to
// defaultValue when the parameter is absent or malformed.
func getIntQueryParam(c echo.Context, key string, defaultValue int) int {
	raw := c.QueryParam(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
