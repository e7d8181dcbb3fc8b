package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/streamhub/user-service/internal/core/domain"
)

// currentUser extracts the account injected by the Auth middleware. Its
// absence means the route was wired without the middleware; reject rather
// than proceed unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
