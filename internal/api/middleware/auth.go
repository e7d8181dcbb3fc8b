package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/streamhub/user-service/internal/api/metrics"
	"github.com/streamhub/user-service/internal/core/domain"
	"github.com/streamhub/user-service/internal/core/ports"
)

// AccessTokenCookie is the HTTP-only cookie carrying the access token.
const AccessTokenCookie = "accessToken"

// AccessTokenVerifier validates an access token and returns the account id
// it is bound to. Refresh tokens are signed with a different key and fail
// verification here.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// Auth authenticates the request and injects the caller's account into the
// context. The cookie takes precedence over the Authorization header. A
// validly signed token whose account no longer exists is rejected as
// unauthenticated.
func Auth(tokens AccessTokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthenticated
			}

			userID, err := tokens.VerifyAccessToken(token)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					metrics.TokenRejectionsTotal.WithLabelValues("unknown_account").Inc()
					return domain.ErrUnauthenticated
				}
				return err
			}

			c.Set("user", user.Public())
			c.Set("userID", user.ID)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
