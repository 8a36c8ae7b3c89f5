package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/octobees/sales-routes/api/internal/auth"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidAuthorization = errors.New("invalid authorization header")
	errInvalidToken         = errors.New("invalid token")
)

// JWT requires a valid bearer token and stores the caller identity in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return bearerAuth(manager, true)
}

// OptionalJWT lets anonymous requests through untouched. A request that does
// carry an Authorization header must still present a valid token.
func OptionalJWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return bearerAuth(manager, false)
}

func bearerAuth(manager *authpkg.JWTManager, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" && !required {
				return next(c)
			}

			id, err := authenticate(manager, header)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			setIdentity(c, id)

			return next(c)
		}
	}
}

func authenticate(manager *authpkg.JWTManager, header string) (Identity, error) {
	if header == "" {
		return Identity{}, errMissingAuthorization
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return Identity{}, errInvalidAuthorization
	}

	claims, err := manager.ParseToken(strings.TrimSpace(token))
	if err != nil || claims.Subject == "" {
		return Identity{}, errInvalidToken
	}

	return Identity{UserID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}
