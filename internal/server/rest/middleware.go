package rest

import (
	"strings"

	"github.com/labstack/echo/v4"

	"socialnet/internal/common"
	"socialnet/internal/server/auth"
)

const claimsContextKey = "auth_claims"

// requireAuth rejects requests that do not carry a valid bearer token.
// A missing header and a bad token produce the same response so the
// guard leaks nothing about why the check failed.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return httpError(common.ErrUnauthenticated)
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			return httpError(common.ErrUnauthenticated)
		}

		c.Set(claimsContextKey, claims)
		return next(c)
	}
}

// callerClaims returns the claims stored by requireAuth, or nil on an
// unguarded route.
func callerClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsContextKey).(*auth.Claims)
	return claims
}
