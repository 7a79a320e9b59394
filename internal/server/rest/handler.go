package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"socialnet/internal/common"
	"socialnet/internal/server/services"
)

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"userId"`
	Username    string `json:"username"`
}

// httpError translates service sentinels into transport status codes.
// Anything unmapped is an internal error and the detail stays server-side.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername),
		errors.Is(err, common.ErrDuplicateEmail),
		errors.Is(err, common.ErrInvalidEmail),
		errors.Is(err, common.ErrWeakPassword),
		errors.Is(err, common.ErrEmptyKeyword):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrUnauthenticated), errors.Is(err, common.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	case errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrUpstreamTimeout):
		return echo.NewHTTPError(http.StatusGatewayTimeout, "upstream timeout")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := s.users.Register(c.Request().Context(), services.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.logger.Warn(c.Request().Context(), "registration rejected", "error", err)
		return httpError(err)
	}

	// the response is an acknowledgement; the caller logs in to get the record
	return c.JSON(http.StatusCreated, "Registered")
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: result.AccessToken,
		UserID:      result.UserID,
		Username:    result.Username,
	})
}

func (s *Server) handleGetUserByID(c echo.Context) error {
	profile, err := s.profiles.GetUserByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	// absent users resolve to null, not 404
	return c.JSON(http.StatusOK, profile)
}

func (s *Server) handleSearchUsers(c echo.Context) error {
	users, err := s.profiles.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (s *Server) handleFollow(c echo.Context) error {
	claims := callerClaims(c)
	if claims == nil {
		return httpError(common.ErrUnauthenticated)
	}

	follow, err := s.profiles.Follow(c.Request().Context(), claims.UserID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, follow)
}

func (s *Server) handleUnfollow(c echo.Context) error {
	claims := callerClaims(c)
	if claims == nil {
		return httpError(common.ErrUnauthenticated)
	}

	if err := s.profiles.Unfollow(c.Request().Context(), claims.UserID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
