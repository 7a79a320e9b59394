// Package rest exposes the query/mutation API over HTTP and hosts the
// per-request authentication guard.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"socialnet/internal/logging"
	"socialnet/internal/server/models"
	"socialnet/internal/server/services"
)

// UserService is the registration/login surface consumed by the transport.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.LoginResult, error)
}

// ProfileService is the profile/search/follow surface consumed by the transport.
type ProfileService interface {
	GetUserByID(ctx context.Context, userID string) (*models.Profile, error)
	Search(ctx context.Context, keyword string) ([]models.UserSummary, error)
	Follow(ctx context.Context, followerID, followingID string) (*models.Follow, error)
	Unfollow(ctx context.Context, followerID, followingID string) error
}

type Server struct {
	address        string
	logger         logging.Logger
	users          UserService
	profiles       ProfileService
	jwtSecret      []byte
	requestTimeout time.Duration
	echo           *echo.Echo
}

func NewServer(address string, l logging.Logger, us UserService, ps ProfileService, secretKey string, requestTimeout time.Duration) *Server {
	s := &Server{
		address:        address,
		logger:         l.With("module", "rest_server"),
		users:          us,
		profiles:       ps,
		jwtSecret:      []byte(secretKey),
		requestTimeout: requestTimeout,
	}
	s.echo = s.buildRouter()
	return s
}

// requestValidator adapts go-playground/validator to echo's Validator hook so
// request DTOs are checked at the boundary.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func (s *Server) buildRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if s.requestTimeout > 0 {
		e.Use(middleware.ContextTimeout(s.requestTimeout))
	}

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	// search is public: it never consults the guard
	api.GET("/users/search", s.handleSearchUsers)

	guarded := api.Group("", s.requireAuth)
	guarded.GET("/users/:id", s.handleGetUserByID)
	guarded.POST("/users/:id/follow", s.handleFollow)
	guarded.DELETE("/users/:id/follow", s.handleUnfollow)

	return e
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
