// Package services contains the server-side business logic. This file
// implements UserService: registration with its validation taxonomy, and
// login with stateless token issuance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"

	"socialnet/internal/common"
	"socialnet/internal/cryptox"
	"socialnet/internal/dbx"
	"socialnet/internal/server/auth"
	"socialnet/internal/server/config"
	"socialnet/internal/server/models"
	"socialnet/internal/server/repositories/repomanager"
)

// emailPattern accepts the conventional local@domain.tld shape and nothing
// fancier: no whitespace, exactly one @, a dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterInput carries the candidate fields for a new user. Name is
// optional; the rest are required at the transport boundary.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	UserID      string
	Username    string
}

// UserService handles registration and login.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register validates the candidate and persists a new user. The checks run in
// a fixed order and the first failure wins: username uniqueness, email
// uniqueness, email format, password strength. On success exactly one row is
// inserted; on any failure nothing is written. The pre-insert uniqueness
// checks decide which error is reported; the store's unique indexes are the
// backstop that holds the invariant under concurrent registrations, and a
// constraint violation surfaces as the same Duplicate* error.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {

	var created *models.User

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByUsername(ctx, in.Username); err == nil {
			return common.ErrDuplicateUsername
		} else if !errors.Is(err, common.ErrNotFound) {
			return mapStoreError(err)
		}

		if _, err := repo.GetByEmail(ctx, in.Email); err == nil {
			return common.ErrDuplicateEmail
		} else if !errors.Is(err, common.ErrNotFound) {
			return mapStoreError(err)
		}

		if !emailPattern.MatchString(in.Email) {
			return common.ErrInvalidEmail
		}

		if len(in.Password) < config.MinPasswordLength {
			return common.ErrWeakPassword
		}

		hash, err := cryptox.HashPassword(in.Password)
		if err != nil {
			return common.ErrInternal
		}

		user := &models.User{
			ID:           uuid.NewString(),
			Name:         in.Name,
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
		}

		created, err = repo.Create(ctx, user)
		if err != nil {
			if errors.Is(err, common.ErrDuplicateUsername) || errors.Is(err, common.ErrDuplicateEmail) {
				return err
			}
			return mapStoreError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Login authenticates the credentials and issues a session token. An unknown
// username and a wrong password produce the same ErrInvalidCredentials, so
// the response never reveals which half was wrong.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, mapStoreError(err)
	}

	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	claims := auth.Claims{
		UserID:   user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	}

	token, err := auth.GenerateToken(claims, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &LoginResult{AccessToken: token, UserID: user.ID, Username: user.Username}, nil
}
