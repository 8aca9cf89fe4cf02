package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/schooladmin/internal/app/forms"
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/repositories"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// SessionWriter is the part of the session service the auth flows need.
type SessionWriter interface {
	Set(ctx context.Context, token string, user *models.User) error
	Clear(ctx context.Context) error
}

// AuthService defines the interface for account operations
type AuthService interface {
	Login(ctx context.Context, values forms.LoginValues) (*models.User, error)
	Signup(ctx context.Context, values forms.SignupValues) (*models.User, error)
	Logout(ctx context.Context) error
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	authRepo repositories.IAuthRepository
	sessions SessionWriter
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(authRepo repositories.IAuthRepository, sessions SessionWriter, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		authRepo: authRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates against the backend and stores the token in the session.
func (s *authServiceImpl) Login(ctx context.Context, values forms.LoginValues) (*models.User, error) {
	values.Email = strings.TrimSpace(values.Email)
	if err := validation.NewError(values.Validate()); err != nil {
		return nil, err
	}

	payload, err := s.authRepo.Login(ctx, values.Email, values.Password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", values.Email).Msg("Login failed")
		return nil, err
	}

	return s.establish(ctx, payload, values.Email)
}

// Signup creates an account and signs it in the same way login does.
func (s *authServiceImpl) Signup(ctx context.Context, values forms.SignupValues) (*models.User, error) {
	values.Email = strings.TrimSpace(values.Email)
	if err := validation.NewError(values.Validate()); err != nil {
		return nil, err
	}

	payload, err := s.authRepo.Signup(ctx, values.FullName(), values.Email, values.Password, models.RoleStudent)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", values.Email).Msg("Signup failed")
		return nil, err
	}

	return s.establish(ctx, payload, values.Email)
}

func (s *authServiceImpl) establish(ctx context.Context, payload *repositories.AuthPayload, email string) (*models.User, error) {
	if payload.Token == "" {
		return nil, apperrors.ErrTokenMissing
	}

	user := payload.User
	if user == nil {
		user = &models.User{Email: email}
	}

	if err := s.sessions.Set(ctx, payload.Token, user); err != nil {
		s.logger.Error().Err(err).Msg("Failed to store session")
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("User signed in")
	return user, nil
}

// Logout tells the backend and clears the local session whatever it answers.
func (s *authServiceImpl) Logout(ctx context.Context) error {
	if err := s.authRepo.Logout(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Backend logout failed")
	}
	return s.sessions.Clear(ctx)
}
