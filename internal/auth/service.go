package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"planets-api/internal/mail"
	"planets-api/internal/shared/errors"
	"planets-api/internal/user"
)

type Service struct {
	users        *user.Service
	issuer       *TokenIssuer
	resetTokens  ResetTokenStore
	mailer       mail.Sender
	resetTTL     time.Duration
	resetBaseURL string
	logger       *slog.Logger
}

func NewService(users *user.Service, issuer *TokenIssuer, resetTokens ResetTokenStore, mailer mail.Sender, resetTTL time.Duration, resetBaseURL string, logger *slog.Logger) *Service {
	logger.Debug("Initializing auth service")

	return &Service{
		users:        users,
		issuer:       issuer,
		resetTokens:  resetTokens,
		mailer:       mailer,
		resetTTL:     resetTTL,
		resetBaseURL: resetBaseURL,
		logger:       logger,
	}
}

// Login verifies credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	logger := s.logger.With("component", "auth_service", "operation", "login", "email", email)

	u, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.issuer.Generate(u.ID, u.Email)
	if err != nil {
		return "", errors.WrapInternal("failed to issue token", err)
	}

	logger.Info("Login succeeded", "user_id", u.ID)
	return token, nil
}

// RequestPasswordReset issues a single-use reset token for the account and
// mails a link carrying it. The password itself is never sent anywhere.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	logger := s.logger.With("component", "auth_service", "operation", "request_password_reset", "email", email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.GetType(err) == errors.ErrorTypeNotFound {
			logger.Debug("Reset requested for unknown email")
			return errors.Unauthorized("no account with that email")
		}
		return err
	}

	token, err := NewResetToken()
	if err != nil {
		return errors.WrapInternal("failed to generate reset token", err)
	}

	if err := s.resetTokens.Save(ctx, token, u.ID, s.resetTTL); err != nil {
		return errors.WrapInternal("failed to store reset token", err)
	}

	resetLink := fmt.Sprintf("%s/reset_password/confirm?token=%s", s.resetBaseURL, token)
	if err := s.mailer.SendPasswordReset(ctx, u.Email, u.FirstName, resetLink); err != nil {
		return err
	}

	logger.Info("Password reset requested", "user_id", u.ID)
	return nil
}

// ConfirmPasswordReset exchanges a valid reset token for a new password.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	logger := s.logger.With("component", "auth_service", "operation", "confirm_password_reset")

	if token == "" {
		return errors.Validation("token is required")
	}

	userID, ok, err := s.resetTokens.Consume(ctx, token)
	if err != nil {
		return errors.WrapInternal("failed to consume reset token", err)
	}
	if !ok {
		logger.Debug("Invalid or expired reset token")
		return errors.Unauthorized("invalid or expired reset token")
	}

	if err := s.users.ChangePassword(ctx, userID, newPassword); err != nil {
		return err
	}

	logger.Info("Password reset completed", "user_id", userID)
	return nil
}
