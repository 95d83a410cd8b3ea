package user

import (
	"context"
	"log/slog"
	"strings"

	"planets-api/internal/shared/errors"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing user service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Register creates an account with a bcrypt-hashed password. Duplicate
// email is a conflict; the email unique constraint backs the pre-check.
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password string) (*User, error) {
	logger := s.logger.With("component", "user_service", "operation", "register", "email", email)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, errors.Validation("email is required")
	}
	if password == "" {
		return nil, errors.Validation("password is required")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, err
	}
	if existing != nil {
		logger.Debug("Email already registered", "existing_id", existing.ID)
		return nil, errors.Conflictf("email %s is already registered", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.WrapInternal("failed to hash password", err)
	}

	created, err := s.repo.Create(ctx, &User{
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", "user_id", created.ID)
	return created, nil
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	logger := s.logger.With("component", "user_service", "operation", "authenticate", "email", email)

	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.GetType(err) == errors.ErrorTypeNotFound {
			logger.Debug("Unknown email")
			return nil, errors.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		logger.Debug("Password mismatch")
		return nil, errors.Unauthorized("invalid email or password")
	}

	return u, nil
}

// GetByEmail looks up a user by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}

// ChangePassword replaces the stored password hash.
func (s *Service) ChangePassword(ctx context.Context, id int, newPassword string) error {
	if newPassword == "" {
		return errors.Validation("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.WrapInternal("failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.logger.Info("Password changed", "component", "user_service", "user_id", id)
	return nil
}
