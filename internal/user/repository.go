package user

import (
	"context"
	"database/sql"
	"log/slog"

	"planets-api/internal/shared/database"
	"planets-api/internal/shared/errors"
)

// Repository is the data access contract for users.
type Repository interface {
	GetByID(ctx context.Context, id int) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

type postgresRepository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) Repository {
	logger.Debug("Initializing user repository")

	return &postgresRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = "id, first_name, last_name, email, password_hash"

func scanUser(row *sql.Row, u *User) error {
	return row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
	)
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	var u User
	err := scanUser(r.db.QueryRowContext(ctx, query, id), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("user %d not found", id)
		}
		return nil, errors.WrapInternal("failed to get user", err)
	}

	return &u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	var u User
	err := scanUser(r.db.QueryRowContext(ctx, query, email), &u)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("user %s not found", email)
		}
		return nil, errors.WrapInternal("failed to get user by email", err)
	}

	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *User) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "create",
		"email", u.Email,
	)
	logger.Debug("Creating user")

	query := `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `
	`

	var created User
	err := scanUser(r.db.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.PasswordHash), &created)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.Conflictf("email %s is already registered", u.Email)
		}
		logger.Error("Failed to create user", "error", err)
		return nil, errors.WrapInternal("failed to create user", err)
	}

	logger.Debug("User created successfully", "user_id", created.ID)
	return &created, nil
}

func (r *postgresRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "update_password",
		"user_id", id,
	)
	logger.Debug("Updating user password")

	query := `
		UPDATE users
		SET password_hash = $2
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		logger.Error("Failed to update password", "error", err)
		return errors.WrapInternal("failed to update password", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read update result", err)
	}
	if affected == 0 {
		return errors.NotFoundf("user %d not found", id)
	}

	logger.Debug("Password updated successfully")
	return nil
}
