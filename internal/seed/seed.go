package seed

import (
	"context"
	"log/slog"

	"planets-api/internal/planet"
	"planets-api/internal/shared/database"
	"planets-api/internal/user"

	"golang.org/x/crypto/bcrypt"
)

// Planets are the fixture planets loaded by "db seed".
var Planets = []planet.Planet{
	{
		PlanetName: "Mercury",
		PlanetType: "Class D",
		HomeStar:   "Sol",
		Mass:       3.258e23,
		Radius:     1516,
		Distance:   35.98e6,
	},
	{
		PlanetName: "Venus",
		PlanetType: "Class E",
		HomeStar:   "Sol",
		Mass:       3.258e23,
		Radius:     2516,
		Distance:   35.98e6,
	},
	{
		PlanetName: "Earth",
		PlanetType: "Class A",
		HomeStar:   "Sol",
		Mass:       4.258e23,
		Radius:     3516,
		Distance:   45.98e6,
	},
}

// TestUser is the fixture account loaded by "db seed".
var TestUser = user.User{
	FirstName: "Aarav",
	LastName:  "K",
	Email:     "aarav@yopmail.com",
}

const testUserPassword = "password"

// Run inserts the fixture planets and the test user in one transaction.
// It is an operator tool, not a request path: it assumes a fresh schema
// and fails on re-run because the fixtures collide with themselves.
func Run(ctx context.Context, db *database.DB, logger *slog.Logger) error {
	logger = logger.With("component", "seed")
	logger.Info("Seeding database")

	tx, err := db.BeginTxContext(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range Planets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO planets (planet_name, planet_type, home_star, mass, radius, distance)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.PlanetName, p.PlanetType, p.HomeStar, p.Mass, p.Radius, p.Distance)
		if err != nil {
			return err
		}
		logger.Debug("Seeded planet", "planet_name", p.PlanetName)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`, TestUser.FirstName, TestUser.LastName, TestUser.Email, string(hash))
	if err != nil {
		return err
	}
	logger.Debug("Seeded user", "email", TestUser.Email)

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Info("Database seeded", "planets", len(Planets), "users", 1)
	return nil
}
