package planet

import (
	"context"
	"database/sql"
	"log/slog"

	"planets-api/internal/shared/database"
	"planets-api/internal/shared/errors"
)

// Repository is the data access contract for planets. The postgres
// implementation lives here; tests substitute their own.
type Repository interface {
	List(ctx context.Context) ([]Planet, error)
	GetByID(ctx context.Context, id int) (*Planet, error)
	GetByName(ctx context.Context, name string) (*Planet, error)
	Create(ctx context.Context, p *Planet) (*Planet, error)
	Update(ctx context.Context, p *Planet) error
}

type postgresRepository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) Repository {
	logger.Debug("Initializing planet repository")

	return &postgresRepository{
		db:     db,
		logger: logger,
	}
}

const planetColumns = "planet_id, planet_name, planet_type, home_star, mass, radius, distance"

func scanPlanet(row *sql.Row, p *Planet) error {
	return row.Scan(
		&p.PlanetID,
		&p.PlanetName,
		&p.PlanetType,
		&p.HomeStar,
		&p.Mass,
		&p.Radius,
		&p.Distance,
	)
}

func (r *postgresRepository) List(ctx context.Context) ([]Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "list")
	logger.Debug("Listing planets")

	query := `
		SELECT ` + planetColumns + `
		FROM planets
		ORDER BY planet_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, errors.WrapInternal("failed to query planets", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var planets []Planet
	for rows.Next() {
		var p Planet
		err := rows.Scan(
			&p.PlanetID,
			&p.PlanetName,
			&p.PlanetType,
			&p.HomeStar,
			&p.Mass,
			&p.Radius,
			&p.Distance,
		)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, errors.WrapInternal("failed to scan planet", err)
		}
		planets = append(planets, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, errors.WrapInternal("error iterating planets", err)
	}

	logger.Debug("Planets retrieved", "count", len(planets))
	return planets, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int) (*Planet, error) {
	query := `
		SELECT ` + planetColumns + `
		FROM planets
		WHERE planet_id = $1
	`

	var p Planet
	err := scanPlanet(r.db.QueryRowContext(ctx, query, id), &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("planet %d not found", id)
		}
		return nil, errors.WrapInternal("failed to get planet", err)
	}

	return &p, nil
}

func (r *postgresRepository) GetByName(ctx context.Context, name string) (*Planet, error) {
	query := `
		SELECT ` + planetColumns + `
		FROM planets
		WHERE planet_name = $1
	`

	var p Planet
	err := scanPlanet(r.db.QueryRowContext(ctx, query, name), &p)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("planet %q not found", name)
		}
		return nil, errors.WrapInternal("failed to get planet by name", err)
	}

	return &p, nil
}

func (r *postgresRepository) Create(ctx context.Context, p *Planet) (*Planet, error) {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create",
		"planet_name", p.PlanetName,
	)
	logger.Debug("Creating planet")

	query := `
		INSERT INTO planets (planet_name, planet_type, home_star, mass, radius, distance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + planetColumns + `
	`

	var created Planet
	err := scanPlanet(r.db.QueryRowContext(ctx, query,
		p.PlanetName, p.PlanetType, p.HomeStar, p.Mass, p.Radius, p.Distance), &created)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, errors.Conflictf("planet %q already exists", p.PlanetName)
		}
		logger.Error("Failed to create planet", "error", err)
		return nil, errors.WrapInternal("failed to create planet", err)
	}

	logger.Debug("Planet created successfully", "planet_id", created.PlanetID)
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Planet) error {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "update",
		"planet_id", p.PlanetID,
	)
	logger.Debug("Updating planet")

	query := `
		UPDATE planets
		SET planet_name = $2, planet_type = $3, home_star = $4, mass = $5, radius = $6, distance = $7
		WHERE planet_id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.PlanetID, p.PlanetName, p.PlanetType, p.HomeStar, p.Mass, p.Radius, p.Distance)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errors.Conflictf("planet %q already exists", p.PlanetName)
		}
		logger.Error("Failed to update planet", "error", err)
		return errors.WrapInternal("failed to update planet", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read update result", err)
	}
	if affected == 0 {
		return errors.NotFoundf("planet %d not found", p.PlanetID)
	}

	logger.Debug("Planet updated successfully")
	return nil
}
