package planet

import (
	"context"
	"log/slog"
	"strings"

	"planets-api/internal/shared/errors"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]Planet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*Planet, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a planet after checking that no planet with the same name
// exists. The check is a fast path for a friendly error; the planet_name
// unique constraint is what actually guarantees uniqueness under
// concurrent writers.
func (s *Service) Create(ctx context.Context, p Planet) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "create", "planet_name", p.PlanetName)

	p.PlanetName = strings.TrimSpace(p.PlanetName)
	if p.PlanetName == "" {
		return nil, errors.Validation("planet_name is required")
	}

	existing, err := s.repo.GetByName(ctx, p.PlanetName)
	if err != nil && errors.GetType(err) != errors.ErrorTypeNotFound {
		return nil, err
	}
	if existing != nil {
		logger.Debug("Planet name already taken", "existing_id", existing.PlanetID)
		return nil, errors.Conflictf("planet %q already exists", p.PlanetName)
	}

	created, err := s.repo.Create(ctx, &p)
	if err != nil {
		return nil, err
	}

	logger.Info("Planet created", "planet_id", created.PlanetID)
	return created, nil
}

// Update applies a partial update to an existing planet. Only fields set
// in changes are modified; zero and empty values are applied like any
// other, a field is skipped only when absent.
func (s *Service) Update(ctx context.Context, id int, changes Changes) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "update", "planet_id", id)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.PlanetName != nil {
		name := strings.TrimSpace(*changes.PlanetName)
		if name == "" {
			return nil, errors.Validation("planet_name must not be empty")
		}
		if name != p.PlanetName {
			other, err := s.repo.GetByName(ctx, name)
			if err != nil && errors.GetType(err) != errors.ErrorTypeNotFound {
				return nil, err
			}
			if other != nil && other.PlanetID != id {
				return nil, errors.Conflictf("planet %q already exists", name)
			}
		}
		p.PlanetName = name
	}
	if changes.PlanetType != nil {
		p.PlanetType = *changes.PlanetType
	}
	if changes.HomeStar != nil {
		p.HomeStar = *changes.HomeStar
	}
	if changes.Mass != nil {
		p.Mass = *changes.Mass
	}
	if changes.Radius != nil {
		p.Radius = *changes.Radius
	}
	if changes.Distance != nil {
		p.Distance = *changes.Distance
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	logger.Info("Planet updated")
	return p, nil
}
