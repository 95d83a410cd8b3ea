package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"planets-api/internal/planet"
	"planets-api/internal/shared/errors"
	"planets-api/internal/shared/request"
	"planets-api/internal/shared/response"
)

type PlanetHandler struct {
	service *planet.Service
}

func NewPlanetHandler(service *planet.Service) *PlanetHandler {
	return &PlanetHandler{service: service}
}

// planetRequest is the body for create and update. Pointer fields make
// field presence observable, so updates can distinguish "absent" from
// "set to zero".
type planetRequest struct {
	PlanetName *string  `json:"planet_name"`
	PlanetType *string  `json:"planet_type"`
	HomeStar   *string  `json:"home_star"`
	Mass       *float64 `json:"mass"`
	Radius     *float64 `json:"radius"`
	Distance   *float64 `json:"distance"`
}

func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_planets")

	planets, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if planets == nil {
		planets = []planet.Planet{}
	}

	response.Success(w, http.StatusOK, planets)
}

func (h *PlanetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p)
}

func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_planet")

	var req planetRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := req.requireAll(); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	created, err := h.service.Create(r.Context(), planet.Planet{
		PlanetName: *req.PlanetName,
		PlanetType: *req.PlanetType,
		HomeStar:   *req.HomeStar,
		Mass:       *req.Mass,
		Radius:     *req.Radius,
		Distance:   *req.Distance,
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusCreated, fmt.Sprintf("planet %s added", created.PlanetName))
}

func (h *PlanetHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_planet")

	id, err := planetID(r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req planetRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, planet.Changes{
		PlanetName: req.PlanetName,
		PlanetType: req.PlanetType,
		HomeStar:   req.HomeStar,
		Mass:       req.Mass,
		Radius:     req.Radius,
		Distance:   req.Distance,
	})
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusAccepted, fmt.Sprintf("planet %s updated", updated.PlanetName))
}

func (r *planetRequest) requireAll() error {
	switch {
	case r.PlanetName == nil:
		return errors.Validation("planet_name is required")
	case r.PlanetType == nil:
		return errors.Validation("planet_type is required")
	case r.HomeStar == nil:
		return errors.Validation("home_star is required")
	case r.Mass == nil:
		return errors.Validation("mass is required")
	case r.Radius == nil:
		return errors.Validation("radius is required")
	case r.Distance == nil:
		return errors.Validation("distance is required")
	}
	return nil
}

func planetID(r *http.Request) (int, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return 0, errors.Validation("planet ID is required")
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.WrapValidation("invalid planet ID format", err)
	}
	if id <= 0 {
		return 0, errors.Validation("planet ID must be a positive integer")
	}

	return id, nil
}
