package server

import (
	"log/slog"
	"net/http"

	"planets-api/internal/auth"
	authHandlers "planets-api/internal/auth/handlers"
	"planets-api/internal/middleware"
	"planets-api/internal/planet"
	planetHandlers "planets-api/internal/planet/handlers"
	serverHandlers "planets-api/internal/server/handlers"
	"planets-api/internal/shared/database"
	"planets-api/internal/user"
)

type Routes struct {
	db            *database.DB
	planetService *planet.Service
	userService   *user.Service
	authService   *auth.Service
	issuer        *auth.TokenIssuer
	logger        *slog.Logger
}

func NewRoutes(db *database.DB, planetService *planet.Service, userService *user.Service, authService *auth.Service, issuer *auth.TokenIssuer, logger *slog.Logger) *Routes {
	return &Routes{
		db:            db,
		planetService: planetService,
		userService:   userService,
		authService:   authService,
		issuer:        issuer,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)
	authHandler := authHandlers.NewAuthHandler(r.userService, r.authService)

	requireAuth := middleware.RequireAuth(r.issuer)

	// Public endpoints
	mux.Handle("GET /api/health", healthHandler)
	mux.HandleFunc("GET /planets", planetHandler.List)
	mux.HandleFunc("GET /planet/{id}", planetHandler.Get)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /reset_password/{email}", authHandler.RequestPasswordReset)
	mux.HandleFunc("POST /reset_password/confirm", authHandler.ConfirmPasswordReset)

	// Protected endpoints (authenticated users)
	mux.Handle("POST /planets", requireAuth(http.HandlerFunc(planetHandler.Create)))
	mux.Handle("PUT /planet/{id}", requireAuth(http.HandlerFunc(planetHandler.Update)))

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/health", "/planets", "/planet/{id}", "/register", "/login", "/reset_password/{email}", "/reset_password/confirm"},
		"protected_endpoints", []string{"POST /planets", "PUT /planet/{id}"},
	)

	return mux
}
