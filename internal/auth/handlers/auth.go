package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"planets-api/internal/auth"
	"planets-api/internal/shared/errors"
	"planets-api/internal/shared/request"
	"planets-api/internal/shared/response"
	"planets-api/internal/user"
)

type AuthHandler struct {
	users *user.Service
	auth  *auth.Service
}

func NewAuthHandler(users *user.Service, authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		users: users,
		auth:  authService,
	}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type resetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "register")

	var req registerRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if _, err := h.users.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "user created successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "login")

	var req loginRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		response.Error(w, r, logger, errors.Validation("email and password are required"))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, loginResponse{
		Message: "login succeeded",
		Token:   token,
	})
}

func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "request_password_reset")

	email := r.PathValue("email")
	if email == "" {
		response.Error(w, r, logger, errors.Validation("email is required"))
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), email); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, fmt.Sprintf("password reset email sent to %s", email))
}

func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "confirm_password_reset")

	var req resetConfirmRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.auth.ConfirmPasswordReset(r.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "password updated successfully")
}
