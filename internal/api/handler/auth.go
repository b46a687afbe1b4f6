package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pitstop-labs/pitstop/internal/api/response"
	"github.com/pitstop-labs/pitstop/internal/api/validation"
	"github.com/pitstop-labs/pitstop/internal/identity"
	"github.com/pitstop-labs/pitstop/internal/token"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the API representation of an authenticated user.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// sessionResponse carries a session token together with its user.
type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// pendingSignupResponse is returned when the provider withholds a session
// until the email address is verified. No token is fabricated in that case.
type pendingSignupResponse struct {
	User                userResponse `json:"user"`
	PendingVerification bool         `json:"pendingVerification"`
}

// AuthHandler handles signup and login endpoints.
type AuthHandler struct {
	provider identity.Provider
	tokens   *token.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(provider identity.Provider, tokens *token.Service) *AuthHandler {
	return &AuthHandler{provider: provider, tokens: tokens}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidJSON, "Request body must be valid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if fieldErr := validation.ValidateSignup(validation.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	}); fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	result, err := h.provider.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, identity.ErrSignupFailed) {
			response.Err(w, http.StatusBadRequest, response.CodeSignupFailed, err.Error())
			return
		}
		slog.Error("signup delegation failed", "error", err)
		response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "Signup failed")
		return
	}

	user := userResponse{ID: result.SubjectID, Email: result.Email}

	if result.Pending {
		response.Success(w, http.StatusOK, "Signup accepted; please confirm your email address", pendingSignupResponse{
			User:                user,
			PendingVerification: true,
		})
		return
	}

	principal := identity.Principal{
		SubjectID: result.SubjectID,
		Email:     result.Email,
		Role:      identity.RoleUser,
	}
	signed, err := h.tokens.Issue(principal)
	if err != nil {
		slog.Error("failed to issue token after signup", "error", err)
		response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "Signup failed")
		return
	}

	user.Role = string(principal.Role)
	response.Success(w, http.StatusOK, "Signup successful", sessionResponse{Token: signed, User: user})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, response.CodeInvalidJSON, "Request body must be valid JSON")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if fieldErr := validation.ValidateLogin(validation.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	}); fieldErr != nil {
		response.ErrWithDetails(w, http.StatusBadRequest, response.CodeValidationError, fieldErr.Message, fieldErr)
		return
	}

	principal, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrEmailNotConfirmed):
			response.Err(w, http.StatusUnauthorized, response.CodeEmailNotConfirmed, "Email address has not been confirmed")
		case errors.Is(err, identity.ErrInvalidCredentials):
			response.Err(w, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid email or password")
		default:
			slog.Error("login delegation failed", "error", err)
			response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "Login failed")
		}
		return
	}

	signed, err := h.tokens.Issue(*principal)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "Login failed")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", sessionResponse{
		Token: signed,
		User: userResponse{
			ID:    principal.SubjectID,
			Email: principal.Email,
			Role:  string(principal.Role),
		},
	})
}
