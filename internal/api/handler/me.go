package handler

import (
	"log/slog"
	"net/http"

	"github.com/pitstop-labs/pitstop/internal/api/middleware"
	"github.com/pitstop-labs/pitstop/internal/api/response"
	"github.com/pitstop-labs/pitstop/internal/identity"
)

// profileResponse is the API representation of the caller's profile.
type profileResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Phone       string `json:"phone,omitempty"`
	Role        string `json:"role"`
}

// MeHandler serves the authenticated caller's own profile.
type MeHandler struct {
	provider identity.Provider
}

// NewMeHandler creates a new MeHandler.
func NewMeHandler(provider identity.Provider) *MeHandler {
	return &MeHandler{provider: provider}
}

// Get handles GET /me. The profile comes fresh from the identity provider;
// only the subject id and email are taken from the token.
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r.Context())
	if principal == nil {
		response.Err(w, http.StatusUnauthorized, response.CodeUnauthorized, "Authentication token is required")
		return
	}

	profile, err := h.provider.GetProfile(r.Context(), principal.SubjectID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "subject", principal.SubjectID)
		response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "Failed to load profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile loaded", profileResponse{
		ID:          principal.SubjectID,
		Email:       principal.Email,
		DisplayName: profile.DisplayName,
		Phone:       profile.Phone,
		Role:        string(profile.Role),
	})
}
