package handler

import (
	"net/http"

	"github.com/pitstop-labs/pitstop/internal/api/response"
)

// endpointInfo describes one route in the index listing.
type endpointInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Auth   bool   `json:"auth"`
}

// indexResponse is the payload of the API index endpoint.
type indexResponse struct {
	Service   string         `json:"service"`
	Version   string         `json:"version"`
	Endpoints []endpointInfo `json:"endpoints"`
}

// RootHandler serves the API index.
type RootHandler struct {
	publicURL string
	basePath  string
	version   string
}

// NewRootHandler creates a new RootHandler. publicURL and basePath are used
// to render absolute endpoint paths.
func NewRootHandler(publicURL, basePath, version string) *RootHandler {
	return &RootHandler{publicURL: publicURL, basePath: basePath, version: version}
}

// Get handles GET {base}/.
func (h *RootHandler) Get(w http.ResponseWriter, r *http.Request) {
	base := h.publicURL + h.basePath

	response.Success(w, http.StatusOK, "pitstop API", indexResponse{
		Service: "pitstop",
		Version: h.version,
		Endpoints: []endpointInfo{
			{Method: http.MethodPost, Path: base + "/auth/signup", Auth: false},
			{Method: http.MethodPost, Path: base + "/auth/login", Auth: false},
			{Method: http.MethodGet, Path: base + "/me", Auth: true},
			{Method: http.MethodGet, Path: base + "/cars", Auth: true},
			{Method: http.MethodPost, Path: base + "/cars", Auth: true},
			{Method: http.MethodGet, Path: base + "/cars/{id}", Auth: true},
			{Method: http.MethodPut, Path: base + "/cars/{id}", Auth: true},
			{Method: http.MethodDelete, Path: base + "/cars/{id}", Auth: true},
		},
	})
}
