package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ignite/brandhub/internal/config"
	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/generation"
	"github.com/ignite/brandhub/internal/service/channels"
	"github.com/ignite/brandhub/internal/service/collections"
	"github.com/ignite/brandhub/internal/service/company"
	"github.com/ignite/brandhub/internal/service/profile"
)

// ContentGenerator drafts profile field values. Implemented by
// generation.Generator; nil disables the generate endpoints.
type ContentGenerator interface {
	Generate(ctx context.Context, brief generation.Brief, kind domain.ProfileKind) (map[string]string, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	companies   *company.Service
	profiles    *profile.Service
	collections *collections.Service
	channels    *channels.Service
	generator   ContentGenerator
	sessions    *SessionManager
	config      *config.Config
}

// NewHandlers creates a new Handlers instance
func NewHandlers(companies *company.Service, profiles *profile.Service, colls *collections.Service, chans *channels.Service) *Handlers {
	return &Handlers{
		companies:   companies,
		profiles:    profiles,
		collections: colls,
		channels:    chans,
		sessions:    NewSessionManager(companies, profiles, colls),
	}
}

// SetConfig sets the application config
func (h *Handlers) SetConfig(cfg *config.Config) {
	h.config = cfg
}

// SetGenerator sets the content generator
func (h *Handlers) SetGenerator(g ContentGenerator) {
	h.generator = g
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID extracts the acting user from the request. Authentication happens
// upstream; the gateway forwards the authenticated subject in this header.
func userID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}

// resolveCompany maps the request's user to their acting company.
func (h *Handlers) resolveCompany(r *http.Request) (string, error) {
	return h.companies.Resolve(r.Context(), userID(r))
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
