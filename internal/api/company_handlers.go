package api

import (
	"errors"
	"net/http"

	"github.com/ignite/brandhub/internal/service/company"
)

// HandleResolveCompany maps the acting user to their company. 404 means the
// user has no company at all; the frontend routes to onboarding.
func (h *Handlers) HandleResolveCompany(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusBadRequest, "Missing X-User-ID header")
		return
	}

	companyID, err := h.companies.Resolve(r.Context(), uid)
	if errors.Is(err, company.ErrNoCompany) {
		respondError(w, http.StatusNotFound, "No company for user")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"user_id":    uid,
		"company_id": companyID,
	})
}

// HandleSwitchCompany drops the cached resolution so the next resolve picks
// up a changed primary company or membership.
func (h *Handlers) HandleSwitchCompany(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusBadRequest, "Missing X-User-ID header")
		return
	}

	if err := h.companies.SwitchCompany(r.Context(), uid); err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to switch company")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "switched"})
}
