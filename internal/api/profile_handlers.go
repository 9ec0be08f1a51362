package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/generation"
	"github.com/ignite/brandhub/internal/service/profile"
)

// HandleGetProfile loads the full aggregate for the user's company. Slices
// that failed to load are reported in "errors" alongside the data that did
// load; the editor renders what it has.
func (h *Handlers) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	snap, err := h.profiles.Load(r.Context(), companyID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// HandlePatchProfile applies a partial update to one profile section.
// The URL kind selects the section; unknown kinds 404.
func (h *Handlers) HandlePatchProfile(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	kind := chi.URLParam(r, "kind")
	var result interface{}

	switch kind {
	case "company":
		var p profile.CompanyPatch
		if !decodeBody(w, r, &p) {
			return
		}
		result, err = h.profiles.UpdateCompany(r.Context(), companyID, p)
	case string(domain.KindStrategy):
		var p profile.StrategyPatch
		if !decodeBody(w, r, &p) {
			return
		}
		result, err = h.profiles.UpdateStrategy(r.Context(), companyID, p)
	case string(domain.KindBranding):
		var p profile.BrandingPatch
		if !decodeBody(w, r, &p) {
			return
		}
		result, err = h.profiles.UpdateBranding(r.Context(), companyID, p)
	case string(domain.KindVoice):
		var p profile.VoicePatch
		if !decodeBody(w, r, &p) {
			return
		}
		result, err = h.profiles.UpdateVoice(r.Context(), companyID, p)
	case string(domain.KindEmailSettings):
		var p profile.EmailPatch
		if !decodeBody(w, r, &p) {
			return
		}
		result, err = h.profiles.UpdateEmailSettings(r.Context(), companyID, p)
	default:
		respondError(w, http.StatusNotFound, "Unknown profile section")
		return
	}

	if errors.Is(err, profile.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Profile section not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleGenerateProfile drafts a profile section with the content generator
// and applies only the fields that actually differ from current values.
func (h *Handlers) HandleGenerateProfile(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respondError(w, http.StatusServiceUnavailable, "Content generation is not enabled")
		return
	}

	kind := domain.ProfileKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		respondError(w, http.StatusNotFound, "Unknown profile section")
		return
	}

	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	snap, err := h.profiles.Load(r.Context(), companyID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to load profile")
		return
	}
	if snap.Company == nil {
		respondError(w, http.StatusNotFound, "Company not found")
		return
	}

	fields, err := h.generator.Generate(r.Context(), generation.Brief{
		Name:        snap.Company.Name,
		Website:     snap.Company.Website,
		Industry:    snap.Company.Industry,
		Description: snap.Company.Description,
	}, kind)
	if errors.Is(err, generation.ErrUnavailable) {
		respondSafeError(w, http.StatusBadGateway, err, "Content generation is temporarily unavailable")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Content generation failed")
		return
	}

	applied, err := h.profiles.ApplyGenerated(r.Context(), companyID, kind, fields)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kind":    kind,
		"fields":  fields,
		"applied": applied,
	})
}
