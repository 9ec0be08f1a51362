package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/channels"
)

// HandleGetChannels returns one merged row per platform. Sub-resource load
// failures are reported next to the rows, which carry defaults for the
// fields the failed source owns.
func (h *Handlers) HandleGetChannels(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	result, err := h.channels.Rows(r.Context(), companyID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandlePatchChannel edits one platform row. Fields fan out to their owning
// sub-resources; a partial failure returns 207 with per-source errors so
// the client can re-surface only what failed.
func (h *Handlers) HandlePatchChannel(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	platform := domain.Platform(chi.URLParam(r, "platform"))
	var patch channels.RowPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	result, err := h.channels.Apply(r.Context(), companyID, platform, patch)
	if errors.Is(err, channels.ErrUnknownPlatform) {
		respondError(w, http.StatusNotFound, "Unknown platform")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}

	status := http.StatusOK
	if !result.Ok() {
		status = http.StatusMultiStatus
	}
	respondJSON(w, status, result)
}
