package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/service/collections"
)

// HandleAddCollectionItem creates a row in one of the list sections and
// returns it with its server-assigned id.
func (h *Handlers) HandleAddCollectionItem(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	var result interface{}
	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		var o domain.Objective
		if !decodeBody(w, r, &o) {
			return
		}
		result, err = h.collections.AddObjective(r.Context(), companyID, o)
	case domain.KindProducts:
		var p domain.Product
		if !decodeBody(w, r, &p) {
			return
		}
		result, err = h.collections.AddProduct(r.Context(), companyID, p)
	case domain.KindCompetitors:
		var c domain.Competitor
		if !decodeBody(w, r, &c) {
			return
		}
		result, err = h.collections.AddCompetitor(r.Context(), companyID, c)
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// HandleUpdateCollectionItem applies a partial update to one row.
func (h *Handlers) HandleUpdateCollectionItem(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	id := chi.URLParam(r, "id")
	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		var p collections.ObjectivePatch
		if !decodeBody(w, r, &p) {
			return
		}
		err = h.collections.UpdateObjective(r.Context(), companyID, id, p)
	case domain.KindProducts:
		var p collections.ProductPatch
		if !decodeBody(w, r, &p) {
			return
		}
		err = h.collections.UpdateProduct(r.Context(), companyID, id, p)
	case domain.KindCompetitors:
		var p collections.CompetitorPatch
		if !decodeBody(w, r, &p) {
			return
		}
		err = h.collections.UpdateCompetitor(r.Context(), companyID, id, p)
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	if errors.Is(err, collections.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleDeleteCollectionItem removes one row.
func (h *Handlers) HandleDeleteCollectionItem(w http.ResponseWriter, r *http.Request) {
	companyID, err := h.resolveCompany(r)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to resolve company")
		return
	}

	id := chi.URLParam(r, "id")
	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		err = h.collections.RemoveObjective(r.Context(), companyID, id)
	case domain.KindProducts:
		err = h.collections.RemoveProduct(r.Context(), companyID, id)
	case domain.KindCompetitors:
		err = h.collections.RemoveCompetitor(r.Context(), companyID, id)
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	if errors.Is(err, collections.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
