package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/brandhub/internal/domain"
	"github.com/ignite/brandhub/internal/editor"
	"github.com/ignite/brandhub/internal/service/collections"
	"github.com/ignite/brandhub/internal/service/company"
	"github.com/ignite/brandhub/internal/service/profile"
)

// HandleOpenSession resolves the user's company, loads the aggregate and
// opens an edit session over it.
func (h *Handlers) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusBadRequest, "Missing X-User-ID header")
		return
	}

	sess, snap, err := h.sessions.Open(r.Context(), uid)
	if errors.Is(err, company.ErrNoCompany) {
		respondError(w, http.StatusNotFound, "No company for user")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, safeErrorMessage(http.StatusInternalServerError, err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": sess.ID,
		"company_id": sess.CompanyID,
		"started_at": sess.StartedAt,
		"snapshot":   snap,
	})
}

// HandleCloseSession discards a session. In-flight saves settle remotely.
func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Close(chi.URLParam(r, "sessionID"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// HandleRefreshSession reloads the aggregate and rebinds the session to it,
// discarding any stale dirty state.
func (h *Handlers) HandleRefreshSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	snap, err := h.profiles.Load(r.Context(), sess.CompanyID)
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to load profile")
		return
	}
	sess.Refresh(snap)
	respondJSON(w, http.StatusOK, map[string]interface{}{"snapshot": snap})
}

type fieldRequest struct {
	Kind  string `json:"kind"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// HandleSetField records a keystroke-level edit. Nothing is written
// remotely until the field commits.
func (h *Handlers) HandleSetField(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	var req fieldRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := sess.SetField(req.Kind, req.Field, req.Value); err != nil {
		if errors.Is(err, profile.ErrUnknownField) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to stage edit")
		return
	}

	b, _ := sess.Field(req.Kind, req.Field)
	respondJSON(w, http.StatusOK, map[string]string{"state": string(b.State())})
}

// HandleCommitField is the blur boundary: commit the field if it changed.
// The commit runs on the session context so a canceled request doesn't
// abort the save.
func (h *Handlers) HandleCommitField(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	var req fieldRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := sess.CommitField(sess.Context(), req.Kind, req.Field); err != nil {
		if errors.Is(err, profile.ErrUnknownField) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondSafeError(w, http.StatusInternalServerError, err, "Save failed")
		return
	}

	b, _ := sess.Field(req.Kind, req.Field)
	respondJSON(w, http.StatusOK, map[string]string{"state": string(b.State())})
}

// HandleSessionEvents drains the session's buffered save events.
func (h *Handlers) HandleSessionEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if h.sessions.Get(id) == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}
	events := h.sessions.DrainEvents(id)
	if events == nil {
		events = []editor.Event{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// HandleSessionAddItem appends an item optimistically. The response carries
// the temporary id; the session reconciles it to the server id in place
// once the create resolves.
func (h *Handlers) HandleSessionAddItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	var id string
	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		var o domain.Objective
		if !decodeBody(w, r, &o) {
			return
		}
		id = sess.Objectives.Add(sess.Context(), o)
	case domain.KindProducts:
		var p domain.Product
		if !decodeBody(w, r, &p) {
			return
		}
		id = sess.Products.Add(sess.Context(), p)
	case domain.KindCompetitors:
		var c domain.Competitor
		if !decodeBody(w, r, &c) {
			return
		}
		id = sess.Competitors.Add(sess.Context(), c)
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

// HandleSessionUpdateItem applies a patch locally and queues the remote
// write. Items still carrying a temporary id queue until the id resolves.
func (h *Handlers) HandleSessionUpdateItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	id := chi.URLParam(r, "id")
	var err error
	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		var p collections.ObjectivePatch
		if !decodeBody(w, r, &p) {
			return
		}
		err = sess.Objectives.Update(sess.Context(), id, p)
	case domain.KindProducts:
		var p collections.ProductPatch
		if !decodeBody(w, r, &p) {
			return
		}
		err = sess.Products.Update(sess.Context(), id, p)
	case domain.KindCompetitors:
		var p collections.CompetitorPatch
		if !decodeBody(w, r, &p) {
			return
		}
		err = sess.Competitors.Update(sess.Context(), id, p)
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	if errors.Is(err, editor.ErrUnknownItem) {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to queue update")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// HandleSessionRemoveItem removes an item locally and reconciles the remote
// store in the background.
func (h *Handlers) HandleSessionRemoveItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	id := chi.URLParam(r, "id")
	var err error
	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		err = sess.Objectives.Remove(sess.Context(), id)
	case domain.KindProducts:
		err = sess.Products.Remove(sess.Context(), id)
	case domain.KindCompetitors:
		err = sess.Competitors.Remove(sess.Context(), id)
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
		return
	}

	if errors.Is(err, editor.ErrUnknownItem) {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Failed to remove item")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "removed"})
}

// HandleSessionItems returns the session's current local view of a
// collection, temp ids included.
func (h *Handlers) HandleSessionItems(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if sess == nil {
		respondError(w, http.StatusNotFound, "Unknown session")
		return
	}

	switch domain.CollectionKind(chi.URLParam(r, "kind")) {
	case domain.KindObjectives:
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": sess.Objectives.Items()})
	case domain.KindProducts:
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": sess.Products.Items()})
	case domain.KindCompetitors:
		respondJSON(w, http.StatusOK, map[string]interface{}{"items": sess.Competitors.Items()})
	default:
		respondError(w, http.StatusNotFound, "Unknown collection")
	}
}
