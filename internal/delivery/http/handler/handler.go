package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/user/domain-tracker/internal/delivery/http/response"
	"github.com/user/domain-tracker/internal/entity"
	"github.com/user/domain-tracker/internal/usecase"
)

type Handler struct {
	registry usecase.SnapshotRegistry
	rowQuery usecase.RowQuery
	diff     usecase.Diff
	history  usecase.History
	session  usecase.SessionController
}

func NewHandler(
	registry usecase.SnapshotRegistry,
	rowQuery usecase.RowQuery,
	diff usecase.Diff,
	history usecase.History,
	session usecase.SessionController,
) *Handler {
	return &Handler{
		registry: registry,
		rowQuery: rowQuery,
		diff:     diff,
		history:  history,
		session:  session,
	}
}

func (h *Handler) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.registry.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.FromSnapshots(snaps))
}

func (h *Handler) HandleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.registry.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Message{Message: fmt.Sprintf("Snapshot %d deleted", id)})
}

func (h *Handler) HandleQueryRows(w http.ResponseWriter, r *http.Request) {
	snapshotID, err := int64Query(r, "snapshot_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	filter, err := rowFilterQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	sort := sortQuery(r)
	window, err := windowQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	page, err := h.rowQuery.Query(r.Context(), snapshotID, filter, sort, window)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.FromRowPage(page))
}

func (h *Handler) HandleDiff(w http.ResponseWriter, r *http.Request) {
	snapshotA, err := int64Query(r, "snapshot_a")
	if err != nil {
		h.writeError(w, err)
		return
	}
	snapshotB, err := int64Query(r, "snapshot_b")
	if err != nil {
		h.writeError(w, err)
		return
	}
	diffType := entity.DiffType(r.URL.Query().Get("diff_type"))
	if diffType == "" {
		diffType = entity.DiffAll
	}
	window, err := windowQuery(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	page, err := h.diff.Compare(r.Context(), snapshotA, snapshotB, diffType, window)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.FromDiffPage(page))
}

func (h *Handler) HandleDomainHistory(w http.ResponseWriter, r *http.Request) {
	domainID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	hist, err := h.history.ForDomain(r.Context(), domainID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.FromHistory(hist))
}

func (h *Handler) HandleScrapeStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, response.FromSession(h.session.Status(r.Context())))
}

func (h *Handler) HandleScrapeStart(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("snapshot_name")
	if err := h.session.Start(r.Context(), name); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Message{Message: fmt.Sprintf("Scraping started for %q", name)})
}

func (h *Handler) HandleScrapeStop(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Stop(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Message{Message: "Session stopped and snapshot committed"})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// writeError maps the use case taxonomy onto HTTP statuses. Session conflicts
// and invalid arguments are expected outcomes; their message text is passed
// through so the consumer can display it as-is.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidArgument):
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAlreadyRunning), errors.Is(err, usecase.ErrNotRunning):
		h.writeJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, usecase.ErrTransientIO):
		h.writeJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		slog.Error("Request failed", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
