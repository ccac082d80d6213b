package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"farmbook/internal/cloud"
)

// handleCloudSave pushes the current ledger snapshot under the given
// identity. The snapshot-saved message is best effort: a dead broker must
// never fail a save.
func (s *Server) handleCloudSave(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(r.URL.Query().Get("identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, "identity is required")
		return
	}

	data := s.ledger.Snapshot()
	if err := s.snapshots.Push(r.Context(), identity, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Snapshot push failed", "error", err, "identity", cloud.NormalizeIdentity(identity))
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}

	if s.publisher != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishSnapshotSaved(ctx, cloud.NormalizeIdentity(identity), len(data.Transactions)); err != nil {
			s.logger.WarnContext(r.Context(), "Snapshot saved message not published", "error", err, "identity", cloud.NormalizeIdentity(identity))
		}
	}

	s.logger.InfoContext(r.Context(), "Snapshot saved",
		"identity", cloud.NormalizeIdentity(identity),
		"transactions", len(data.Transactions))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "saved",
		"transactions": len(data.Transactions),
	})
}

// handleCloudLoad pulls the snapshot for the given identity and replaces
// the active ledger with it.
func (s *Server) handleCloudLoad(w http.ResponseWriter, r *http.Request) {
	identity := strings.TrimSpace(r.URL.Query().Get("identity"))
	if identity == "" {
		writeError(w, http.StatusBadRequest, "identity is required")
		return
	}

	data, err := s.snapshots.Pull(r.Context(), identity)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Snapshot pull failed", "error", err, "identity", cloud.NormalizeIdentity(identity))
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, "no snapshot for this identity")
		return
	}

	s.ledger.Replace(data)
	s.invalidateDashboard()
	s.logger.InfoContext(r.Context(), "Snapshot loaded",
		"identity", cloud.NormalizeIdentity(identity),
		"transactions", len(data.Transactions))
	writeJSON(w, http.StatusOK, data)
}

// handleSuggestCategory asks the suggestion service which existing
// category fits a transaction description. Best effort: upstream failures
// become a 502, never a crash.
func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	if s.suggester == nil {
		writeError(w, http.StatusServiceUnavailable, "suggestions not configured")
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	description := sanitizeInput(req.Description)
	if description == "" {
		writeError(w, http.StatusUnprocessableEntity, "description is required")
		return
	}

	name, err := s.suggester.Suggest(r.Context(), description, s.ledger.CategoryNames())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Category suggestion failed", "error", err)
		writeError(w, http.StatusBadGateway, "suggestion service unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"category": name})
}
