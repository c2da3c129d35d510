package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saymetristan/whaapy-ai/internal/domain"
	"github.com/saymetristan/whaapy-ai/internal/store"
)

// handleGetConfig returns the stored agent config for a business, or 404
// if none has ever been written.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("business_id")

	cfg, err := s.configs.Get(r.Context(), businessID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "agent config not found for business "+businessID)
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("business", businessID).Msg("loading agent config")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, dataResponse{Data: cfg})
}

// handlePutConfig creates or partially updates the agent config for a
// business. Fields absent from the body keep their stored (or default)
// values.
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	businessID := r.PathValue("business_id")

	var upd domain.AgentConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if upd.IsEmpty() {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	cfg, err := s.configs.Upsert(r.Context(), businessID, upd)
	if err != nil {
		s.log.Error().Err(err).Str("business", businessID).Msg("upserting agent config")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.log.Info().
		Str("business", businessID).
		Str("model", cfg.Model).
		Bool("enabled", cfg.Enabled).
		Msg("agent config updated")

	writeJSON(w, http.StatusOK, dataResponse{Data: cfg})
}
