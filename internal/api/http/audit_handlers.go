package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pallet-insight/pallet-insight/internal/domain/audit"
)

// Audit handlers

func (s *Server) listAudit(w http.ResponseWriter, r *http.Request) {
	var filter audit.Filter
	if v := r.URL.Query().Get("entityType"); v != "" {
		et := audit.EntityType(v)
		filter.EntityType = &et
	}
	if v := r.URL.Query().Get("entityId"); v != "" {
		filter.EntityID = &v
	}
	if v := r.URL.Query().Get("action"); v != "" {
		a := audit.Action(v)
		filter.Action = &a
	}
	if v := r.URL.Query().Get("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid since timestamp")
			return
		}
		filter.Since = &t
	}
	limit := parseLimit(r, 50, 200)

	logs, err := s.auditSvc.ListRecent(r.Context(), filter, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"audit": logs})
}

func (s *Server) getEntityHistory(w http.ResponseWriter, r *http.Request) {
	entityType := audit.EntityType(chi.URLParam(r, "entityType"))
	entityID := chi.URLParam(r, "entityId")
	logs, err := s.auditSvc.GetEntityHistory(r.Context(), entityType, entityID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"entityType": entityType, "entityId": entityID, "audit": logs})
}

func (s *Server) getAudit(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "auditId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid auditId")
		return
	}
	entry, err := s.auditSvc.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if entry == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "audit entry not found")
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (s *Server) verifyAudit(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "auditId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid auditId")
		return
	}
	result, err := s.auditSvc.VerifyIntegrity(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}
