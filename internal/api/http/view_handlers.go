package httpapi

import (
	"net/http"
)

// View handlers

type viewCreateRequest struct {
	Name        string  `json:"name"`
	Expression  string  `json:"expression"`
	Description *string `json:"description,omitempty"`
}

func (s *Server) createView(w http.ResponseWriter, r *http.Request) {
	var req viewCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	v, err := s.viewsSvc.CreateView(r.Context(), req.Name, req.Expression, req.Description, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, v)
}

func (s *Server) listViews(w http.ResponseWriter, r *http.Request) {
	views, err := s.viewsSvc.ListViews(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"views": views})
}

func (s *Server) getView(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "viewId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid viewId")
		return
	}
	v, err := s.viewsSvc.GetView(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if v == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "view not found")
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (s *Server) deleteView(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "viewId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid viewId")
		return
	}
	if err := s.viewsSvc.DeleteView(r.Context(), id, actorFromRequest(r)); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"viewId": id, "deleted": true})
}

func (s *Server) applyView(w http.ResponseWriter, r *http.Request) {
	viewID, err := parseUUIDParam(r, "viewId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid viewId")
		return
	}
	lotID, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	rows, err := s.viewsSvc.Apply(r.Context(), viewID, lotID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"viewId": viewID,
		"lotId":  lotID,
		"rows":   rows,
	})
}
