package httpapi

import (
	"net/http"
)

// Evaluation run handlers

func (s *Server) evaluateLot(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	run, err := s.evaluationSvc.StartRun(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, run)
}

func (s *Server) listLotRuns(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	limit := parseLimit(r, 20, 100)
	runs, err := s.evaluationSvc.ListRunsByLot(r.Context(), id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"lotId": id, "runs": runs})
}

func (s *Server) getRun(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "runId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid runId")
		return
	}
	run, err := s.evaluationSvc.GetRun(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if run == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "run not found")
		return
	}
	respondJSON(w, http.StatusOK, run)
}

func (s *Server) listRunResults(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "runId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid runId")
		return
	}
	results, err := s.evaluationSvc.ListResults(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"runId": id, "results": results})
}

func (s *Server) evaluateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "productId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid productId")
		return
	}
	result, err := s.evaluationSvc.EvaluateProduct(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}
