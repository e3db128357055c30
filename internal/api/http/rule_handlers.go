package httpapi

import (
	"net/http"

	appRules "github.com/pallet-insight/pallet-insight/internal/application/rules"
	"github.com/pallet-insight/pallet-insight/internal/domain/rule"
)

// Weighted rule handlers

func (s *Server) createRule(w http.ResponseWriter, r *http.Request) {
	var req appRules.CreateRuleInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	created, err := s.rulesSvc.CreateRule(r.Context(), req, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	var filter rule.Filter
	if v := r.URL.Query().Get("ruleType"); v != "" {
		rt := rule.RuleType(v)
		filter.RuleType = &rt
	}
	if v := r.URL.Query().Get("status"); v != "" {
		st := rule.RuleStatus(v)
		filter.Status = &st
	}
	rules, err := s.rulesSvc.ListRules(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

func (s *Server) getRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	found, err := s.rulesSvc.GetRule(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if found == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "rule not found")
		return
	}
	respondJSON(w, http.StatusOK, found)
}

func (s *Server) updateRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	var req appRules.UpdateRuleInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	updated, err := s.rulesSvc.UpdateRule(r.Context(), id, req, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	if err := s.rulesSvc.DeleteRule(r.Context(), id, actorFromRequest(r)); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ruleId": id, "deleted": true})
}

func (s *Server) activateRule(w http.ResponseWriter, r *http.Request) {
	s.setRuleStatus(w, r, rule.RuleStatusActive)
}

func (s *Server) deactivateRule(w http.ResponseWriter, r *http.Request) {
	s.setRuleStatus(w, r, rule.RuleStatusInactive)
}

func (s *Server) setRuleStatus(w http.ResponseWriter, r *http.Request, status rule.RuleStatus) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	updated, err := s.rulesSvc.SetRuleStatus(r.Context(), id, status, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ruleId": id, "status": updated.Status})
}

// Warning rule handlers

func (s *Server) createWarningRule(w http.ResponseWriter, r *http.Request) {
	var req appRules.CreateWarningRuleInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	created, err := s.rulesSvc.CreateWarningRule(r.Context(), req, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) listWarningRules(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	rules, err := s.rulesSvc.ListWarningRules(r.Context(), activeOnly)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"warningRules": rules})
}

func (s *Server) getWarningRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	found, err := s.rulesSvc.GetWarningRule(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if found == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "warning rule not found")
		return
	}
	respondJSON(w, http.StatusOK, found)
}

func (s *Server) deleteWarningRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	if err := s.rulesSvc.DeleteWarningRule(r.Context(), id, actorFromRequest(r)); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ruleId": id, "deleted": true})
}

func (s *Server) activateWarningRule(w http.ResponseWriter, r *http.Request) {
	s.setWarningRuleActive(w, r, true)
}

func (s *Server) deactivateWarningRule(w http.ResponseWriter, r *http.Request) {
	s.setWarningRuleActive(w, r, false)
}

func (s *Server) setWarningRuleActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	updated, err := s.rulesSvc.SetWarningRuleActive(r.Context(), id, active, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ruleId": id, "isActive": updated.IsActive})
}
