package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pallet-insight/pallet-insight/internal/domain/alert"
)

// Alert handlers

func (s *Server) listOpenAlerts(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50, 200)
	alerts, err := s.alertsSvc.ListOpen(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts})
}

func (s *Server) getAlert(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "alertId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid alertId")
		return
	}
	a, err := s.alertsSvc.GetAlert(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if a == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "alert not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (s *Server) listRunAlerts(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "runId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid runId")
		return
	}
	alerts, err := s.alertsSvc.ListByRun(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"runId": id, "alerts": alerts})
}

func (s *Server) acknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "alertId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid alertId")
		return
	}
	a, err := s.alertsSvc.Acknowledge(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"alertId": id, "status": a.Status})
}

func (s *Server) dismissAlert(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "alertId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid alertId")
		return
	}
	a, err := s.alertsSvc.Dismiss(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"alertId": id, "status": a.Status})
}

// sseEndpoint streams run progress and alert events to the dashboard.
func (s *Server) sseEndpoint(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		clientID = uuid.New().String()
	}
	client := alert.NewSSEClient(clientID)
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(clientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming not supported")
		return
	}
	// Send an initial comment to flush headers and keep the connection alive.
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case msg := <-client.MessageChan:
			if msg == nil {
				return
			}
			payload, _ := json.Marshal(msg)
			_, _ = w.Write([]byte("event: "))
			_, _ = w.Write([]byte(msg.Event))
			_, _ = w.Write([]byte("\ndata: "))
			_, _ = w.Write(payload)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}
