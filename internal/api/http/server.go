package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	appAlerts "github.com/pallet-insight/pallet-insight/internal/application/alerts"
	appAudit "github.com/pallet-insight/pallet-insight/internal/application/audit"
	appEvaluation "github.com/pallet-insight/pallet-insight/internal/application/evaluation"
	appInsights "github.com/pallet-insight/pallet-insight/internal/application/insights"
	appProduct "github.com/pallet-insight/pallet-insight/internal/application/product"
	appRules "github.com/pallet-insight/pallet-insight/internal/application/rules"
	appViews "github.com/pallet-insight/pallet-insight/internal/application/views"
	"github.com/pallet-insight/pallet-insight/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	rulesSvc      *appRules.Service
	productSvc    *appProduct.Service
	evaluationSvc *appEvaluation.Service
	insightsSvc   *appInsights.Service
	viewsSvc      *appViews.Service
	alertsSvc     *appAlerts.Service
	auditSvc      *appAudit.Service
	sseHub        *sse.Hub
}

func NewServer(
	rulesSvc *appRules.Service,
	productSvc *appProduct.Service,
	evaluationSvc *appEvaluation.Service,
	insightsSvc *appInsights.Service,
	viewsSvc *appViews.Service,
	alertsSvc *appAlerts.Service,
	auditSvc *appAudit.Service,
	sseHub *sse.Hub,
) *Server {
	return &Server{
		rulesSvc:      rulesSvc,
		productSvc:    productSvc,
		evaluationSvc: evaluationSvc,
		insightsSvc:   insightsSvc,
		viewsSvc:      viewsSvc,
		alertsSvc:     alertsSvc,
		auditSvc:      auditSvc,
		sseHub:        sseHub,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/rules", func(r chi.Router) {
			r.Post("/", s.createRule)
			r.Get("/", s.listRules)
			r.Get("/{ruleId}", s.getRule)
			r.Patch("/{ruleId}", s.updateRule)
			r.Delete("/{ruleId}", s.deleteRule)
			r.Post("/{ruleId}/activate", s.activateRule)
			r.Post("/{ruleId}/deactivate", s.deactivateRule)
		})

		r.Route("/warning-rules", func(r chi.Router) {
			r.Post("/", s.createWarningRule)
			r.Get("/", s.listWarningRules)
			r.Get("/{ruleId}", s.getWarningRule)
			r.Delete("/{ruleId}", s.deleteWarningRule)
			r.Post("/{ruleId}/activate", s.activateWarningRule)
			r.Post("/{ruleId}/deactivate", s.deactivateWarningRule)
		})

		r.Route("/lots", func(r chi.Router) {
			r.Post("/", s.createLot)
			r.Get("/", s.listLots)
			r.Get("/{lotId}", s.getLot)
			r.Delete("/{lotId}", s.deleteLot)
			r.Get("/{lotId}/products", s.listLotProducts)
			r.Post("/{lotId}/evaluate", s.evaluateLot)
			r.Get("/{lotId}/runs", s.listLotRuns)
			r.Get("/{lotId}/insights", s.getLotInsights)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", s.listProducts)
			r.Get("/{productId}", s.getProduct)
			r.Post("/{productId}/evaluate", s.evaluateProduct)
		})

		r.Route("/runs", func(r chi.Router) {
			r.Get("/{runId}", s.getRun)
			r.Get("/{runId}/results", s.listRunResults)
			r.Get("/{runId}/alerts", s.listRunAlerts)
		})

		r.Route("/views", func(r chi.Router) {
			r.Post("/", s.createView)
			r.Get("/", s.listViews)
			r.Get("/{viewId}", s.getView)
			r.Delete("/{viewId}", s.deleteView)
			r.Get("/{viewId}/apply/{lotId}", s.applyView)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.listOpenAlerts)
			r.Get("/{alertId}", s.getAlert)
			r.Post("/{alertId}/ack", s.acknowledgeAlert)
			r.Post("/{alertId}/dismiss", s.dismissAlert)
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", s.listAudit)
			r.Get("/entity/{entityType}/{entityId}", s.getEntityHistory)
			r.Get("/{auditId}", s.getAudit)
			r.Get("/{auditId}/verify", s.verifyAudit)
		})

		r.Get("/events", s.sseEndpoint)
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func actorFromRequest(r *http.Request) string {
	actor := r.Header.Get("X-Actor")
	if actor == "" {
		actor = "system"
	}
	return actor
}

func parseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func parseLimit(r *http.Request, defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}
