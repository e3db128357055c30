package httpapi

import (
	"net/http"

	appProduct "github.com/pallet-insight/pallet-insight/internal/application/product"
	"github.com/pallet-insight/pallet-insight/internal/domain/product"
)

// Lot handlers

func (s *Server) createLot(w http.ResponseWriter, r *http.Request) {
	var req appProduct.CreateLotInput
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	lot, err := s.productSvc.CreateLot(r.Context(), req, actorFromRequest(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, lot)
}

func (s *Server) listLots(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50, 200)
	lots, err := s.productSvc.ListLots(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"lots": lots})
}

func (s *Server) getLot(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	lot, err := s.productSvc.GetLot(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if lot == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "lot not found")
		return
	}
	respondJSON(w, http.StatusOK, lot)
}

func (s *Server) deleteLot(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	if err := s.productSvc.DeleteLot(r.Context(), id, actorFromRequest(r)); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"lotId": id, "deleted": true})
}

func (s *Server) listLotProducts(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	products, err := s.productSvc.ListByLot(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"lotId": id, "products": products})
}

func (s *Server) getLotInsights(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "lotId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
		return
	}
	ins, err := s.insightsSvc.ForLot(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ins)
}

// Product handlers

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	var filter product.Filter
	if v := r.URL.Query().Get("lotId"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid lotId")
			return
		}
		filter.LotID = &id
	}
	if v := r.URL.Query().Get("category"); v != "" {
		filter.Category = &v
	}
	if v := r.URL.Query().Get("minPrice"); v != "" {
		p, err := parseFloat(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid minPrice")
			return
		}
		filter.MinPrice = &p
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		p, err := parseFloat(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid maxPrice")
			return
		}
		filter.MaxPrice = &p
	}
	limit := parseLimit(r, 100, 500)
	products, err := s.productSvc.ListProducts(r.Context(), filter, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "productId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid productId")
		return
	}
	p, err := s.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}
