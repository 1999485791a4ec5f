package server

import (
	"encoding/json"
	"io"
	"net/http"

	"shopadmin/internal/app"
)

// /api/{storeId}/orders[/{orderId}[/tracking]]
func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	switch len(rest) {
	case 0:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		userID, ok := s.requireSubject(w, r)
		if !ok {
			return
		}
		orders, err := s.app.ListOrders(userID, storeID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, orders)
	case 1:
		s.handleOrderByID(w, r, storeID, rest[0])
	case 2:
		if rest[1] != "tracking" {
			http.NotFound(w, r)
			return
		}
		s.handleOrderTracking(w, r, storeID, rest[0])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleOrderByID(w http.ResponseWriter, r *http.Request, storeID, orderID string) {
	switch r.Method {
	case http.MethodGet:
		userID, ok := s.requireSubject(w, r)
		if !ok {
			return
		}
		order, err := s.app.GetOrder(userID, storeID, orderID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		var req app.OrderPatch
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		order, err := s.app.UpdateOrder(userID, storeID, orderID, req)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
	default:
		methodNotAllowed(w)
	}
}

// handleOrderTracking appends one status event to the order's history.
func (s *Server) handleOrderTracking(w http.ResponseWriter, r *http.Request, storeID, orderID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	userID, ok := s.guardMutation(w, r)
	if !ok {
		return
	}
	var req app.TrackingInput
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	update, err := s.app.AppendTracking(userID, storeID, orderID, req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, update)
}

// /api/{storeId}/overview
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request, storeID string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	userID, ok := s.requireSubject(w, r)
	if !ok {
		return
	}
	overview, err := s.app.GetOverview(userID, storeID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
