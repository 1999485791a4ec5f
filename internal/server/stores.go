package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// /api/stores
func (s *Server) handleStores(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		var req storeRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		store, err := s.app.CreateStore(userID, req.Name)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, store)
	case http.MethodGet:
		userID, ok := s.requireSubject(w, r)
		if !ok {
			return
		}
		stores, err := s.app.ListStores(userID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, stores)
	default:
		methodNotAllowed(w)
	}
}

// /api/stores/{storeId}
func (s *Server) handleStoreByID(w http.ResponseWriter, r *http.Request) {
	storeID := strings.TrimPrefix(r.URL.Path, "/api/stores/")
	if storeID == "" || strings.Contains(storeID, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		userID, ok := s.requireSubject(w, r)
		if !ok {
			return
		}
		store, err := s.app.GetStore(userID, storeID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, store)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		var req storeRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		store, err := s.app.UpdateStore(userID, storeID, req.Name)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, store)
	case http.MethodDelete:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		store, err := s.app.DeleteStore(userID, storeID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, store)
	default:
		methodNotAllowed(w)
	}
}

type storeRequest struct {
	Name string `json:"name"`
}
