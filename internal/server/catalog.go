package server

import (
	"encoding/json"
	"io"
	"net/http"

	"shopadmin/internal/app"
)

// /api/{storeId}/billboards[/{billboardId}]
func (s *Server) handleBillboards(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	if len(rest) > 1 {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			billboards, err := s.app.ListBillboards(storeID)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, billboards)
		case http.MethodPost:
			userID, ok := s.guardMutation(w, r)
			if !ok {
				return
			}
			var req app.BillboardInput
			if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			billboard, err := s.app.CreateBillboard(userID, storeID, req)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, billboard)
		default:
			methodNotAllowed(w)
		}
		return
	}

	billboardID := rest[0]
	switch r.Method {
	case http.MethodGet:
		billboard, err := s.app.GetBillboard(billboardID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, billboard)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		var req app.BillboardInput
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		billboard, err := s.app.UpdateBillboard(userID, storeID, billboardID, req)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, billboard)
	case http.MethodDelete:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		billboard, err := s.app.DeleteBillboard(userID, storeID, billboardID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, billboard)
	default:
		methodNotAllowed(w)
	}
}

// /api/{storeId}/categories[/{categoryId}]
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	if len(rest) > 1 {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			categories, err := s.app.ListCategories(storeID)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, categories)
		case http.MethodPost:
			userID, ok := s.guardMutation(w, r)
			if !ok {
				return
			}
			var req app.CategoryInput
			if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			category, err := s.app.CreateCategory(userID, storeID, req)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, category)
		default:
			methodNotAllowed(w)
		}
		return
	}

	categoryID := rest[0]
	switch r.Method {
	case http.MethodGet:
		category, err := s.app.GetCategory(categoryID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		var req app.CategoryInput
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		category, err := s.app.UpdateCategory(userID, storeID, categoryID, req)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodDelete:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		category, err := s.app.DeleteCategory(userID, storeID, categoryID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, category)
	default:
		methodNotAllowed(w)
	}
}

// /api/{storeId}/sizes[/{sizeId}]
func (s *Server) handleSizes(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	if len(rest) > 1 {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			sizes, err := s.app.ListSizes(storeID)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, sizes)
		case http.MethodPost:
			userID, ok := s.guardMutation(w, r)
			if !ok {
				return
			}
			req, ok := decodeValueInput(w, r)
			if !ok {
				return
			}
			size, err := s.app.CreateSize(userID, storeID, req)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, size)
		default:
			methodNotAllowed(w)
		}
		return
	}

	sizeID := rest[0]
	switch r.Method {
	case http.MethodGet:
		size, err := s.app.GetSize(sizeID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, size)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		req, ok := decodeValueInput(w, r)
		if !ok {
			return
		}
		size, err := s.app.UpdateSize(userID, storeID, sizeID, req)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, size)
	case http.MethodDelete:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		size, err := s.app.DeleteSize(userID, storeID, sizeID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, size)
	default:
		methodNotAllowed(w)
	}
}

// /api/{storeId}/colors[/{colorId}]
func (s *Server) handleColors(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	if len(rest) > 1 {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			colors, err := s.app.ListColors(storeID)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, colors)
		case http.MethodPost:
			userID, ok := s.guardMutation(w, r)
			if !ok {
				return
			}
			req, ok := decodeValueInput(w, r)
			if !ok {
				return
			}
			color, err := s.app.CreateColor(userID, storeID, req)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, color)
		default:
			methodNotAllowed(w)
		}
		return
	}

	colorID := rest[0]
	switch r.Method {
	case http.MethodGet:
		color, err := s.app.GetColor(colorID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, color)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		req, ok := decodeValueInput(w, r)
		if !ok {
			return
		}
		color, err := s.app.UpdateColor(userID, storeID, colorID, req)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, color)
	case http.MethodDelete:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		color, err := s.app.DeleteColor(userID, storeID, colorID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, color)
	default:
		methodNotAllowed(w)
	}
}

func decodeValueInput(w http.ResponseWriter, r *http.Request) (app.ValueInput, bool) {
	var req app.ValueInput
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return app.ValueInput{}, false
	}
	return req, true
}
