package server

import (
	"encoding/json"
	"io"
	"net/http"

	"shopadmin/internal/app"
)

// /api/{storeId}/products[/{productId}]
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request, storeID string, rest []string) {
	if len(rest) > 1 {
		http.NotFound(w, r)
		return
	}
	if len(rest) == 0 {
		switch r.Method {
		case http.MethodGet:
			s.handleListProducts(w, r, storeID)
		case http.MethodPost:
			userID, ok := s.guardMutation(w, r)
			if !ok {
				return
			}
			var req app.ProductInput
			if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			product, err := s.app.CreateProduct(userID, storeID, req)
			if err != nil {
				writeAppError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, product)
		default:
			methodNotAllowed(w)
		}
		return
	}

	productID := rest[0]
	switch r.Method {
	case http.MethodGet:
		product, err := s.app.GetProduct(productID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	case http.MethodPatch:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		var req app.ProductInput
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		product, err := s.app.UpdateProduct(userID, storeID, productID, req)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	case http.MethodDelete:
		userID, ok := s.guardMutation(w, r)
		if !ok {
			return
		}
		product, err := s.app.DeleteProduct(userID, storeID, productID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	default:
		methodNotAllowed(w)
	}
}

// handleListProducts supports the storefront query filters. admin=true keeps
// archived products in the result for the dashboard table.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request, storeID string) {
	q := r.URL.Query()
	filter := app.ProductFilter{
		CategoryID:      q.Get("categoryId"),
		SizeID:          q.Get("sizeId"),
		ColorID:         q.Get("colorId"),
		FeaturedOnly:    q.Get("isFeatured") == "true",
		IncludeArchived: q.Get("admin") == "true",
	}
	products, err := s.app.ListProducts(storeID, filter)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
