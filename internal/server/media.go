package server

import (
	"encoding/json"
	"io"
	"net/http"
)

// /api/{storeId}/uploads
func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request, storeID string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	userID, ok := s.guardMutation(w, r)
	if !ok {
		return
	}
	var req uploadRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	upload, err := s.app.CreateUpload(r.Context(), userID, storeID, req.Filename)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, upload)
}

type uploadRequest struct {
	Filename string `json:"filename"`
}
