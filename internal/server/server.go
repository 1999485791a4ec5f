package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"shopadmin/internal/app"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/usertoken"
	"shopadmin/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                        *app.App
	TokenVerifier              *usertoken.Verifier
	RedisAddr                  string
	RedisPassword              string
	MutationRateLimitPerMinute int
}

// Server exposes the admin dashboard HTTP API.
type Server struct {
	app             *app.App
	tokenVerifier   *usertoken.Verifier
	mux             *http.ServeMux
	mutationLimiter *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	mutationLimit := cfg.MutationRateLimitPerMinute
	if mutationLimit <= 0 {
		mutationLimit = 120
	}
	limiter, err := ratelimit.NewRedisFixedWindowLimiter(
		cfg.RedisAddr, cfg.RedisPassword, "shopadmin:ratelimit:mutation", mutationLimit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init mutation limiter: %w", err)
	}
	s := &Server{
		app:             cfg.App,
		tokenVerifier:   cfg.TokenVerifier,
		mux:             http.NewServeMux(),
		mutationLimiter: limiter,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestID(util.WithRequestLog(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// store collection and settings
	s.mux.HandleFunc("/api/stores", s.handleStores)
	s.mux.HandleFunc("/api/stores/", s.handleStoreByID)

	// everything under /api/{storeId}/... is store-scoped
	s.mux.HandleFunc("/api/", s.handleStoreScoped)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStoreScoped dispatches /api/{storeId}/{resource}[/{id}[/{action}]].
func (s *Server) handleStoreScoped(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		http.NotFound(w, r)
		return
	}
	storeID := parts[0]
	resource := parts[1]
	rest := parts[2:]
	if len(rest) == 1 && rest[0] == "" {
		rest = nil
	}

	switch resource {
	case "billboards":
		s.handleBillboards(w, r, storeID, rest)
	case "categories":
		s.handleCategories(w, r, storeID, rest)
	case "sizes":
		s.handleSizes(w, r, storeID, rest)
	case "colors":
		s.handleColors(w, r, storeID, rest)
	case "products":
		s.handleProducts(w, r, storeID, rest)
	case "orders":
		s.handleOrders(w, r, storeID, rest)
	case "overview":
		if len(rest) != 0 {
			http.NotFound(w, r)
			return
		}
		s.handleOverview(w, r, storeID)
	case "uploads":
		if len(rest) != 0 {
			http.NotFound(w, r)
			return
		}
		s.handleUploads(w, r, storeID)
	default:
		http.NotFound(w, r)
	}
}

// subject extracts and verifies the caller's user ID from the bearer token.
func (s *Server) subject(r *http.Request) (string, bool) {
	token, ok := bearerToken(r)
	if !ok {
		return "", false
	}
	if s.tokenVerifier == nil {
		return "", false
	}
	userID, err := s.tokenVerifier.VerifySubject(token)
	if err != nil {
		slog.Warn("token rejected", "path", r.URL.Path, "error", err)
		return "", false
	}
	return userID, true
}

// requireSubject is subject plus the 401 response for anonymous callers.
func (s *Server) requireSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.subject(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthenticated")
		return "", false
	}
	return userID, true
}

// guardMutation authenticates and rate limits a write request.
func (s *Server) guardMutation(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.requireSubject(w, r)
	if !ok {
		return "", false
	}
	if !s.allowRate(w, r) {
		return "", false
	}
	return userID, true
}

func (s *Server) allowRate(w http.ResponseWriter, r *http.Request) bool {
	key := clientIP(r)
	if s.mutationLimiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, "Too many requests")
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func clientIP(r *http.Request) string {
	if xfwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xfwd != "" {
		parts := strings.Split(xfwd, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError emits the plain-text error bodies the admin frontend expects.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *app.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Message)
	case errors.Is(err, app.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, app.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "Unauthorized")
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		slog.Error("internal error",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", util.RequestIDFromRequest(r),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}
