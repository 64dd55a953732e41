// Package httpapi is the JSON presentation boundary over the in-memory
// store, the aggregation functions and the derived view engine.
package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"findash/internal/advice"
	"findash/internal/config"
	"findash/internal/core"
	"findash/internal/events"
	"findash/internal/store"
)

// AdviceService produces recommendation text for a transaction history.
type AdviceService interface {
	Analyze(ctx context.Context, transactions []core.Transaction) (string, error)
}

// EventPublisher records accepted mutations; implementations must treat
// publish failures as non-fatal. (*events.Client)(nil) is a valid,
// disabled publisher.
type EventPublisher interface {
	PublishMutation(ctx context.Context, msg *events.Mutation) error
}

type Server struct {
	http.Server
	store       *store.Store
	advice      AdviceService
	publisher   EventPublisher
	logger      *slog.Logger
	rateLimiter *rateLimiter

	defaultPageSize int

	// At most one upstream advice call in flight per instance.
	adviceInFlight atomic.Bool
	adviceCache    *lruCache[string]

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(cfg *config.Config, st *store.Store, adv AdviceService, pub EventPublisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		},
		store:           st,
		advice:          adv,
		publisher:       pub,
		logger:          logger,
		rateLimiter:     newRateLimiter(),
		defaultPageSize: cfg.DefaultPageSize,
		adviceCache:     newLRUCache[string](16, cfg.AdviceCacheTTL),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/overview", s.withMiddleware(s.handleOverview))
	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("GET /api/bills", s.withMiddleware(s.handleListBills))

	mux.HandleFunc("GET /api/pots", s.withMiddleware(s.handleListPots))
	mux.HandleFunc("POST /api/pots", s.withMiddleware(s.handleCreatePot))
	mux.HandleFunc("PUT /api/pots/{id}", s.withMiddleware(s.handleUpdatePot))
	mux.HandleFunc("DELETE /api/pots/{id}", s.withMiddleware(s.handleDeletePot))
	mux.HandleFunc("POST /api/pots/{id}/deposit", s.withMiddleware(s.handleDeposit))
	mux.HandleFunc("POST /api/pots/{id}/withdraw", s.withMiddleware(s.handleWithdraw))

	mux.HandleFunc("GET /api/budgets", s.withMiddleware(s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.withMiddleware(s.handleCreateBudget))
	mux.HandleFunc("PUT /api/budgets/{id}", s.withMiddleware(s.handleUpdateBudget))
	mux.HandleFunc("DELETE /api/budgets/{id}", s.withMiddleware(s.handleDeleteBudget))

	mux.HandleFunc("POST /api/advice", s.withMiddleware(s.handleAdvice))

	return s
}

// Shutdown stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// The dataset is loaded before the server starts, so a running
	// server is a ready server.
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// withMiddleware adds request-id tracing, request logging, security
// headers, and rate limiting on mutating methods.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if mutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				"request_id", requestID,
				"client_ip", clientIP,
				"method", r.Method,
				"url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the status code for the completion log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// publish records an accepted mutation. Failures are logged and
// swallowed: the event stream is observational, never authoritative.
func (s *Server) publish(ctx context.Context, msg *events.Mutation) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMutation(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish mutation event",
			"entity", msg.Entity,
			"op", msg.Op,
			"id", msg.ID,
			"error", err)
	}
}

var _ AdviceService = (*advice.Client)(nil)
var _ EventPublisher = (*events.Client)(nil)

// Simple in-memory rate limiter, per client IP.
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopCleanup)
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	// Reset counter once a full minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 mutating requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}
