package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"farmbook/internal/cache"
	"farmbook/internal/cloud"
	"farmbook/internal/ledger"
)

// SnapshotPublisher announces saved snapshots to the sync pipeline.
// Publish failures must never fail a save.
type SnapshotPublisher interface {
	PublishSnapshotSaved(ctx context.Context, identity string, txCount int) error
}

// CategorySuggester proposes a category name for a transaction description.
type CategorySuggester interface {
	Suggest(ctx context.Context, description string, categories []string) (string, error)
}

// Server wires the ledger, the snapshot store and the optional services
// behind the JSON API.
type Server struct {
	http.Server
	ledger    *ledger.Store
	snapshots cloud.Store
	publisher SnapshotPublisher
	suggester CategorySuggester
	logger    *slog.Logger

	rateLimiter  *rateLimiter
	dashCache    *cache.LRU[dashboardPayload]
	now          func() time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server. Publisher and suggester may be nil; the matching endpoints
// degrade instead of failing startup.
func NewServer(addr string, store *ledger.Store, snapshots cloud.Store, publisher SnapshotPublisher, suggester CategorySuggester, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:      store,
		snapshots:   snapshots,
		publisher:   publisher,
		suggester:   suggester,
		logger:      logger,
		rateLimiter: newRateLimiter(),
		dashCache:   cache.NewLRU[dashboardPayload](1, 30*time.Second),
		now:         time.Now,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /api/dashboard/monthly", s.withMiddleware(s.handleMonthly))
	mux.HandleFunc("GET /api/dashboard/upcoming", s.withMiddleware(s.handleUpcoming))
	mux.HandleFunc("GET /api/search", s.withMiddleware(s.handleSearch))

	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withMiddleware(s.handleCreateCategory))
	mux.HandleFunc("PUT /api/categories/{id}", s.withMiddleware(s.handleUpdateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", s.withMiddleware(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/accounts", s.withMiddleware(s.handleCreateAccount))
	mux.HandleFunc("POST /api/liabilities", s.withMiddleware(s.handleCreateLiability))

	mux.HandleFunc("POST /api/suggest-category", s.withMiddleware(s.handleSuggestCategory))
	mux.HandleFunc("POST /api/cloud/save", s.withMiddleware(s.handleCloudSave))
	mux.HandleFunc("POST /api/cloud/load", s.withMiddleware(s.handleCloudLoad))

	return s
}

// Shutdown stops the rate limiter cleanup goroutine and then shuts down
// the HTTP server.
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

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
		return true
	}
	return false
}

// withMiddleware adds request IDs, security headers, rate limiting on
// mutating methods, and request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		s.logger.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
