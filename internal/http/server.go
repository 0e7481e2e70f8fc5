// Package http is the presentation adapter: a JSON API over the ledger
// service. It owns no business logic; handlers translate requests into
// service calls and aggregation results into plain JSON.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tally/internal/auth"
	"tally/internal/cache"
	"tally/internal/service"
	"tally/internal/store"
)

type Server struct {
	http.Server

	svc      *service.LedgerService
	authn    *auth.PasswordAuthenticator
	tokens   *auth.JWTManager
	users    store.UserStore
	validate *validator.Validate

	rateLimiter *rateLimiter

	// Per-user summary caches, invalidated on mutation.
	summaryCache *cache.LRU[summaryResponse]
	monthsCache  *cache.LRU[[]monthTotalResponse]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server.
func NewServer(addr string, svc *service.LedgerService, authn *auth.PasswordAuthenticator, tokens *auth.JWTManager, users store.UserStore) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:              svc,
		authn:            authn,
		tokens:           tokens,
		users:            users,
		validate:         validator.New(),
		rateLimiter:      newRateLimiter(),
		summaryCache:     cache.NewLRU[summaryResponse](200, 5*time.Minute),
		monthsCache:      cache.NewLRU[[]monthTotalResponse](100, 5*time.Minute),
		stopCacheCleanup: make(chan struct{}),
	}
	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/register", s.withCommon(s.handleRegister))
	mux.HandleFunc("POST /api/login", s.withCommon(s.handleLogin))

	mux.HandleFunc("GET /api/transactions", s.withCommon(s.withAuth(s.handleListTransactions)))
	mux.HandleFunc("POST /api/transactions", s.withCommon(s.withAuth(s.handleCreateTransaction)))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withCommon(s.withAuth(s.handleDeleteTransaction)))

	mux.HandleFunc("GET /api/categories", s.withCommon(s.withAuth(s.handleListCategories)))
	mux.HandleFunc("POST /api/categories", s.withCommon(s.withAuth(s.handleAddCategory)))
	mux.HandleFunc("DELETE /api/categories/{label}", s.withCommon(s.withAuth(s.handleRemoveCategory)))

	mux.HandleFunc("GET /api/summary", s.withCommon(s.withAuth(s.handleSummary)))
	mux.HandleFunc("GET /api/summary/months", s.withCommon(s.withAuth(s.handleMonthlySummary)))

	mux.HandleFunc("GET /api/export/csv", s.withCommon(s.withAuth(s.handleExportCSV)))
	mux.HandleFunc("GET /api/export/pdf", s.withCommon(s.withAuth(s.handleExportPDF)))

	mux.HandleFunc("GET /api/activity", s.withCommon(s.withAuth(s.handleActivity)))

	mux.HandleFunc("GET /api/admin/users", s.withCommon(s.withAuth(s.requireRole(auth.RoleAdmin, s.handleListUsers))))

	return s
}

// invalidateUserCaches flushes cached views after a mutation on key.
func (s *Server) invalidateUserCaches(key string) {
	s.summaryCache.InvalidatePrefix(key + ":")
	s.monthsCache.InvalidatePrefix(key + ":")
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.summaryCache.CleanExpired()
			s.monthsCache.CleanExpired()
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.stopCacheCleanup)
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Readiness is a cheap round-trip through the snapshot store.
	if _, err := s.svc.Categories(r.Context(), "readiness-probe"); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
