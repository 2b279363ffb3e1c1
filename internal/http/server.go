// Package http exposes the finance-tracking admin API: movement
// listing and creation, user administration, and the reports endpoints.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/edu-delahoz/finanzas/internal/core"
	"github.com/edu-delahoz/finanzas/internal/log"
	"github.com/edu-delahoz/finanzas/internal/storage"
)

// Store is the persistence surface the handlers consume. The SQLite
// repository implements it; tests swap in a fake.
type Store interface {
	CreateMovement(ctx context.Context, m core.Movement) (core.Movement, error)
	CountMovements(ctx context.Context, f storage.ListFilter) (int64, error)
	ListMovements(ctx context.Context, f storage.ListFilter) ([]core.Movement, error)
	MovementsInRange(ctx context.Context, from, to time.Time) ([]core.Movement, error)
	GetUser(ctx context.Context, id string) (core.User, error)
	ListUsers(ctx context.Context) ([]core.User, error)
	UpdateUser(ctx context.Context, id string, patch core.UserPatch) (core.User, error)
}

// Publisher emits movement lifecycle events for the mirror worker.
// A nil Publisher disables publishing.
type Publisher interface {
	PublishMovementCreated(ctx context.Context, id string) error
}

type Server struct {
	http.Server
	store    Store
	pub      Publisher
	sessions *SessionVerifier
	started  time.Time
}

func NewServer(addr string, store Store, pub Publisher, sessions *SessionVerifier, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Config{Component: "http"})
	}

	s := &Server{
		store:    store,
		pub:      pub,
		sessions: sessions,
		started:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/docs", s.handleDocs)
	mux.HandleFunc("/api/openapi.json", s.handleOpenAPI)
	mux.HandleFunc("/api/me", s.handleMe)
	mux.HandleFunc("/api/movements", s.handleMovements)
	mux.HandleFunc("/api/users", s.handleUsers)
	mux.HandleFunc("/api/users/", s.handleUserByID)
	mux.HandleFunc("/api/reports/summary", s.handleReportsSummary)
	mux.HandleFunc("/api/reports/csv", s.handleReportsCSV)

	s.Addr = addr
	s.Handler = log.Middleware(logger.WithComponent("http"))(mux)

	return s
}
