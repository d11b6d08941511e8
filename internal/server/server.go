// Package server exposes a Reflector over HTTP.
//
// Routes:
//
//	GET  /healthz                          — backend liveness
//	GET  /v1/tables                        — table names
//	GET  /v1/tables/{table}                — full table descriptor
//	GET  /v1/tables/{table}/primary-key    — primary key constraint
//	GET  /v1/tables/{table}/foreign-keys   — foreign key constraints
//	POST /v1/snapshots                     — capture and persist a snapshot
//	GET  /v1/snapshots                     — list stored snapshot keys
//
// Every table route accepts an optional ?schema= parameter; without it the
// backend's configured default schema is reflected, and foreign keys are
// reported without a referred schema.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lakereflect/lakereflect/internal/logger"
	"github.com/lakereflect/lakereflect/internal/schema"
	"github.com/lakereflect/lakereflect/internal/snapshot"
)

// Server routes HTTP requests to a schema.Reflector and, optionally, a
// snapshot.Store.
type Server struct {
	reflector schema.Reflector
	store     snapshot.Store // nil when snapshots are not configured
	catalog   string
	log       *logger.Logger
}

// New builds a Server. store may be nil; the snapshot routes then reply
// with an invalid-input error.
func New(reflector schema.Reflector, store snapshot.Store, catalog string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.New(nil)
	}
	return &Server{
		reflector: reflector,
		store:     store,
		catalog:   catalog,
		log:       log,
	}
}

// Router returns the chi router with all routes and middleware mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/tables", s.handleListTables)
		r.Get("/tables/{table}", s.handleTable)
		r.Get("/tables/{table}/primary-key", s.handlePrimaryKey)
		r.Get("/tables/{table}/foreign-keys", s.handleForeignKeys)
		r.Post("/snapshots", s.handleCaptureSnapshot)
		r.Get("/snapshots", s.handleListSnapshots)
	})

	return r
}
