package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lakereflect/lakereflect/internal/errs"
	"github.com/lakereflect/lakereflect/internal/schema"
	"github.com/lakereflect/lakereflect/internal/snapshot"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.reflector.Ping(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	schemaName := r.URL.Query().Get("schema")

	tables, err := s.reflector.ListTables(r.Context(), schemaName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tables": tables})
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	schemaName := r.URL.Query().Get("schema")
	table := chi.URLParam(r, "table")

	t, err := s.reflector.ReflectTable(r.Context(), schemaName, table)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handlePrimaryKey(w http.ResponseWriter, r *http.Request) {
	schemaName := r.URL.Query().Get("schema")
	table := chi.URLParam(r, "table")

	pk, err := s.reflector.PrimaryKey(r.Context(), schemaName, table)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if pk == nil {
		// No primary key is an empty constraint, not an error.
		pk = &schema.PrimaryKey{ConstrainedColumns: []string{}}
	}
	s.writeJSON(w, http.StatusOK, pk)
}

func (s *Server) handleForeignKeys(w http.ResponseWriter, r *http.Request) {
	schemaName := r.URL.Query().Get("schema")
	table := chi.URLParam(r, "table")

	fks, err := s.reflector.ForeignKeys(r.Context(), schemaName, table)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if fks == nil {
		fks = []schema.ForeignKey{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"foreign_keys": fks})
}

func (s *Server) handleCaptureSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errs.New(errs.ErrKindInvalidInput, "snapshot store not configured"))
		return
	}
	schemaName := r.URL.Query().Get("schema")

	snap, err := snapshot.Capture(r.Context(), s.reflector, s.catalog, schemaName)
	if err != nil {
		s.writeError(w, err)
		return
	}

	key, err := s.store.Put(r.Context(), snap)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"key":    key,
		"tables": len(snap.Tables),
	})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, errs.New(errs.ErrKindInvalidInput, "snapshot store not configured"))
		return
	}

	keys, err := s.store.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"snapshots": keys})
}

// --- response helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode response: %v", err)
	}
}

// writeError maps an error's kind onto an HTTP status and writes a JSON
// error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errs.Kind(err) {
	case errs.ErrKindNotFound:
		status = http.StatusNotFound
	case errs.ErrKindInvalidInput:
		status = http.StatusBadRequest
	case errs.ErrKindPermissionDenied:
		status = http.StatusForbidden
	case errs.ErrKindTimeout:
		status = http.StatusGatewayTimeout
	case errs.ErrKindConnectionFailed:
		status = http.StatusBadGateway
	}

	var e *errs.Error
	message := err.Error()
	if errors.As(err, &e) {
		message = e.Message
	}

	s.writeJSON(w, status, map[string]string{
		"error": message,
		"kind":  errs.Kind(err).String(),
	})
}
