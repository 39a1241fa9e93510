// Package server implements the document preview HTTP server.
//
// The server exposes a read-only view over a [source.Source]: listing
// documents and rendering a single document in any pipeline format.
// Rendering goes through a shared [pipeline.Runner] so cached artifacts
// are reused across requests.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/notewerk/blocktree/pkg/block"
	"github.com/notewerk/blocktree/pkg/pipeline"
	"github.com/notewerk/blocktree/pkg/source"
)

// contentTypes maps pipeline formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatMarkdown: "text/markdown; charset=utf-8",
	pipeline.FormatHTML:     "text/html; charset=utf-8",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:      "image/svg+xml",
}

// Server is the preview HTTP server.
type Server struct {
	router chi.Router
	source source.Source
	runner *pipeline.Runner
	log    *log.Logger
}

// New creates and configures the server.
func New(src source.Source, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		source: src,
		runner: runner,
		log:    logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/docs", s.handleListDocs)
	r.Get("/docs/{docID}", s.handleRenderDoc)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleListDocs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.source.List(r.Context())
	if err != nil {
		s.log.Error("list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": ids})
}

func (s *Server) handleRenderDoc(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatHTML
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.source.Load(r.Context(), docID)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			writeError(w, http.StatusNotFound, "document not found")
			return
		}
		s.log.Error("load document", "doc", docID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load document")
		return
	}

	// Documents are stored with their page block keyed by the doc ID.
	rootID := docID
	if _, ok := g.Block(rootID); !ok {
		rootID = firstRoot(g)
	}
	if rootID == "" {
		writeError(w, http.StatusUnprocessableEntity, "document has no root block")
		return
	}

	result, err := s.runner.Execute(r.Context(), g, pipeline.Options{
		RootID:  rootID,
		Formats: []string{format},
	})
	if err != nil {
		s.log.Error("render document", "doc", docID, "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Graph-Hash", result.GraphHash)
	w.Write(result.Artifacts[format])
}

// firstRoot finds a parentless block to use as the render root, in
// deterministic ID order.
func firstRoot(g block.Graph) string {
	for _, id := range g.IDs() {
		if b, ok := g.Block(id); ok && b.ParentID == "" {
			return id
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
