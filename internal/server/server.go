package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/kbsearch/internal/ingest"
	"github.com/ziadkadry99/kbsearch/internal/registry"
	"github.com/ziadkadry99/kbsearch/internal/vectordb"
)

const apiVersion = "1.1.0"

// Answerer is the slice of the RAG engine the server needs.
type Answerer interface {
	GenerateAnswer(ctx context.Context, query string, results []vectordb.Result) (string, float64)
	EvaluateSynthesis(ctx context.Context, reference, answer string) float64
}

// Config holds server configuration.
type Config struct {
	Port       int
	DataDir    string // directory for the index snapshot and registry
	MaxResults int    // default result count for queries
	AllowAll   bool   // allow all CORS origins (dev mode)
}

// Server exposes the knowledge base over HTTP.
type Server struct {
	cfg        Config
	store      vectordb.Store
	engine     Answerer
	ingester   *ingest.Service
	registry   *registry.Registry
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies wired.
func New(cfg Config, store vectordb.Store, engine Answerer, ingester *ingest.Service, reg *registry.Registry) *Server {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		engine:   engine,
		ingester: ingester,
		registry: reg,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/upload", s.handleUpload)
	r.Post("/query", s.handleQuery)
	r.Get("/documents", s.handleListDocuments)
	r.Get("/documents/metadata", s.handleDocumentStats)
	r.Post("/search/advanced", s.handleAdvancedSearch)
	r.Delete("/documents/{name}", s.handleDeleteDocument)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("kbsearch server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
