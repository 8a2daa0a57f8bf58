// Package server is the items API consumed by the terminal client.
package server

import (
	"encoding/json"
	"net/http"

	"mercari/internal/storage"
	"mercari/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/attribute"
)

// Server holds the HTTP server dependencies
type Server struct {
	store    *storage.Store
	images   *ImageDir
	frontURL string
	router   chi.Router
}

// New creates the API server. frontURL is the only origin allowed by CORS.
func New(store *storage.Store, images *ImageDir, frontURL string) *Server {
	s := &Server{
		store:    store,
		images:   images,
		frontURL: frontURL,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(traceRequests)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.frontURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleHello)

	s.router.Get("/items", s.handleGetItems)
	s.router.Post("/items", s.handleAddItem)
	s.router.Get("/items/{id}", s.handleGetItem)
	s.router.Get("/search", s.handleSearch)

	s.router.Get("/image/{image_name}", s.handleGetImage)
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes {"detail": message}, the error shape the frontend expects.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"detail": message})
}

// traceRequests wraps each request in a span named after its route pattern.
func traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := telemetry.Tracer().Start(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		span.SetAttributes(attribute.String("mercari.request_id", middleware.GetReqID(ctx)))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		span.SetAttributes(attribute.Int("http.status_code", ww.Status()))
		if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
			span.SetName(r.Method + " " + pattern)
		}
	})
}
