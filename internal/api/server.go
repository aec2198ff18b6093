package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cedricworldwide/CuriosityQuest/internal/auth"
	"github.com/cedricworldwide/CuriosityQuest/internal/config"
	"github.com/cedricworldwide/CuriosityQuest/internal/prompts"
	"github.com/cedricworldwide/CuriosityQuest/internal/rewards"
	"github.com/cedricworldwide/CuriosityQuest/internal/store"
	"github.com/cedricworldwide/CuriosityQuest/internal/topics"
)

// Server represents the HTTP API server
type Server struct {
	config         config.ServerConfig
	router         *chi.Mux
	catalog        *topics.Catalog
	users          store.Users
	tokens         *auth.Tokens
	engine         *rewards.Engine
	generator      *prompts.Generator
	authMiddleware *AuthMiddleware
}

// NewServer creates a new API server
func NewServer(
	cfg config.ServerConfig,
	catalog *topics.Catalog,
	users store.Users,
	tokens *auth.Tokens,
	engine *rewards.Engine,
	generator *prompts.Generator,
) *Server {
	s := &Server{
		config:         cfg,
		catalog:        catalog,
		users:          users,
		tokens:         tokens,
		engine:         engine,
		generator:      generator,
		authMiddleware: NewAuthMiddleware(tokens),
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health checks (public)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		// Public surface
		r.Get("/topics", s.handleListTopics)
		r.Get("/topics/{id}", s.handleGetTopic)
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)

		// Authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware.Authenticate)
			r.Post("/user/reward", s.handleReward)
			r.Get("/ai/generate", s.handleGenerate)
		})
	})

	// Unknown paths and methods both get the catch-all body the clients
	// expect. Registered after the routes so chi propagates the handlers
	// into the subrouters.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Endpoint not found")
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
