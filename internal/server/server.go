// Package server exposes world generation and obstacle queries over HTTP.
package server

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motion-world/internal/config"
	"motion-world/world"
)

// Server keeps generated worlds in memory, keyed by ID
type Server struct {
	cfg     *config.Config
	metrics *Metrics
	gather  prometheus.Gatherer

	mu     sync.RWMutex
	worlds map[string]*world.World
}

// New creates a server. Metrics are registered with reg and served from gather.
func New(cfg *config.Config, reg prometheus.Registerer, gather prometheus.Gatherer) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Server{
		cfg:     cfg,
		metrics: NewMetrics(reg),
		gather:  gather,
		worlds:  make(map[string]*world.World),
	}
}

// Put stores a world and returns its ID
func (s *Server) Put(id string, w *world.World) {
	s.mu.Lock()
	s.worlds[id] = w
	s.mu.Unlock()
}

// Get returns a stored world
func (s *Server) Get(id string) (*world.World, bool) {
	s.mu.RLock()
	w, ok := s.worlds[id]
	s.mu.RUnlock()
	return w, ok
}

func (s *Server) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.worlds)
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Router wires the endpoints
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	r.HandleFunc("/worlds", s.generateHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/worlds/{id}", s.worldHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/worlds/{id}/footprints", s.footprintsHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/worlds/{id}/closest", s.closestHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/worlds/{id}/collisions", s.collisionsHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.gather, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return r
}

// ListenAndServe serves the router with access logging on stdout
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Server.GetAddr()

	log.Println("========================================")
	log.Println("🚀 Obstacle World Server")
	log.Println("========================================")
	log.Printf("Server starting on %s\n", addr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /worlds                  - Generate a world")
	log.Println("  GET  /worlds/{id}             - World record")
	log.Println("  GET  /worlds/{id}/footprints  - Block footprints as GeoJSON")
	log.Println("  POST /worlds/{id}/closest     - Nearest obstacle points")
	log.Println("  POST /worlds/{id}/collisions  - Colliding path samples")
	log.Println("  GET  /health                  - Check server status")
	log.Println("  GET  /metrics                 - Prometheus metrics")
	log.Println("========================================")

	return http.ListenAndServe(addr, handlers.CombinedLoggingHandler(os.Stdout, s.Router()))
}
