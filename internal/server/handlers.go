package server

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"motion-world/internal/config"
	"motion-world/world"
	"motion-world/worldio"
)

type GenerateResponse struct {
	ID       string       `json:"id"`
	World    world.Record `json:"world"`
	Overlaps [][2]int     `json:"overlaps"`
}

type ClosestRequest struct {
	Points [][3]float64 `json:"points"`
}

// ClosestResponse reports null for points and distances when the world has no blocks
type ClosestResponse struct {
	Points    []*[3]float64 `json:"points"`
	Distances []*float64    `json:"distances"`
}

type CollisionsRequest struct {
	Path       [][3]float64 `json:"path"`
	Margin     float64      `json:"margin"`
	Resolution float64      `json:"resolution,omitempty"`
}

type CollisionsResponse struct {
	Collisions [][3]float64 `json:"collisions"`
	Count      int          `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to write response: %v\n", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, world.ErrGenerationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, world.ErrInvalidParams),
		errors.Is(err, world.ErrInvalidExtents),
		errors.Is(err, world.ErrInvalidPath),
		errors.Is(err, world.ErrInvalidRecord),
		errors.Is(err, world.ErrInvalidColor),
		errors.Is(err, config.ErrUnknownKind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*world.World, bool) {
	id := mux.Vars(r)["id"]
	wld, ok := s.Get(id)
	if !ok {
		log.Printf("❌ Unknown world %s\n", id)
		writeError(w, http.StatusNotFound, errors.New("world not found: "+id))
	}
	return wld, ok
}

// POST /worlds - Generate a world from a generator configuration
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Generate request received")

	gc := s.cfg.Generator.Clone()
	if err := json.NewDecoder(r.Body).Decode(&gc); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	log.Printf("   Kind: %s, seed: %d\n", gc.Kind, gc.Seed)

	wld, err := gc.Generate(log.Default())
	if err != nil {
		reason := "invalid"
		if errors.Is(err, world.ErrGenerationFailed) {
			reason = "exhausted"
		}
		s.metrics.failures.WithLabelValues(gc.Kind, reason).Inc()
		log.Printf("❌ Generation failed: %v\n", err)
		writeError(w, statusFor(err), err)
		return
	}
	s.metrics.generated.WithLabelValues(gc.Kind).Inc()

	id := uuid.NewString()
	s.Put(id, wld)

	overlaps := wld.OverlappingBlocks()
	if len(overlaps) > 0 {
		log.Printf("   ℹ️  %d overlapping block pairs\n", len(overlaps))
	}
	log.Printf("✅ World %s stored with %d blocks\n", id, wld.NumBlocks())
	log.Println("========================================")

	writeJSON(w, http.StatusCreated, GenerateResponse{
		ID:       id,
		World:    wld.Record(),
		Overlaps: overlaps,
	})
}

// GET /worlds/{id}
func (s *Server) worldHandler(w http.ResponseWriter, r *http.Request) {
	wld, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wld.Record())
}

// GET /worlds/{id}/footprints - Block footprints for map display
func (s *Server) footprintsHandler(w http.ResponseWriter, r *http.Request) {
	wld, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	if err := worldio.EncodeGeoJSON(w, wld); err != nil {
		log.Printf("❌ Failed to encode footprints: %v\n", err)
	}
}

// POST /worlds/{id}/closest - Nearest obstacle point for each query point
func (s *Server) closestHandler(w http.ResponseWriter, r *http.Request) {
	wld, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req ClosestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	closest, distances := wld.ClosestPoints(toVectors(req.Points))
	s.metrics.queries.WithLabelValues("closest").Add(float64(len(req.Points)))

	resp := ClosestResponse{
		Points:    make([]*[3]float64, len(closest)),
		Distances: make([]*float64, len(distances)),
	}
	for i, d := range distances {
		if wld.NumBlocks() == 0 {
			break
		}
		p := fromVector(closest[i])
		resp.Points[i] = &p
		// distances too large for a float64 have no JSON form
		if !math.IsInf(d, 0) && !math.IsNaN(d) {
			d := d
			resp.Distances[i] = &d
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /worlds/{id}/collisions - Densely sampled path collision check
func (s *Server) collisionsHandler(w http.ResponseWriter, r *http.Request) {
	wld, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req CollisionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	resolution := req.Resolution
	if resolution == 0 {
		resolution = s.cfg.Query.Resolution()
	}

	path := toVectors(req.Path)
	hits, err := wld.PathCollisionsAt(path, req.Margin, resolution)
	if err != nil {
		log.Printf("❌ Collision check failed: %v\n", err)
		writeError(w, statusFor(err), err)
		return
	}
	s.metrics.queries.WithLabelValues("collisions").Add(math.Ceil(world.PathLength(path) / resolution))

	resp := CollisionsResponse{Collisions: make([][3]float64, 0, len(hits)), Count: len(hits)}
	for _, h := range hits {
		resp.Collisions = append(resp.Collisions, fromVector(h))
	}
	if len(hits) > 0 {
		log.Printf("⚠️  Path collides at %d of its samples\n", len(hits))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ready",
		"numWorlds": s.count(),
	})
}

func toVectors(pts [][3]float64) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = r3.Vector{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

func fromVector(v r3.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
