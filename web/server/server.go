package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
	pool      *renderer.WorkerPool
	logger    log.Logger
	nextJobID int64
}

// NewServer creates a new web server. At most workers renders run at once;
// 0 means one per CPU.
func NewServer(port int, scenesDir string, workers int) *Server {
	pool := renderer.NewWorkerPool(workers, 16)
	pool.Start()
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		pool:      pool,
		logger:    log.New("web"),
	}
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	defer s.Close()

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s with %d render workers", addr, s.pool.NumWorkers())
	return http.ListenAndServe(addr, s.Handler())
}

// Close waits for in-flight renders and stops the worker pool
func (s *Server) Close() {
	s.pool.Stop()
}

func (s *Server) newJobID() int {
	return int(atomic.AddInt64(&s.nextJobID, 1))
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the JSON scenes in the scenes directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	infos, err := scene.ListAll(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": infos})
}

// handleSceneConfig returns the default camera of a scene with the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = defaultScene
	}

	sc, err := scene.ResolveNamed(sceneID, s.scenesDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cam := sc.Camera
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":       sceneID,
		"name":        sc.Name,
		"description": sc.Description,
		"defaults": map[string]interface{}{
			"width":        cam.ImageWidth,
			"aspectRatio":  cam.AspectRatio,
			"samples":      cam.SamplesPerPixel,
			"depth":        cam.MaxDepth,
			"vfov":         cam.VFov,
			"defocusAngle": cam.DefocusAngle,
			"focusDist":    cam.FocusDist,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": limits.minWidth, "max": limits.maxWidth},
			"samples": map[string]int{"min": 1, "max": limits.maxSamples},
			"depth":   map[string]int{"min": 0, "max": limits.maxDepth},
		},
	})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
