package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

const defaultScene = "default"

// Request bounds; web renders are kept small so a request finishes in seconds
var limits = struct {
	minWidth, maxWidth int
	maxSamples         int
	maxDepth           int
	maxSeed            int
}{
	minWidth:   16,
	maxWidth:   2000,
	maxSamples: 1000,
	maxDepth:   100,
	maxSeed:    1<<31 - 1,
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string  // Scene id (built-in name or "file:<name>")
	Width   int     // Image width
	Aspect  float64 // Width over height
	Samples int     // Samples per pixel
	Depth   int     // Maximum bounce depth
	Seed    int64   // Random seed
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// parseRenderRequest validates the query and returns the request together
// with the resolved scene, its camera already adjusted.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()

	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	sc, err := scene.ResolveNamed(req.Scene, s.scenesDir)
	if err != nil {
		return nil, nil, err
	}
	cam := sc.Camera

	// Scene defaults, pulled into the accepted range
	if req.Width, err = parseIntParam(query, "width", clampInt(cam.ImageWidth, limits.minWidth, limits.maxWidth), limits.minWidth, limits.maxWidth); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", clampInt(cam.SamplesPerPixel, 1, limits.maxSamples), 1, limits.maxSamples); err != nil {
		return nil, nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", clampInt(cam.MaxDepth, 0, limits.maxDepth), 0, limits.maxDepth); err != nil {
		return nil, nil, err
	}
	if req.Aspect, err = parseFloatParam(query, "aspect", cam.AspectRatio, 0.1, 10); err != nil {
		return nil, nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 0, limits.maxSeed)
	if err != nil {
		return nil, nil, err
	}
	req.Seed = int64(seed)

	sc.Camera.ImageWidth = req.Width
	sc.Camera.AspectRatio = req.Aspect
	sc.Camera.SamplesPerPixel = req.Samples
	sc.Camera.MaxDepth = req.Depth

	if req.Width*req.Samples > 800*200 {
		s.logger.Warningf("large render requested: %dpx wide at %d samples/pixel", req.Width, req.Samples)
	}

	return req, sc, nil
}

// handleRender renders a frame and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sink := output.NewImageSink()
	job := renderer.RenderJob{
		ID:        s.newJobID(),
		Raytracer: sc.NewRaytracer(req.Seed),
		Sink:      sink,
	}

	s.logger.Infof("job %d: rendering %q at %dpx, %d samples, depth %d", job.ID, req.Scene, req.Width, req.Samples, req.Depth)
	result := s.pool.Submit(r.Context(), job)
	switch {
	case errors.Is(result.Err, renderer.ErrPoolStopped):
		writeError(w, http.StatusServiceUnavailable, result.Err)
		return
	case errors.Is(result.Err, context.Canceled), errors.Is(result.Err, context.DeadlineExceeded):
		s.logger.Noticef("job %d: client went away: %v", job.ID, result.Err)
		return
	case result.Err != nil:
		writeError(w, http.StatusInternalServerError, result.Err)
		return
	}

	var buf bytes.Buffer
	if err := sink.EncodePNG(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	stats := result.Stats
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Rays", strconv.Itoa(stats.Rays))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())

	s.logger.Infof("job %d: done in %v", job.ID, stats.Elapsed)
}
