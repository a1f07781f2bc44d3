package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Description  string                 `json:"description,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func hexColor(c core.Color) string {
	unit := core.NewInterval(0, 1)
	return fmt.Sprintf("#%02x%02x%02x",
		int(unit.Clamp(c.X)*255), int(unit.Clamp(c.Y)*255), int(unit.Clamp(c.Z)*255))
}

// extractMaterialInfo reports the material's type and parameters
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// handleInspect casts a ray through the center of pixel (x, y) and reports
// the first surface it hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, sc, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	camera := sc.NewCamera()
	query := r.URL.Query()
	x, err := parseIntParam(query, "x", camera.Width()/2, 0, camera.Width()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", camera.Height()/2, 0, camera.Height()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ray := camera.CenterRay(x, y)
	hit, isHit := sc.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !isHit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Description:  hit.Material.Describe(),
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}

	s.logger.Debugf("inspect %q (%d, %d): %s at t=%g", req.Scene, x, y, response.Description, hit.T)
	writeJSON(w, http.StatusOK, response)
}
