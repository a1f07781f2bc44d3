package scene

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Lookup for names that are not registered.
var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	World       *geometry.HittableList
	Camera      renderer.CameraConfig
}

// NewCamera builds the scene's camera
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.Camera)
}

// NewRaytracer builds a raytracer for the scene seeded with seed
func (s *Scene) NewRaytracer(seed int64) *renderer.Raytracer {
	return renderer.NewRaytracer(s.World, s.NewCamera(), seed)
}

// Stats summarizes the contents of a scene
type Stats struct {
	Spheres   int
	Lists     int            // Nested lists, not counting the world itself
	Materials map[string]int // Sphere count keyed by material description
}

// Stats counts the primitives and materials in the world
func (s *Scene) Stats() Stats {
	stats := Stats{Materials: make(map[string]int)}
	if s.World != nil {
		countObjects(s.World.Objects, &stats)
	}
	return stats
}

func countObjects(objects []geometry.Hittable, stats *Stats) {
	for _, object := range objects {
		switch obj := object.(type) {
		case *geometry.Sphere:
			stats.Spheres++
			stats.Materials[describe(obj.Material)]++
		case *geometry.HittableList:
			stats.Lists++
			countObjects(obj.Objects, stats)
		}
	}
}

func describe(m material.Material) string {
	if m == nil {
		return "none"
	}
	return m.Describe()
}

// WriteStats renders the scene statistics as a table
func (s *Scene) WriteStats(w io.Writer) {
	stats := s.Stats()

	labels := make([]string, 0, len(stats.Materials))
	for label := range stats.Materials {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Material", "Spheres"})
	for _, label := range labels {
		table.Append([]string{label, fmt.Sprintf("%d", stats.Materials[label])})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", stats.Spheres)})
	table.Render()
}
