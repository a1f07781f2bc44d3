package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrInvalidScene is returned for scene files that cannot be turned into a world.
var ErrInvalidScene = errors.New("scene: invalid scene description")

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg mirrors renderer.CameraConfig. Omitted fields keep their defaults.
type CameraCfg struct {
	Width        int      `json:"width,omitempty"`
	AspectRatio  float64  `json:"aspectRatio,omitempty"`
	Samples      int      `json:"samples,omitempty"`
	MaxDepth     int      `json:"maxDepth,omitempty"`
	VFov         float64  `json:"vfov,omitempty"`
	LookFrom     *Vec3Cfg `json:"lookFrom,omitempty"`
	LookAt       *Vec3Cfg `json:"lookAt,omitempty"`
	VUp          *Vec3Cfg `json:"vup,omitempty"`
	DefocusAngle float64  `json:"defocusAngle,omitempty"`
	FocusDist    float64  `json:"focusDist,omitempty"`
}

// MaterialCfg describes one named material
type MaterialCfg struct {
	Type   string  `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo Vec3Cfg `json:"albedo"`
	Fuzz   float64 `json:"fuzz,omitempty"`
	IOR    float64 `json:"ior,omitempty"`
}

// SphereCfg places a sphere using a material from the materials table
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Config is the JSON scene file format
type Config struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Camera      *CameraCfg             `json:"camera,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build turns the material description into a material
func (mc MaterialCfg) Build() (material.Material, error) {
	switch strings.ToLower(mc.Type) {
	case "lambertian":
		return material.NewLambertian(mc.Albedo.vec()), nil
	case "metal":
		return material.NewMetal(mc.Albedo.vec(), mc.Fuzz), nil
	case "dielectric":
		return material.NewDielectric(mc.IOR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// Apply returns base with the configured camera fields replaced
func (cc CameraCfg) Apply(base renderer.CameraConfig) renderer.CameraConfig {
	override := renderer.CameraConfig{
		ImageWidth:      cc.Width,
		AspectRatio:     cc.AspectRatio,
		SamplesPerPixel: cc.Samples,
		MaxDepth:        cc.MaxDepth,
		VFov:            cc.VFov,
		DefocusAngle:    cc.DefocusAngle,
		FocusDist:       cc.FocusDist,
	}
	result := renderer.MergeCameraConfig(base, override)

	// Explicit vectors win even when zero, so a camera can sit at the origin
	if cc.LookFrom != nil {
		result.LookFrom = cc.LookFrom.vec()
	}
	if cc.LookAt != nil {
		result.LookAt = cc.LookAt.vec()
	}
	if cc.VUp != nil {
		result.VUp = cc.VUp.vec()
	}
	return result
}

// Build creates the scene described by the config
func (c Config) Build(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	materials := make(map[string]material.Material, len(c.Materials))
	for name, mc := range c.Materials {
		m, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %v", ErrInvalidScene, name, err)
		}
		materials[name] = m
	}

	world := geometry.NewHittableList()
	for i, sc := range c.Spheres {
		m, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references unknown material %q", ErrInvalidScene, i, sc.Material)
		}
		world.Add(geometry.NewSphere(sc.Center.vec(), sc.Radius, m))
	}

	cameraConfig := renderer.DefaultCameraConfig()
	if c.Camera != nil {
		cameraConfig = c.Camera.Apply(cameraConfig)
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:        c.Name,
		Description: c.Description,
		World:       world,
		Camera:      cameraConfig,
	}, nil
}

// Load reads a JSON scene from r
func Load(r io.Reader, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	var cfg Config
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return cfg.Build(cameraOverrides...)
}

// LoadFile reads a JSON scene file. The file name stands in for a missing scene name.
func LoadFile(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer file.Close()

	s, err := Load(file, cameraOverrides...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	logger.Infof("loaded %q from %s (%d objects)", s.Name, path, s.World.Len())
	return s, nil
}
