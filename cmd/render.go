package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "default",
		Usage: "scene to render when no argument is given",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "image filename for the rendered frame",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "image width in pixels",
	},
	cli.Float64Flag{
		Name:  "aspect",
		Usage: "image aspect ratio (width / height)",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum number of ray bounces",
	},
	cli.Float64Flag{
		Name:  "vfov",
		Usage: "vertical field of view in degrees",
	},
	cli.StringFlag{
		Name:  "look-from",
		Usage: "camera position as x,y,z",
	},
	cli.StringFlag{
		Name:  "look-at",
		Usage: "camera target as x,y,z",
	},
	cli.StringFlag{
		Name:  "vup",
		Usage: "camera up vector as x,y,z",
	},
	cli.Float64Flag{
		Name:  "defocus-angle",
		Usage: "defocus blur cone angle in degrees (0 disables depth of field)",
	},
	cli.Float64Flag{
		Name:  "focus-dist",
		Usage: "distance to the plane of perfect focus",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 42,
		Usage: "random seed",
	},
	cli.BoolFlag{
		Name:  "stats",
		Usage: "log the scene's material statistics before rendering",
	},
}

// RenderFrame renders a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sceneID := ctx.String("scene")
	if ctx.NArg() > 1 {
		return fmt.Errorf("expected at most one scene argument, got %d", ctx.NArg())
	}
	if ctx.NArg() == 1 {
		sceneID = ctx.Args().First()
	}

	sc, err := scene.Resolve(sceneID, ctx.GlobalString("scenes-dir"))
	if err != nil {
		return err
	}

	if err := applyCameraFlags(ctx, &sc.Camera); err != nil {
		return err
	}

	if ctx.Bool("stats") && log.Enabled(log.Notice, logModule) {
		var buf bytes.Buffer
		sc.WriteStats(&buf)
		logger.Noticef("scene statistics\n%s", buf.String())
	}

	outPath := ctx.String("out")
	if outPath == "" {
		outPath = createOutputPath(sc.Name, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	sink, err := output.Create(outPath)
	if err != nil {
		return err
	}

	logger.Noticef("rendering scene %q", sc.Name)
	stats, err := renderToSink(sc.NewRaytracer(ctx.Int64("seed")), sink)
	if err != nil {
		return err
	}

	displayRenderStats(stats)
	logger.Noticef("render saved as %s", outPath)
	return nil
}

// renderToSink renders into sink and releases it when the render fails
// before End could run.
func renderToSink(rt *renderer.Raytracer, sink renderer.PixelSink) (renderer.RenderStats, error) {
	stats, err := rt.Render(sink)
	if err != nil {
		if closer, ok := sink.(io.Closer); ok {
			if closeErr := closer.Close(); closeErr != nil {
				logger.Warningf("closing output: %v", closeErr)
			}
		}
		return stats, err
	}
	return stats, nil
}

// applyCameraFlags overwrites the camera fields whose flags were given
// explicitly, so zero values such as --depth 0 are honored.
func applyCameraFlags(ctx *cli.Context, config *renderer.CameraConfig) error {
	if ctx.IsSet("width") {
		config.ImageWidth = ctx.Int("width")
	}
	if ctx.IsSet("aspect") {
		config.AspectRatio = ctx.Float64("aspect")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("vfov") {
		config.VFov = ctx.Float64("vfov")
	}
	if ctx.IsSet("defocus-angle") {
		config.DefocusAngle = ctx.Float64("defocus-angle")
	}
	if ctx.IsSet("focus-dist") {
		config.FocusDist = ctx.Float64("focus-dist")
	}

	vectors := []struct {
		flag   string
		target *core.Vec3
	}{
		{"look-from", &config.LookFrom},
		{"look-at", &config.LookAt},
		{"vup", &config.VUp},
	}
	for _, v := range vectors {
		if !ctx.IsSet(v.flag) {
			continue
		}
		vec, err := parseVec3(ctx.String(v.flag))
		if err != nil {
			return fmt.Errorf("--%s: %w", v.flag, err)
		}
		*v.target = vec
	}
	return nil
}

// parseVec3 parses "x,y,z"
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var xyz [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid component %q: %w", part, err)
		}
		xyz[i] = value
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// createOutputPath returns output/<scene>/render_<timestamp>.png
func createOutputPath(sceneName string, now time.Time) string {
	dir := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(sceneName), " ", "-"))
	dir = filepath.Base(dir)
	if dir == "" || dir == "." || dir == ".." || dir == string(filepath.Separator) {
		dir = "scene"
	}
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func displayRenderStats(stats renderer.RenderStats) {
	if !log.Enabled(log.Notice, logModule) {
		return
	}

	var buf bytes.Buffer
	writeRenderStats(&buf, stats)
	logger.Noticef("frame statistics\n%s", buf.String())
}

// writeRenderStats renders stats as a one-row table
func writeRenderStats(w io.Writer, stats renderer.RenderStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Resolution", "Pixels", "Samples/pixel", "Rays", "Bounces/sample", "Escaped", "Absorbed", "Depth limit", "Render time"})
	table.Append([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.TotalPixels()),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.Rays),
		fmt.Sprintf("%.2f", stats.AverageBounces()),
		fmt.Sprintf("%d", stats.Escaped),
		fmt.Sprintf("%d", stats.Absorbed),
		fmt.Sprintf("%d", stats.DepthExhausted),
		stats.Elapsed.Round(time.Millisecond).String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "", "RAYS/SEC", fmt.Sprintf("%.0f", stats.RaysPerSecond())})
	table.Render()
}
