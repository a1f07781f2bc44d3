package cmd

import (
	"github.com/urfave/cli"
)

// Version of the pathtracer binary
const Version = "0.1.0"

// NewApp builds the command line application
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes using Monte Carlo path tracing"
	app.Version = Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, notice, warning or error",
		},
		cli.StringFlag{
			Name:  "scenes-dir",
			Value: "scenes",
			Usage: "directory searched for JSON scene files",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene, a scene from the scenes directory ("file:<name>")
or a JSON scene file. Camera flags override the scene's own camera.

The output format is chosen from the file extension (.png or .ppm). Without
--out the frame is written to output/<scene>/render_<timestamp>.png.`,
			ArgsUsage: "[scene]",
			Flags:     renderFlags,
			Action:    RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list available scenes",
			Action: ListScenes,
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "stats",
					Usage: "also show material statistics for each built-in scene",
				},
			},
		},
		{
			Name:   "serve",
			Usage:  "start the web render server",
			Action: Serve,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to listen on",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of concurrent renders (0 = number of CPUs)",
				},
			},
		},
	}
	return app
}
