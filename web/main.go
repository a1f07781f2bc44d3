package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	app := cli.NewApp()
	app.Name = "pathtracer-web"
	app.Usage = "serve path traced renders over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scenes-dir",
			Value: "scenes",
			Usage: "directory searched for JSON scene files",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of concurrent renders (0 = number of CPUs)",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}
		srv := server.NewServer(ctx.Int("port"), ctx.String("scenes-dir"), ctx.Int("workers"))
		return srv.Start()
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pathtracer-web: %v\n", err)
		os.Exit(1)
	}
}
