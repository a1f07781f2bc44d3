package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/web/server"
)

// Serve starts the web render server and blocks until it fails.
func Serve(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	srv := server.NewServer(ctx.Int("port"), ctx.GlobalString("scenes-dir"), ctx.Int("workers"))
	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
	return srv.Start()
}
