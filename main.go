package main

import (
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/cmd"
)

func main() {
	app := cmd.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "pathtracer: %v\n", err)
		os.Exit(1)
	}
}
