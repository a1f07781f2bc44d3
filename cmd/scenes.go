package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// ListScenes prints the built-in and discovered scenes.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	infos, err := scene.ListAll(ctx.GlobalString("scenes-dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Name", "Type", "Description"})
	for _, info := range infos {
		table.Append([]string{info.ID, info.Name, info.Type, info.Description})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", len(infos))})
	table.Render()

	if !ctx.Bool("stats") {
		return nil
	}

	for _, name := range scene.Names() {
		sc, err := scene.Lookup(name)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		sc.WriteStats(&buf)
		fmt.Fprintf(ctx.App.Writer, "\n%s\n%s", name, buf.String())
	}
	return nil
}
