package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"roadmapper/internal/painter"
	"roadmapper/internal/roadmap"
)

func newPrintCmd(app *App, in *inputFlags) *cobra.Command {
	var area string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the computed layout geometry",
		Long: `Print lays out the roadmap without writing an image and prints the
position and size of every element. Text is measured with the same
estimate the SVG output uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := roadmap.ParsePrintArea(area)
			if err != nil {
				return err
			}
			rm, err := build(app, in, func(w, h int, _ *slog.Logger) (painter.Canvas, error) {
				return painter.NewRecorder(w, h), nil
			})
			if err != nil {
				return err
			}
			if err := rm.Draw(); err != nil {
				return err
			}
			return rm.Print(app.Stdout, a)
		},
	}
	cmd.Flags().StringVar(&area, "area", "all", "Area to print: all, title, timeline, groups, marker, footer")
	return cmd
}
