package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"roadmapper/internal/painter"
)

func newRenderCmd(app *App, in *inputFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the roadmap to an SVG or PNG file",
		Long: `Render lays out the roadmap and writes it to --output. The file
extension picks the format: .svg (default) or .png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := outputFilename(in.file, in.csv, output)
			newCanvas, err := canvasFor(out)
			if err != nil {
				return err
			}

			var canvas painter.Canvas
			rm, err := build(app, in, func(w, h int, logger *slog.Logger) (painter.Canvas, error) {
				c, err := newCanvas(w, h, logger)
				if err != nil {
					return nil, err
				}
				canvas = c
				return c, nil
			})
			if closer, ok := canvas.(io.Closer); ok {
				defer closer.Close()
			}
			if err != nil {
				return err
			}
			if err := rm.Draw(); err != nil {
				return err
			}
			if err := rm.Save(out); err != nil {
				return err
			}

			tasks := 0
			for _, g := range rm.Groups() {
				tasks += len(g.Tasks)
			}
			st := newStyles(app.IsInteractive())
			fmt.Fprintf(app.Stdout, "%s %s\n", st.success.Render("Roadmap generated:"), st.bold.Render(out))
			fmt.Fprintln(app.Stdout, st.dim.Render(fmt.Sprintf("%d groups, %d tasks, %d timeline items",
				len(rm.Groups()), tasks, len(rm.Timeline().Items))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output filename (.svg or .png)")
	return cmd
}

// canvasFor picks the canvas implementation from the output extension.
func canvasFor(path string) (func(w, h int, logger *slog.Logger) (painter.Canvas, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return func(w, h int, _ *slog.Logger) (painter.Canvas, error) {
			return painter.NewSVG(w, h), nil
		}, nil
	case ".png":
		return func(w, h int, logger *slog.Logger) (painter.Canvas, error) {
			return painter.NewPNG(w, h, logger)
		}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q (expected .svg or .png)", filepath.Ext(path))
}

// outputFilename returns output when set, otherwise the input file's base
// name with an .svg extension.
func outputFilename(file, csvFile, output string) string {
	if output != "" {
		return output
	}
	input := file
	if input == "" {
		input = csvFile
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".svg"
}
