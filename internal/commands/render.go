package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cascade/internal/chart"
	"github.com/cleared-dev/cascade/internal/id"
	"github.com/cleared-dev/cascade/internal/plotimg"
	"github.com/cleared-dev/cascade/internal/render"
	"github.com/cleared-dev/cascade/internal/waterfall"
)

func newRenderCommand(g *globalFlags) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render the waterfall charts to html, svg or png",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPipeline(cmd.Context(), g, firstArg(args), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if format == "" {
				format = p.cfg.Output.Format
			}
			if out == "" {
				name := id.FormatFileName(p.cfg.Output.NameFormat, id.Fields{
					Company: p.cfg.Company,
					Ext:     format,
					Time:    time.Now(),
				})
				out = filepath.Join(p.resolve(p.cfg.Output.Dir), name)
			}
			return runRender(cmd.OutOrStdout(), p, format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: html, svg or png (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default from output.dir and output.name_format)")

	return cmd
}

func runRender(stdout io.Writer, p *pipeline, format, out string) error {
	layout := chart.NewLayout(p.res, p.cfg)

	// Render fully before touching the output path.
	var buf bytes.Buffer
	if err := renderTo(&buf, p.res, layout, format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}

	p.log.Info("rendered chart", "format", format, "path", out, "years", len(p.res.Years), "bytes", buf.Len())
	fmt.Fprintf(stdout, "Wrote %s\n", out)
	return nil
}

func renderTo(w io.Writer, res *waterfall.Result, layout chart.Layout, format string) error {
	switch format {
	case "html":
		return render.HTML(w, render.NewDocument(res, layout))
	case "svg":
		return render.SVG(w, render.NewDocument(res, layout))
	case "png":
		return plotimg.Render(w, res, layout)
	default:
		return fmt.Errorf("unknown format %q (want html, svg or png)", format)
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
