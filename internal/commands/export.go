package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cascade/internal/export"
)

func newExportCommand(g *globalFlags) *cobra.Command {
	var format string
	var out string

	cmd := &cobra.Command{
		Use:   "export [input]",
		Short: "Export the computed waterfall rows as csv or xlsx",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unknown format %q (want csv or xlsx)", format)
			}
			if format == "xlsx" && out == "" {
				return errors.New("xlsx export needs --out")
			}
			p, err := runPipeline(cmd.Context(), g, firstArg(args), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runExport(cmd.OutOrStdout(), p, format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "output format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (csv defaults to stdout)")

	return cmd
}

func runExport(stdout io.Writer, p *pipeline, format, out string) error {
	var buf bytes.Buffer
	switch format {
	case "csv":
		if err := export.WriteCSV(&buf, p.res.Years); err != nil {
			return fmt.Errorf("exporting csv: %w", err)
		}
	case "xlsx":
		if err := export.WriteXLSX(&buf, p.res); err != nil {
			return fmt.Errorf("exporting xlsx: %w", err)
		}
	}

	if out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	p.log.Info("exported rows", "format", format, "path", out)
	fmt.Fprintf(stdout, "Wrote %s\n", out)
	return nil
}
