package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newDomainCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "domain [input]",
		Short: "Print the years, labels and shared value domain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPipeline(cmd.Context(), g, firstArg(args), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runDomain(cmd.OutOrStdout(), p)
		},
	}
}

func runDomain(out io.Writer, p *pipeline) error {
	years := make([]string, len(p.res.Years))
	for i, s := range p.res.Years {
		years[i] = fmt.Sprint(s.Year)
	}
	fmt.Fprintf(out, "years:  %s\n", strings.Join(years, ", "))
	fmt.Fprintf(out, "labels: %d\n", len(p.res.Labels))
	fmt.Fprintf(out, "min:    %s\n", p.res.Domain.Min)
	fmt.Fprintf(out, "max:    %s\n", p.res.Domain.Max)
	return nil
}
