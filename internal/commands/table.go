package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/cascade/internal/config"
	"github.com/cleared-dev/cascade/internal/model"
)

const (
	keyWidth    = 46
	amountWidth = 10
	classWidth  = 9
)

func newTableCommand(g *globalFlags) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "table [input]",
		Short: "Print each year's waterfall rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := runPipeline(cmd.Context(), g, firstArg(args), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runTable(cmd.OutOrStdout(), p, year)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "only print this year")

	return cmd
}

func runTable(out io.Writer, p *pipeline, year int) error {
	st := newTableStyles(p.cfg.Palette)

	printed := 0
	for _, s := range p.res.Years {
		if year != 0 && s.Year != year {
			continue
		}
		if printed > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, st.render(s))
		printed++
	}
	if printed == 0 {
		return fmt.Errorf("year %d not in input", year)
	}
	return nil
}

// tableStyles colors terminal output with the chart palette.
type tableStyles struct {
	Year     lipgloss.Style
	Header   lipgloss.Style
	Key      lipgloss.Style
	Amount   lipgloss.Style
	Class    lipgloss.Style
	Positive lipgloss.Color
	Negative lipgloss.Color
	Zero     lipgloss.Color
}

func newTableStyles(p config.PaletteConfig) tableStyles {
	return tableStyles{
		Year:     lipgloss.NewStyle().Bold(true).Underline(true),
		Header:   lipgloss.NewStyle().Faint(true),
		Key:      lipgloss.NewStyle().Width(keyWidth).MaxHeight(1),
		Amount:   lipgloss.NewStyle().Width(amountWidth).Align(lipgloss.Right),
		Class:    lipgloss.NewStyle().Width(classWidth).PaddingLeft(1),
		Positive: lipgloss.Color(p.Positive),
		Negative: lipgloss.Color(p.Negative),
		Zero:     lipgloss.Color(p.Zero),
	}
}

func (st tableStyles) color(c model.ColorClass) lipgloss.Color {
	switch c {
	case model.ClassPositive:
		return st.Positive
	case model.ClassNegative:
		return st.Negative
	default:
		return st.Zero
	}
}

func (st tableStyles) render(s model.YearSeries) string {
	lines := []string{
		st.Year.Render(fmt.Sprint(s.Year)),
		st.Header.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			st.Key.Render("key"),
			st.Amount.Render("value"),
			st.Amount.Render("start"),
			st.Amount.Render("end"),
			st.Class.Render("class"),
		)),
	}
	for _, r := range s.Rows {
		key := st.Key
		if r.IsSummary {
			key = key.Bold(true)
		}
		fg := st.color(r.Class)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			key.Render(r.Key),
			st.Amount.Foreground(fg).Render(r.Value.String()),
			st.Amount.Render(r.Start.String()),
			st.Amount.Render(r.End.String()),
			st.Class.Foreground(fg).Render(string(r.Class)),
		))
	}
	return strings.Join(lines, "\n")
}
