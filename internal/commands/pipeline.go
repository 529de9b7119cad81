package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/cleared-dev/cascade/internal/config"
	"github.com/cleared-dev/cascade/internal/logging"
	"github.com/cleared-dev/cascade/internal/statement"
	"github.com/cleared-dev/cascade/internal/waterfall"
)

// pipeline holds one run's configuration and computed charts.
type pipeline struct {
	cfg     *config.Config
	baseDir string // relative config paths resolve here
	log     *slog.Logger
	res     *waterfall.Result
}

// loadConfig reads the optional config file, applies CASCADE_* overrides
// and the --log-level flag, and validates the result.
func loadConfig(g *globalFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(g.configPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPipeline loads the statement and builds every year's waterfall.
// input overrides the configured input file when set.
func runPipeline(ctx context.Context, g *globalFlags, input string, stderr io.Writer) (*pipeline, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	p := &pipeline{
		cfg:     cfg,
		baseDir: filepath.Dir(g.configPath),
		log:     logging.New(cfg.Logging, stderr),
	}

	path := input
	if path == "" {
		path = p.resolve(cfg.Input)
	}

	table, err := statement.LoadFile(ctx, path, statement.Options{
		ActivityColumn: cfg.Columns.Activity,
		KeyColumn:      cfg.Columns.Key,
		Years:          cfg.Years,
		Sheet:          cfg.Sheet,
	})
	if err != nil {
		return nil, err
	}
	p.log.Info("loaded statement", "path", path, "rows", len(table.Rows), "years", table.Years)
	for _, c := range table.Coerced {
		p.log.Debug("non-numeric amount read as zero", "record", c.Record, "year", c.Year, "text", c.Text)
	}

	res, err := waterfall.Build(table.Rows, table.Years)
	if err != nil {
		return nil, fmt.Errorf("building waterfall: %w", err)
	}
	for _, s := range res.Years {
		if err := waterfall.CheckChain(s); err != nil {
			p.log.Warn("running total broken", "year", s.Year, "detail", err.Error())
		}
	}
	for _, a := range waterfall.CheckAlignment(res.Years) {
		p.log.Warn("labels differ from first year", "year", a.Year, "detail", a.Error())
	}
	p.log.Debug("computed domain", "min", res.Domain.Min.String(), "max", res.Domain.Max.String())

	p.res = res
	return p, nil
}

// resolve interprets a relative config path against the config file's
// directory.
func (p *pipeline) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.baseDir, path)
}
