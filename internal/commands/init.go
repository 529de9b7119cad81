package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/cascade/internal/config"
	"github.com/cleared-dev/cascade/internal/statement"
)

// ConfigFile is the config file name written by init.
const ConfigFile = "cascade.yaml"

func newInitCommand() *cobra.Command {
	var company string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a project with a config and the sample dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, company, force)
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "company name shown on the chart")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing "+ConfigFile+" and sample dataset")

	return cmd
}

func runInit(out io.Writer, dir, company string, force bool) error {
	cfg := config.Default()
	if company != "" {
		cfg.Company = company
	}

	cfgPath := filepath.Join(dir, ConfigFile)
	dataPath := filepath.Join(dir, cfg.Input)
	if !force {
		for _, path := range []string{cfgPath, dataPath} {
			if err := mustNotExist(path); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the sample statement.
	var buf bytes.Buffer
	if err := statement.WriteCSV(&buf, statement.SampleTable()); err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}
	if err := os.WriteFile(dataPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}

	if err := ignoreOutput(filepath.Join(dir, ".gitignore"), cfg.Output.Dir+"/"); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	fmt.Fprintf(out, "Initialized cascade project at %s\n", dir)
	return nil
}

func mustNotExist(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return nil
}

// ignoreOutput adds pattern to a .gitignore, keeping existing rules.
func ignoreOutput(path, pattern string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == pattern {
			return nil
		}
	}
	if len(data) > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	data = append(data, pattern+"\n"...)
	return os.WriteFile(path, data, 0o644)
}
