package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. CASCADE_COMPANY.
const EnvPrefix = "CASCADE"

// Config represents the top-level cascade.yaml configuration.
type Config struct {
	Company   string        `yaml:"company" validate:"required"`
	Title     string        `yaml:"title"`
	Units     string        `yaml:"units"`
	Input     string        `yaml:"input"`
	Sheet     string        `yaml:"sheet,omitempty"`
	Years     []int         `yaml:"years,omitempty" validate:"dive,gt=0"`
	Columns   ColumnsConfig `yaml:"columns"`
	Rules     []string      `yaml:"rules,omitempty" validate:"dive,required"`
	Highlight []string      `yaml:"highlight,omitempty" validate:"dive,required"`
	Palette   PaletteConfig `yaml:"palette"`
	Layout    LayoutConfig  `yaml:"layout"`
	Output    OutputConfig  `yaml:"output"`
	Logging   LoggingConfig `yaml:"logging"`
}

// ColumnsConfig names the label columns of the input table.
type ColumnsConfig struct {
	Activity string `yaml:"activity" validate:"required"`
	Key      string `yaml:"key" validate:"required"`
}

// PaletteConfig maps the three value classes to display colors.
type PaletteConfig struct {
	Positive string `yaml:"positive" validate:"required,hexcolor"`
	Negative string `yaml:"negative" validate:"required,hexcolor"`
	Zero     string `yaml:"zero" validate:"required,hexcolor"`
	Rule     string `yaml:"rule" validate:"required,hexcolor"`
}

// Margin is the space around a chart's plot area, in pixels.
type Margin struct {
	Top    float64 `yaml:"top" validate:"gte=0"`
	Right  float64 `yaml:"right" validate:"gte=0"`
	Bottom float64 `yaml:"bottom" validate:"gte=0"`
	Left   float64 `yaml:"left" validate:"gte=0"`
}

// LayoutConfig sizes the chart panels.
type LayoutConfig struct {
	Width       float64 `yaml:"width" validate:"gt=0"`
	Height      float64 `yaml:"height" validate:"gt=0"`
	LabelsWidth float64 `yaml:"labels_width" split_words:"true" validate:"gt=0"`
	Margin      Margin  `yaml:"margin"`
	Padding     float64 `yaml:"padding" validate:"gte=0,lt=1"`
	Ticks       int     `yaml:"ticks" validate:"gt=0"`
}

// OutputConfig controls where rendered files go.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Format     string `yaml:"format" validate:"oneof=html svg png"`
	NameFormat string `yaml:"name_format" split_words:"true" validate:"required"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Load reads a cascade.yaml file from disk over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from CASCADE_* environment variables, e.g.
// CASCADE_COMPANY or CASCADE_LAYOUT_MARGIN_TOP. Unset variables leave the
// field untouched. Unprefixed variables are never read.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default returns a Config matching the sample Apple Inc. dataset.
func Default() *Config {
	return &Config{
		Company: "Apple Inc.",
		Title:   "Statement of Cash Flows",
		Units:   "in millions of dollars",
		Input:   "data/APPL.csv",
		Columns: ColumnsConfig{
			Activity: "Activity",
			Key:      "Activity Detail",
		},
		Rules: []string{
			"Capital Expenditures",
			"Dividends Paid",
			"Change In Cash and Cash Equivalents",
		},
		Highlight: []string{
			"Total Cash Flow From Operating Activities",
			"Total Cash Flows From Investing Activities",
			"Total Cash Flows From Financing Activities",
			"Change In Cash and Cash Equivalents",
		},
		Palette: PaletteConfig{
			Positive: "#09C675",
			Negative: "#F14864",
			Zero:     "#000",
			Rule:     "#ccc",
		},
		Layout: LayoutConfig{
			Width:       300,
			Height:      600,
			LabelsWidth: 350,
			Margin:      Margin{Top: 60, Right: 60, Bottom: 20, Left: 20},
			Padding:     0.2,
			Ticks:       4,
		},
		Output: OutputConfig{
			Dir:        "out",
			Format:     "html",
			NameFormat: "{company}-cash-flows.{ext}",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
