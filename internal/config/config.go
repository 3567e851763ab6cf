package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/normalize"
	"github.com/nandana05-tech/preprocessing-data-fmcg/internal/table"
)

const dirName = ".sheetfix"

// Global configuration structure.
type Global struct {
	InputDir          string `mapstructure:"input_dir" yaml:"input_dir,omitempty"`
	OutputDir         string `mapstructure:"output_dir" yaml:"output_dir,omitempty"`
	Workers           int    `mapstructure:"workers" yaml:"workers,omitempty"`
	CorrelationMarker string `mapstructure:"correlation_marker" yaml:"correlation_marker,omitempty"`
	ReportFile        string `mapstructure:"report_file" yaml:"report_file,omitempty"`
	SchemaFile        string `mapstructure:"schema_file" yaml:"schema_file,omitempty"`

	LogLevel  string `mapstructure:"log_level" yaml:"log_level,omitempty"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format,omitempty"`

	// Identifiers is a list, not a map keyed by file name: viper splits
	// keys on dots.
	Identifiers []Identifier `mapstructure:"identifiers" yaml:"identifiers,omitempty"`
}

// Identifier configures the key column for one file. Values are YAML
// scalars; they are used only when there is one per row.
type Identifier struct {
	File   string `mapstructure:"file" yaml:"file"`
	Column string `mapstructure:"column" yaml:"column"`
	Values []any  `mapstructure:"values" yaml:"values,flow"`
}

// DefaultIdentifiers is the identifier table for the FMCG analysis exports.
func DefaultIdentifiers() []Identifier {
	return []Identifier{
		{File: "abc_summary.csv", Column: "abc_class", Values: []any{"A", "B", "C"}},
		{File: "xyz_summary.csv", Column: "xyz_class", Values: []any{"X"}},
		{File: "promo_analysis.csv", Column: "promo_flag", Values: []any{0, 1}},
		{File: "correlation_matrix.csv", Column: "variable", Values: []any{
			"list_price", "discount_pct", "promo_flag", "units_sold", "net_sales", "gross_sales", "margin_pct",
		}},
	}
}

// IdentifierTable converts the configured identifiers into the read-only
// lookup used by the pipeline. Later entries for the same file win.
func (c *Global) IdentifierTable() normalize.IdentifierTable {
	specs := make(map[string]normalize.IdentifierSpec, len(c.Identifiers))
	for _, id := range c.Identifiers {
		if id.File == "" || id.Column == "" {
			continue
		}
		values := make([]table.Value, len(id.Values))
		for i, v := range id.Values {
			values[i] = table.FromAny(v)
		}
		specs[id.File] = normalize.IdentifierSpec{Column: id.Column, Values: values}
	}
	return normalize.NewIdentifierTable(specs)
}

// LoadIdentifiers reads a YAML list of identifiers from path.
func LoadIdentifiers(path string) ([]Identifier, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identifiers: %w", err)
	}
	var ids []Identifier
	if err := yaml.Unmarshal(b, &ids); err != nil {
		return nil, fmt.Errorf("parse identifiers: %w", err)
	}
	for i, id := range ids {
		if id.File == "" || id.Column == "" {
			return nil, fmt.Errorf("identifier %d: file and column are required", i+1)
		}
	}
	return ids, nil
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.sheetfix/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := defaultPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SHEETFIX")
	v.AutomaticEnv()

	v.SetDefault("input_dir", "output_looker")
	v.SetDefault("output_dir", "output_looker_sheets_ready")
	v.SetDefault("workers", 4)
	v.SetDefault("correlation_marker", normalize.DefaultCorrelationMarker)
	v.SetDefault("report_file", "_fix_report.txt")
	v.SetDefault("schema_file", "_schema_reference.md")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := defaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file leaves the defaults in place
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if !v.IsSet("identifiers") {
		c.Identifiers = DefaultIdentifiers()
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return &c, nil
}
