package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Inputs
	DataDir         string `mapstructure:"data_dir" yaml:"data_dir" validate:"required"`
	PerformanceFile string `mapstructure:"performance_file" yaml:"performance_file" validate:"required"`
	DropoutFile     string `mapstructure:"dropout_file" yaml:"dropout_file" validate:"required"`
	Sheet           string `mapstructure:"sheet" yaml:"sheet"`

	// Outputs
	ReportDir  string `mapstructure:"report_dir" yaml:"report_dir" validate:"required"`
	ReportFile string `mapstructure:"report_file" yaml:"report_file" validate:"required"`
	ImageDir   string `mapstructure:"image_dir" yaml:"image_dir" validate:"required"`
	ImageFile  string `mapstructure:"image_file" yaml:"image_file" validate:"required"`
	ImageDPI   int    `mapstructure:"image_dpi" yaml:"image_dpi" validate:"min=72,max=1200"`

	// Console display
	HeadRows   int    `mapstructure:"head_rows" yaml:"head_rows" validate:"min=0"`
	MaxColumns int    `mapstructure:"max_columns" yaml:"max_columns" validate:"min=0"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Defaults mirror the fixed layout the tool runs against when no config file exists.
var defaults = map[string]any{
	"data_dir":         "data",
	"performance_file": "rendiment_estudiants.xlsx",
	"dropout_file":     "taxa_abandonament.xlsx",
	"sheet":            "",
	"report_dir":       "report",
	"report_file":      "evolucion_ramas.json",
	"image_dir":        "img",
	"image_file":       "evolucion_ramas.png",
	"image_dpi":        300,
	"head_rows":        5,
	"max_columns":      0,
	"log_level":        "info",
}

// PerformancePath is the location of the performance dataset.
func (c *Global) PerformancePath() string { return filepath.Join(c.DataDir, c.PerformanceFile) }

// DropoutPath is the location of the dropout dataset.
func (c *Global) DropoutPath() string { return filepath.Join(c.DataDir, c.DropoutFile) }

// Validate checks required fields and ranges.
func (c *Global) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DefaultPath is ~/.edutrend/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".edutrend", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.edutrend/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) (string, error) {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Default returns the built-in configuration without reading any file.
func Default() *Global {
	var c Global
	_ = newViper().Unmarshal(&c)
	return &c
}

// Load loads configuration from file and defaults, then validates it.
// An explicit cfgFile must be readable; the default location is optional.
func Load(cfgFile string) (*Global, error) {
	v := newViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".edutrend"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
