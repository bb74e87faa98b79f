package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DefaultDelimiter string `mapstructure:"default_delimiter" yaml:"default_delimiter"`
	ExportDelimiter  string `mapstructure:"export_delimiter" yaml:"export_delimiter"`
	ExportDir        string `mapstructure:"export_dir" yaml:"export_dir"`
	PageSize         int    `mapstructure:"page_size" yaml:"page_size"`
	// SampleLimit caps how many rows are fetched for aggregation and
	// statistics. A caller-side cap: the core processes whatever it is
	// handed.
	SampleLimit int `mapstructure:"sample_limit" yaml:"sample_limit"`
	MaxForecast int `mapstructure:"max_forecast_steps" yaml:"max_forecast_steps"`
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLEKIT")
	v.AutomaticEnv()

	v.SetDefault("default_delimiter", ",")
	v.SetDefault("export_delimiter", ",")
	v.SetDefault("export_dir", "exports")
	v.SetDefault("page_size", 50)
	v.SetDefault("sample_limit", 1000)
	v.SetDefault("max_forecast_steps", 24)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tablekit")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.tablekit/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tablekit")
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

// Delimiter converts a configured one-character delimiter string to a rune,
// accepting the word "tab" for '\t'. Empty means comma.
func Delimiter(s string) (rune, error) {
	switch s {
	case "", ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q (use ','|';'|'tab')", s)
	}
}
