package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	MaxRows     int    `mapstructure:"max_rows" yaml:"max_rows"`
	PieTopN     int    `mapstructure:"pie_top_n" yaml:"pie_top_n"`
	PreviewRows int    `mapstructure:"preview_rows" yaml:"preview_rows"`
	ImageFormat string `mapstructure:"image_format" yaml:"image_format"`
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	BatchJobs   int    `mapstructure:"batch_jobs" yaml:"batch_jobs"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{
	"max_rows", "pie_top_n", "preview_rows", "image_format",
	"chart_width", "chart_height", "output_dir", "batch_jobs",
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		MaxRows:     1000,
		PieTopN:     10,
		PreviewRows: 12,
		ImageFormat: "png",
		ChartWidth:  800,
		ChartHeight: 480,
		OutputDir:   "charts",
		BatchJobs:   4,
	}
}

// Dir returns ~/.chartloom.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".chartloom"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.chartloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
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
// Precedence: env > config file > defaults. A .env file in the working
// directory is read first and never overrides variables already set.
func Load(cfgFile string) (*Global, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("CHARTLOOM")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("max_rows", d.MaxRows)
	v.SetDefault("pie_top_n", d.PieTopN)
	v.SetDefault("preview_rows", d.PreviewRows)
	v.SetDefault("image_format", d.ImageFormat)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("batch_jobs", d.BatchJobs)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.ImageFormat = strings.ToLower(strings.TrimSpace(c.ImageFormat))
	return &c, nil
}
