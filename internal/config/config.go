package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/aliskhannn/image-padder/internal/model"
	"github.com/aliskhannn/image-padder/internal/processor"
)

var (
	// ErrMissingArgument is returned when a required option is empty.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidBoolean is returned for a value ParseBool does not recognize.
	ErrInvalidBoolean = errors.New("invalid boolean value")

	// ErrUnknownBackend is returned for an unsupported storage backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Storage backends.
const (
	BackendFile  = "file"
	BackendMinIO = "minio"
)

// Config holds every option of a batch run.
type Config struct {
	Input     string  `mapstructure:"input"`      // Directory to read images from
	Output    string  `mapstructure:"output"`     // Directory (or object prefix) to write to
	Square    string  `mapstructure:"square"`     // Bool-like flag, see ParseBool
	Resize    string  `mapstructure:"resize"`     // "<width>x<height>", empty disables resizing
	Prefix    string  `mapstructure:"prefix"`     // Output file name prefix
	Filter    string  `mapstructure:"filter"`     // Resampling filter name
	Quality   int     `mapstructure:"quality"`    // JPEG quality, 1-100
	KeepGoing bool    `mapstructure:"keep_going"` // Skip failed files instead of aborting
	Storage   Storage `mapstructure:"storage"`
}

// Storage holds configuration for the output storage backend.
type Storage struct {
	Backend    string `mapstructure:"backend"` // "file" or "minio"
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"` // Optional, looked up when empty
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Square:  "no",
		Prefix:  "n",
		Filter:  processor.DefaultFilter,
		Quality: 95,
		Storage: Storage{Backend: BackendFile},
	}
}

// Load reads a YAML config file on top of Default.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("square", def.Square)
	v.SetDefault("prefix", def.Prefix)
	v.SetDefault("filter", def.Filter)
	v.SetDefault("quality", def.Quality)
	v.SetDefault("storage.backend", def.Storage.Backend)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks the options that do not depend on the pipeline stages.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("%w: input directory (-i/--input)", ErrMissingArgument)
	}

	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("%w: output directory (-o/--output)", ErrMissingArgument)
	}

	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality)
	}

	switch c.Storage.Backend {
	case BackendFile:
	case BackendMinIO:
		if c.Storage.Endpoint == "" || c.Storage.BucketName == "" {
			return fmt.Errorf("%w: storage endpoint and bucket_name for the minio backend", ErrMissingArgument)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	return nil
}

// Processing parses the pipeline options into a ProcessingConfig.
func (c *Config) Processing() (model.ProcessingConfig, error) {
	square, err := ParseBool(c.Square)
	if err != nil {
		return model.ProcessingConfig{}, fmt.Errorf("square: %w", err)
	}

	pc := model.ProcessingConfig{Square: square, Filter: c.Filter}

	if c.Resize != "" {
		size, err := processor.ParseSize(c.Resize)
		if err != nil {
			return model.ProcessingConfig{}, fmt.Errorf("resize: %w", err)
		}
		pc.Resize = &size
	}

	if _, err := processor.ParseFilter(c.Filter); err != nil {
		return model.ProcessingConfig{}, fmt.Errorf("filter: %w", err)
	}

	return pc, nil
}

// ParseBool accepts yes/true/t/y/1 and no/false/f/n/0, ignoring case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "t", "y", "1":
		return true, nil
	case "no", "false", "f", "n", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBoolean, s)
	}
}
