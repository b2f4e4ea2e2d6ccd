// SPDX-License-Identifier: MIT

// Package config loads percolate settings from YAML with environment
// overrides.
//
// Load order: Default(), then the file (if a path is given), then PERCOLATE_*
// environment variables, then validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendLocal  = "local"
	BackendBadger = "badger"
	BackendMinIO  = "minio"
	BackendMemory = "memory"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the complete runtime configuration.
type Config struct {
	// DataDir is the cache root for the local and badger backends.
	DataDir string `yaml:"data_dir"`

	// Backend is one of local, badger, minio, memory.
	Backend string `yaml:"backend" validate:"oneof=local badger minio memory"`

	// Compression is one of none, lz4, zstd.
	Compression string `yaml:"compression" validate:"oneof=none lz4 zstd"`

	MinIO MinIOConfig `yaml:"minio"`

	// Workers bounds concurrent realizations.
	Workers int `yaml:"workers" validate:"min=1,max=4096"`

	// Seed is the generator base seed; 0 selects the default.
	Seed int64 `yaml:"seed"`

	// EigenTol is the Hermitian tolerance of the eigensolver.
	EigenTol float64 `yaml:"eigen_tol" validate:"gte=0"`

	Log LogConfig `yaml:"log"`
}

// MinIOConfig addresses an S3-compatible bucket.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns a usable local configuration.
func Default() Config {
	return Config{
		DataDir:     "data",
		Backend:     BackendLocal,
		Compression: "zstd",
		MinIO: MinIOConfig{
			Bucket: "percolate",
			Prefix: "datasets/",
		},
		Workers:  4,
		EigenTol: 1e-10,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

var validate = validator.New()

// Validate checks field domains and backend-specific requirements.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Backend {
	case BackendLocal, BackendBadger:
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir is required for the %s backend", ErrInvalidConfig, c.Backend)
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("%w: minio.endpoint and minio.bucket are required", ErrInvalidConfig)
		}
	}

	return nil
}

// Load reads path (when non-empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PERCOLATE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PERCOLATE_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("PERCOLATE_COMPRESSION"); v != "" {
		cfg.Compression = v
	}
	if v := os.Getenv("PERCOLATE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PERCOLATE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PERCOLATE_WORKERS=%q", ErrInvalidConfig, v)
		}
		cfg.Workers = n
	}
	if v := os.Getenv("PERCOLATE_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: PERCOLATE_SEED=%q", ErrInvalidConfig, v)
		}
		cfg.Seed = n
	}
	if v := os.Getenv("PERCOLATE_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("PERCOLATE_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("PERCOLATE_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}

	return nil
}
