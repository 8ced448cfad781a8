// Package config loads nrc configuration from an optional YAML file and
// NRC_* environment variables.
//
// Precedence, highest first:
//  1. Environment variables (NRC_LEDGER_PATH, NRC_SUITE_PARALLEL, ...)
//  2. YAML config file (--config)
//  3. Defaults
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NRC_"

const maxConfigFileSize = 1024 * 1024

// DefaultRepoID is the model repository the publisher targets when none is
// configured.
const DefaultRepoID = "Nexus-Resonance-Codex/nrc-Protein-Folding"

// Config is the full configuration tree.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Ledger  LedgerConfig  `koanf:"ledger"`
	Suite   SuiteConfig   `koanf:"suite"`
	Publish PublishConfig `koanf:"publish"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // console or json
}

// LedgerConfig locates the run ledger. An empty path disables it.
type LedgerConfig struct {
	Path string `koanf:"path"`
}

// SuiteConfig controls scenario execution.
type SuiteConfig struct {
	Parallel int `koanf:"parallel"`
}

// PublishConfig configures the model-card publisher.
type PublishConfig struct {
	BaseURL string `koanf:"base_url"`
	RepoID  string `koanf:"repo_id"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "console"},
		Suite:   SuiteConfig{Parallel: 1},
		Publish: PublishConfig{BaseURL: "https://huggingface.co", RepoID: DefaultRepoID},
	}
}

// Load reads path (if non-empty) and then environment overrides.
func Load(path string) (*Config, error) {
	var content []byte
	if path != "" {
		b, err := readFile(path)
		if err != nil {
			return nil, err
		}
		content = b
	}
	return load(content)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if len(content) > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	return content, nil
}

// load builds a Config from YAML content followed by the process
// environment.
func load(content []byte) (*Config, error) {
	k := koanf.New(".")

	if len(content) > 0 {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// NRC_LEDGER_PATH -> ledger.path, NRC_PUBLISH_BASE_URL -> publish.base_url
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// envKey maps NRC_SECTION_FIELD_NAME to section.field_name.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.Suite.Parallel < 1 {
		errs = append(errs, fmt.Errorf("suite.parallel: must be >= 1, got %d", c.Suite.Parallel))
	}
	if c.Publish.BaseURL == "" {
		errs = append(errs, errors.New("publish.base_url: required"))
	}
	return errors.Join(errs...)
}
