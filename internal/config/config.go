// Package config loads and validates the gcpboot configuration.
//
// Configuration comes from a YAML file (default
// ~/.config/gcpboot/config.yaml), with GCPBOOT_* environment variables
// taking precedence over file values. A missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentverse/gcpboot/internal/util/naming"
)

const (
	// MaxPrefixLength caps the configured prefix so the generated suffix
	// keeps a usable length budget.
	MaxPrefixLength = 25

	// MinSuffixLength is the smallest suffix budget accepted. Shorter
	// suffixes collide too easily to be worth retrying with.
	MinSuffixLength = 4

	// DefaultPrefix is the naming scheme used when none is configured.
	DefaultPrefix = "agentverse-guardian"

	// DefaultProjectIDFile is where the final project ID is persisted.
	// Downstream scripts read this path, so it is part of the contract.
	DefaultProjectIDFile = "~/project_id.txt"

	// DefaultDependency is the Python package installed after creation,
	// for downstream scripts that talk to the Cloud Billing API.
	DefaultDependency = "google-cloud-billing"
)

// Config holds the application configuration.
type Config struct {
	// Prefix is the fixed naming-scheme string for generated project IDs.
	Prefix string `yaml:"prefix"`

	// ProjectIDFile is the path the final project ID is written to.
	ProjectIDFile string `yaml:"project_id_file"`

	// Dependency is the pip package installed after project creation.
	// Empty skips the install step.
	Dependency string `yaml:"dependency"`

	// EnablementCommand, when set, is an external program run with no
	// arguments after creation instead of the built-in billing flow.
	EnablementCommand string `yaml:"enablement_command"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Prefix:        DefaultPrefix,
		ProjectIDFile: DefaultProjectIDFile,
		Dependency:    DefaultDependency,
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return "~/.config/gcpboot/config.yaml"
}

// Load reads the configuration from path, applies environment overrides,
// and validates the result. An empty path means the default location; a
// missing file at the default location is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	resolved, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", resolved, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays GCPBOOT_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("GCPBOOT_PREFIX"); ok {
		cfg.Prefix = v
	}
	if v, ok := os.LookupEnv("GCPBOOT_PROJECT_ID_FILE"); ok {
		cfg.ProjectIDFile = v
	}
	if v, ok := os.LookupEnv("GCPBOOT_DEPENDENCY"); ok {
		cfg.Dependency = v
	}
	if v, ok := os.LookupEnv("GCPBOOT_ENABLEMENT_COMMAND"); ok {
		cfg.EnablementCommand = v
	}
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix is required")
	}
	if len(c.Prefix) > MaxPrefixLength {
		return fmt.Errorf("prefix %q is %d characters, must be at most %d",
			c.Prefix, len(c.Prefix), MaxPrefixLength)
	}
	if budget := naming.SuffixLength(c.Prefix); budget < MinSuffixLength {
		return fmt.Errorf("prefix %q leaves only %d suffix characters, need at least %d",
			c.Prefix, budget, MinSuffixLength)
	}
	if c.ProjectIDFile == "" {
		return fmt.Errorf("project_id_file is required")
	}
	return nil
}

// ProjectIDPath returns the project ID file path with ~ expanded.
func (c *Config) ProjectIDPath() (string, error) {
	return ExpandHome(c.ProjectIDFile)
}

// ExpandHome resolves a leading ~ to the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
