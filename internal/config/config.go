package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stalefind/stalefind/internal/platform"
	"github.com/stalefind/stalefind/internal/scan"
	"github.com/stalefind/stalefind/pkg/utils"
)

// Config represents the persisted application settings
type Config struct {
	Roots           []string   `yaml:"roots"`
	MinAgeDays      int        `yaml:"min_age_days"`
	MinSize         string     `yaml:"min_size"` // e.g., "10MB"
	ExcludePaths    []string   `yaml:"exclude_paths"`
	IgnoreDevPreset bool       `yaml:"ignore_dev_preset"`
	HiddenGroups    []string   `yaml:"hidden_groups,omitempty"`
	Output          OutputConfig `yaml:"output"`
}

// OutputConfig controls presentation defaults
type OutputConfig struct {
	Format  string `yaml:"format"` // "table", "json", "yaml"
	Color   bool   `yaml:"color"`
	Verbose bool   `yaml:"verbose"`
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.MinAgeDays < 0 {
		return fmt.Errorf("min_age_days must be >= 0")
	}

	if c.MinSize != "" {
		if _, err := utils.ParseSize(c.MinSize); err != nil {
			return fmt.Errorf("invalid min_size '%s': %w", c.MinSize, err)
		}
	}

	for _, path := range c.ExcludePaths {
		if !filepath.IsAbs(path) && !strings.HasPrefix(path, "~") {
			return fmt.Errorf("exclude path must be absolute: %s", path)
		}
	}

	switch c.Output.Format {
	case "", "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}

	return nil
}

// ToScanConfig expands the settings into a validated-shape scan
// configuration. Roots and exclude paths get ~ expansion; the size string
// becomes bytes.
func (c *Config) ToScanConfig() (scan.Config, error) {
	minSize := int64(0)
	if c.MinSize != "" {
		parsed, err := utils.ParseSize(c.MinSize)
		if err != nil {
			return scan.Config{}, fmt.Errorf("invalid min_size '%s': %w", c.MinSize, err)
		}
		minSize = parsed
	}

	roots := make([]string, 0, len(c.Roots))
	for _, root := range c.Roots {
		roots = append(roots, ExpandPath(root))
	}

	excludes := make([]string, 0, len(c.ExcludePaths))
	for _, path := range c.ExcludePaths {
		excludes = append(excludes, ExpandPath(path))
	}

	return scan.Config{
		Roots:           roots,
		MinAgeDays:      c.MinAgeDays,
		MinSizeBytes:    minSize,
		ExcludePaths:    excludes,
		IgnoreDevPreset: c.IgnoreDevPreset,
	}, nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	configDir, err := platform.GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(GetDefault(), configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
