package config

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Roots: []string{
			"~/Downloads",
			"~/Documents",
			"~/Desktop",
		},
		MinAgeDays: 365, // 1 year without use
		MinSize:    "10MB",
		ExcludePaths: []string{
			// User can add paths they never want surfaced
		},
		IgnoreDevPreset: true,
		Output: OutputConfig{
			Format: "table",
			Color:  true,
		},
	}
}

// GetExampleConfig returns an example configuration with comments
func GetExampleConfig() string {
	return `# stalefind configuration file
# Location: ~/.config/stalefind/config.yaml (Linux)
#           ~/Library/Application Support/stalefind/config.yaml (macOS)

# Directories to scan for stale files
roots:
  - "~/Downloads"
  - "~/Documents"
  - "~/Desktop"

# Only surface files unused for at least this many days
min_age_days: 365

# Size threshold for generic files. Images and PDFs are always surfaced
# regardless of size.
min_size: "10MB"

# Paths to exclude from every scan. Anything equal to or nested under
# these is skipped.
exclude_paths:
  - "~/Documents/Work"

# Skip developer artifacts (node_modules, .venv, target, vendor, ...)
ignore_dev_preset: true

# Type groups hidden from results by default: image, video, archive, other
hidden_groups: []

# Output defaults for the CLI
output:
  format: table   # table, json, yaml
  color: true
  verbose: false
`
}
