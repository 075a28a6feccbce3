package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .monctl.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	DDCUtil   DDCUtilConfig   `yaml:"ddcutil" mapstructure:"ddcutil"`
	Elevation ElevationConfig `yaml:"elevation" mapstructure:"elevation"`
	Write     WriteConfig     `yaml:"write" mapstructure:"write"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
}

// DDCUtilConfig controls how the external ddcutil binary is invoked.
type DDCUtilConfig struct {
	// Binary is the ddcutil command name or path.
	// Supports ~ and ${HOME}/${USER} expansion.
	Binary string `yaml:"binary" mapstructure:"binary"`

	// Timeout bounds single-feature reads and writes.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// DetectTimeout bounds discovery and capability probes, which walk
	// every I2C bus and take much longer than a single read.
	DetectTimeout time.Duration `yaml:"detect_timeout" mapstructure:"detect_timeout"`
}

// ElevationConfig controls the privilege escalation retry.
type ElevationConfig struct {
	// Command is the privilege escalation wrapper.
	Command string `yaml:"command" mapstructure:"command"`

	// Enabled toggles the elevated retry on permission failures. When off,
	// permission failures surface immediately with the i2c group hint.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// PreferCached skips the doomed unelevated attempt once elevation has
	// been granted this session. Turn off if group permissions can be
	// restored mid-session on your setup.
	PreferCached bool `yaml:"prefer_cached" mapstructure:"prefer_cached"`
}

// WriteConfig controls feature write behavior.
type WriteConfig struct {
	// Verify re-reads a feature after writing it and warns when the
	// monitor reports a different value than the one written.
	Verify bool `yaml:"verify" mapstructure:"verify"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`

	// Verbosity level: "quiet", "normal", or "verbose".
	Verbosity string `yaml:"verbosity" mapstructure:"verbosity"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		DDCUtil: DDCUtilConfig{
			Binary:        "ddcutil",
			Timeout:       10 * time.Second,
			DetectTimeout: 30 * time.Second,
		},
		Elevation: ElevationConfig{
			Command:      "pkexec",
			Enabled:      true,
			PreferCached: true,
		},
		Write: WriteConfig{
			Verify: false,
		},
		Output: OutputConfig{
			Color:     "auto",
			Verbosity: "normal",
		},
	}
}
