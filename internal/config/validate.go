package config

import (
	"fmt"

	"github.com/dwaters/monctl/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but monctl only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest monctl: https://github.com/dwaters/monctl/releases")
	}

	if err := validateDDCUtil(cfg.DDCUtil); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'ddcutil' section in your .monctl.yaml.")
	}

	if err := validateElevation(cfg.Elevation); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'elevation' section in your .monctl.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .monctl.yaml.")
	}

	return nil
}

// validateDDCUtil checks the ddcutil invocation settings.
func validateDDCUtil(d DDCUtilConfig) error {
	if d.Binary == "" {
		return fmt.Errorf("ddcutil.binary can't be empty - monctl needs a command to run")
	}
	if d.Timeout < 0 {
		return fmt.Errorf("ddcutil.timeout can't be negative - that doesn't make sense")
	}
	if d.DetectTimeout < 0 {
		return fmt.Errorf("ddcutil.detect_timeout can't be negative - that doesn't make sense")
	}
	if d.Timeout > 0 && d.DetectTimeout > 0 && d.Timeout > d.DetectTimeout {
		return fmt.Errorf("ddcutil.timeout (%v) is longer than ddcutil.detect_timeout (%v) - a single read shouldn't outlast a full bus scan", d.Timeout, d.DetectTimeout)
	}
	return nil
}

// validateElevation checks the privilege escalation settings.
func validateElevation(e ElevationConfig) error {
	if e.Enabled && e.Command == "" {
		return fmt.Errorf("elevation.command can't be empty while elevation is enabled - try 'pkexec', or set elevation.enabled to false")
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}

	validVerbosity := map[string]bool{"quiet": true, "normal": true, "verbose": true, "": true}
	if !validVerbosity[out.Verbosity] {
		return fmt.Errorf("output.verbosity '%s' isn't valid - use 'quiet', 'normal', or 'verbose'", out.Verbosity)
	}

	return nil
}
