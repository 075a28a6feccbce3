package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/dwaters/monctl/internal/config"
	"github.com/dwaters/monctl/internal/doctor"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Overwrite      bool // Overwrite existing config without asking
	NonInteractive bool // Skip prompts, use defaults
}

// Init creates a new .monctl.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !opts.NonInteractive {
		binary := cfg.DDCUtil.Binary
		elevation := cfg.Elevation.Enabled
		preferCached := cfg.Elevation.PreferCached
		verify := cfg.Write.Verify

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("ddcutil binary").
					Description("Command name or full path to ddcutil").
					Placeholder("ddcutil").
					Value(&binary).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("binary is required")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Retry through pkexec on permission errors?").
					Description("Shows a desktop authentication prompt instead of failing").
					Value(&elevation),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Skip the unelevated attempt once elevation is granted?").
					Description("Saves a doomed ddcutil run when your user lacks i2c access").
					Value(&preferCached),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Verify writes by reading the value back?").
					Description("Catches monitors that silently ignore a write").
					Value(&verify),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --yes for defaults")
		}

		cfg.DDCUtil.Binary = strings.TrimSpace(binary)
		cfg.Elevation.Enabled = elevation
		cfg.Elevation.PreferCached = preferCached
		cfg.Write.Verify = verify
	}

	// Probe the binary before saving
	fmt.Println()
	spinner := ui.NewSpinner("Checking " + cfg.DDCUtil.Binary)
	spinner.Start()

	probeErr := probeBinary(cfg)
	if probeErr != nil {
		spinner.Fail()

		if opts.NonInteractive {
			return errors.WrapWithCode(probeErr, errors.ErrExec,
				fmt.Sprintf("'%s' doesn't work here", cfg.DDCUtil.Binary),
				"Install ddcutil (e.g. apt install ddcutil) and re-run 'monctl init'")
		}

		// Probe failed, but still offer to save config
		var saveAnyway bool
		fmt.Printf("\n%s %s check failed: %v\n\n", ui.SymbolFail, cfg.DDCUtil.Binary, probeErr)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Save config anyway? (You can install ddcutil later)").
					Value(&saveAnyway),
			),
		)
		if formErr := form.Run(); formErr != nil || !saveAnyway {
			return errors.WrapWithCode(probeErr, errors.ErrExec,
				fmt.Sprintf("'%s' doesn't work here", cfg.DDCUtil.Binary),
				"Install ddcutil (e.g. apt install ddcutil) and re-run 'monctl init'")
		}
	} else {
		spinner.Success()
		fmt.Println()
	}

	data, err := renderConfig(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# monctl configuration
# Run 'monctl detect' to list monitors, 'monctl doctor' to diagnose problems

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  monctl detect          - List connected monitors")
	fmt.Println("  monctl get brightness  - Read a feature")
	fmt.Println("  monctl doctor          - Diagnose setup problems")

	return nil
}

// probeBinary reuses the doctor's binary check so init and doctor agree on
// what a working ddcutil looks like.
func probeBinary(cfg *config.Config) error {
	check := &doctor.DDCUtilCheck{Binary: cfg.DDCUtil.Binary}
	res := check.Run()
	if res.Status == doctor.StatusFail {
		return fmt.Errorf("%s", res.Message)
	}
	return nil
}

// configYAML mirrors Config for file generation. Durations become strings
// so the file says "10s" instead of a nanosecond integer; the loader parses
// either form.
type configYAML struct {
	Version   int           `yaml:"version"`
	DDCUtil   ddcutilYAML   `yaml:"ddcutil"`
	Elevation elevationYAML `yaml:"elevation"`
	Write     writeYAML     `yaml:"write"`
	Output    outputYAML    `yaml:"output"`
}

type ddcutilYAML struct {
	Binary        string `yaml:"binary"`
	Timeout       string `yaml:"timeout"`
	DetectTimeout string `yaml:"detect_timeout"`
}

type elevationYAML struct {
	Command      string `yaml:"command"`
	Enabled      bool   `yaml:"enabled"`
	PreferCached bool   `yaml:"prefer_cached"`
}

type writeYAML struct {
	Verify bool `yaml:"verify"`
}

type outputYAML struct {
	Color     string `yaml:"color"`
	Verbosity string `yaml:"verbosity"`
}

// renderConfig marshals a config for writing to disk.
func renderConfig(cfg *config.Config) ([]byte, error) {
	return yaml.Marshal(configYAML{
		Version: cfg.Version,
		DDCUtil: ddcutilYAML{
			Binary:        cfg.DDCUtil.Binary,
			Timeout:       cfg.DDCUtil.Timeout.String(),
			DetectTimeout: cfg.DDCUtil.DetectTimeout.String(),
		},
		Elevation: elevationYAML{
			Command:      cfg.Elevation.Command,
			Enabled:      cfg.Elevation.Enabled,
			PreferCached: cfg.Elevation.PreferCached,
		},
		Write: writeYAML{
			Verify: cfg.Write.Verify,
		},
		Output: outputYAML{
			Color:     cfg.Output.Color,
			Verbosity: cfg.Output.Verbosity,
		},
	})
}

// initCommand is the implementation called by the cobra command.
func initCommand(force, yes bool) error {
	return Init(InitOptions{
		Overwrite:      force,
		NonInteractive: yes,
	})
}
