package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dwaters/monctl/internal/config"
	"github.com/dwaters/monctl/internal/controller"
	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/elevate"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/logger"
	"github.com/dwaters/monctl/internal/ui"
)

// Global flags available to all subcommands
var (
	configFlag  string
	verboseFlag bool
	quietFlag   bool
	noColorFlag bool
)

// rootCmd is the base command for monctl.
var rootCmd = &cobra.Command{
	Use:   "monctl",
	Short: "Control monitors over DDC/CI",
	Long: `monctl reads and writes monitor settings - brightness, contrast, input
source, volume - by driving ddcutil over the DDC/CI channel on the I2C bus.

When I2C device permissions deny access, monctl retries the operation
through pkexec so you get a desktop authentication prompt instead of a
cryptic error.

Examples:
  monctl detect                      List connected monitors
  monctl get brightness              Read brightness from the only monitor
  monctl set brightness 70           Set brightness
  monctl get input --monitor bus-7   Read one monitor's input source
  monctl doctor                      Diagnose I2C and permission problems`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			os.Setenv("MONCTL_DEBUG", "1")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path (default: search for .monctl.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
}

// Config returns the value of the global --config flag.
func Config() string {
	return configFlag
}

// Execute runs the root command, rendering structured errors and mapping
// them to process exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		if machineMode {
			_ = WriteJSONFromError(os.Stdout, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig loads the effective configuration for a command run and applies
// the resolved output mode.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(Config())
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.NewEnvLogger("[cli]").Debug("using config %s", path)
	}
	applyOutputMode(cfg)
	return cfg, nil
}

// applyOutputMode resolves the color mode. Flags win over the NO_COLOR
// environment variable, which wins over the config file.
func applyOutputMode(cfg *config.Config) {
	switch {
	case noColorFlag || machineMode || os.Getenv("NO_COLOR") != "":
		ui.DisableColors()
	case cfg.Output.Color == "never":
		ui.DisableColors()
	case cfg.Output.Color == "always":
		ui.ForceColors()
	default: // auto
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			ui.DisableColors()
		}
	}
}

// interactive reports whether decorated output (spinners, headers) should be
// shown. Machine mode, quiet mode, and piped stdout all turn it off.
func interactive(cfg *config.Config) bool {
	if machineMode || quietFlag || cfg.Output.Verbosity == "quiet" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// newController builds the controller stack from configuration.
func newController(cfg *config.Config) *controller.Controller {
	log := logger.NewEnvLogger("[monctl]")

	runner := ddc.NewRunner(ddc.Options{
		Binary:  cfg.DDCUtil.Binary,
		Elevate: cfg.Elevation.Command,
		Logger:  log,
	})

	session := elevate.NewSession(elevate.Options{
		PreferCached: cfg.Elevation.PreferCached,
		Disabled:     !cfg.Elevation.Enabled,
		Logger:       log,
	})

	return controller.New(controller.Options{
		Runner:       runner,
		Session:      session,
		Logger:       log,
		OpTimeout:    cfg.DDCUtil.Timeout,
		ScanTimeout:  cfg.DDCUtil.DetectTimeout,
		VerifyWrites: cfg.Write.Verify,
	})
}
