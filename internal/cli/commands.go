package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dwaters/monctl/internal/errors"
)

// Command-specific flags
var (
	detectTimeoutFlag string
	getFlags          CommonFlags
	getAllFlag        bool
	getGroupFlag      string
	setFlags          CommonFlags
	setVerifyFlag     bool
	capsFlags         CommonFlags
	capsRefreshFlag   bool
	initForce         bool
	initYes           bool
)

// detectCmd scans the I2C buses for DDC/CI capable monitors
var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan for connected monitors",
	Long: `Scan the I2C buses for DDC/CI capable monitors.

Each monitor gets a stable ID derived from its I2C bus (bus-4, bus-7). The
ID survives rescans even when display numbering shifts, so use it in scripts
rather than the display number.

Examples:
  monctl detect
  monctl detect --json
  monctl detect --timeout 60s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return detectCommand(detectTimeoutFlag)
	},
}

// getCmd reads feature values from a monitor
var getCmd = &cobra.Command{
	Use:   "get [feature]",
	Short: "Read a monitor feature value",
	Long: `Read the current value of a monitor feature.

Features are addressed by name (brightness, contrast, input, volume) or by
VCP code (0x10). With a single monitor connected no selector is needed;
otherwise pass --monitor.

Examples:
  monctl get brightness
  monctl get input --monitor bus-7
  monctl get brightness --all
  monctl get --group color
  monctl get 0x10 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feature := ""
		if len(args) > 0 {
			feature = args[0]
		}
		return getCommand(feature, getFlags, getAllFlag, getGroupFlag)
	},
}

// setCmd writes a feature value to a monitor
var setCmd = &cobra.Command{
	Use:   "set <feature> <value>",
	Short: "Write a monitor feature value",
	Long: `Write a new value to a monitor feature.

Values are decimal (70), hex (0x0f), or a named discrete value (hdmi-1,
srgb, mute). Writes are validated against the monitor's reported range and
capabilities before ddcutil is invoked.

Examples:
  monctl set brightness 70
  monctl set input hdmi-1
  monctl set contrast 50 --monitor bus-7
  monctl set volume 30 --verify`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCommand(args[0], args[1], setFlags, cmd.Flags().Changed("verify"), setVerifyFlag)
	},
}

// capsCmd shows a monitor's declared capabilities
var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Show a monitor's capabilities",
	Long: `Show the VCP features a monitor declares support for, with the allowed
values of discrete features.

The capability report is cached after the first probe; use --refresh to
query the monitor again.

Examples:
  monctl caps
  monctl caps --monitor bus-7
  monctl caps --refresh --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return capsCommand(capsFlags, capsRefreshFlag)
	},
}

// initCmd creates a new .monctl.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .monctl.yaml configuration",
	Long: `Initialize a new monctl configuration file.

Creates a .monctl.yaml file in the current directory with sensible defaults,
then checks that the configured ddcutil binary works.

Examples:
  monctl init
  monctl init --yes
  monctl init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce, initYes)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for monctl.

Examples:
  # Bash
  monctl completion bash > /etc/bash_completion.d/monctl

  # Zsh
  monctl completion zsh > "${fpath[1]}/_monctl"

  # Fish
  monctl completion fish > ~/.config/fish/completions/monctl.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// detect command flags
	detectCmd.Flags().StringVar(&detectTimeoutFlag, "timeout", "", "scan timeout override (e.g., 60s)")

	// get command flags
	AddCommonFlags(getCmd, &getFlags)
	getCmd.Flags().BoolVar(&getAllFlag, "all", false, "read the feature from every detected monitor")
	getCmd.Flags().StringVar(&getGroupFlag, "group", "", "read a whole feature group (display, color, input, audio, image)")

	// set command flags
	AddCommonFlags(setCmd, &setFlags)
	setCmd.Flags().BoolVar(&setVerifyFlag, "verify", false, "read the value back after writing")

	// caps command flags
	AddCommonFlags(capsCmd, &capsFlags)
	capsCmd.Flags().BoolVar(&capsRefreshFlag, "refresh", false, "query the monitor instead of using the cached report")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "accept defaults without prompting")

	// Register all commands
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(capsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
