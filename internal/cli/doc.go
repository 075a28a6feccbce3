// Package cli implements the monctl command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a command function for the actual work. The general
// structure follows a clean separation between:
//
//   - Command definitions (cobra.Command instances)
//   - Command functions (detectCommand, getCommand, setCommand, ...)
//   - Implementation details (in other internal packages)
//
// # Command Structure
//
// The root command is "monctl" with subcommands for different operations:
//
//	monctl detect           - Scan for DDC/CI capable monitors
//	monctl get <feature>    - Read a feature value
//	monctl set <feature> <value> - Write a feature value
//	monctl caps             - Show a monitor's declared capabilities
//	monctl doctor           - Diagnose I2C and permission issues
//	monctl init             - Create .monctl.yaml config
//
// Each command function builds a controller from the loaded config via
// newController, runs the operation, and renders the result. The
// controller hides monitor resolution, ddcutil invocation, and the
// elevated permission retry; command functions only shape output.
//
// # Flag Handling
//
// Global flags (--config, --verbose, --quiet, --no-color, --json) are
// defined on the root command and available to all subcommands.
// Command-specific flags like --all and --refresh are defined on
// individual commands.
//
// The CommonFlags type and AddCommonFlags function provide a standard way
// to add monitor selection flags (--monitor, --timeout) to commands.
//
// # Output Modes
//
// Human output uses spinners, tables, and color from the ui package,
// degrading automatically when stdout is not a terminal. The --json flag
// switches every command to a stable envelope (success, data, error)
// rendered by the helpers in json.go; errors then go to stdout as part
// of the envelope instead of stderr.
package cli
