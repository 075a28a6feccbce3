package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwaters/monctl/internal/errors"
)

// CommonFlags holds the standard flags used across monitor-addressed commands.
type CommonFlags struct {
	Monitor string
	Timeout string
}

// AddCommonFlags registers --monitor and --timeout flags on a command.
func AddCommonFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().StringVarP(&flags.Monitor, "monitor", "m", "", "monitor ID (bus-N), bus number, or display number")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", "", "ddcutil timeout override (e.g., 5s, 30s)")
}

// ParseTimeout parses a timeout flag into a duration.
// Returns zero duration if the flag is empty.
func ParseTimeout(flag string) (time.Duration, error) {
	if flag == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' doesn't look like a valid timeout", flag),
			"Try something like 5s, 30s, or 500ms.")
	}
	if duration < 0 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("'%s' is a negative timeout", flag),
			"Timeouts must be positive.")
	}
	return duration, nil
}

// applyTimeout overrides an operation timeout when the flag carries a value.
func applyTimeout(flags CommonFlags, set func(time.Duration)) error {
	d, err := ParseTimeout(flags.Timeout)
	if err != nil {
		return err
	}
	if d > 0 {
		set(d)
	}
	return nil
}
