package ddc

import (
	"fmt"
	"strings"

	"github.com/dwaters/monctl/internal/errors"
)

// pkexec exit codes. 126 means the user dismissed the authentication
// dialog; 127 means authorization was refused or pkexec itself failed.
// Any other code is the wrapped command's own exit status.
const (
	pkexecCancelled = 126
	pkexecDenied    = 127
)

// PermissionDenied reports whether a completed run failed because the
// current user cannot open the I2C device nodes. ddcutil's exit codes vary
// across versions, so the stderr text is authoritative: a non-zero exit
// whose stderr mentions "permission" or "access" is treated as a
// permission failure, nothing else is.
func PermissionDenied(res Result) bool {
	if res.ExitCode == 0 {
		return false
	}
	s := strings.ToLower(res.Stderr)
	return strings.Contains(s, "permission") || strings.Contains(s, "access")
}

// ElevationFailure inspects the result of an elevated run and reports
// whether the elevation layer itself failed, and how. It returns
// KindElevationCancelled when the user dismissed the authentication dialog
// and KindElevationDenied when policy refused the escalation. For
// non-elevated runs and ordinary command failures it reports false.
func ElevationFailure(res Result) (errors.Kind, bool) {
	if !res.Elevated {
		return errors.KindUnknown, false
	}
	switch res.ExitCode {
	case pkexecCancelled:
		return errors.KindElevationCancelled, true
	case pkexecDenied:
		return errors.KindElevationDenied, true
	}
	return errors.KindUnknown, false
}

// PermissionError builds the structured error reported when a run fails on
// I2C permissions and no elevation path remains. The first stderr line is
// carried as the cause so the user sees what ddcutil reported.
func PermissionError(res Result) *errors.Error {
	err := errors.NewKind(errors.KindPermissionDenied,
		"Permission denied accessing I2C devices",
		"Retry with elevation, or add your user to the i2c group:\n    sudo usermod -aG i2c $USER")
	if line := firstStderrLine(res); line != "" {
		err.Cause = fmt.Errorf("%s", line)
	}
	return err
}

// firstStderrLine returns the first non-empty stderr line of a result.
func firstStderrLine(res Result) string {
	for _, line := range strings.Split(res.Stderr, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ElevationError builds the structured error for a failed elevation attempt.
func ElevationError(kind errors.Kind) *errors.Error {
	switch kind {
	case errors.KindElevationCancelled:
		return errors.NewKind(errors.KindElevationCancelled,
			"Authentication was cancelled",
			"The operation needs elevated privileges to access /dev/i2c-* devices.")
	default:
		return errors.NewKind(errors.KindElevationDenied,
			"Authorization to run ddcutil with elevated privileges was refused",
			"Check polkit policy, or add your user to the i2c group:\n    sudo usermod -aG i2c $USER")
	}
}

// DiscoveryError builds the structured error for a detect scan that failed
// for reasons other than permissions.
func DiscoveryError(res Result) *errors.Error {
	err := errors.NewKind(errors.KindDiscoveryFailed,
		"Monitor detection failed",
		"Check that your graphics driver exposes I2C devices (/dev/i2c-*).\nRun 'monctl doctor' to diagnose the setup.")
	if line := firstStderrLine(res); line != "" {
		err.Cause = fmt.Errorf("%s", line)
	}
	return err
}

// CommandError builds the structured error for a ddcutil invocation that
// exited non-zero for a non-permission reason. what names the operation
// for the message, e.g. "Reading brightness from DELL U2720Q".
func CommandError(res Result, what string) *errors.Error {
	err := errors.New(errors.ErrExec,
		fmt.Sprintf("%s failed", what),
		"The monitor may not support this operation over DDC/CI. Check that DDC/CI is enabled in the monitor's on-screen menu.")
	if line := firstStderrLine(res); line != "" {
		err.Cause = fmt.Errorf("%s", line)
	}
	return err
}
