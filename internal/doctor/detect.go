package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/ddc/parse"
	"github.com/dwaters/monctl/internal/util"
)

// DetectCheck runs a live ddcutil detect scan. It never elevates: an
// unelevated permission failure is exactly the condition doctor exists to
// diagnose.
type DetectCheck struct {
	Runner  ddc.Runner
	Timeout time.Duration
}

func (c *DetectCheck) Name() string     { return "detect_probe" }
func (c *DetectCheck) Category() string { return "MONITORS" }

func (c *DetectCheck) Run() CheckResult {
	if c.Runner == nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Detection probe: no runner configured",
		}
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = ddc.DefaultScanTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	res, err := c.Runner.Run(ctx, ddc.DetectArgs(), false)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Detection probe failed to run: %v", err),
		}
	}

	if res.ExitCode != 0 {
		if ddc.PermissionDenied(res) {
			return CheckResult{
				Name:       c.Name(),
				Status:     StatusFail,
				Message:    "Cannot open I2C devices without elevation",
				Suggestion: "Join the i2c group for prompt-free access, or let monctl elevate through pkexec.",
			}
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("ddcutil detect failed: %s", firstLine(res.Stderr)),
			Suggestion: "Check that your graphics driver exposes I2C devices.",
		}
	}

	monitors, err := parse.Detect(res.Stdout)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("Could not parse detect output: %v", err),
		}
	}

	if len(monitors) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "ddcutil ran but found no monitors",
			Suggestion: "Enable DDC/CI in each monitor's on-screen menu and check the video cable carries DDC.",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d %s detected", len(monitors), util.Pluralize(len(monitors), "monitor", "monitors")),
	}
}

// firstLine returns the trimmed first non-empty line of command output.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return "(no output)"
}
