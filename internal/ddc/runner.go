// Package ddc executes the external ddcutil binary and owns its invocation
// dialect: argument construction, timeout classes, and failure
// classification. Parsing of ddcutil output lives in the parse subpackage.
package ddc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/logger"
)

// Defaults for the external commands monctl shells out to.
const (
	DefaultBinary  = "ddcutil"
	DefaultElevate = "pkexec"
)

// Result captures the outcome of one ddcutil invocation.
// ExitCode is -1 when the process never ran to completion.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elevated bool
	Duration time.Duration
}

// Runner executes ddcutil commands. The real implementation shells out;
// tests substitute a fake via the ddctest package.
type Runner interface {
	// Run executes ddcutil with the given arguments. When elevated is true
	// the invocation is routed through the configured elevation command
	// (pkexec by default) so it runs with root privileges.
	// A non-zero exit code with nil error means the command ran but failed;
	// callers classify the Result to decide what to do next.
	Run(ctx context.Context, args []string, elevated bool) (Result, error)
}

// Options configures a Runner.
type Options struct {
	// Binary is the ddcutil command name or path. Defaults to "ddcutil".
	Binary string
	// Elevate is the privilege escalation command. Defaults to "pkexec".
	Elevate string
	// Logger receives debug output for each invocation.
	Logger logger.Logger
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct {
	binary  string
	elevate string
	log     logger.Logger
}

// NewRunner creates a Runner that executes the real ddcutil binary.
func NewRunner(opts Options) Runner {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary
	}
	if opts.Elevate == "" {
		opts.Elevate = DefaultElevate
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	return &execRunner{
		binary:  opts.Binary,
		elevate: opts.Elevate,
		log:     opts.Logger,
	}
}

// Run executes ddcutil, capturing stdout and stderr separately.
func (r *execRunner) Run(ctx context.Context, args []string, elevated bool) (Result, error) {
	binPath, err := exec.LookPath(r.binary)
	if err != nil {
		return Result{ExitCode: -1}, errors.NewKind(errors.KindBinaryNotFound,
			fmt.Sprintf("%s not found in PATH", r.binary),
			"Install ddcutil:\n    Fedora: sudo dnf install ddcutil\n    Ubuntu: sudo apt install ddcutil\n    Arch:   sudo pacman -S ddcutil")
	}

	name := binPath
	argv := args
	if elevated {
		elevatePath, err := exec.LookPath(r.elevate)
		if err != nil {
			return Result{ExitCode: -1, Elevated: true}, errors.NewKind(errors.KindElevationDenied,
				fmt.Sprintf("%s not found in PATH", r.elevate),
				"Install polkit, or add your user to the i2c group:\n    sudo usermod -aG i2c $USER")
		}
		name = elevatePath
		argv = append([]string{binPath}, args...)
	}

	r.log.Debug("running %s %s (elevated=%v)", name, strings.Join(argv, " "), elevated)

	cmd := exec.CommandContext(ctx, name, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Elevated: elevated,
		Duration: time.Since(start),
	}

	if runErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			res.ExitCode = -1
			return res, errors.WrapKind(runErr, errors.KindTimeout,
				fmt.Sprintf("ddcutil %s timed out after %s", firstArg(args), res.Duration.Round(time.Millisecond)),
				"The monitor or I2C bus may be unresponsive. Run 'monctl doctor' to check the setup.")
		}
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			r.log.Debug("ddcutil exited %d in %s", res.ExitCode, res.Duration.Round(time.Millisecond))
			return res, nil
		}
		res.ExitCode = -1
		return res, errors.Wrap(runErr, fmt.Sprintf("Couldn't start %s", r.binary))
	}

	r.log.Debug("ddcutil exited 0 in %s", res.Duration.Round(time.Millisecond))
	return res, nil
}

// firstArg names the ddcutil subcommand for error messages.
func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
