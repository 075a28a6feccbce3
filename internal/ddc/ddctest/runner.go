// Package ddctest provides a fake ddc.Runner for testing code that talks to
// ddcutil without executing any real process.
package ddctest

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
)

// Response defines a canned result for a command pattern.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// Call records one invocation of the fake runner.
type Call struct {
	Args     []string
	Elevated bool
}

// Runner is a fake ddc.Runner driven by canned responses. Patterns are
// matched against the space-joined argument list, first by exact string,
// then as regular expressions in registration order.
type Runner struct {
	mu       sync.Mutex
	normal   map[string]Response
	elevated map[string]Response
	order    []string
	calls    []Call
}

// NewRunner creates an empty fake runner. Unconfigured commands fail the
// test loudly with an error.
func NewRunner() *Runner {
	return &Runner{
		normal:   make(map[string]Response),
		elevated: make(map[string]Response),
	}
}

// Handle registers a response for non-elevated runs matching pattern.
func (r *Runner) Handle(pattern string, resp Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.normal[pattern]; !seen {
		if _, seenElev := r.elevated[pattern]; !seenElev {
			r.order = append(r.order, pattern)
		}
	}
	r.normal[pattern] = resp
}

// HandleElevated registers a response for elevated runs matching pattern.
func (r *Runner) HandleElevated(pattern string, resp Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.elevated[pattern]; !seen {
		if _, seenNorm := r.normal[pattern]; !seenNorm {
			r.order = append(r.order, pattern)
		}
	}
	r.elevated[pattern] = resp
}

// Run implements ddc.Runner against the registered responses.
func (r *Runner) Run(ctx context.Context, args []string, elevated bool) (ddc.Result, error) {
	select {
	case <-ctx.Done():
		return ddc.Result{ExitCode: -1, Elevated: elevated}, errors.WrapKind(ctx.Err(),
			errors.KindTimeout, "ddcutil timed out", "")
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, Call{Args: append([]string(nil), args...), Elevated: elevated})

	cmd := strings.Join(args, " ")
	responses := r.normal
	if elevated {
		responses = r.elevated
	}

	if resp, ok := responses[cmd]; ok {
		return r.result(resp, elevated)
	}
	for _, pattern := range r.order {
		resp, ok := responses[pattern]
		if !ok {
			continue
		}
		if matched, _ := regexp.MatchString(pattern, cmd); matched {
			return r.result(resp, elevated)
		}
	}

	return ddc.Result{ExitCode: -1, Elevated: elevated},
		fmt.Errorf("ddctest: no response configured for %q (elevated=%v)", cmd, elevated)
}

func (r *Runner) result(resp Response, elevated bool) (ddc.Result, error) {
	if resp.Err != nil {
		return ddc.Result{ExitCode: -1, Elevated: elevated}, resp.Err
	}
	return ddc.Result{
		Stdout:   resp.Stdout,
		Stderr:   resp.Stderr,
		ExitCode: resp.ExitCode,
		Elevated: elevated,
	}, nil
}

// Calls returns a copy of every recorded invocation.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallCount returns how many recorded invocations match pattern.
func (r *Runner) CallCount(pattern string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		cmd := strings.Join(c.Args, " ")
		if cmd == pattern {
			n++
			continue
		}
		if matched, _ := regexp.MatchString(pattern, cmd); matched {
			n++
		}
	}
	return n
}

// Reset clears recorded calls but keeps registered responses.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
