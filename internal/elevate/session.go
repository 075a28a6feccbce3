// Package elevate implements the privilege escalation policy: deciding when
// a failed ddcutil run warrants a retry through the elevation wrapper, and
// remembering the outcome for the rest of the session.
//
// Session state is an explicitly passed object, not package globals, so
// tests can exercise several independent sessions and callers own the
// lifetime.
package elevate

import (
	"sync"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/logger"
)

// Session tracks privilege elevation state for one process run. The zero
// state means elevation has not been attempted. A Session is safe for
// concurrent use by operations on different monitors.
type Session struct {
	mu       sync.Mutex
	granted  bool
	declined bool
	prefer   bool
	disabled bool
	log      logger.Logger
}

// Options configures a Session.
type Options struct {
	// PreferCached enables the elevated-first optimization: once elevation
	// has been granted, later operations skip the doomed unelevated attempt.
	// Off means every operation tries unelevated first, which stays correct
	// if group permissions are fixed mid-session.
	PreferCached bool
	// Disabled turns elevation off entirely. Permission failures surface
	// immediately instead of triggering a retry.
	Disabled bool
	// Logger receives state transition debug output.
	Logger logger.Logger
}

// NewSession creates a session in the "not yet attempted" state.
func NewSession(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	return &Session{
		prefer:   opts.PreferCached,
		disabled: opts.Disabled,
		log:      opts.Logger,
	}
}

// ShouldRetryElevated reports whether a failed run warrants one elevated
// retry: elevation must be enabled, the failure must be
// permission-classified, and the user must not have declined elevation
// earlier in this session.
func (s *Session) ShouldRetryElevated(res ddc.Result) bool {
	if !ddc.PermissionDenied(res) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return false
	}
	if s.declined {
		s.log.Debug("elevation declined earlier this session, not retrying")
		return false
	}
	return true
}

// RecordOutcome updates session state from an elevated attempt's result.
// Success records that elevation is available; a dismissed authentication
// dialog or a policy refusal records a decline so later operations stop
// prompting. Results from unelevated runs are ignored.
func (s *Session) RecordOutcome(res ddc.Result) {
	if !res.Elevated {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if res.ExitCode == 0 {
		if !s.granted {
			s.log.Debug("elevation granted for this session")
		}
		s.granted = true
		return
	}

	if kind, ok := ddc.ElevationFailure(res); ok {
		s.declined = true
		if kind == errors.KindElevationCancelled {
			s.log.Debug("authentication dialog dismissed, recording decline")
		} else {
			s.log.Debug("elevation refused by policy, recording decline")
		}
	}
}

// PreferElevated reports whether operations should go straight to elevated
// mode: elevation was granted this session, the cached-preference
// optimization is enabled, and no decline has been recorded since. A
// decline after a grant means the authentication agent stopped caching the
// authorization, so skipping the unelevated attempt would just re-prompt.
func (s *Session) PreferElevated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granted && s.prefer && !s.declined
}

// Granted reports whether an elevated run has succeeded this session.
func (s *Session) Granted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granted
}

// Declined reports whether the user has declined elevation this session.
func (s *Session) Declined() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.declined
}

// Reset returns the session to the "not yet attempted" state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.granted = false
	s.declined = false
}
