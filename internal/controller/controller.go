// Package controller composes the ddcutil runner, the output parsers, the
// monitor registry, and the elevation session into monctl's operations:
// detect monitors, read and write features, query capabilities.
//
// Every operation follows the same retry protocol: run unelevated first,
// and when the failure is permission-shaped and the session allows it,
// retry exactly once through the elevation wrapper. Non-permission failures
// are surfaced immediately; elevation cannot fix those.
package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/ddc/parse"
	"github.com/dwaters/monctl/internal/elevate"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/logger"
	"github.com/dwaters/monctl/internal/registry"
	"github.com/dwaters/monctl/internal/vcp"
)

// Controller drives monitor operations end to end. Operations on different
// monitors run concurrently; operations on the same monitor are serialized
// through the registry's per-monitor lock.
type Controller struct {
	runner  ddc.Runner
	reg     *registry.Registry
	session *elevate.Session
	log     logger.Logger

	opTimeout    time.Duration
	scanTimeout  time.Duration
	verifyWrites bool

	mu      sync.Mutex
	scanned bool
}

// Options configures a Controller. Zero-value fields get working defaults,
// so tests only fill in what they exercise.
type Options struct {
	Runner   ddc.Runner
	Registry *registry.Registry
	Session  *elevate.Session
	Logger   logger.Logger

	// OpTimeout bounds single-feature reads and writes.
	OpTimeout time.Duration
	// ScanTimeout bounds detection and capability probes, which walk the
	// I2C buses and take much longer.
	ScanTimeout time.Duration
	// VerifyWrites re-reads a feature after writing it and warns when the
	// monitor reports a different value than the one written.
	VerifyWrites bool
}

// New creates a Controller.
func New(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Runner == nil {
		opts.Runner = ddc.NewRunner(ddc.Options{Logger: opts.Logger})
	}
	if opts.Registry == nil {
		opts.Registry = registry.New(opts.Logger)
	}
	if opts.Session == nil {
		opts.Session = elevate.NewSession(elevate.Options{Logger: opts.Logger})
	}
	if opts.OpTimeout <= 0 {
		opts.OpTimeout = ddc.DefaultOpTimeout
	}
	if opts.ScanTimeout <= 0 {
		opts.ScanTimeout = ddc.DefaultScanTimeout
	}
	return &Controller{
		runner:       opts.Runner,
		reg:          opts.Registry,
		session:      opts.Session,
		log:          opts.Logger,
		opTimeout:    opts.OpTimeout,
		scanTimeout:  opts.ScanTimeout,
		verifyWrites: opts.VerifyWrites,
	}
}

// NoMonitorsError is the recognized empty-discovery state: the scan itself
// succeeded but found nothing the user can control.
func NoMonitorsError() *errors.Error {
	return errors.NewKind(errors.KindNoMonitors,
		"No monitors detected",
		"Check that DDC/CI is enabled in each monitor's on-screen menu and\nthat the video cable carries DDC (some adapters drop it).\nRun 'monctl doctor' to check I2C device permissions and driver setup.")
}

// Detect runs a full discovery scan and replaces the registry contents with
// the result. An empty scan is not an error; it returns an empty slice and
// clears the registry.
func (c *Controller) Detect(ctx context.Context) ([]registry.Monitor, error) {
	res, err := c.execute(ctx, ddc.DetectArgs(), c.scanTimeout)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		if ddc.PermissionDenied(res) {
			return nil, ddc.PermissionError(res)
		}
		return nil, ddc.DiscoveryError(res)
	}

	infos, err := parse.Detect(res.Stdout)
	if err != nil {
		return nil, err
	}
	monitors := c.reg.Apply(infos)

	c.mu.Lock()
	c.scanned = true
	c.mu.Unlock()

	c.log.Debug("detect found %d monitor(s)", len(monitors))
	return monitors, nil
}

// Monitors returns the currently known monitors without rescanning.
func (c *Controller) Monitors() []registry.Monitor {
	return c.reg.List()
}

// Resolve maps a monitor reference (stable ID like "bus-4", a bare bus
// number, or a display number) to a known monitor, running discovery first
// when no scan has happened yet this session. An empty reference picks the
// only monitor, failing when there are several.
func (c *Controller) Resolve(ctx context.Context, ref string) (registry.Monitor, error) {
	if ref == "" {
		return c.DefaultMonitor(ctx)
	}
	if err := c.ensureScanned(ctx); err != nil {
		return registry.Monitor{}, err
	}
	if c.reg.Count() == 0 {
		return registry.Monitor{}, NoMonitorsError()
	}
	return c.reg.Resolve(ref)
}

// DefaultMonitor returns the only detected monitor, for commands invoked
// without an explicit monitor reference.
func (c *Controller) DefaultMonitor(ctx context.Context) (registry.Monitor, error) {
	if err := c.ensureScanned(ctx); err != nil {
		return registry.Monitor{}, err
	}
	monitors := c.reg.List()
	switch len(monitors) {
	case 0:
		return registry.Monitor{}, NoMonitorsError()
	case 1:
		return monitors[0], nil
	}

	ids := make([]string, len(monitors))
	for i, m := range monitors {
		ids[i] = m.ID
	}
	return registry.Monitor{}, errors.NewKind(errors.KindNotFound,
		fmt.Sprintf("%d monitors found, pick one", len(monitors)),
		fmt.Sprintf("Pass a monitor ID: %s", strings.Join(ids, ", ")))
}

// ReadFeature reads one feature from a monitor and refreshes the cached
// value on success.
func (c *Controller) ReadFeature(ctx context.Context, ref string, code vcp.Code) (registry.Monitor, ddc.FeatureValue, error) {
	m, err := c.Resolve(ctx, ref)
	if err != nil {
		return registry.Monitor{}, ddc.FeatureValue{}, err
	}
	fv, err := c.readOne(ctx, m, code)
	return m, fv, err
}

// FeatureReading is one monitor's result from a fan-out read.
type FeatureReading struct {
	Monitor registry.Monitor
	Value   ddc.FeatureValue
	Err     error
}

// ReadFeatureAll reads one feature from every known monitor concurrently.
// Failures are per-monitor: one unreachable monitor does not hide the
// others' values. Readings come back in registry order.
func (c *Controller) ReadFeatureAll(ctx context.Context, code vcp.Code) ([]FeatureReading, error) {
	if err := c.ensureScanned(ctx); err != nil {
		return nil, err
	}
	monitors := c.reg.List()
	if len(monitors) == 0 {
		return nil, NoMonitorsError()
	}

	readings := make([]FeatureReading, len(monitors))
	var wg sync.WaitGroup
	for i, m := range monitors {
		wg.Add(1)
		go func(i int, m registry.Monitor) {
			defer wg.Done()
			fv, err := c.readOne(ctx, m, code)
			readings[i] = FeatureReading{Monitor: m, Value: fv, Err: err}
		}(i, m)
	}
	wg.Wait()
	return readings, nil
}

// readOne is the locked single-feature read shared by ReadFeature and the
// fan-out: serialize on the monitor, run getvcp, parse, refresh the cache.
func (c *Controller) readOne(ctx context.Context, m registry.Monitor, code vcp.Code) (ddc.FeatureValue, error) {
	unlock, err := c.reg.Lock(m.ID)
	if err != nil {
		return ddc.FeatureValue{}, err
	}
	defer unlock()

	res, err := c.execute(ctx, ddc.GetVCPArgs(m.DisplayNumber, code), c.opTimeout)
	if err != nil {
		return ddc.FeatureValue{}, err
	}
	if res.ExitCode != 0 {
		return ddc.FeatureValue{}, c.failure(res, fmt.Sprintf("Reading %s from %s", vcp.Name(code), m.Name))
	}

	fv, err := parse.FeatureValue(res.Stdout, code)
	if err != nil {
		return ddc.FeatureValue{}, err
	}
	c.cacheValue(m.ID, fv)
	return fv, nil
}

// ReadFeatures reads several features from a monitor in one ddcutil
// invocation. With no codes it reads every feature in the built-in table.
// Features the monitor does not support are simply absent from the result;
// the invocation fails only when nothing could be read.
func (c *Controller) ReadFeatures(ctx context.Context, ref string, codes ...vcp.Code) (registry.Monitor, map[vcp.Code]ddc.FeatureValue, error) {
	m, err := c.Resolve(ctx, ref)
	if err != nil {
		return registry.Monitor{}, nil, err
	}
	if len(codes) == 0 {
		for _, f := range vcp.All() {
			codes = append(codes, f.Code)
		}
	}
	unlock, err := c.reg.Lock(m.ID)
	if err != nil {
		return m, nil, err
	}
	defer unlock()

	res, err := c.execute(ctx, ddc.GetVCPArgs(m.DisplayNumber, codes...), c.opTimeout)
	if err != nil {
		return m, nil, err
	}

	values, err := parse.FeatureValues(res.Stdout)
	if err != nil {
		return m, nil, err
	}
	if len(values) == 0 && res.ExitCode != 0 {
		return m, nil, c.failure(res, fmt.Sprintf("Reading features from %s", m.Name))
	}
	if res.ExitCode != 0 {
		c.log.Debug("getvcp exited %d but %d value(s) parsed, treating as partial success", res.ExitCode, len(values))
	}

	for _, v := range values {
		c.cacheValue(m.ID, v)
	}
	return m, values, nil
}

// WriteFeature writes a feature value to a monitor. The value is validated
// against the monitor's known state first: a continuous value above the
// cached maximum or a discrete value outside the capability report's
// allowed set is rejected without spawning a process.
func (c *Controller) WriteFeature(ctx context.Context, ref string, code vcp.Code, value uint16) (registry.Monitor, error) {
	m, err := c.Resolve(ctx, ref)
	if err != nil {
		return registry.Monitor{}, err
	}
	unlock, err := c.reg.Lock(m.ID)
	if err != nil {
		return m, err
	}
	defer unlock()

	if err := c.validateWrite(m, code, value); err != nil {
		return m, err
	}

	res, err := c.execute(ctx, ddc.SetVCPArgs(m.DisplayNumber, code, value), c.opTimeout)
	if err != nil {
		return m, err
	}
	if res.ExitCode != 0 {
		return m, c.failure(res, fmt.Sprintf("Writing %s to %s", vcp.Name(code), m.Name))
	}

	if cur, ok := c.reg.Value(m.ID, code); ok {
		cur.Current = value
		c.cacheValue(m.ID, cur)
	}
	if c.verifyWrites {
		c.verify(ctx, m, code, value)
	}
	return m, nil
}

// Capabilities returns a monitor's declared feature set, probing the
// monitor only when nothing is cached or refresh is set. The probe is slow
// (the capability string is fetched in chunks over I2C), hence the caching.
func (c *Controller) Capabilities(ctx context.Context, ref string, refresh bool) (registry.Monitor, ddc.CapabilitySet, error) {
	m, err := c.Resolve(ctx, ref)
	if err != nil {
		return registry.Monitor{}, ddc.CapabilitySet{}, err
	}
	if !refresh {
		if caps, ok := c.reg.Capabilities(m.ID); ok {
			return m, caps, nil
		}
	}
	unlock, err := c.reg.Lock(m.ID)
	if err != nil {
		return m, ddc.CapabilitySet{}, err
	}
	defer unlock()

	res, err := c.execute(ctx, ddc.CapabilitiesArgs(m.DisplayNumber), c.scanTimeout)
	if err != nil {
		return m, ddc.CapabilitySet{}, err
	}
	if res.ExitCode != 0 {
		return m, ddc.CapabilitySet{}, c.failure(res, fmt.Sprintf("Querying capabilities of %s", m.Name))
	}

	caps, err := parse.Capabilities(res.Stdout)
	if err != nil {
		return m, ddc.CapabilitySet{}, err
	}
	if err := c.reg.SetCapabilities(m.ID, caps); err != nil {
		c.log.Debug("capability cache update for %s skipped: %v", m.ID, err)
	}
	return m, caps, nil
}

// validateWrite rejects writes the monitor's known state rules out. Called
// under the per-monitor lock, before any process is spawned. When
// capabilities are unknown the write proceeds unvalidated; that is only
// worth a warning for feature codes outside the built-in table.
func (c *Controller) validateWrite(m registry.Monitor, code vcp.Code, value uint16) error {
	caps, capsKnown := c.reg.Capabilities(m.ID)
	if capsKnown {
		if !caps.Supports(code) {
			return errors.NewKind(errors.KindUnsupportedFeature,
				fmt.Sprintf("%s does not support %s", m.Name, vcp.Name(code)),
				fmt.Sprintf("Run 'monctl caps %s' to list the features this monitor declares.", m.ID))
		}
		if !caps.Allows(code, value) {
			return errors.NewKind(errors.KindOutOfRange,
				fmt.Sprintf("%d is not an allowed value for %s on %s", value, vcp.Name(code), m.Name),
				fmt.Sprintf("Run 'monctl caps %s' to list the allowed values.", m.ID))
		}
	} else {
		if _, known := vcp.Lookup(code); !known {
			c.log.Warn("capabilities for %s are unknown, writing unrecognized feature %s blind", m.ID, code)
		} else {
			c.log.Debug("capabilities for %s are unknown, skipping validation for %s", m.ID, code)
		}
	}

	if vcp.IsContinuous(code) {
		if cur, ok := c.reg.Value(m.ID, code); ok && cur.Max > 0 && value > cur.Max {
			return errors.NewKind(errors.KindOutOfRange,
				fmt.Sprintf("%d is out of range for %s on %s", value, vcp.Name(code), m.Name),
				fmt.Sprintf("Pass a value between 0 and %d.", cur.Max))
		}
	}
	return nil
}

// verify reads a feature back after a write and warns when the monitor
// reports a different value. Runs under the caller's per-monitor lock so
// the read-back is part of the same serialized operation.
func (c *Controller) verify(ctx context.Context, m registry.Monitor, code vcp.Code, want uint16) {
	res, err := c.execute(ctx, ddc.GetVCPArgs(m.DisplayNumber, code), c.opTimeout)
	if err != nil || res.ExitCode != 0 {
		c.log.Debug("verify read of %s on %s failed, skipping", code, m.ID)
		return
	}
	got, err := parse.FeatureValue(res.Stdout, code)
	if err != nil {
		c.log.Debug("verify read of %s on %s unparseable, skipping", code, m.ID)
		return
	}
	c.cacheValue(m.ID, got)
	if got.Current != want {
		c.log.Warn("%s reports %s = %d after writing %d", m.Name, vcp.Name(code), got.Current, want)
	}
}

// cacheValue updates a monitor's cached feature value. A miss means a
// concurrent rescan removed the monitor; the operation itself already
// succeeded, so that is only worth a debug line.
func (c *Controller) cacheValue(id string, v ddc.FeatureValue) {
	if err := c.reg.SetValue(id, v); err != nil {
		c.log.Debug("value cache update for %s skipped: %v", id, err)
	}
}

// ensureScanned runs discovery once per session so commands work without an
// explicit detect first. A scan that found zero monitors still counts.
func (c *Controller) ensureScanned(ctx context.Context) error {
	c.mu.Lock()
	scanned := c.scanned
	c.mu.Unlock()
	if scanned {
		return nil
	}
	_, err := c.Detect(ctx)
	return err
}

// execute runs one ddcutil invocation under the session's elevation policy.
// When a prior grant marks unelevated calls as pointless it goes straight
// to elevated mode; otherwise it tries unelevated first and retries exactly
// once with elevation when the result is permission-shaped and the session
// allows it. The returned error covers machinery failures (spawn, timeout,
// elevation cancelled or refused); a non-zero ddcutil exit comes back in
// the Result with a nil error for the caller to classify.
func (c *Controller) execute(ctx context.Context, args []string, timeout time.Duration) (ddc.Result, error) {
	if c.session.PreferElevated() {
		return c.runElevated(ctx, args, timeout)
	}

	res, err := c.run(ctx, args, timeout, false)
	if err != nil {
		return res, err
	}
	if res.ExitCode == 0 || !c.session.ShouldRetryElevated(res) {
		return res, nil
	}

	c.log.Info("permission denied on %s, retrying with elevated privileges", args[0])
	return c.runElevated(ctx, args, timeout)
}

// runElevated runs one elevated invocation and records its outcome with the
// session. A cancelled or refused elevation becomes an error here; the
// wrapped command's own failures stay in the Result.
func (c *Controller) runElevated(ctx context.Context, args []string, timeout time.Duration) (ddc.Result, error) {
	res, err := c.run(ctx, args, timeout, true)
	if err != nil {
		return res, err
	}
	c.session.RecordOutcome(res)
	if kind, ok := ddc.ElevationFailure(res); ok {
		return res, ddc.ElevationError(kind)
	}
	return res, nil
}

// run executes one invocation with a bounded timeout.
func (c *Controller) run(ctx context.Context, args []string, timeout time.Duration, elevated bool) (ddc.Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.runner.Run(runCtx, args, elevated)
}

// failure maps a completed non-zero run to its structured error. A
// permission result reaching this point means the elevated retry was
// declined, skipped, or also hit the permission wall.
func (c *Controller) failure(res ddc.Result, what string) error {
	if ddc.PermissionDenied(res) {
		return ddc.PermissionError(res)
	}
	return ddc.CommandError(res, what)
}
