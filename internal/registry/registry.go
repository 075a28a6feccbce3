// Package registry maintains the set of currently known monitors and their
// last-known feature state. Identity is stable across rescans: the same bus
// ID means the same physical monitor even when display numbering or block
// order changes between scans.
package registry

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/logger"
	"github.com/dwaters/monctl/internal/vcp"
)

// Monitor is one known display with its discovery facts. Feature values and
// capabilities are kept inside the registry and read through accessors so
// returned Monitor values are safe to hold across rescans.
type Monitor struct {
	ID            string
	DisplayNumber int
	I2CBus        int // -1 when detect reported no bus line
	Name          string
	Manufacturer  string
	Model         string
	Serial        string
	EDID          string
	LastSeen      time.Time
}

// BusPath returns the I2C device path for the monitor, or "" when the bus
// is unknown.
func (m Monitor) BusPath() string {
	if m.I2CBus < 0 {
		return ""
	}
	return fmt.Sprintf("/dev/i2c-%d", m.I2CBus)
}

// entry is the registry's owned record for one monitor. opMu serializes
// operations against the monitor and deliberately survives rescans, so an
// in-flight operation keeps its lock while the entry is updated in place.
type entry struct {
	monitor Monitor
	values  map[vcp.Code]ddc.FeatureValue
	caps    *ddc.CapabilitySet
	opMu    sync.Mutex
}

// Registry is safe for concurrent use. The structural lock is held only for
// map access, never across an external command.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
	log     logger.Logger
}

// New creates an empty registry.
func New(log logger.Logger) *Registry {
	if log == nil {
		log = logger.Noop()
	}
	return &Registry{
		entries: make(map[string]*entry),
		log:     log,
	}
}

// Apply replaces the known set with the result of a fresh discovery scan.
// Monitors whose stable ID reappears are updated in place, keeping their
// cached values, capabilities, and operation lock. Monitors absent from the
// scan are dropped. Returns the new set in scan order.
func (r *Registry) Apply(infos []ddc.MonitorInfo) []Monitor {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]*entry, len(infos))
	order := make([]string, 0, len(infos))

	for _, info := range infos {
		id := info.ID()
		if _, dup := next[id]; dup {
			r.log.Warn("duplicate monitor ID %s in scan, keeping first", id)
			continue
		}

		e, known := r.entries[id]
		if !known {
			e = &entry{values: make(map[vcp.Code]ddc.FeatureValue)}
			r.log.Debug("monitor %s added (%s)", id, info.Name())
		}
		e.monitor = Monitor{
			ID:            id,
			DisplayNumber: info.DisplayNumber,
			I2CBus:        info.I2CBus,
			Name:          info.Name(),
			Manufacturer:  info.Manufacturer,
			Model:         info.Model,
			Serial:        info.Serial,
			EDID:          info.EDID,
			LastSeen:      now,
		}
		next[id] = e
		order = append(order, id)
	}

	for id := range r.entries {
		if _, kept := next[id]; !kept {
			r.log.Debug("monitor %s removed (absent from scan)", id)
		}
	}

	r.entries = next
	r.order = order

	monitors := make([]Monitor, 0, len(order))
	for _, id := range order {
		monitors = append(monitors, next[id].monitor)
	}
	return monitors
}

// List returns the known monitors in last-scan order.
func (r *Registry) List() []Monitor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	monitors := make([]Monitor, 0, len(r.order))
	for _, id := range r.order {
		monitors = append(monitors, r.entries[id].monitor)
	}
	return monitors
}

// Count returns the number of known monitors.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Get returns the monitor with the given stable ID.
func (r *Registry) Get(id string) (Monitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return Monitor{}, notFound(id)
	}
	return e.monitor, nil
}

// Resolve maps a user-supplied monitor reference to a known monitor. It
// accepts a stable ID ("bus-4"), a bare bus number ("4"), or a display
// number as reported by detect.
func (r *Registry) Resolve(ref string) (Monitor, error) {
	if m, err := r.Get(ref); err == nil {
		return m, nil
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if m, err := r.Get(fmt.Sprintf("bus-%d", n)); err == nil {
			return m, nil
		}

		r.mu.RLock()
		defer r.mu.RUnlock()
		for _, id := range r.order {
			if r.entries[id].monitor.DisplayNumber == n {
				return r.entries[id].monitor, nil
			}
		}
	}

	return Monitor{}, notFound(ref)
}

// Lock acquires the per-monitor operation lock, serializing feature reads
// and writes against the same monitor. The returned unlock function must be
// called when the operation completes; the structural lock is not held in
// between, so holding a monitor lock across an external command is safe.
func (r *Registry) Lock(id string) (unlock func(), err error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok {
		return nil, notFound(id)
	}
	e.opMu.Lock()
	return e.opMu.Unlock, nil
}

// SetValue stores the last-known value for a feature on a monitor.
func (r *Registry) SetValue(id string, v ddc.FeatureValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return notFound(id)
	}
	e.values[v.Code] = v
	return nil
}

// Value returns the last-known value for a feature on a monitor. Absence
// means the feature has never been read in this session, not zero.
func (r *Registry) Value(id string, code vcp.Code) (ddc.FeatureValue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return ddc.FeatureValue{}, false
	}
	v, ok := e.values[code]
	return v, ok
}

// Values returns a copy of every cached feature value for a monitor.
func (r *Registry) Values(id string) map[vcp.Code]ddc.FeatureValue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	out := make(map[vcp.Code]ddc.FeatureValue, len(e.values))
	for code, v := range e.values {
		out[code] = v
	}
	return out
}

// SetCapabilities stores a monitor's parsed capability set. An empty set is
// stored as unknown so feature controls stay available but unvalidated.
func (r *Registry) SetCapabilities(id string, caps ddc.CapabilitySet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return notFound(id)
	}
	if caps.Empty() {
		e.caps = nil
		return nil
	}
	e.caps = &caps
	return nil
}

// Capabilities returns a monitor's capability set, if known.
func (r *Registry) Capabilities(id string) (ddc.CapabilitySet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok || e.caps == nil {
		return ddc.CapabilitySet{}, false
	}
	return *e.caps, true
}

func notFound(ref string) *errors.Error {
	return errors.NewKind(errors.KindNotFound,
		fmt.Sprintf("No monitor matching %q", ref),
		"Run 'monctl detect' to list connected monitors.")
}
