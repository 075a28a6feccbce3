package ddc

import (
	"fmt"
	"sort"

	"github.com/dwaters/monctl/internal/vcp"
)

// MonitorInfo is one display as reported by a detect scan. It carries raw
// facts only; registry state (identity across rescans, cached values) is
// layered on top by the registry package.
type MonitorInfo struct {
	DisplayNumber int
	I2CBus        int // -1 when the detect block carried no bus line
	Manufacturer  string
	Model         string
	Serial        string
	EDID          string
}

// ID derives the stable identifier for a monitor from its I2C bus. The bus
// number survives rescans even when display numbering shifts, so "bus-4"
// names the same physical display across scans. Blocks without a bus line
// fall back to the display number.
func (m MonitorInfo) ID() string {
	if m.I2CBus >= 0 {
		return fmt.Sprintf("bus-%d", m.I2CBus)
	}
	return fmt.Sprintf("display-%d", m.DisplayNumber)
}

// Name returns a human-readable label for the monitor.
func (m MonitorInfo) Name() string {
	if m.Model != "" {
		return m.Model
	}
	if m.Manufacturer != "" {
		return m.Manufacturer
	}
	return fmt.Sprintf("Display %d", m.DisplayNumber)
}

// FeatureValue is one feature reading from a monitor. Max is 100-relative
// for continuous features when the report omits it and 0xFF for discrete
// features, matching how ddcutil reports them.
type FeatureValue struct {
	Code    vcp.Code
	Current uint16
	Max     uint16
	Class   vcp.Class
}

// Percent returns the current value as a percentage of Max.
func (v FeatureValue) Percent() float64 {
	if v.Max == 0 {
		return 0
	}
	return float64(v.Current) / float64(v.Max) * 100
}

// ValueOption is one allowed value of a discrete feature, with the name the
// monitor's capability report gave it.
type ValueOption struct {
	Value uint16
	Name  string
}

// CapabilitySet lists the feature codes a monitor declares support for,
// with enumerated value options for discrete features. A nil or empty set
// means capabilities are unknown, not that nothing is supported.
type CapabilitySet struct {
	// Codes holds the declared features in report order.
	Codes []vcp.Code
	// Values maps discrete feature codes to their allowed values.
	Values map[vcp.Code][]ValueOption
}

// Empty reports whether the set declares no features.
func (c CapabilitySet) Empty() bool {
	return len(c.Codes) == 0
}

// Supports reports whether a feature code appears in the set.
func (c CapabilitySet) Supports(code vcp.Code) bool {
	for _, have := range c.Codes {
		if have == code {
			return true
		}
	}
	return false
}

// Options returns the allowed values for a discrete feature. When the
// capability report named no values, the vcp package's default names fill
// in for any well-known feature.
func (c CapabilitySet) Options(code vcp.Code) []ValueOption {
	if opts, ok := c.Values[code]; ok && len(opts) > 0 {
		return opts
	}
	names := vcp.ValueNames(code)
	if len(names) == 0 {
		return nil
	}
	opts := make([]ValueOption, 0, len(names))
	for value, name := range names {
		opts = append(opts, ValueOption{Value: value, Name: name})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].Value < opts[j].Value })
	return opts
}

// Allows reports whether value is an allowed choice for a discrete feature.
// Unknown features or features without enumerated values allow anything.
func (c CapabilitySet) Allows(code vcp.Code, value uint16) bool {
	opts, ok := c.Values[code]
	if !ok || len(opts) == 0 {
		return true
	}
	for _, opt := range opts {
		if opt.Value == value {
			return true
		}
	}
	return false
}
