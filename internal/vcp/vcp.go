// Package vcp defines the VCP (Virtual Control Panel) feature codes that
// monctl exposes, along with display names, value classes, feature groups,
// and fallback value names for discrete features.
package vcp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Code is a single-byte VCP feature code from the MCCS specification.
type Code uint8

// Well-known feature codes.
const (
	Brightness  Code = 0x10
	Contrast    Code = 0x12
	Backlight   Code = 0x13
	ColorPreset Code = 0x14
	RedGain     Code = 0x16
	GreenGain   Code = 0x18
	BlueGain    Code = 0x1A
	InputSource Code = 0x60
	Volume      Code = 0x62
	Sharpness   Code = 0x87
	AudioMute   Code = 0x8D
	DisplayMode Code = 0xDC
)

// String returns the code in ddcutil argument form, e.g. "0x10".
func (c Code) String() string {
	return fmt.Sprintf("0x%02x", uint8(c))
}

// Class describes how a feature's value behaves.
type Class int

const (
	// ClassUnknown is reported for codes outside the known table.
	ClassUnknown Class = iota
	// ClassContinuous features take any value in [0, max].
	ClassContinuous
	// ClassDiscrete features take one of an enumerated set of values.
	ClassDiscrete
)

// String returns a short label for the class.
func (c Class) String() string {
	switch c {
	case ClassContinuous:
		return "continuous"
	case ClassDiscrete:
		return "discrete"
	default:
		return "unknown"
	}
}

// Feature describes one VCP feature code.
type Feature struct {
	Code  Code
	Name  string
	Class Class
	Group string
}

// features is the known feature table, in group display order.
var features = []Feature{
	{Code: Brightness, Name: "Brightness", Class: ClassContinuous, Group: "Display"},
	{Code: Contrast, Name: "Contrast", Class: ClassContinuous, Group: "Display"},
	{Code: Backlight, Name: "Backlight", Class: ClassContinuous, Group: "Display"},
	{Code: ColorPreset, Name: "Color Preset", Class: ClassDiscrete, Group: "Color"},
	{Code: RedGain, Name: "Red Gain", Class: ClassContinuous, Group: "Color"},
	{Code: GreenGain, Name: "Green Gain", Class: ClassContinuous, Group: "Color"},
	{Code: BlueGain, Name: "Blue Gain", Class: ClassContinuous, Group: "Color"},
	{Code: InputSource, Name: "Input Source", Class: ClassDiscrete, Group: "Input"},
	{Code: Volume, Name: "Volume", Class: ClassContinuous, Group: "Audio"},
	{Code: AudioMute, Name: "Audio Mute", Class: ClassDiscrete, Group: "Audio"},
	{Code: Sharpness, Name: "Sharpness", Class: ClassContinuous, Group: "Image"},
	{Code: DisplayMode, Name: "Display Mode", Class: ClassDiscrete, Group: "Image"},
}

// byCode indexes the feature table for lookup.
var byCode = func() map[Code]Feature {
	m := make(map[Code]Feature, len(features))
	for _, f := range features {
		m[f.Code] = f
	}
	return m
}()

// aliases maps CLI-friendly feature names to codes.
var aliases = map[string]Code{
	"brightness":   Brightness,
	"contrast":     Contrast,
	"backlight":    Backlight,
	"color-preset": ColorPreset,
	"preset":       ColorPreset,
	"red-gain":     RedGain,
	"green-gain":   GreenGain,
	"blue-gain":    BlueGain,
	"input":        InputSource,
	"input-source": InputSource,
	"volume":       Volume,
	"sharpness":    Sharpness,
	"mute":         AudioMute,
	"audio-mute":   AudioMute,
	"mode":         DisplayMode,
	"display-mode": DisplayMode,
}

// defaultValueNames provides names for discrete feature values when a
// monitor's capabilities string does not supply its own.
var defaultValueNames = map[Code]map[uint16]string{
	AudioMute: {
		0x01: "Mute",
		0x02: "Unmute",
	},
	InputSource: {
		0x01: "VGA-1",
		0x02: "VGA-2",
		0x03: "DVI-1",
		0x04: "DVI-2",
		0x0F: "DisplayPort-1",
		0x10: "DisplayPort-2",
		0x11: "HDMI-1",
		0x12: "HDMI-2",
		0x13: "HDMI-3",
		0x14: "HDMI-4",
	},
	ColorPreset: {
		0x01: "sRGB",
		0x02: "Native",
		0x03: "4000K",
		0x04: "5000K",
		0x05: "6500K",
		0x06: "7500K",
		0x07: "8200K",
		0x08: "9300K",
		0x09: "10000K",
		0x0A: "11500K",
		0x0B: "User 1",
		0x0C: "User 2",
		0x0D: "User 3",
	},
	DisplayMode: {
		0x00: "Standard",
		0x01: "Productivity",
		0x02: "Mixed",
		0x03: "Movie",
		0x04: "User",
		0x05: "Games",
		0x06: "Sports",
		0x07: "Professional",
		0x08: "Standard 2",
		0xF0: "Dynamic Contrast",
	},
}

// All returns the known feature table in display order.
func All() []Feature {
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// Lookup returns the feature entry for a code.
func Lookup(code Code) (Feature, bool) {
	f, ok := byCode[code]
	return f, ok
}

// Name returns the display name for a code, falling back to "Feature 0xNN"
// for codes outside the known table.
func Name(code Code) string {
	if f, ok := byCode[code]; ok {
		return f.Name
	}
	return fmt.Sprintf("Feature 0x%02X", uint8(code))
}

// IsContinuous reports whether a code is a known continuous feature.
func IsContinuous(code Code) bool {
	return byCode[code].Class == ClassContinuous
}

// IsDiscrete reports whether a code is a known discrete feature.
func IsDiscrete(code Code) bool {
	return byCode[code].Class == ClassDiscrete
}

// Groups returns the feature groups in display order with their member codes.
func Groups() []Group {
	order := []string{"Display", "Color", "Input", "Audio", "Image"}
	out := make([]Group, 0, len(order))
	for _, name := range order {
		g := Group{Name: name}
		for _, f := range features {
			if f.Group == name {
				g.Codes = append(g.Codes, f.Code)
			}
		}
		out = append(out, g)
	}
	return out
}

// Group is a named set of feature codes used to organize output.
type Group struct {
	Name  string
	Codes []Code
}

// ValueName returns the display name for a discrete feature value, falling
// back to "Value 0xNN" when neither the feature nor the value is known.
func ValueName(code Code, value uint16) string {
	if names, ok := defaultValueNames[code]; ok {
		if name, ok := names[value]; ok {
			return name
		}
	}
	return fmt.Sprintf("Value 0x%02x", value)
}

// ValueNames returns a copy of the default value-name table for a feature,
// or nil if the feature has none.
func ValueNames(code Code) map[uint16]string {
	names, ok := defaultValueNames[code]
	if !ok {
		return nil
	}
	out := make(map[uint16]string, len(names))
	for v, n := range names {
		out[v] = n
	}
	return out
}

// ParseCode resolves a user-supplied feature argument to a code. It accepts
// feature names ("brightness", "input-source"), with underscores and spaces
// normalized to hyphens, and hex codes with or without an 0x prefix ("0x10",
// "x10", "10").
func ParseCode(s string) (Code, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "_", "-")
	norm = strings.ReplaceAll(norm, " ", "-")

	if code, ok := aliases[norm]; ok {
		return code, nil
	}

	hexStr := norm
	hexStr = strings.TrimPrefix(hexStr, "0x")
	hexStr = strings.TrimPrefix(hexStr, "x")
	n, err := strconv.ParseUint(hexStr, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown feature %q", s)
	}
	return Code(n), nil
}

// AliasNames returns the known feature names, sorted, for help text and
// typo suggestions.
func AliasNames() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
