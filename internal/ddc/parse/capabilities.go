package parse

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/vcp"
)

// Capabilities parses `ddcutil capabilities` output into the set of
// declared feature codes and, for discrete features, their allowed values.
// The report interleaves three line categories under the VCP section:
//
//	Feature: 60 (Input Source)       declares a feature
//	   Values: 01 02 (details)       inline value list
//	      11: HDMI-1                 one named value
//
// Output without any Feature lines yields an empty set, which callers treat
// as "capabilities unknown" rather than an error.
func Capabilities(text string) (ddc.CapabilitySet, error) {
	caps := ddc.CapabilitySet{Values: make(map[vcp.Code][]ddc.ValueOption)}
	seen := make(map[vcp.Code]bool)

	var current vcp.Code
	haveFeature := false

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "Feature:"); ok {
			code, ok := featureCode(rest)
			if !ok {
				// Malformed feature header: close the open feature so stray
				// value lines cannot attach to the previous one
				haveFeature = false
				continue
			}
			current = code
			haveFeature = true
			if !seen[code] {
				seen[code] = true
				caps.Codes = append(caps.Codes, code)
			}
			continue
		}

		if !haveFeature {
			continue
		}

		if idx := strings.Index(line, "Values:"); idx >= 0 {
			for _, value := range inlineValues(line[idx+len("Values:"):]) {
				caps.Values[current] = append(caps.Values[current], ddc.ValueOption{
					Value: value,
					Name:  vcp.ValueName(current, value),
				})
			}
			continue
		}

		if value, name, ok := namedValue(line); ok {
			caps.Values[current] = append(caps.Values[current], ddc.ValueOption{
				Value: value,
				Name:  name,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		return ddc.CapabilitySet{}, errors.WrapKind(err, errors.KindUnparseableOutput,
			"Failed to scan capabilities output", "")
	}
	return caps, nil
}

// featureCode extracts the hex code from the remainder of a "Feature:"
// line, e.g. " 60 (Input Source)".
func featureCode(rest string) (vcp.Code, bool) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.ParseUint(fields[0], 16, 8)
	if err != nil {
		return 0, false
	}
	return vcp.Code(n), true
}

// inlineValues extracts two-digit hex tokens from an inline value list,
// dropping any trailing parenthetical commentary.
func inlineValues(rest string) []uint16 {
	rest = strings.TrimSpace(rest)
	if strings.HasSuffix(rest, ")") {
		if idx := strings.LastIndex(rest, "("); idx >= 0 {
			rest = strings.TrimSpace(rest[:idx])
		}
	}

	var values []uint16
	for _, token := range strings.Fields(rest) {
		if len(token) != 2 {
			continue
		}
		n, err := strconv.ParseUint(token, 16, 8)
		if err != nil {
			continue
		}
		values = append(values, uint16(n))
	}
	return values
}

// namedValue parses a "NN: Name" value line. The key must be exactly two
// hex digits so ordinary report lines like "Model: U2415" never match.
func namedValue(line string) (uint16, string, bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	key := strings.TrimSpace(parts[0])
	if len(key) != 2 {
		return 0, "", false
	}
	n, err := strconv.ParseUint(key, 16, 8)
	if err != nil {
		return 0, "", false
	}
	name := strings.TrimSpace(parts[1])
	if name == "" {
		return 0, "", false
	}
	return uint16(n), name, true
}
