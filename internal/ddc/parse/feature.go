package parse

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/vcp"
)

// FeatureValues parses `ddcutil getvcp --terse` output, which reports one
// feature per line:
//
//	VCP 10 C 70 100      continuous: current 70, max 100
//	VCP 60 SNC x11       discrete: value 0x11
//
// Lines not starting with "VCP" and lines with unrecognized type tokens are
// ignored. A "VCP" line whose numeric fields do not parse fails the whole
// call rather than producing a value with invented numbers.
func FeatureValues(text string) (map[vcp.Code]ddc.FeatureValue, error) {
	values := make(map[vcp.Code]ddc.FeatureValue)

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] != "VCP" {
			continue
		}
		if len(fields) < 4 {
			return nil, unparseableLine(line)
		}

		codeNum, err := strconv.ParseUint(fields[1], 16, 8)
		if err != nil {
			return nil, unparseableLine(line)
		}
		code := vcp.Code(codeNum)

		switch fields[2] {
		case "C":
			current, err := strconv.ParseUint(fields[3], 10, 16)
			if err != nil {
				return nil, unparseableLine(line)
			}
			max := uint64(100)
			if len(fields) > 4 {
				max, err = strconv.ParseUint(fields[4], 10, 16)
				if err != nil {
					return nil, unparseableLine(line)
				}
			}
			values[code] = ddc.FeatureValue{
				Code:    code,
				Current: uint16(current),
				Max:     uint16(max),
				Class:   vcp.ClassContinuous,
			}

		case "SNC", "NC":
			current, err := discreteValue(fields[3])
			if err != nil {
				return nil, unparseableLine(line)
			}
			values[code] = ddc.FeatureValue{
				Code:    code,
				Current: current,
				Max:     0xFF,
				Class:   vcp.ClassDiscrete,
			}

		default:
			// Unknown type token (CNC, T, ...): skip, stay forward-compatible
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.WrapKind(err, errors.KindUnparseableOutput,
			"Failed to scan feature output", "")
	}
	return values, nil
}

// FeatureValue parses the output of a single-feature read. The requested
// code must appear in the output; its absence means ddcutil reported
// something this version does not understand.
func FeatureValue(text string, code vcp.Code) (ddc.FeatureValue, error) {
	values, err := FeatureValues(text)
	if err != nil {
		return ddc.FeatureValue{}, err
	}
	v, ok := values[code]
	if !ok {
		err := errors.NewKind(errors.KindUnparseableOutput,
			fmt.Sprintf("No value for feature %s in ddcutil output", code),
			"The monitor may not support this feature, or the ddcutil output format has changed.")
		err.Cause = fmt.Errorf("output: %q", snippet(text))
		return ddc.FeatureValue{}, err
	}
	return v, nil
}

// discreteValue parses a non-continuous value token, which ddcutil prints
// either as hex with an x prefix ("x11") or as a bare decimal.
func discreteValue(token string) (uint16, error) {
	if rest, ok := strings.CutPrefix(token, "x"); ok {
		n, err := strconv.ParseUint(rest, 16, 16)
		return uint16(n), err
	}
	if rest, ok := strings.CutPrefix(token, "0x"); ok {
		n, err := strconv.ParseUint(rest, 16, 16)
		return uint16(n), err
	}
	n, err := strconv.ParseUint(token, 10, 16)
	return uint16(n), err
}

// unparseableLine builds the typed error for a malformed VCP line,
// preserving the offending text for diagnostics.
func unparseableLine(line string) *errors.Error {
	err := errors.NewKind(errors.KindUnparseableOutput,
		"Unrecognized feature line in ddcutil output",
		"Re-run with MONCTL_DEBUG=1 to capture the raw output, and check the installed ddcutil version.")
	err.Cause = fmt.Errorf("line: %q", line)
	return err
}

// snippet truncates raw output for inclusion in error causes.
func snippet(text string) string {
	s := strings.TrimSpace(text)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
