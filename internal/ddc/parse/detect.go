// Package parse converts ddcutil's semi-structured text output into typed
// records. All functions are pure: they never execute anything, tolerate
// unrecognized lines, and degrade to typed errors instead of panicking on
// malformed input.
package parse

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
)

// Detect parses `ddcutil detect --terse` output. Each monitor block begins
// with a "Display N" header and ends at the next header or end of input.
// "Invalid display" and "Phantom display" blocks are recognized and
// discarded so their sub-lines cannot bleed into a neighboring monitor.
// Unrecognized lines are ignored; zero blocks is an empty result, not an
// error.
func Detect(text string) ([]ddc.MonitorInfo, error) {
	var monitors []ddc.MonitorInfo
	var cur *ddc.MonitorInfo

	flush := func() {
		if cur != nil {
			monitors = append(monitors, *cur)
			cur = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Display "):
			flush()
			num, ok := displayNumber(line)
			if !ok {
				// Header without a usable index opens a discarded block
				continue
			}
			cur = &ddc.MonitorInfo{DisplayNumber: num, I2CBus: -1}

		case strings.HasPrefix(line, "Invalid display"), strings.HasPrefix(line, "Phantom display"):
			// Discard block: sub-lines until the next header are dropped
			flush()

		case cur != nil && strings.Contains(line, ":"):
			applyDetectField(cur, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, errors.WrapKind(err, errors.KindUnparseableOutput,
			"Failed to scan detect output", "")
	}
	return monitors, nil
}

// displayNumber extracts N from a "Display N" header line.
func displayNumber(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// applyDetectField merges one "key: value" sub-line into the open block.
// Keys are matched loosely so that both terse and verbose detect layouts
// feed the same record.
func applyDetectField(m *ddc.MonitorInfo, line string) {
	parts := strings.SplitN(line, ":", 2)
	key := strings.ToLower(strings.TrimSpace(parts[0]))
	value := strings.TrimSpace(parts[1])

	switch {
	case strings.Contains(key, "i2c bus"):
		if bus, ok := busNumber(value); ok {
			m.I2CBus = bus
		}
	case key == "monitor":
		// Terse form packs "MFG:Model:Serial" into one line
		applyMonitorTriple(m, value)
	case key == "manufacturer", strings.Contains(key, "mfg"):
		m.Manufacturer = value
	case key == "model":
		m.Model = value
	case strings.Contains(key, "serial"), key == "sn":
		if m.Serial == "" {
			m.Serial = value
		}
	case key == "edid":
		m.EDID = value
	}
}

// applyMonitorTriple splits the terse "Monitor: MFG:Model:Serial" value.
func applyMonitorTriple(m *ddc.MonitorInfo, value string) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) > 0 {
		m.Manufacturer = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		m.Model = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		m.Serial = strings.TrimSpace(parts[2])
	}
}

// busNumber extracts N from a value containing "/dev/i2c-N".
func busNumber(value string) (int, bool) {
	const prefix = "/dev/i2c-"
	i := strings.Index(value, prefix)
	if i < 0 {
		return 0, false
	}
	rest := value[i+len(prefix):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
