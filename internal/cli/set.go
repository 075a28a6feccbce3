package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/ui"
	"github.com/dwaters/monctl/internal/util"
	"github.com/dwaters/monctl/internal/vcp"
)

// writeResultJSON is the machine-readable shape of a completed write.
type writeResultJSON struct {
	Monitor string `json:"monitor"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Value   uint16 `json:"value"`
}

// setCommand writes one feature value and reports the outcome.
func setCommand(feature, value string, flags CommonFlags, verifyChanged, verifyFlag bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	err = applyTimeout(flags, func(d time.Duration) { cfg.DDCUtil.Timeout = d })
	if err != nil {
		return err
	}
	if verifyChanged {
		cfg.Write.Verify = verifyFlag
	}

	code, err := parseFeature(feature)
	if err != nil {
		return err
	}
	val, err := parseValue(code, value)
	if err != nil {
		return err
	}

	ctrl := newController(cfg)
	m, err := ctrl.WriteFeature(context.Background(), flags.Monitor, code, val)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, writeResultJSON{
			Monitor: m.ID,
			Code:    code.String(),
			Name:    vcp.Name(code),
			Value:   val,
		})
	}

	fmt.Printf("%s %s set to %s on %s\n",
		ui.SuccessStyle().Render(ui.SymbolSuccess),
		vcp.Name(code), describeValue(code, val), m.ID)
	return nil
}

// parseValue resolves a value argument: decimal, hex with an 0x prefix, or
// a named discrete value from the default value tables.
func parseValue(code vcp.Code, s string) (uint16, error) {
	raw := strings.TrimSpace(s)

	if n, err := strconv.ParseUint(raw, 10, 16); err == nil {
		return uint16(n), nil
	}

	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "0x") {
		if n, err := strconv.ParseUint(lower[2:], 16, 16); err == nil {
			return uint16(n), nil
		}
	}

	norm := normalizeValueName(raw)
	valueNames := vcp.ValueNames(code)
	for value, name := range valueNames {
		if normalizeValueName(name) == norm {
			return value, nil
		}
	}

	names := make([]string, 0, len(valueNames))
	for _, name := range valueNames {
		names = append(names, name)
	}
	sort.Strings(names)

	suggestion := "Use a number (70), hex (0x0f), or a value name shown by 'monctl caps'."
	if matches := util.SuggestSimilar(norm, names, 3); len(matches) > 0 {
		suggestion = "Did you mean: " + util.JoinOrDefault(matches, "") + "?"
	}
	return 0, errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' isn't a value monctl can use for %s", s, vcp.Name(code)), suggestion)
}

// normalizeValueName folds case and separators so "HDMI 1", "hdmi_1", and
// "hdmi-1" all match the same option.
func normalizeValueName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return s
}

// describeValue renders a written value for the confirmation line.
func describeValue(code vcp.Code, value uint16) string {
	if vcp.IsDiscrete(code) {
		return fmt.Sprintf("%s (0x%02x)", vcp.ValueName(code, value), value)
	}
	return strconv.Itoa(int(value))
}
