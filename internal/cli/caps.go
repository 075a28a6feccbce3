package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/registry"
	"github.com/dwaters/monctl/internal/ui"
	"github.com/dwaters/monctl/internal/vcp"
)

type capValueJSON struct {
	Value uint16 `json:"value"`
	Name  string `json:"name,omitempty"`
}

type capFeatureJSON struct {
	Code   string         `json:"code"`
	Name   string         `json:"name"`
	Class  string         `json:"class"`
	Values []capValueJSON `json:"values,omitempty"`
}

type capsJSON struct {
	Monitor  string           `json:"monitor"`
	Features []capFeatureJSON `json:"features"`
}

// capsCommand prints the feature set a monitor declares in its capability
// report.
func capsCommand(flags CommonFlags, refresh bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	err = applyTimeout(flags, func(d time.Duration) { cfg.DDCUtil.DetectTimeout = d })
	if err != nil {
		return err
	}

	ctrl := newController(cfg)
	ctx := context.Background()

	var (
		m    registry.Monitor
		caps ddc.CapabilitySet
	)
	if interactive(cfg) {
		sp := ui.NewSpinner("Querying capabilities")
		sp.Start()
		m, caps, err = ctrl.Capabilities(ctx, flags.Monitor, refresh)
		if err != nil {
			sp.Fail()
			return err
		}
		sp.Success()
	} else {
		m, caps, err = ctrl.Capabilities(ctx, flags.Monitor, refresh)
		if err != nil {
			return err
		}
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, capsToJSON(m.ID, caps))
	}

	fmt.Println()
	fmt.Println(ui.HeaderStyle().Render(fmt.Sprintf("Capabilities of %s (%s)", m.Name, m.ID)))
	if caps.Empty() {
		fmt.Println(ui.MutedStyle().Render("  The monitor reported no VCP features."))
		return nil
	}
	for _, code := range caps.Codes {
		fmt.Printf("  %s  %s\n", code, featureLabel(code))
		if vcp.IsDiscrete(code) {
			for _, opt := range caps.Options(code) {
				name := opt.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Printf("        0x%02x  %s\n", opt.Value, name)
			}
		}
	}
	return nil
}

// featureLabel renders a feature name and class for the capability listing.
func featureLabel(code vcp.Code) string {
	f, ok := vcp.Lookup(code)
	if !ok {
		return ui.MutedStyle().Render("(unrecognized)")
	}
	return fmt.Sprintf("%s (%s)", f.Name, f.Class)
}

// capsToJSON flattens a capability set for machine output.
func capsToJSON(monitorID string, caps ddc.CapabilitySet) capsJSON {
	out := capsJSON{Monitor: monitorID, Features: []capFeatureJSON{}}
	for _, code := range caps.Codes {
		feat := capFeatureJSON{Code: code.String(), Name: vcp.Name(code), Class: "unknown"}
		if f, ok := vcp.Lookup(code); ok {
			feat.Class = f.Class.String()
		}
		if vcp.IsDiscrete(code) {
			for _, opt := range caps.Options(code) {
				feat.Values = append(feat.Values, capValueJSON{Value: opt.Value, Name: opt.Name})
			}
		}
		out.Features = append(out.Features, feat)
	}
	return out
}
