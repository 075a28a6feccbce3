package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dwaters/monctl/internal/controller"
	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/ui"
	"github.com/dwaters/monctl/internal/util"
	"github.com/dwaters/monctl/internal/vcp"
)

// valueBarWidth is the character width of the value bar in interactive output.
const valueBarWidth = 20

// featureJSON is the machine-readable shape of one feature reading.
type featureJSON struct {
	Monitor   string     `json:"monitor"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Current   uint16     `json:"current"`
	Max       uint16     `json:"max,omitempty"`
	ValueName string     `json:"value_name,omitempty"`
	Error     *JSONError `json:"error,omitempty"`
}

// getCommand reads one feature (or a feature group) and renders the result.
func getCommand(feature string, flags CommonFlags, all bool, group string) error {
	if feature == "" && group == "" {
		return errors.New(errors.ErrConfig,
			"Nothing to read",
			"Name a feature (monctl get brightness) or pass --group (monctl get --group color).")
	}
	if feature != "" && group != "" {
		return errors.New(errors.ErrConfig,
			"--group replaces the feature argument",
			"Use one or the other: 'monctl get brightness' or 'monctl get --group display'.")
	}
	if all && group != "" {
		return errors.New(errors.ErrConfig,
			"--all and --group cannot be combined",
			"--all fans one feature out across monitors; --group reads several features from one monitor.")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	err = applyTimeout(flags, func(d time.Duration) { cfg.DDCUtil.Timeout = d })
	if err != nil {
		return err
	}

	ctrl := newController(cfg)
	ctx := context.Background()

	if group != "" {
		return getGroup(ctx, ctrl, flags.Monitor, group)
	}

	code, err := parseFeature(feature)
	if err != nil {
		return err
	}

	if all {
		return getAll(ctx, ctrl, code)
	}

	m, fv, err := ctrl.ReadFeature(ctx, flags.Monitor, code)
	if err != nil {
		return err
	}

	if machineMode {
		return WriteJSONSuccess(os.Stdout, readingJSON(m.ID, code, fv))
	}

	if interactive(cfg) && fv.Class == vcp.ClassContinuous {
		fmt.Printf("%s  %s\n", vcp.Name(code), ui.RenderValueBar(fv.Current, fv.Max, valueBarWidth))
		return nil
	}
	fmt.Printf("%s: %s\n", vcp.Name(code), formatFeatureValue(code, fv))
	return nil
}

// getAll fans the read out across every detected monitor.
func getAll(ctx context.Context, ctrl *controller.Controller, code vcp.Code) error {
	readings, err := ctrl.ReadFeatureAll(ctx, code)
	if err != nil {
		return err
	}

	if machineMode {
		data := make([]featureJSON, len(readings))
		for i, r := range readings {
			if r.Err != nil {
				data[i] = featureJSON{Monitor: r.Monitor.ID, Code: code.String(), Name: vcp.Name(code), Error: ErrorToJSON(r.Err)}
				continue
			}
			data[i] = readingJSON(r.Monitor.ID, code, r.Value)
		}
		if err := WriteJSONSuccess(os.Stdout, data); err != nil {
			return err
		}
		return exitIfAllFailed(readings)
	}

	rows := make([]ui.FeatureRow, len(readings))
	for i, r := range readings {
		rows[i] = ui.FeatureRow{Monitor: r.Monitor.ID}
		if r.Err != nil {
			rows[i].Err = shortError(r.Err)
			continue
		}
		rows[i].Value = formatFeatureValue(code, r.Value)
	}
	fmt.Println(ui.RenderFeatureTable(vcp.Name(code), rows))
	return exitIfAllFailed(readings)
}

// getGroup reads every feature of a named group from one monitor.
func getGroup(ctx context.Context, ctrl *controller.Controller, ref, group string) error {
	g, err := lookupGroup(group)
	if err != nil {
		return err
	}

	m, values, err := ctrl.ReadFeatures(ctx, ref, g.Codes...)
	if err != nil {
		return err
	}

	if machineMode {
		data := make([]featureJSON, 0, len(g.Codes))
		for _, code := range g.Codes {
			fv, ok := values[code]
			if !ok {
				continue
			}
			data = append(data, readingJSON(m.ID, code, fv))
		}
		return WriteJSONSuccess(os.Stdout, data)
	}

	fmt.Println(ui.HeaderStyle().Render(fmt.Sprintf("%s (%s)", g.Name, m.ID)))
	for _, code := range g.Codes {
		fv, ok := values[code]
		if !ok {
			fmt.Printf("  %-14s %s\n", vcp.Name(code), ui.MutedStyle().Render("not reported"))
			continue
		}
		fmt.Printf("  %-14s %s\n", vcp.Name(code), formatFeatureValue(code, fv))
	}
	return nil
}

// parseFeature resolves a feature argument with a CLI-shaped error.
func parseFeature(s string) (vcp.Code, error) {
	code, err := vcp.ParseCode(s)
	if err != nil {
		suggestion := "Use a name like brightness, contrast, input, volume - or a VCP hex code like 0x10."
		if matches := util.SuggestSimilar(s, vcp.AliasNames(), 3); len(matches) > 0 {
			suggestion = "Did you mean: " + util.JoinOrDefault(matches, "") + "?"
		}
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("'%s' isn't a feature monctl knows", s), suggestion)
	}
	return code, nil
}

// lookupGroup resolves a group name, case-insensitively.
func lookupGroup(name string) (vcp.Group, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, g := range vcp.Groups() {
		if strings.ToLower(g.Name) == want {
			return g, nil
		}
	}

	known := make([]string, 0, len(vcp.Groups()))
	for _, g := range vcp.Groups() {
		known = append(known, strings.ToLower(g.Name))
	}
	return vcp.Group{}, errors.New(errors.ErrConfig,
		fmt.Sprintf("'%s' isn't a feature group", name),
		"Groups: "+util.JoinOrDefault(known, "(none)"))
}

// formatFeatureValue renders one reading for human output.
func formatFeatureValue(code vcp.Code, fv ddc.FeatureValue) string {
	if fv.Class == vcp.ClassContinuous {
		return fmt.Sprintf("%d / %d", fv.Current, fv.Max)
	}
	return fmt.Sprintf("%s (0x%02x)", vcp.ValueName(code, fv.Current), fv.Current)
}

// readingJSON builds the machine shape for a successful reading.
func readingJSON(monitorID string, code vcp.Code, fv ddc.FeatureValue) featureJSON {
	out := featureJSON{
		Monitor: monitorID,
		Code:    code.String(),
		Name:    vcp.Name(code),
		Current: fv.Current,
		Max:     fv.Max,
	}
	if fv.Class == vcp.ClassDiscrete {
		out.ValueName = vcp.ValueName(code, fv.Current)
	}
	return out
}

// shortError reduces an error to its one-line message for table cells.
func shortError(err error) string {
	if mErr, ok := err.(*errors.Error); ok {
		return mErr.Message
	}
	return err.Error()
}

// exitIfAllFailed turns a fully failed fan-out into a non-zero exit after
// the per-monitor results have been rendered.
func exitIfAllFailed(readings []controller.FeatureReading) error {
	for _, r := range readings {
		if r.Err == nil {
			return nil
		}
	}
	return errors.NewExitError(1)
}
