package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dwaters/monctl/internal/registry"
	"github.com/dwaters/monctl/internal/ui"
	"github.com/dwaters/monctl/internal/util"
)

// monitorJSON is the machine-readable shape of one detected monitor.
type monitorJSON struct {
	ID           string `json:"id"`
	Display      int    `json:"display"`
	Bus          string `json:"bus,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Serial       string `json:"serial,omitempty"`
}

// detectCommand scans for monitors and renders the result.
func detectCommand(timeoutFlag string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	err = applyTimeout(CommonFlags{Timeout: timeoutFlag}, func(d time.Duration) {
		cfg.DDCUtil.DetectTimeout = d
	})
	if err != nil {
		return err
	}

	ctrl := newController(cfg)

	var spinner *ui.Spinner
	if interactive(cfg) {
		spinner = ui.NewSpinner("Scanning for monitors")
		spinner.Start()
	}

	monitors, err := ctrl.Detect(context.Background())
	if err != nil {
		if spinner != nil {
			spinner.Fail()
		}
		return err
	}
	if spinner != nil {
		spinner.Success()
	}

	if machineMode {
		data := make([]monitorJSON, len(monitors))
		for i, m := range monitors {
			data[i] = monitorJSON{
				ID:           m.ID,
				Display:      m.DisplayNumber,
				Bus:          m.BusPath(),
				Manufacturer: m.Manufacturer,
				Model:        m.Model,
				Serial:       m.Serial,
			}
		}
		return WriteJSONSuccess(os.Stdout, data)
	}

	fmt.Println()
	fmt.Println(ui.RenderMonitorTable(monitorRows(monitors)))
	if len(monitors) == 0 {
		ui.PrintWarning("Run 'monctl doctor' if monitors are connected but not detected.")
		return nil
	}
	fmt.Printf("%d %s found\n", len(monitors), util.Pluralize(len(monitors), "monitor", "monitors"))
	return nil
}

// monitorRows converts monitors to table rows.
func monitorRows(monitors []registry.Monitor) []ui.MonitorRow {
	rows := make([]ui.MonitorRow, len(monitors))
	for i, m := range monitors {
		rows[i] = ui.MonitorRow{
			ID:      m.ID,
			Model:   m.Name,
			Bus:     m.BusPath(),
			Display: strconv.Itoa(m.DisplayNumber),
		}
	}
	return rows
}
