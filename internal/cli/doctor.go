package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwaters/monctl/internal/config"
	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/doctor"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/logger"
	"github.com/dwaters/monctl/internal/ui"
)

// doctorCmd diagnoses the DDC/CI environment
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose DDC/CI setup problems",
	Long: `Diagnose why monctl can't talk to your monitors.

Runs a series of checks: is ddcutil installed, do /dev/i2c-* devices
exist and can they be opened, is the elevation command available, does
the config file parse, and does a live detect scan find anything.

Exits with status 1 when any check fails, so scripts can gate on it.

Examples:
  monctl doctor          Run all checks
  monctl doctor --json   Machine-readable report`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput is the machine-readable shape of a diagnostic report.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput groups check results by category.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput totals the report.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand runs every diagnostic check and renders the report.
func doctorCommand() error {
	// A broken config must not stop the doctor; the config checks report it.
	cfg, _, err := config.LoadOrDefault(Config())
	if err != nil {
		cfg = config.DefaultConfig()
	}
	applyOutputMode(cfg)

	checks := collectChecks(cfg)
	results := doctor.RunAll(checks)

	if machineMode {
		if err := outputDoctorJSON(checks, results); err != nil {
			return err
		}
	} else {
		outputDoctorText(checks, results)
	}

	if doctor.HasFailures(results) {
		return errors.NewExitError(1)
	}
	return nil
}

// collectChecks gathers the diagnostic checks in report order.
func collectChecks(cfg *config.Config) []doctor.Check {
	var checks []doctor.Check

	checks = append(checks, doctor.NewConfigChecks(Config())...)
	checks = append(checks,
		&doctor.DDCUtilCheck{Binary: cfg.DDCUtil.Binary},
		&doctor.ElevationCheck{Command: cfg.Elevation.Command, Enabled: cfg.Elevation.Enabled},
	)
	checks = append(checks, doctor.NewI2CChecks()...)
	checks = append(checks, &doctor.DetectCheck{
		Runner: ddc.NewRunner(ddc.Options{
			Binary: cfg.DDCUtil.Binary,
			Logger: logger.NewEnvLogger("[doctor]"),
		}),
		Timeout: cfg.DDCUtil.DetectTimeout,
	})
	return checks
}

// outputDoctorJSON emits the report grouped by category.
func outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	categoryOrder := []string{}
	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{Categories: make([]CategoryOutput, 0, len(categoryOrder))}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: grouped[cat]})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		AllClear: counts[doctor.StatusWarn] == 0 && counts[doctor.StatusFail] == 0,
	}

	return WriteJSONSuccess(os.Stdout, output)
}

// outputDoctorText renders the human-readable report.
func outputDoctorText(checks []doctor.Check, results []doctor.CheckResult) {
	rows := make([]ui.DoctorCheckRow, len(results))
	for i, r := range results {
		rows[i] = ui.DoctorCheckRow{
			Status:     r.Status.String(),
			Category:   checks[i].Category(),
			Message:    r.Message,
			Suggestion: r.Suggestion,
		}
	}

	fmt.Println()
	fmt.Println(ui.HeaderStyle().Render("monctl Diagnostic Report"))
	fmt.Println()
	fmt.Print(ui.RenderDoctorTable(rows))
	fmt.Println(strings.Repeat("━", 60))
	fmt.Println()

	counts := doctor.CountByStatus(results)
	switch {
	case counts[doctor.StatusFail] > 0:
		fmt.Printf("%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))
	case counts[doctor.StatusWarn] > 0:
		fmt.Printf("%s %s\n", ui.WarningStyle().Render(ui.SymbolWarning), doctor.Summary(results))
	default:
		fmt.Printf("%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	}
	fmt.Println()
}
