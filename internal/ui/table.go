package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// MonitorRow represents a row in the monitor listing table.
type MonitorRow struct {
	ID      string // Registry ID (bus-N)
	Model   string // Monitor model string
	Bus     string // I2C device path
	Display string // ddcutil display number
}

// RenderMonitorTable renders detected monitors as a formatted table.
func RenderMonitorTable(rows []MonitorRow) string {
	if len(rows) == 0 {
		return "No monitors detected"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)

	header := "  " + padRight("ID", 10) + padRight("MODEL", 32) + padRight("BUS", 14) + "DISPLAY"

	var output string
	output += headerStyle.Render(header) + "\n"

	for _, row := range rows {
		line := "  " +
			padRight(row.ID, 10) +
			padRight(row.Model, 32) +
			padRight(row.Bus, 14) +
			row.Display
		output += line + "\n"
	}

	return output
}

// FeatureRow represents one monitor's reading in a feature table.
type FeatureRow struct {
	Monitor string // Registry ID
	Value   string // Formatted value, e.g. "70 / 100" or "HDMI-1 (0x11)"
	Err     string // Error text when the read failed
}

// RenderFeatureTable renders per-monitor feature readings under a
// feature-name header. Failed reads show the error in place of a value.
func RenderFeatureTable(feature string, rows []FeatureRow) string {
	if len(rows) == 0 {
		return "No readings to display"
	}

	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ColorError)
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	var output string
	output += headerStyle.Render(feature) + "\n"

	for _, row := range rows {
		if row.Err == "" {
			output += "  " + successStyle.Render(SymbolSuccess) + " " +
				padRight(row.Monitor, 12) + row.Value + "\n"
		} else {
			output += "  " + errorStyle.Render(SymbolFail) + " " +
				padRight(row.Monitor, 12) + errorStyle.Render(row.Err) + "\n"
		}
	}

	return output
}

// DoctorCheckRow represents a row in the doctor diagnostic table.
type DoctorCheckRow struct {
	Status     string // "pass", "warn", "fail"
	Category   string // Check category
	Message    string // Check result message
	Suggestion string // Suggestion for fixing (if failed)
}

// RenderDoctorTable renders doctor check results as a formatted table.
func RenderDoctorTable(rows []DoctorCheckRow) string {
	if len(rows) == 0 {
		return "No checks to display"
	}

	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	// Group by category
	categories := make(map[string][]DoctorCheckRow)
	categoryOrder := []string{}
	for _, row := range rows {
		if _, exists := categories[row.Category]; !exists {
			categoryOrder = append(categoryOrder, row.Category)
		}
		categories[row.Category] = append(categories[row.Category], row)
	}

	var output string

	for _, cat := range categoryOrder {
		output += headerStyle.Render(cat) + "\n"

		for _, row := range categories[cat] {
			var statusIcon string
			switch row.Status {
			case "pass":
				statusIcon = successStyle.Render(SymbolSuccess)
			case "warn":
				statusIcon = warnStyle.Render(SymbolWarning)
			case "fail":
				statusIcon = errorStyle.Render(SymbolFail)
			default:
				statusIcon = mutedStyle.Render(SymbolPending)
			}

			output += "  " + statusIcon + " " + row.Message + "\n"

			if row.Suggestion != "" && row.Status != "pass" {
				output += "    " + mutedStyle.Render(row.Suggestion) + "\n"
			}
		}
		output += "\n"
	}

	return output
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	// Account for ANSI codes when calculating visible length
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	padding := width - visibleLen
	for i := 0; i < padding; i++ {
		s += " "
	}
	return s
}
