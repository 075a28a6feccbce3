// Package ui provides terminal UI components for monctl's CLI output.
//
// The package includes spinners, tables, and styled text output using the
// Lip Gloss library for consistent terminal styling across all commands.
//
// # Components Overview
//
//	Spinner      - Animated status indicator for slow operations (detect scans)
//	Tables       - Monitor listings, per-monitor feature readings, doctor results
//	Header       - Branded name/version banner for interactive commands
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Successful operations
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings and degraded results
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() to switch to monochrome output (for --no-color and
// piped output), or ForceColors() to keep styling on regardless.
//
// # Symbols
//
// Unicode symbols provide visual status indicators:
//
//	SymbolSuccess  (checkmark)  - Operation completed successfully
//	SymbolFail     (X)          - Operation failed
//	SymbolWarning  (warning)    - Degraded but not fatal
//	SymbolPending  (circle)     - Not yet started
//	SymbolProgress (half-fill)  - In progress
//
// # Spinner Usage
//
// The Spinner type provides an animated indicator for operations:
//
//	s := ui.NewSpinner("Scanning for monitors")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
//
// The spinner handles terminal output, clearing lines, and timing display.
package ui
