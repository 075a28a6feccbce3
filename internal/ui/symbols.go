package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Operation completed successfully
	SymbolFail     = "✗" // Operation failed
	SymbolWarning  = "⚠" // Something worth attention
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress
	SymbolBullet   = "•" // List item
)
