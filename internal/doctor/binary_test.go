package doctor

import (
	"os/exec"
	"testing"
)

func TestDDCUtilCheck(t *testing.T) {
	t.Run("name and category", func(t *testing.T) {
		check := &DDCUtilCheck{}
		if check.Name() != "ddcutil_binary" {
			t.Errorf("expected name 'ddcutil_binary', got %s", check.Name())
		}
		if check.Category() != "DEPENDENCIES" {
			t.Errorf("expected category 'DEPENDENCIES', got %s", check.Category())
		}
	})

	t.Run("missing binary fails", func(t *testing.T) {
		check := &DDCUtilCheck{Binary: "definitely-not-a-real-binary-qq"}
		result := check.Run()

		if result.Status != StatusFail {
			t.Errorf("expected StatusFail for missing binary, got %v", result.Status)
		}
		if result.Suggestion == "" {
			t.Error("expected an install suggestion")
		}
	})

	t.Run("run with default binary", func(t *testing.T) {
		check := &DDCUtilCheck{}
		result := check.Run()

		// Outcome depends on whether ddcutil is installed
		_, err := exec.LookPath("ddcutil")
		if err != nil {
			if result.Status != StatusFail {
				t.Errorf("expected StatusFail when ddcutil not installed, got %v", result.Status)
			}
		} else {
			if result.Status != StatusPass {
				t.Errorf("expected StatusPass when ddcutil installed, got %v: %s", result.Status, result.Message)
			}
		}
	})
}

func TestElevationCheck(t *testing.T) {
	t.Run("disabled passes without lookup", func(t *testing.T) {
		check := &ElevationCheck{Command: "definitely-not-a-real-binary-qq", Enabled: false}
		result := check.Run()

		if result.Status != StatusPass {
			t.Errorf("expected StatusPass when elevation disabled, got %v", result.Status)
		}
	})

	t.Run("missing command warns", func(t *testing.T) {
		check := &ElevationCheck{Command: "definitely-not-a-real-binary-qq", Enabled: true}
		result := check.Run()

		if result.Status != StatusWarn {
			t.Errorf("expected StatusWarn for missing elevation command, got %v", result.Status)
		}
	})

	t.Run("found command passes", func(t *testing.T) {
		// sh exists everywhere this runs
		check := &ElevationCheck{Command: "sh", Enabled: true}
		result := check.Run()

		if result.Status != StatusPass {
			t.Errorf("expected StatusPass, got %v: %s", result.Status, result.Message)
		}
	})
}

func TestParseDDCUtilVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{
			name:     "standard format",
			output:   "ddcutil 1.4.1\nBuilt with support for USB connected displays.\n",
			expected: "1.4.1",
		},
		{
			name:     "two-part version",
			output:   "ddcutil 2.0",
			expected: "2.0",
		},
		{
			name:     "version elsewhere on first line",
			output:   "version 0.9.5",
			expected: "0.9.5",
		},
		{
			name:     "no version found",
			output:   "some other output",
			expected: "unknown",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseDDCUtilVersion(tc.output)
			if got != tc.expected {
				t.Errorf("parseDDCUtilVersion() = %q, want %q", got, tc.expected)
			}
		})
	}
}
