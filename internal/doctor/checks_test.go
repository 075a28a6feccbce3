package doctor

import (
	"testing"
)

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status   CheckStatus
		expected string
	}{
		{StatusPass, "pass"},
		{StatusWarn, "warn"},
		{StatusFail, "fail"},
		{CheckStatus(99), "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.status.String(); got != tc.expected {
				t.Errorf("got %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestCheckStatus_MarshalJSON(t *testing.T) {
	data, err := StatusWarn.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"warn"` {
		t.Errorf("got %s, want %q", data, `"warn"`)
	}
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	result   CheckResult
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run() CheckResult { return m.result }

func TestRunAll(t *testing.T) {
	checks := []Check{
		&mockCheck{
			name:     "check1",
			category: "TEST",
			result:   CheckResult{Name: "check1", Status: StatusPass, Message: "OK"},
		},
		&mockCheck{
			name:     "check2",
			category: "TEST",
			result:   CheckResult{Name: "check2", Status: StatusFail, Message: "Failed"},
		},
	}

	results := RunAll(checks)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Status != StatusPass {
		t.Errorf("expected first check to pass")
	}
	if results[1].Status != StatusFail {
		t.Errorf("expected second check to fail")
	}
}

func TestCountByStatus(t *testing.T) {
	results := []CheckResult{
		{Status: StatusPass},
		{Status: StatusPass},
		{Status: StatusWarn},
		{Status: StatusFail},
	}

	counts := CountByStatus(results)

	if counts[StatusPass] != 2 {
		t.Errorf("expected 2 pass, got %d", counts[StatusPass])
	}
	if counts[StatusWarn] != 1 {
		t.Errorf("expected 1 warn, got %d", counts[StatusWarn])
	}
	if counts[StatusFail] != 1 {
		t.Errorf("expected 1 fail, got %d", counts[StatusFail])
	}
}

func TestHasFailures(t *testing.T) {
	tests := []struct {
		name     string
		results  []CheckResult
		expected bool
	}{
		{
			name:     "all pass",
			results:  []CheckResult{{Status: StatusPass}, {Status: StatusPass}},
			expected: false,
		},
		{
			name:     "with warn only",
			results:  []CheckResult{{Status: StatusPass}, {Status: StatusWarn}},
			expected: false,
		},
		{
			name:     "with fail",
			results:  []CheckResult{{Status: StatusPass}, {Status: StatusFail}},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasFailures(tc.results); got != tc.expected {
				t.Errorf("HasFailures() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name     string
		results  []CheckResult
		expected string
	}{
		{
			name:     "all good",
			results:  []CheckResult{{Status: StatusPass}},
			expected: "Everything looks good",
		},
		{
			name:     "one issue",
			results:  []CheckResult{{Status: StatusFail}},
			expected: "1 issue found",
		},
		{
			name:     "multiple issues",
			results:  []CheckResult{{Status: StatusFail}, {Status: StatusWarn}},
			expected: "2 issues found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Summary(tc.results)
			if got != tc.expected {
				t.Errorf("Summary() = %q, want %q", got, tc.expected)
			}
		})
	}
}
