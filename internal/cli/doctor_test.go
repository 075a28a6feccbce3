package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwaters/monctl/internal/config"
	"github.com/dwaters/monctl/internal/doctor"
)

func TestDoctorOutput_JSONMarshaling(t *testing.T) {
	output := DoctorOutput{
		Categories: []CategoryOutput{
			{
				Name: "CONFIG",
				Results: []doctor.CheckResult{
					{
						Name:    "config_file",
						Status:  doctor.StatusPass,
						Message: "Config file: .monctl.yaml",
					},
				},
			},
			{
				Name: "I2C",
				Results: []doctor.CheckResult{
					{
						Name:       "i2c_access",
						Status:     doctor.StatusFail,
						Message:    "Cannot open /dev/i2c-4",
						Suggestion: "Add your user to the i2c group",
					},
				},
			},
		},
		Summary: SummaryOutput{
			Pass:     1,
			Warn:     0,
			Fail:     1,
			AllClear: false,
		},
	}

	// Marshal to JSON
	data, err := json.Marshal(output)
	require.NoError(t, err)

	// Unmarshal back
	var decoded DoctorOutput
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	// Verify structure
	assert.Len(t, decoded.Categories, 2)
	assert.Equal(t, "CONFIG", decoded.Categories[0].Name)
	assert.Equal(t, "I2C", decoded.Categories[1].Name)
	assert.Len(t, decoded.Categories[0].Results, 1)
	assert.Len(t, decoded.Categories[1].Results, 1)

	// Verify summary
	assert.Equal(t, 1, decoded.Summary.Pass)
	assert.Equal(t, 0, decoded.Summary.Warn)
	assert.Equal(t, 1, decoded.Summary.Fail)
	assert.False(t, decoded.Summary.AllClear)
}

func TestDoctorOutput_EmptyCategories(t *testing.T) {
	output := DoctorOutput{
		Categories: []CategoryOutput{},
		Summary: SummaryOutput{
			Pass:     0,
			Warn:     0,
			Fail:     0,
			AllClear: true,
		},
	}

	data, err := json.Marshal(output)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"categories":[]`)
	assert.Contains(t, string(data), `"all_clear":true`)
}

func TestDoctorOutput_StatusMarshalsAsString(t *testing.T) {
	output := DoctorOutput{
		Categories: []CategoryOutput{
			{
				Name: "I2C",
				Results: []doctor.CheckResult{
					{Name: "i2c_devices", Status: doctor.StatusWarn, Message: "No devices"},
				},
			},
		},
	}

	data, err := json.Marshal(output)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"status":"warn"`)
}

func TestSummaryOutput_AllClear(t *testing.T) {
	tests := []struct {
		name     string
		summary  SummaryOutput
		wantJSON string
	}{
		{
			name: "all pass",
			summary: SummaryOutput{
				Pass:     5,
				Warn:     0,
				Fail:     0,
				AllClear: true,
			},
			wantJSON: `"all_clear":true`,
		},
		{
			name: "has warnings",
			summary: SummaryOutput{
				Pass:     3,
				Warn:     2,
				Fail:     0,
				AllClear: false,
			},
			wantJSON: `"all_clear":false`,
		},
		{
			name: "has failures",
			summary: SummaryOutput{
				Pass:     1,
				Warn:     0,
				Fail:     3,
				AllClear: false,
			},
			wantJSON: `"all_clear":false`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.summary)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.wantJSON)
		})
	}
}

func TestCollectChecks_Categories(t *testing.T) {
	checks := collectChecks(config.DefaultConfig())

	assert.NotEmpty(t, checks)

	categories := make(map[string]bool)
	for _, check := range checks {
		categories[check.Category()] = true
	}

	assert.True(t, categories["CONFIG"], "should have CONFIG checks")
	assert.True(t, categories["DEPENDENCIES"], "should have DEPENDENCIES checks")
	assert.True(t, categories["I2C"], "should have I2C checks")
	assert.True(t, categories["MONITORS"], "should have MONITORS checks")
}

func TestCollectChecks_Order(t *testing.T) {
	checks := collectChecks(config.DefaultConfig())

	// Config diagnostics lead the report; the live detect probe comes last
	// because it is the slowest and its outcome depends on the rest.
	require.GreaterOrEqual(t, len(checks), 4)
	assert.Equal(t, "CONFIG", checks[0].Category())
	assert.Equal(t, "MONITORS", checks[len(checks)-1].Category())
}

func TestCollectChecks_CountStable(t *testing.T) {
	// 2 config + 2 dependency + 3 i2c + 1 detect probe
	checks := collectChecks(config.DefaultConfig())
	assert.Len(t, checks, 8)
}

func TestCategoryOutput_EmptyResults(t *testing.T) {
	cat := CategoryOutput{
		Name:    "EMPTY",
		Results: []doctor.CheckResult{},
	}

	data, err := json.Marshal(cat)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"name":"EMPTY"`)
	assert.Contains(t, string(data), `"results":[]`)
}

func TestDoctorOutput_Defaults(t *testing.T) {
	output := DoctorOutput{}

	assert.Nil(t, output.Categories)
	assert.Equal(t, 0, output.Summary.Pass)
	assert.Equal(t, 0, output.Summary.Warn)
	assert.Equal(t, 0, output.Summary.Fail)
	assert.False(t, output.Summary.AllClear)
}
