package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwaters/monctl/internal/controller"
	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/errors"
	"github.com/dwaters/monctl/internal/registry"
	"github.com/dwaters/monctl/internal/vcp"
)

func TestParseFeature(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    vcp.Code
		wantErr bool
	}{
		{
			name:  "feature name",
			input: "brightness",
			want:  vcp.Brightness,
		},
		{
			name:  "alias",
			input: "input",
			want:  vcp.InputSource,
		},
		{
			name:  "hex with prefix",
			input: "0x10",
			want:  vcp.Brightness,
		},
		{
			name:  "bare hex",
			input: "12",
			want:  vcp.Contrast,
		},
		{
			name:    "unknown name",
			input:   "loudness",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFeature(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "isn't a feature")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupGroup(t *testing.T) {
	g, err := lookupGroup("color")
	require.NoError(t, err)
	assert.Equal(t, "Color", g.Name)
	assert.Contains(t, g.Codes, vcp.ColorPreset)
	assert.Contains(t, g.Codes, vcp.RedGain)
}

func TestLookupGroup_CaseAndSpace(t *testing.T) {
	g, err := lookupGroup("  DISPLAY ")
	require.NoError(t, err)
	assert.Equal(t, "Display", g.Name)
}

func TestLookupGroup_UnknownListsGroups(t *testing.T) {
	_, err := lookupGroup("gaming")
	require.Error(t, err)

	mErr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Contains(t, mErr.Suggestion, "display")
	assert.Contains(t, mErr.Suggestion, "color")
	assert.Contains(t, mErr.Suggestion, "audio")
}

func TestFormatFeatureValue_Continuous(t *testing.T) {
	fv := ddc.FeatureValue{
		Code:    vcp.Brightness,
		Current: 70,
		Max:     100,
		Class:   vcp.ClassContinuous,
	}

	assert.Equal(t, "70 / 100", formatFeatureValue(vcp.Brightness, fv))
}

func TestFormatFeatureValue_Discrete(t *testing.T) {
	fv := ddc.FeatureValue{
		Code:    vcp.InputSource,
		Current: 0x11,
		Max:     0xFF,
		Class:   vcp.ClassDiscrete,
	}

	assert.Equal(t, "HDMI-1 (0x11)", formatFeatureValue(vcp.InputSource, fv))
}

func TestFormatFeatureValue_DiscreteUnknownValue(t *testing.T) {
	fv := ddc.FeatureValue{
		Code:    vcp.InputSource,
		Current: 0x99,
		Class:   vcp.ClassDiscrete,
	}

	assert.Equal(t, "Value 0x99 (0x99)", formatFeatureValue(vcp.InputSource, fv))
}

func TestReadingJSON_ContinuousOmitsValueName(t *testing.T) {
	fv := ddc.FeatureValue{Code: vcp.Brightness, Current: 70, Max: 100, Class: vcp.ClassContinuous}

	out := readingJSON("bus-4", vcp.Brightness, fv)

	assert.Equal(t, "bus-4", out.Monitor)
	assert.Equal(t, "0x10", out.Code)
	assert.Equal(t, "Brightness", out.Name)
	assert.Equal(t, uint16(70), out.Current)
	assert.Equal(t, uint16(100), out.Max)
	assert.Empty(t, out.ValueName)
}

func TestReadingJSON_DiscreteCarriesValueName(t *testing.T) {
	fv := ddc.FeatureValue{Code: vcp.InputSource, Current: 0x0F, Max: 0xFF, Class: vcp.ClassDiscrete}

	out := readingJSON("bus-7", vcp.InputSource, fv)

	assert.Equal(t, "0x60", out.Code)
	assert.Equal(t, "DisplayPort-1", out.ValueName)
}

func TestShortError_StructuredUsesMessage(t *testing.T) {
	err := errors.New(errors.ErrExec, "ddcutil failed", "Check the cable and try again")
	assert.Equal(t, "ddcutil failed", shortError(err))
}

func TestShortError_GenericUsesError(t *testing.T) {
	err := fmt.Errorf("plain failure")
	assert.Equal(t, "plain failure", shortError(err))
}

func TestExitIfAllFailed_AllFailed(t *testing.T) {
	readings := []controller.FeatureReading{
		{Monitor: registry.Monitor{ID: "bus-4"}, Err: fmt.Errorf("boom")},
		{Monitor: registry.Monitor{ID: "bus-7"}, Err: fmt.Errorf("boom")},
	}

	err := exitIfAllFailed(readings)
	require.Error(t, err)

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)
}

func TestExitIfAllFailed_PartialSuccessIsClean(t *testing.T) {
	readings := []controller.FeatureReading{
		{Monitor: registry.Monitor{ID: "bus-4"}, Err: fmt.Errorf("boom")},
		{Monitor: registry.Monitor{ID: "bus-7"}},
	}

	assert.NoError(t, exitIfAllFailed(readings))
}

func TestParseFeature_SuggestsSimilar(t *testing.T) {
	_, err := parseFeature("britness")
	require.Error(t, err)

	mErr, ok := err.(*errors.Error)
	require.True(t, ok)
	assert.Contains(t, mErr.Suggestion, "Did you mean")
	assert.Contains(t, mErr.Suggestion, "brightness")
}
