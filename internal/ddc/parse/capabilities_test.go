package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/vcp"
)

const capabilitiesReport = `Model: U2415
MCCS version: 2.1
Commands:
   Command: 01 (VCP Request)
   Command: 02 (VCP Response)
   Command: 03 (VCP Set)
VCP Features:
   Feature: 02 (New control value)
   Feature: 10 (Brightness)
   Feature: 12 (Contrast)
   Feature: 14 (Select color preset)
      Values:
         01: sRGB
         05: 6500 K
         08: 9300 K
   Feature: 60 (Input Source)
      Values:
         0f: DisplayPort-1
         11: HDMI-1
   Feature: 87 (Sharpness)
`

func TestCapabilities(t *testing.T) {
	caps, err := Capabilities(capabilitiesReport)

	require.NoError(t, err)
	assert.False(t, caps.Empty())

	wantCodes := []vcp.Code{0x02, 0x10, 0x12, 0x14, 0x60, 0x87}
	assert.Equal(t, wantCodes, caps.Codes)

	for _, code := range wantCodes {
		assert.True(t, caps.Supports(code), "should support %s", code)
	}
	assert.False(t, caps.Supports(vcp.Volume))

	assert.Equal(t, []ddc.ValueOption{
		{Value: 0x01, Name: "sRGB"},
		{Value: 0x05, Name: "6500 K"},
		{Value: 0x08, Name: "9300 K"},
	}, caps.Values[vcp.ColorPreset])

	assert.Equal(t, []ddc.ValueOption{
		{Value: 0x0F, Name: "DisplayPort-1"},
		{Value: 0x11, Name: "HDMI-1"},
	}, caps.Values[vcp.InputSource])

	// Continuous features declare no value lists
	assert.Empty(t, caps.Values[vcp.Brightness])
}

func TestCapabilities_InlineValues(t *testing.T) {
	text := `VCP Features:
   Feature: 60 (Input Source)
      Values: 01 03 11 (interpretation unavailable)
`
	caps, err := Capabilities(text)

	require.NoError(t, err)
	require.True(t, caps.Supports(vcp.InputSource))

	// Inline values get default names from the feature table
	assert.Equal(t, []ddc.ValueOption{
		{Value: 0x01, Name: "VGA-1"},
		{Value: 0x03, Name: "DVI-1"},
		{Value: 0x11, Name: "HDMI-1"},
	}, caps.Values[vcp.InputSource])
}

func TestCapabilities_InlineValuesWithoutCommentary(t *testing.T) {
	text := `   Feature: 8D (Audio mute)
      Values: 01 02
`
	caps, err := Capabilities(text)

	require.NoError(t, err)
	assert.Equal(t, []ddc.ValueOption{
		{Value: 0x01, Name: "Mute"},
		{Value: 0x02, Name: "Unmute"},
	}, caps.Values[vcp.AudioMute])
}

func TestCapabilities_NoFeatureBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"unrelated text", "Model: U2415\nMCCS version: 2.1\n"},
		{"raw capability string", "(prot(monitor)type(lcd)model(U2415))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, err := Capabilities(tt.text)

			require.NoError(t, err)
			assert.True(t, caps.Empty(), "capabilities should be unknown, not an error")
		})
	}
}

func TestCapabilities_ValueLinesBeforeAnyFeatureIgnored(t *testing.T) {
	text := `Commands:
   01: VCP Request
   02: VCP Response
VCP Features:
   Feature: 10 (Brightness)
`
	caps, err := Capabilities(text)

	require.NoError(t, err)
	assert.Equal(t, []vcp.Code{0x10}, caps.Codes)
	assert.Empty(t, caps.Values[vcp.Code(0x01)])
	assert.Empty(t, caps.Values[vcp.Code(0x02)])
}

func TestCapabilities_DuplicateFeatureListedOnce(t *testing.T) {
	text := `   Feature: 10 (Brightness)
   Feature: 10 (Brightness)
`
	caps, err := Capabilities(text)

	require.NoError(t, err)
	assert.Equal(t, []vcp.Code{0x10}, caps.Codes)
}

func TestCapabilities_MalformedFeatureHeaderSkipped(t *testing.T) {
	text := `   Feature: zz (Bogus)
      05: stray value
   Feature: 12 (Contrast)
`
	caps, err := Capabilities(text)

	require.NoError(t, err)
	assert.Equal(t, []vcp.Code{0x12}, caps.Codes)
	// The stray value must not attach to anything
	for code, opts := range caps.Values {
		assert.Empty(t, opts, "unexpected values for %s", code)
	}
}
