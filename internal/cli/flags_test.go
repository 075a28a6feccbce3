package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		want    time.Duration
		wantErr bool
	}{
		{
			name:    "empty string returns zero",
			flag:    "",
			want:    0,
			wantErr: false,
		},
		{
			name:    "valid seconds",
			flag:    "5s",
			want:    5 * time.Second,
			wantErr: false,
		},
		{
			name:    "valid minutes",
			flag:    "2m",
			want:    2 * time.Minute,
			wantErr: false,
		},
		{
			name:    "valid milliseconds",
			flag:    "500ms",
			want:    500 * time.Millisecond,
			wantErr: false,
		},
		{
			name:    "valid complex duration",
			flag:    "1m30s",
			want:    90 * time.Second,
			wantErr: false,
		},
		{
			name:    "bare number returns error",
			flag:    "5",
			wantErr: true,
		},
		{
			name:    "invalid string returns error",
			flag:    "fast",
			wantErr: true,
		},
		{
			name:    "negative duration returns error",
			flag:    "-5s",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeout(tt.flag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddCommonFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := &CommonFlags{}

	AddCommonFlags(cmd, flags)

	// Verify flags are registered
	monitorFlag := cmd.Flags().Lookup("monitor")
	require.NotNil(t, monitorFlag, "monitor flag should be registered")
	assert.Equal(t, "", monitorFlag.DefValue)
	assert.Equal(t, "m", monitorFlag.Shorthand)

	timeoutFlag := cmd.Flags().Lookup("timeout")
	require.NotNil(t, timeoutFlag, "timeout flag should be registered")
	assert.Equal(t, "", timeoutFlag.DefValue)
}

func TestAddCommonFlags_Values(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := &CommonFlags{}

	AddCommonFlags(cmd, flags)

	// Set flag values
	err := cmd.Flags().Set("monitor", "bus-4")
	require.NoError(t, err)
	assert.Equal(t, "bus-4", flags.Monitor)

	err = cmd.Flags().Set("timeout", "10s")
	require.NoError(t, err)
	assert.Equal(t, "10s", flags.Timeout)
}

func TestApplyTimeout_SetsWhenPresent(t *testing.T) {
	var applied time.Duration

	err := applyTimeout(CommonFlags{Timeout: "15s"}, func(d time.Duration) { applied = d })
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, applied)
}

func TestApplyTimeout_SkipsWhenEmpty(t *testing.T) {
	called := false

	err := applyTimeout(CommonFlags{}, func(d time.Duration) { called = true })
	require.NoError(t, err)
	assert.False(t, called, "empty flag should leave the config value alone")
}

func TestApplyTimeout_PropagatesParseError(t *testing.T) {
	called := false

	err := applyTimeout(CommonFlags{Timeout: "soon"}, func(d time.Duration) { called = true })
	assert.Error(t, err)
	assert.False(t, called)
}
