package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dwaters/monctl/internal/controller"
	"github.com/dwaters/monctl/internal/ddc"
	"github.com/dwaters/monctl/internal/elevate"
	"github.com/dwaters/monctl/internal/logger"
)

// fakeDDCUtilScript is a stand-in ddcutil that speaks the terse output
// dialect. It keeps written values in FAKE_DDCUTIL_STATE so reads observe
// earlier writes, and refuses unelevated access when FAKE_DDCUTIL_DENY is
// set, which exercises the elevation retry without polkit or hardware.
const fakeDDCUtilScript = `#!/bin/sh
if [ -n "$FAKE_DDCUTIL_DENY" ] && [ -z "$FAKE_DDCUTIL_ELEVATED" ]; then
    echo "ddcutil: /dev/i2c-4: Permission denied" >&2
    exit 1
fi

STATE_DIR="${FAKE_DDCUTIL_STATE:-/tmp}"

cmd="$1"
shift

case "$cmd" in
--version)
    echo "ddcutil 2.1.4"
    ;;
detect)
    printf '%s\n' \
        'Display 1' \
        '   I2C bus:  /dev/i2c-4' \
        '   Monitor:  DEL:DELL U2720Q:ABC123' \
        '' \
        'Display 2' \
        '   I2C bus:  /dev/i2c-5' \
        '   Monitor:  GSM:LG HDR 4K:DEF456'
    ;;
getvcp)
    for arg in "$@"; do
        case "$arg" in
        --*) break ;;
        esac
        code="${arg#0x}"
        statefile="$STATE_DIR/vcp-$code"
        case "$code" in
        10)
            cur=70
            [ -f "$statefile" ] && cur="$(cat "$statefile")"
            echo "VCP 10 C $cur 100"
            ;;
        12)
            cur=75
            [ -f "$statefile" ] && cur="$(cat "$statefile")"
            echo "VCP 12 C $cur 100"
            ;;
        62)
            cur=40
            [ -f "$statefile" ] && cur="$(cat "$statefile")"
            echo "VCP 62 C $cur 100"
            ;;
        60)
            cur=17
            [ -f "$statefile" ] && cur="$(cat "$statefile")"
            printf 'VCP 60 SNC x%x\n' "$cur"
            ;;
        esac
    done
    ;;
setvcp)
    code="${1#0x}"
    echo "$2" > "$STATE_DIR/vcp-$code"
    ;;
capabilities)
    printf '%s\n' \
        'Model: U2720Q' \
        'MCCS version: 2.1' \
        'VCP Features:' \
        '   Feature: 10 (Brightness)' \
        '   Feature: 12 (Contrast)' \
        '   Feature: 60 (Input Source)' \
        '      0f: DisplayPort-1' \
        '      11: HDMI-1' \
        '   Feature: 62 (Audio speaker volume)'
    ;;
*)
    echo "Unrecognized ddcutil command: $cmd" >&2
    exit 1
    ;;
esac
`

// fakePkexecScript forwards to the wrapped command with the elevation
// marker set, standing in for a granted polkit prompt.
const fakePkexecScript = `#!/bin/sh
FAKE_DDCUTIL_ELEVATED=1 exec "$@"
`

// fakePkexecCancelledScript mimics the user dismissing the authentication
// dialog: pkexec exits 126 without running the wrapped command.
const fakePkexecCancelledScript = `#!/bin/sh
echo "Error executing command as another user: Request dismissed" >&2
exit 126
`

// installFakeBinaries writes the fake ddcutil and pkexec scripts into a
// temp directory and points their state at another. Returns the two
// binary paths.
func installFakeBinaries(t *testing.T, pkexecScript string) (ddcutilPath, pkexecPath string) {
	t.Helper()
	binDir := t.TempDir()
	stateDir := t.TempDir()

	ddcutilPath = filepath.Join(binDir, "ddcutil")
	require.NoError(t, os.WriteFile(ddcutilPath, []byte(fakeDDCUtilScript), 0755))

	pkexecPath = filepath.Join(binDir, "pkexec")
	require.NoError(t, os.WriteFile(pkexecPath, []byte(pkexecScript), 0755))

	t.Setenv("FAKE_DDCUTIL_STATE", stateDir)
	return ddcutilPath, pkexecPath
}

// newTestController wires the real runner, session, and controller around
// the fake binaries.
func newTestController(t *testing.T, binary, pkexec string, elevationDisabled bool) (*controller.Controller, *elevate.Session) {
	t.Helper()

	runner := ddc.NewRunner(ddc.Options{
		Binary:  binary,
		Elevate: pkexec,
		Logger:  logger.Noop(),
	})
	session := elevate.NewSession(elevate.Options{
		PreferCached: true,
		Disabled:     elevationDisabled,
		Logger:       logger.Noop(),
	})
	ctrl := controller.New(controller.Options{
		Runner:      runner,
		Session:     session,
		Logger:      logger.Noop(),
		OpTimeout:   5 * time.Second,
		ScanTimeout: 5 * time.Second,
	})
	return ctrl, session
}

// RequireLiveDDC skips the test unless live-hardware testing is opted in
// and a real ddcutil binary is installed.
func RequireLiveDDC(t *testing.T) {
	t.Helper()
	if os.Getenv("MONCTL_TEST_LIVE") == "" {
		t.Skip("Skipping: MONCTL_TEST_LIVE not set (live monitor tests opt-in)")
	}
	if _, err := exec.LookPath("ddcutil"); err != nil {
		t.Skip("Skipping: ddcutil not found in PATH")
	}
}
