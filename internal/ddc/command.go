package ddc

import (
	"strconv"
	"time"

	"github.com/dwaters/monctl/internal/vcp"
)

// Timeout classes for ddcutil invocations. Feature reads and writes touch a
// single known display; detection and capability scans probe every I2C bus
// and take much longer.
const (
	DefaultOpTimeout   = 10 * time.Second
	DefaultScanTimeout = 30 * time.Second
)

// DetectArgs builds the argument list for monitor discovery.
func DetectArgs() []string {
	return []string{"detect", "--terse"}
}

// GetVCPArgs builds the argument list for reading one or more features from
// a display in a single invocation.
func GetVCPArgs(display int, codes ...vcp.Code) []string {
	args := make([]string, 0, len(codes)+4)
	args = append(args, "getvcp")
	for _, code := range codes {
		args = append(args, code.String())
	}
	args = append(args, "--display", strconv.Itoa(display), "--terse")
	return args
}

// SetVCPArgs builds the argument list for writing a feature value.
func SetVCPArgs(display int, code vcp.Code, value uint16) []string {
	return []string{
		"setvcp", code.String(), strconv.Itoa(int(value)),
		"--display", strconv.Itoa(display),
	}
}

// CapabilitiesArgs builds the argument list for querying a display's
// capabilities string.
func CapabilitiesArgs(display int) []string {
	return []string{"capabilities", "--display", strconv.Itoa(display)}
}
