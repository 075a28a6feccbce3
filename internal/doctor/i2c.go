package doctor

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/dwaters/monctl/internal/util"
)

// i2cDevGlob matches the I2C device nodes ddcutil talks through.
const i2cDevGlob = "/dev/i2c-*"

// I2CDevicesCheck verifies that I2C device nodes exist at all.
type I2CDevicesCheck struct{}

func (c *I2CDevicesCheck) Name() string     { return "i2c_devices" }
func (c *I2CDevicesCheck) Category() string { return "I2C" }

func (c *I2CDevicesCheck) Run() CheckResult {
	devices, err := filepath.Glob(i2cDevGlob)
	if err != nil || len(devices) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No I2C devices found under /dev",
			Suggestion: "Load the i2c-dev kernel module: sudo modprobe i2c-dev. Add 'i2c-dev' to /etc/modules-load.d/ to make it stick.",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d %s present", len(devices), util.Pluralize(len(devices), "I2C device", "I2C devices")),
	}
}

// I2CAccessCheck verifies the current user can open the I2C devices for
// read/write, which is what ddcutil needs for DDC transactions.
type I2CAccessCheck struct{}

func (c *I2CAccessCheck) Name() string     { return "i2c_access" }
func (c *I2CAccessCheck) Category() string { return "I2C" }

func (c *I2CAccessCheck) Run() CheckResult {
	devices, err := filepath.Glob(i2cDevGlob)
	if err != nil || len(devices) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: "Cannot check access: no I2C devices",
		}
	}

	accessible := 0
	for _, dev := range devices {
		f, err := os.OpenFile(dev, os.O_RDWR, 0)
		if err == nil {
			f.Close()
			accessible++
		}
	}

	switch {
	case accessible == len(devices):
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("Read/write access to all %d %s", len(devices), util.Pluralize(len(devices), "device", "devices")),
		}
	case accessible > 0:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Access to %d of %d I2C devices", accessible, len(devices)),
			Suggestion: "Some buses are restricted. Monitors on those buses will need elevation.",
		}
	default:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No access to any I2C device",
			Suggestion: "Add yourself to the i2c group: sudo usermod -aG i2c $USER (then log out and back in), or rely on elevation prompts.",
		}
	}
}

// I2CGroupCheck verifies the current user's membership in the i2c group,
// the usual way to get unelevated device access.
type I2CGroupCheck struct{}

func (c *I2CGroupCheck) Name() string     { return "i2c_group" }
func (c *I2CGroupCheck) Category() string { return "I2C" }

func (c *I2CGroupCheck) Run() CheckResult {
	grp, err := user.LookupGroup("i2c")
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No i2c group on this system",
			Suggestion: "Installing ddcutil usually creates it (with a udev rule). Without the group, device access needs elevation.",
		}
	}

	u, err := user.Current()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: fmt.Sprintf("Cannot determine current user: %v", err),
		}
	}

	ids, err := u.GroupIds()
	if err == nil {
		for _, id := range ids {
			if id == grp.Gid {
				return CheckResult{
					Name:    c.Name(),
					Status:  StatusPass,
					Message: fmt.Sprintf("User %s is in the i2c group", u.Username),
				}
			}
		}
	}

	return CheckResult{
		Name:       c.Name(),
		Status:     StatusWarn,
		Message:    fmt.Sprintf("User %s is not in the i2c group", u.Username),
		Suggestion: fmt.Sprintf("sudo usermod -aG i2c %s, then log out and back in. Until then elevation prompts cover device access.", u.Username),
	}
}

// NewI2CChecks creates all I2C-related checks.
func NewI2CChecks() []Check {
	return []Check{
		&I2CDevicesCheck{},
		&I2CAccessCheck{},
		&I2CGroupCheck{},
	}
}
