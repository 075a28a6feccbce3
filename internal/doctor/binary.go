package doctor

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// DDCUtilCheck verifies the ddcutil binary is installed and reports its
// version.
type DDCUtilCheck struct {
	// Binary is the configured command name or path.
	Binary string
}

func (c *DDCUtilCheck) Name() string     { return "ddcutil_binary" }
func (c *DDCUtilCheck) Category() string { return "DEPENDENCIES" }

func (c *DDCUtilCheck) Run() CheckResult {
	binary := c.Binary
	if binary == "" {
		binary = "ddcutil"
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s not found in PATH", binary),
			Suggestion: "Install ddcutil: apt install ddcutil (Debian/Ubuntu), dnf install ddcutil (Fedora), or pacman -S ddcutil (Arch)",
		}
	}

	output, err := exec.Command(path, "--version").Output()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("%s found (version unknown)", binary),
		}
	}

	version := parseDDCUtilVersion(string(output))
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("ddcutil %s (%s)", version, path),
	}
}

// ElevationCheck verifies the privilege escalation command is available.
type ElevationCheck struct {
	// Command is the configured elevation wrapper.
	Command string
	// Enabled mirrors the config; a disabled elevation setup is not an issue.
	Enabled bool
}

func (c *ElevationCheck) Name() string     { return "elevation_command" }
func (c *ElevationCheck) Category() string { return "DEPENDENCIES" }

func (c *ElevationCheck) Run() CheckResult {
	if !c.Enabled {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Elevation disabled in config",
		}
	}

	command := c.Command
	if command == "" {
		command = "pkexec"
	}

	path, err := exec.LookPath(command)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s not found in PATH", command),
			Suggestion: "Install polkit for elevation prompts, or add yourself to the i2c group so elevation isn't needed",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s found (%s)", command, path),
	}
}

// parseDDCUtilVersion extracts the version from ddcutil --version output.
func parseDDCUtilVersion(output string) string {
	// First line looks like: "ddcutil 1.4.1"
	re := regexp.MustCompile(`ddcutil\s+(\d+\.\d+\.?\d*)`)
	matches := re.FindStringSubmatch(output)
	if len(matches) >= 2 {
		return matches[1]
	}

	// Fallback: any version-like pattern on the first line
	re = regexp.MustCompile(`(\d+\.\d+\.?\d*)`)
	matches = re.FindStringSubmatch(strings.Split(output, "\n")[0])
	if len(matches) >= 1 {
		return matches[1]
	}

	return "unknown"
}
