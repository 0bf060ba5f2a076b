package wifi

import (
	"regexp"
	"strings"
)

var (
	// Applied to the first line of a block only, so the name never spans
	// lines.
	portHeaderPattern = regexp.MustCompile(`^Hardware Port:\s([A-Za-z0-9\s-]*)$`)

	// Matches the header line too, which yields a "Hardware Port" attribute.
	attributePattern = regexp.MustCompile(`^([A-Za-z\s-]*):\s([A-Za-z:0-9\s/-]*)`)

	// SSIDs with digits or other punctuation are cut short at the first
	// character outside the class.
	networkPattern = regexp.MustCompile(`^[A-Za-z\s-]*:\s([A-Za-z.'\s_-]*)`)
)

// ParseHardwarePorts turns -listallhardwareports output into an Inventory.
// Blocks are separated by a blank line and must start with a
// "Hardware Port: <name>" line; anything else is skipped.
func ParseHardwarePorts(stdout string) Inventory {
	inv := Inventory{}

	stdout = strings.TrimSpace(stdout)
	if stdout == "" {
		return inv
	}

	for _, block := range strings.Split(stdout, "\n\n") {
		lines := strings.Split(block, "\n")
		header := portHeaderPattern.FindStringSubmatch(strings.TrimSuffix(lines[0], "\r"))
		if header == nil {
			continue
		}

		attrs := Attributes{}
		for _, line := range lines {
			if m := attributePattern.FindStringSubmatch(strings.TrimSuffix(line, "\r")); m != nil {
				attrs[m[1]] = m[2]
			}
		}
		inv[header[1]] = attrs
	}

	return inv
}

// ParseNetwork extracts the network name from -getairportnetwork output,
// e.g. "Current Wi-Fi Network: HomeNet". The bool is false when the
// output has no "<label>: <value>" prefix.
func ParseNetwork(stdout string) (string, bool) {
	m := networkPattern.FindStringSubmatch(stdout)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
