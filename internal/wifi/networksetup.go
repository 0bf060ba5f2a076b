package wifi

import (
	"context"
	"strings"

	"github.com/strct-org/strct-netsetup/internal/errs"
	"github.com/strct-org/strct-netsetup/internal/executil"
	"github.com/strct-org/strct-netsetup/internal/logging"
)

const (
	OpDevices      errs.Op = "wifi.Devices"
	OpNetwork      errs.Op = "wifi.Network"
	OpSetPower     errs.Op = "wifi.SetPower"
	OpConnect      errs.Op = "wifi.Connect"
	OpComputerName errs.Op = "wifi.ComputerName"
)

// commander is the part of executil.Runner this package uses.
type commander interface {
	Run(ctx context.Context, args ...string) (*executil.Result, error)
}

// NetworkSetup drives the macOS networksetup utility. Every call starts a
// fresh process; nothing is cached between calls.
type NetworkSetup struct {
	cmd commander
	log *logging.Logger
}

func New(cmd commander, log *logging.Logger) *NetworkSetup {
	return &NetworkSetup{cmd: cmd, log: log.With("wifi")}
}

func (n *NetworkSetup) Devices(ctx context.Context) (Inventory, error) {
	res, err := n.cmd.Run(ctx, "-listallhardwareports")
	if err != nil {
		return nil, errs.E(OpDevices, err)
	}
	return ParseHardwarePorts(res.Stdout), nil
}

// WifiDevice lists the hardware ports and returns the Wi-Fi entry. Each
// call lists again; callers wanting one snapshot should keep the result.
func (n *NetworkSetup) WifiDevice(ctx context.Context) (Attributes, bool, error) {
	inv, err := n.Devices(ctx)
	if err != nil {
		return nil, false, err
	}
	attrs, ok := inv[WiFiPort]
	return attrs, ok, nil
}

// Network returns the name of the network device is associated with.
func (n *NetworkSetup) Network(ctx context.Context, device string) (string, bool, error) {
	if device == "" {
		n.log.Errorf("No device given.")
		return "", false, nil
	}

	res, err := n.cmd.Run(ctx, "-getairportnetwork", device)
	if err != nil {
		return "", false, errs.E(OpNetwork, err)
	}
	if res.Stdout == "" {
		return "", false, nil
	}

	n.log.Infof("%s", strings.TrimSpace(res.Stdout))
	name, ok := ParseNetwork(res.Stdout)
	return name, ok, nil
}

// SetPower turns the radio of device on or off. Only a positive exit code
// counts as failure.
func (n *NetworkSetup) SetPower(ctx context.Context, device string, on bool) (bool, error) {
	if device == "" {
		n.log.Errorf("Please provide an airport device to set power on.")
		return false, nil
	}

	power := "Off"
	if on {
		power = "On"
	}

	n.log.Infof("Turning %s power for device %s", power, device)
	res, err := n.cmd.Run(ctx, "-setairportpower", device, power)
	if err != nil {
		return false, errs.E(OpSetPower, err)
	}
	if out := strings.TrimSpace(res.Stdout); out != "" {
		n.log.Infof("%s", out)
	}

	if res.ExitCode > 0 {
		n.log.Errorf("Unable to turn %s airport device %s (exit code %d)", power, device, res.ExitCode)
		return false, nil
	}
	return true, nil
}

func (n *NetworkSetup) PowerOn(ctx context.Context, device string) (bool, error) {
	return n.SetPower(ctx, device, true)
}

func (n *NetworkSetup) PowerOff(ctx context.Context, device string) (bool, error) {
	return n.SetPower(ctx, device, false)
}

// Connect joins network on device. networksetup exits 0 even when the join
// fails, so success is judged by the absence of "Failed" in stdout.
func (n *NetworkSetup) Connect(ctx context.Context, device, network, password string) (bool, error) {
	n.log.Infof("Joining network %s on device %s", network, device)

	ctx = executil.WithSecret(ctx, password)
	res, err := n.cmd.Run(ctx, "-setairportnetwork", device, network, password)
	if err != nil {
		return false, errs.E(OpConnect, err)
	}

	if res.Stdout != "" && strings.Contains(res.Stdout, "Failed") {
		n.log.Errorf("%s", strings.TrimSpace(res.Stdout))
		return false, nil
	}
	return true, nil
}

func (n *NetworkSetup) ComputerName(ctx context.Context) (string, error) {
	res, err := n.cmd.Run(ctx, "-getcomputername")
	if err != nil {
		return "", errs.E(OpComputerName, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}
