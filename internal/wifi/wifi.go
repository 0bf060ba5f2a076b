package wifi

import "context"

// WiFiPort is the hardware port name networksetup uses for the radio.
const WiFiPort = "Wi-Fi"

// Attributes maps an attribute name ("Device", "Ethernet Address") to its
// value for one hardware port.
type Attributes map[string]string

// Inventory maps hardware port names to their attributes. It is rebuilt
// from scratch on every query.
type Inventory map[string]Attributes

// Provider is everything the CLI needs from the host's network setup.
// Boolean results report whether the operation succeeded; errors are
// reserved for failures to run the utility at all.
type Provider interface {
	Devices(ctx context.Context) (Inventory, error)
	WifiDevice(ctx context.Context) (Attributes, bool, error)
	Network(ctx context.Context, device string) (string, bool, error)
	SetPower(ctx context.Context, device string, on bool) (bool, error)
	PowerOn(ctx context.Context, device string) (bool, error)
	PowerOff(ctx context.Context, device string) (bool, error)
	Connect(ctx context.Context, device, network, password string) (bool, error)
	ComputerName(ctx context.Context) (string, error)
}
