package wifi

import (
	"context"
	"fmt"
)

// MockWiFi is an in-memory Provider for dev mode and non-darwin hosts.
type MockWiFi struct {
	Ports    Inventory
	Powered  map[string]bool
	Current  map[string]string
	Known    map[string]string // network name -> password
	HostName string
}

// NewMock returns a MockWiFi with one Wi-Fi port (en0), powered on and
// associated with Test_Net.
func NewMock() *MockWiFi {
	return &MockWiFi{
		Ports: Inventory{
			WiFiPort: {"Hardware Port": WiFiPort, "Device": "en0", "Ethernet Address": "02:00:00:00:00:01"},
			"Thunderbolt Bridge": {"Hardware Port": "Thunderbolt Bridge", "Device": "bridge0", "Ethernet Address": "02:00:00:00:00:02"},
		},
		Powered:  map[string]bool{"en0": true},
		Current:  map[string]string{"en0": "Test_Net"},
		Known:    map[string]string{"Test_Net": "password"},
		HostName: "mock-mac",
	}
}

func (m *MockWiFi) Devices(_ context.Context) (Inventory, error) {
	inv := make(Inventory, len(m.Ports))
	for port, attrs := range m.Ports {
		cp := make(Attributes, len(attrs))
		for k, v := range attrs {
			cp[k] = v
		}
		inv[port] = cp
	}
	return inv, nil
}

func (m *MockWiFi) WifiDevice(ctx context.Context) (Attributes, bool, error) {
	inv, _ := m.Devices(ctx)
	attrs, ok := inv[WiFiPort]
	return attrs, ok, nil
}

func (m *MockWiFi) Network(_ context.Context, device string) (string, bool, error) {
	if device == "" || !m.Powered[device] {
		return "", false, nil
	}
	name, ok := m.Current[device]
	return name, ok, nil
}

func (m *MockWiFi) SetPower(_ context.Context, device string, on bool) (bool, error) {
	if !m.hasDevice(device) {
		return false, nil
	}
	fmt.Printf("[MOCK] Power %v for %s\n", on, device)
	m.init()
	m.Powered[device] = on
	if !on {
		delete(m.Current, device)
	}
	return true, nil
}

func (m *MockWiFi) PowerOn(ctx context.Context, device string) (bool, error) {
	return m.SetPower(ctx, device, true)
}

func (m *MockWiFi) PowerOff(ctx context.Context, device string) (bool, error) {
	return m.SetPower(ctx, device, false)
}

func (m *MockWiFi) Connect(_ context.Context, device, network, password string) (bool, error) {
	if !m.hasDevice(device) || !m.Powered[device] {
		return false, nil
	}
	if want, ok := m.Known[network]; !ok || want != password {
		return false, nil
	}
	fmt.Printf("[MOCK] Connected %s to %s\n", device, network)
	m.init()
	m.Current[device] = network
	return true, nil
}

func (m *MockWiFi) ComputerName(_ context.Context) (string, error) {
	return m.HostName, nil
}

func (m *MockWiFi) init() {
	if m.Powered == nil {
		m.Powered = map[string]bool{}
	}
	if m.Current == nil {
		m.Current = map[string]string{}
	}
}

func (m *MockWiFi) hasDevice(device string) bool {
	if device == "" {
		return false
	}
	for _, attrs := range m.Ports {
		if attrs["Device"] == device {
			return true
		}
	}
	return false
}
