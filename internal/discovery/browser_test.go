package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestNewBrowser(t *testing.T) {
	browser := NewBrowser()

	if browser == nil {
		t.Fatal("NewBrowser() = nil, want browser")
	}

	if browser.Service != DefaultService {
		t.Errorf("browser.Service = %v, want %v", browser.Service, DefaultService)
	}

	if browser.Timeout != DefaultBrowseTimeout {
		t.Errorf("browser.Timeout = %v, want %v", browser.Timeout, DefaultBrowseTimeout)
	}
}

func TestBrowser_ZeroValueDefaults(t *testing.T) {
	var browser Browser

	if got := browser.service(); got != DefaultService {
		t.Errorf("service() = %v, want %v", got, DefaultService)
	}

	if got := browser.timeout(); got != DefaultBrowseTimeout {
		t.Errorf("timeout() = %v, want %v", got, DefaultBrowseTimeout)
	}
}

func TestBrowser_parseServiceEntry(t *testing.T) {
	browser := NewBrowser()

	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
	}{
		{
			name: "workstation with IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{
					Instance: "office-nas",
					Service:  "_workstation._tcp",
				},
				HostName: "office-nas.local.",
				Port:     9,
				AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
				Text:     []string{"model=RackStation"},
			},
			wantNil:      false,
			wantInstance: "office-nas",
			wantIP:       "192.168.4.16",
			wantPort:     9,
		},
		{
			name: "hostname without trailing dot",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local",
				Port:     631,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantNil:  false,
			wantIP:   "10.0.0.5",
			wantPort: 631,
		},
		{
			name: "empty hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "",
				Port:     9,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name: "no IP address",
			entry: &zeroconf.ServiceEntry{
				HostName: "ghost.local",
				Port:     9,
				AddrIPv4: []net.IP{},
				AddrIPv6: []net.IP{},
			},
			wantNil: true,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				HostName: "modern.local",
				Port:     22,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
			},
			wantNil:  false,
			wantIP:   "fe80::1",
			wantPort: 22,
		},
		{
			name: "both IPv4 and IPv6 prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "dual.local",
				Port:     9,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
			},
			wantNil:  false,
			wantIP:   "192.168.1.50",
			wantPort: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			neighbor := browser.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if neighbor != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", neighbor)
				}
				return
			}

			if neighbor == nil {
				t.Fatal("parseServiceEntry() = nil, want non-nil neighbor")
			}

			if neighbor.Instance != tt.wantInstance {
				t.Errorf("neighbor.Instance = %v, want %v", neighbor.Instance, tt.wantInstance)
			}

			if neighbor.IP != tt.wantIP {
				t.Errorf("neighbor.IP = %v, want %v", neighbor.IP, tt.wantIP)
			}

			if neighbor.Port != tt.wantPort {
				t.Errorf("neighbor.Port = %v, want %v", neighbor.Port, tt.wantPort)
			}

			if neighbor.Host != tt.entry.HostName {
				t.Errorf("neighbor.Host = %v, want %v", neighbor.Host, tt.entry.HostName)
			}

			// Check that DiscoveredAt is recent (within last second)
			if time.Since(neighbor.DiscoveredAt) > time.Second {
				t.Errorf("neighbor.DiscoveredAt is not recent: %v", neighbor.DiscoveredAt)
			}
		})
	}
}

func TestBrowser_parseServiceEntry_TXT(t *testing.T) {
	browser := NewBrowser()

	entry := &zeroconf.ServiceEntry{
		HostName: "office-nas.local",
		Port:     9,
		AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
		Text:     []string{"model=RackStation", "serial=2041XLR", "flag", "version=1.0"},
	}

	neighbor := browser.parseServiceEntry(entry)
	if neighbor == nil {
		t.Fatal("parseServiceEntry() = nil, want neighbor")
	}

	expectedTXT := map[string]string{
		"model":   "RackStation",
		"serial":  "2041XLR",
		"flag":    "", // Key without value
		"version": "1.0",
	}

	if len(neighbor.TXT) != len(expectedTXT) {
		t.Errorf("neighbor.TXT has %d entries, want %d", len(neighbor.TXT), len(expectedTXT))
	}

	for key, expected := range expectedTXT {
		if actual, ok := neighbor.TXT[key]; !ok {
			t.Errorf("neighbor.TXT missing key %q", key)
		} else if actual != expected {
			t.Errorf("neighbor.TXT[%q] = %q, want %q", key, actual, expected)
		}
	}
}

func TestBrowser_parseServiceEntry_ServiceFallback(t *testing.T) {
	browser := &Browser{Service: "_ssh._tcp"}

	// Entries without a service record inherit the browsed service type
	entry := &zeroconf.ServiceEntry{
		HostName: "bare.local",
		Port:     22,
		AddrIPv4: []net.IP{net.ParseIP("192.168.1.9")},
	}

	neighbor := browser.parseServiceEntry(entry)
	if neighbor == nil {
		t.Fatal("parseServiceEntry() = nil, want neighbor")
	}

	if neighbor.Service != "_ssh._tcp" {
		t.Errorf("neighbor.Service = %v, want %v", neighbor.Service, "_ssh._tcp")
	}
}

func TestSortByHost(t *testing.T) {
	neighbors := []Neighbor{
		{Host: "zebra.local.", IP: "192.168.1.30"},
		{Host: "alpha.local.", IP: "192.168.1.40"},
		{Host: "mango.local.", IP: "192.168.1.20"},
		{Host: "alpha.local.", IP: "192.168.1.10"},
	}

	sortByHost(neighbors)

	wantHosts := []string{"alpha.local.", "alpha.local.", "mango.local.", "zebra.local."}
	for i, want := range wantHosts {
		if neighbors[i].Host != want {
			t.Errorf("neighbors[%d].Host = %v, want %v", i, neighbors[i].Host, want)
		}
	}

	// Same host orders by IP
	if neighbors[0].IP != "192.168.1.10" || neighbors[1].IP != "192.168.1.40" {
		t.Errorf("same-host order = %v, %v, want 192.168.1.10, 192.168.1.40", neighbors[0].IP, neighbors[1].IP)
	}
}
