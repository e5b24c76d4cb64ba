package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	e.AddrIPv4 = v4
	e.AddrIPv6 = v6
	e.Text = txt
	return e
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name:     "valid backend with IPv4",
			entry:    entry("campuspass-mock", "devbox.local.", 8787, []net.IP{net.ParseIP("192.168.1.20")}, nil, TXTRecords("1.0.0")...),
			wantIP:   "192.168.1.20",
			wantPort: 8787,
		},
		{
			name:     "no port defaults",
			entry:    entry("campuspass-mock", "devbox.local.", 0, []net.IP{net.ParseIP("10.0.0.5")}, nil),
			wantIP:   "10.0.0.5",
			wantPort: DefaultPort,
		},
		{
			name:     "IPv6 only",
			entry:    entry("campuspass-mock", "devbox.local.", 8787, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantIP:   "fe80::1",
			wantPort: 8787,
		},
		{
			name:     "prefers IPv4",
			entry:    entry("campuspass-mock", "devbox.local.", 8787, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}),
			wantIP:   "192.168.1.50",
			wantPort: 8787,
		},
		{
			name:    "no address",
			entry:   entry("campuspass-mock", "devbox.local.", 8787, nil, nil),
			wantNil: true,
		},
		{
			name:    "unknown api version",
			entry:   entry("campuspass-mock", "devbox.local.", 8787, []net.IP{net.ParseIP("192.168.1.20")}, nil, "api=v9"),
			wantNil: true,
		},
		{
			name:    "empty instance",
			entry:   entry("", "devbox.local.", 8787, []net.IP{net.ParseIP("192.168.1.20")}, nil),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if backend != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", backend)
				}
				return
			}
			if backend == nil {
				t.Fatal("parseServiceEntry() = nil, want backend")
			}
			if backend.IP != tt.wantIP {
				t.Errorf("backend.IP = %v, want %v", backend.IP, tt.wantIP)
			}
			if backend.Port != tt.wantPort {
				t.Errorf("backend.Port = %v, want %v", backend.Port, tt.wantPort)
			}
			if time.Since(backend.DiscoveredAt) > time.Second {
				t.Errorf("backend.DiscoveredAt is not recent: %v", backend.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	e := entry("campuspass-mock", "devbox.local.", 8787, []net.IP{net.ParseIP("192.168.1.20")}, nil,
		"api=v1", "version=1.2.0", "flag")

	backend := parseServiceEntry(e)
	if backend == nil {
		t.Fatal("parseServiceEntry() = nil, want backend")
	}
	if backend.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", backend.Version)
	}
	if v, ok := backend.Metadata["flag"]; !ok || v != "" {
		t.Errorf("key without value should map to empty string, got %q (present=%v)", v, ok)
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
