package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Backend represents a campuspass backend advertising itself on the network
type Backend struct {
	// Instance is the mDNS instance name (e.g., "campuspass-mock")
	Instance string

	// Hostname is the mDNS hostname (e.g., "devbox.local.")
	Hostname string

	// IP is the preferred address, IPv4 when available
	IP string

	// Port is the HTTP port the API listens on
	Port int

	// Version is the backend's advertised build version, if any
	Version string

	// Metadata contains the raw mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the backend was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the backend
func (b *Backend) String() string {
	return fmt.Sprintf("%s (%s) at %s", b.Instance, b.Hostname, b.BaseURL())
}

// BaseURL returns the HTTP base URL for the backend API
func (b *Backend) BaseURL() string {
	return "http://" + net.JoinHostPort(b.IP, strconv.Itoa(b.Port))
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (b *Backend) GetMetadata(key string) string {
	if b.Metadata == nil {
		return ""
	}
	return b.Metadata[key]
}
