package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type campuspass backends advertise
	ServiceType = "_campuspass._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for backend discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is used when an advertisement carries no port
	DefaultPort = 8787

	// APIVersion is the TXT "api" value this client understands
	APIVersion = "v1"
)

// TXTRecords returns the TXT records a backend should advertise.
func TXTRecords(version string) []string {
	return []string{"api=" + APIVersion, "version=" + version, "path=/"}
}

// Scanner handles mDNS backend discovery
type Scanner struct {
	// Timeout is the maximum time to wait for backends
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan collects every backend that answers before the timeout or ctx ends.
func (s *Scanner) Scan(ctx context.Context) ([]*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu       sync.Mutex
		backends []*Backend
		seen     = make(map[string]bool)
		done     = make(chan struct{})
	)

	go func() {
		defer close(done)
		for entry := range entries {
			backend := parseServiceEntry(entry)
			if backend == nil {
				continue
			}
			mu.Lock()
			if !seen[backend.Instance] {
				seen[backend.Instance] = true
				backends = append(backends, backend)
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// zeroconf closes entries once the browse context ends
	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
	}

	mu.Lock()
	defer mu.Unlock()
	out := make([]*Backend, len(backends))
	copy(out, backends)
	return out, nil
}

// First returns the first backend to answer.
func (s *Scanner) First(ctx context.Context) (*Backend, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Backend, 1)

	go func() {
		for entry := range entries {
			if backend := parseServiceEntry(entry); backend != nil {
				select {
				case found <- backend:
				default:
				}
				cancel()
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case backend := <-found:
		return backend, nil
	case <-ctx.Done():
		select {
		case backend := <-found:
			return backend, nil
		default:
		}
		return nil, fmt.Errorf("no campuspass backend found within %s", s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf service entry to a Backend.
// Returns nil for entries without an address or with an unknown API version.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Backend {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	if api, ok := metadata["api"]; ok && api != APIVersion {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	return &Backend{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Version:      metadata["version"],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// ScanForBackends is a convenience function to scan with a custom timeout
func ScanForBackends(ctx context.Context, timeout time.Duration) ([]*Backend, error) {
	scanner := NewScanner()
	if timeout > 0 {
		scanner.Timeout = timeout
	}
	return scanner.Scan(ctx)
}
