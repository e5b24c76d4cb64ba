// Package discovery finds campuspass backends on the local network over
// mDNS.
//
// The mock backend (campuspass-mock) advertises itself as "_campuspass._tcp"
// with TXT records naming the API version it serves. The client browses for
// that service so developers can point the TUI at a backend running on
// another machine without typing its address.
//
// # Usage Example
//
//	backends, err := discovery.ScanForBackends(ctx, 3*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range backends {
//	    fmt.Printf("Found: %s\n", b)
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Backends must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
