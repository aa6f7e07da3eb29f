package scan

import "net"

// Event is a resolved service advertisement delivered by the discovery
// backend for one category.
type Event struct {
	// Name is the full advertised service name
	// (e.g. "Living Room._musc._tcp.local.").
	Name string

	// Addrs are the candidate addresses the device advertised. May mix
	// IPv4 and IPv6.
	Addrs []net.IP

	// Port is the advertised service port.
	Port uint16
}

// Backend is the network discovery daemon a session consumes. A fresh
// backend is created for every session and shut down when the session stops;
// shutting down closes all browse streams, which is what terminates the
// per-category consumers.
type Backend interface {
	// Browse starts browsing the given service category and returns a
	// stream of resolved advertisements. The stream closes on shutdown.
	Browse(category string) (<-chan Event, error)

	// Shutdown stops the daemon and closes all browse streams.
	Shutdown() error
}

// BackendFactory creates the discovery backend for a new session.
type BackendFactory func() (Backend, error)

// selectIPv4 picks the first non-link-local IPv4 address from addrs.
func selectIPv4(addrs []net.IP) (net.IP, bool) {
	for _, addr := range addrs {
		if v4 := addr.To4(); v4 != nil && !addr.IsLinkLocalUnicast() {
			return v4, true
		}
	}
	return nil, false
}
