// Package mdns adapts the zeroconf mDNS resolver to the discovery backend
// interface consumed by the scan session.
//
// Each scan session gets a fresh Daemon. The daemon browses service
// categories in the "local." domain and converts zeroconf service entries
// into backend events carrying the advertised full name, candidate
// addresses, and port. Shutting the daemon down cancels every active browse,
// which closes the event streams and terminates the session's consumers.
//
// # Network Requirements
//
//   - Multicast support on the network interface
//   - Devices on the same local network segment
//   - Firewall allowing mDNS (UDP port 5353)
package mdns
