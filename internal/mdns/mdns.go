package mdns

import (
	"context"
	"fmt"
	"net"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/lanscan/internal/logging"
	"github.com/muurk/lanscan/internal/scan"
)

// ServiceDomain is the mDNS domain browsed for every category.
const ServiceDomain = "local."

// Daemon is a zeroconf-backed discovery backend. One daemon serves one scan
// session: Browse may be called once per category, and Shutdown cancels all
// active browses, closing their event streams.
type Daemon struct {
	resolver *zeroconf.Resolver
	ctx      context.Context
	cancel   context.CancelFunc
}

var _ scan.Backend = (*Daemon)(nil)

// NewDaemon creates a discovery daemon bound to the default network
// interfaces. Matches scan.BackendFactory when wrapped:
//
//	scan.Config{Backend: func() (scan.Backend, error) { return mdns.NewDaemon() }}
func NewDaemon() (*Daemon, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		resolver: resolver,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Browse starts browsing the given service category and returns a stream of
// resolved advertisements. The stream closes when the daemon shuts down.
func (d *Daemon) Browse(category string) (<-chan scan.Event, error) {
	entries := make(chan *zeroconf.ServiceEntry)
	events := make(chan scan.Event)

	go func() {
		defer close(events)
		for entry := range entries {
			events <- entryToEvent(entry)
		}
		logging.Debug("mDNS browse finished", zap.String("category", category))
	}()

	if err := d.resolver.Browse(d.ctx, category, ServiceDomain, entries); err != nil {
		// The resolver never touched the channel; close it so the
		// converter goroutine exits.
		close(entries)
		return nil, fmt.Errorf("failed to browse for %q: %w", category, err)
	}

	return events, nil
}

// Shutdown cancels all active browses. The zeroconf resolver closes each
// entry channel once its browse context ends, which closes the corresponding
// event stream.
func (d *Daemon) Shutdown() error {
	d.cancel()
	return nil
}

// entryToEvent converts a zeroconf service entry into a backend event. All
// advertised addresses are passed along as candidates; address selection is
// the consumer's concern.
func entryToEvent(entry *zeroconf.ServiceEntry) scan.Event {
	addrs := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	addrs = append(addrs, entry.AddrIPv4...)
	addrs = append(addrs, entry.AddrIPv6...)

	return scan.Event{
		Name:  entry.ServiceInstanceName(),
		Addrs: addrs,
		Port:  uint16(entry.Port),
	}
}
