package scan

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/lanscan/internal/logging"
)

// consume drains one category's event stream for the lifetime of the
// session. The stream closing (normally a side effect of backend shutdown)
// is the consumer's only exit; it is logged, not an error.
func (s *Session) consume(category string, events <-chan Event, start time.Time) {
	for ev := range events {
		s.handleResolved(category, ev, start)
	}
	logging.Info("category stream closed", zap.String("category", category))
}

// handleResolved admits a single resolved advertisement: address selection,
// dedup, classification, registry merge, new-device notification. Events
// without a usable address are discarded without consuming a dedup entry.
func (s *Session) handleResolved(category string, ev Event, start time.Time) {
	logging.Debug("service resolved",
		zap.String("category", category),
		zap.String("name", ev.Name),
		zap.Int("addresses", len(ev.Addrs)),
	)

	ip, ok := selectIPv4(ev.Addrs)
	if !ok {
		logging.Debug("no usable IPv4 address, discarding",
			zap.String("name", ev.Name),
		)
		return
	}

	ipStr := ip.String()
	if !s.seen.add(ipStr, category) {
		return
	}

	deviceType := ClassifyService(category, ev.Name)
	name := ShortName(ev.Name)
	elapsedMs := uint64(time.Since(start).Milliseconds())

	logging.LogResolved(name, ipStr, ev.Port, category, elapsedMs)

	snapshot := s.registry.Merge(ipStr, name, category, ev.Port, deviceType, elapsedMs)
	s.notifyDevice(snapshot)
}
