package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/lanscan/internal/logging"
)

const (
	// DefaultScanSeconds is the countdown length for a session.
	DefaultScanSeconds = 30

	// defaultTickInterval is the wait between countdown ticks.
	defaultTickInterval = time.Second
)

// Config configures a scan session.
type Config struct {
	// Backend creates the discovery daemon for each session. Required.
	Backend BackendFactory

	// Notifier receives outbound notifications. Nil discards them.
	Notifier Notifier

	// ScanSeconds is the countdown duration in seconds. Defaults to
	// DefaultScanSeconds when zero.
	ScanSeconds int

	// TickInterval is the wait between countdown ticks. Defaults to one
	// second when zero. Shorter intervals are intended for tests.
	TickInterval time.Duration
}

// Session is the scan session controller: an idle/scanning state machine
// coordinating the discovery backend, one consumer goroutine per service
// category, and the countdown that stops the session automatically.
//
// Start and Stop never block on consumer or countdown completion; they
// return once their own setup or teardown step finishes.
type Session struct {
	newBackend  BackendFactory
	notifier    Notifier
	scanSeconds int
	tick        time.Duration

	registry *Registry
	seen     *dedupSet

	// mu guards the control-path state below. It is never held across a
	// backend call or a notification emission.
	mu        sync.Mutex
	scanning  bool
	backend   Backend
	cancel    context.CancelFunc
	startTime time.Time
}

// NewSession creates a session in the idle state.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Backend == nil {
		return nil, errors.New("scan: Config.Backend is required")
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}
	scanSeconds := cfg.ScanSeconds
	if scanSeconds <= 0 {
		scanSeconds = DefaultScanSeconds
	}
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = defaultTickInterval
	}
	return &Session{
		newBackend:  cfg.Backend,
		notifier:    notifier,
		scanSeconds: scanSeconds,
		tick:        tick,
		registry:    NewRegistry(),
		seen:        newDedupSet(),
	}, nil
}

// Start begins a new scan session. Calling Start while already scanning is a
// no-op success and leaves the registry untouched. Otherwise the previous
// session's devices and dedup history are discarded, the discovery daemon is
// created, one consumer is spawned per category that browses successfully,
// and the countdown starts. Start returns as soon as setup completes.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		logging.Info("scan already in progress")
		return nil
	}
	s.scanning = true
	// There should be no live countdown here; cancel defensively.
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	logging.Info("starting LAN scan")
	s.registry.Clear()
	s.seen.clear()

	backend, err := s.newBackend()
	if err != nil {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
		logging.Error("failed to create discovery daemon", zap.Error(err))
		return newDaemonInitError(err)
	}

	start := time.Now()
	s.mu.Lock()
	s.backend = backend
	s.startTime = start
	s.mu.Unlock()

	for _, category := range Categories() {
		logging.Debug("browsing service category", zap.String("category", category))
		events, err := backend.Browse(category)
		if err != nil {
			logging.Error("failed to browse category",
				zap.Error(newBrowseError(category, err)),
			)
			continue
		}
		go s.consume(category, events, start)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
	go s.runCountdown(ctx)

	return nil
}

// Stop ends the current session. Calling Stop while idle is a no-op success.
// Otherwise the countdown is cancelled and the discovery daemon is shut down,
// which closes the browse streams and lets the consumers drain out. The
// session is idle when Stop returns even if the shutdown itself failed.
func (s *Session) Stop() error {
	s.mu.Lock()
	if !s.scanning {
		s.mu.Unlock()
		logging.Info("scan is not running")
		return nil
	}
	s.scanning = false
	cancel := s.cancel
	s.cancel = nil
	backend := s.backend
	s.backend = nil
	s.mu.Unlock()

	logging.Info("stopping LAN scan")

	if cancel != nil {
		cancel()
	}

	if backend != nil {
		if err := backend.Shutdown(); err != nil {
			logging.Error("failed to shut down discovery daemon", zap.Error(err))
			return newDaemonShutdownError(err)
		}
		logging.Info("discovery daemon shut down")
		s.notifyStopped()
	}
	return nil
}

// IsScanning reports whether a scan is currently in progress.
func (s *Session) IsScanning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scanning
}

// Devices returns an independent snapshot of all devices discovered in the
// current session. Order is unspecified.
func (s *Session) Devices() []Device {
	return s.registry.Devices()
}

func (s *Session) notifyDevice(device Device) {
	if err := s.notifier.DeviceFound(device); err != nil {
		logging.Warn("failed to deliver new-device notification",
			zap.Error(newNotificationError(err)),
		)
	}
}

func (s *Session) notifyTick(secondsLeft int) {
	if err := s.notifier.Tick(secondsLeft); err != nil {
		logging.Warn("failed to deliver scan-tick notification",
			zap.Error(newNotificationError(err)),
		)
	}
}

func (s *Session) notifyStopped() {
	if err := s.notifier.Stopped(); err != nil {
		logging.Warn("failed to deliver scan-stopped notification",
			zap.Error(newNotificationError(err)),
		)
	}
}
