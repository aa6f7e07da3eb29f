package scan

import "errors"

// Notifier receives outbound scan notifications bound for the host
// application. Delivery failures are logged by the session and never
// propagated to the operation that triggered them, so implementations may
// return errors freely. Implementations should not block.
type Notifier interface {
	// DeviceFound delivers a full device snapshot after each admitted
	// resolution, not a delta.
	DeviceFound(device Device) error

	// Tick delivers the remaining scan time, counting down to 1.
	Tick(secondsLeft int) error

	// Stopped signals that the session has ended.
	Stopped() error
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) DeviceFound(Device) error { return nil }
func (NopNotifier) Tick(int) error           { return nil }
func (NopNotifier) Stopped() error           { return nil }

// MultiNotifier fans out every notification to all listed notifiers. Each
// notifier is invoked even when an earlier one fails; failures are joined.
type MultiNotifier []Notifier

func (m MultiNotifier) DeviceFound(device Device) error {
	var errs []error
	for _, n := range m {
		if err := n.DeviceFound(device); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiNotifier) Tick(secondsLeft int) error {
	var errs []error
	for _, n := range m {
		if err := n.Tick(secondsLeft); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiNotifier) Stopped() error {
	var errs []error
	for _, n := range m {
		if err := n.Stopped(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
