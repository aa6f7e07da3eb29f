// Package scan implements the LAN media-device discovery session.
//
// A session browses a fixed set of mDNS service categories, merges repeated
// advertisements into one record per device address, and stops automatically
// after a countdown (30 seconds by default) unless stopped manually first.
//
// # Session Lifecycle
//
// A Session is either idle or scanning. Start flips it to scanning, discards
// the previous session's devices, creates a fresh discovery backend, spawns
// one consumer goroutine per category and one countdown goroutine, then
// returns without waiting for results. Stop (manual or countdown-triggered)
// flips back to idle and shuts the backend down, which closes the event
// streams and drains the consumers. Both calls are idempotent.
//
// # Deduplication and Merging
//
// Within one session each (address, category) pair is admitted once; repeat
// advertisements are dropped. Distinct categories resolving to the same
// address merge into a single Device whose DiscoveryTimeMs is the minimum
// elapsed time across all merged services.
//
// # Notifications
//
// The host observes a session through a Notifier: a full device snapshot
// after each admitted resolution, a tick per countdown second, and a final
// stopped signal. Delivery failures are logged and never fail the operation
// that triggered them.
//
// # Thread Safety
//
// All Session methods are safe for concurrent use. Shared state is guarded
// by locks held only for single reads or mutations, never across a backend
// call or a notification emission.
package scan
