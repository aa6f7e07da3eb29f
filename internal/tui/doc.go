// Package tui renders a live terminal view of a scan session: a countdown
// progress bar fed by scan-tick events and a device list fed by new-device
// events, with key bindings to stop, rescan, and quit.
package tui
