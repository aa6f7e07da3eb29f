// Package server exposes the scan session to host front-ends.
//
// Control is HTTP:
//
//	POST /api/scan/start   start a session (idempotent)
//	POST /api/scan/stop    stop the session (idempotent)
//	GET  /api/scan/status  {"scanning": bool}
//	GET  /api/devices      snapshot of discovered devices
//
// Events are pushed over a WebSocket at /ws as JSON envelopes:
//
//	{"event":"new-device","device":{...}}
//	{"event":"scan-tick","secondsLeft":12}
//	{"event":"scan-stopped"}
//
// The Hub implements scan.Notifier, so wiring it as the session's notifier
// makes every connected client observe the session live. A slow or dead
// client is dropped; the scan never waits on event delivery beyond the
// write deadline.
package server
