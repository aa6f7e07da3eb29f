// Package logging provides structured logging for lanscan.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used across the scanner, server, and CLI surfaces.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (raw advertisements, address filtering)
//   - Info: Normal operations (session start/stop, admitted devices)
//   - Warn: Non-fatal issues (notification delivery failures)
//   - Error: Fatal issues (daemon startup failures, browse errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("service admitted",
//	    zap.String("ip", "192.168.1.100"),
//	    zap.String("category", "_musc._tcp"),
//	)
//
// # Configuration
//
// Verbosity is controlled at initialization, either explicitly or via the
// LANSCAN_LOG_LEVEL environment variable. With neither set, logging is
// silent, which keeps CLI output clean:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
