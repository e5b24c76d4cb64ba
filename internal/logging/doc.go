// Package logging provides structured logging for campuspass and its mock
// backend.
//
// This package wraps a global zap logger with convenience functions. The
// logger is silent until initialized with a level, so CLI commands and the
// TUI produce no stray output by default.
//
// # Log Levels
//
//   - Debug: request/response detail, screen changes, breakpoint resolution
//   - Info: served requests, inbox stream connects, one-time codes issued
//   - Warn: failed requests, rejected input at the backend
//   - Error: startup failures
//
// # Configuration
//
// The level comes from the --log-level flag or the CAMPUSPASS_LOG_LEVEL
// environment variable. The TUI writes to a file so log lines never land on
// the alternate screen:
//
//	if err := logging.InitializeWithOptions(logging.Options{
//	    Level: "debug",
//	    File:  filepath.Join(dir, "campuspass.log"),
//	}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The mock backend logs to stdout:
//
//	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, status, elapsed)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use once initialized.
package logging
