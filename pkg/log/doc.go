// Package log captures protocol events of a purifier session.
//
// It is separate from operational logging (slog). A protocol log is a
// machine-readable trace of every round trip, envelope operation and
// session state change, written for later inspection with purifier-log.
//
//	// Console, while developing
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// File
//	fl, _ := log.NewFileLogger("/var/log/purifier/session.plog")
//	cfg.ProtocolLogger = fl
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Layers
//
//   - Transport: HTTP round trips (method, path, sizes, status, duration)
//   - Envelope: encrypt/decrypt of bodies (operation, parameter names)
//   - Session: connect/disconnect transitions
//
// Session keys and parameter values are never recorded. Envelope events
// carry parameter names only.
//
// # File Format
//
// Files are a stream of CBOR-encoded events with integer keys, usually
// named *.plog.
package log
