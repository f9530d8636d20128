package logger

// Logger exposes the severity levels used across the solver. Per-candidate
// search detail goes to Debug, accepted improvements and run summaries to
// Info, degraded-but-recoverable conditions to Warn and rejected operator
// parameters to Error. Concrete backends live under infra/logger.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw carries structured fields alongside the message.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
