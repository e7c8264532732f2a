package domain

// BuildStatus represents the lifecycle state of one config's build.
type BuildStatus string

const (
	// BuildStatusPending indicates the build is waiting for a free worker.
	BuildStatusPending BuildStatus = "pending"
	// BuildStatusRunning indicates the driver or hook is executing.
	BuildStatusRunning BuildStatus = "running"
	// BuildStatusCompleted indicates the driver and hook finished successfully.
	BuildStatusCompleted BuildStatus = "completed"
	// BuildStatusFailed indicates the driver or hook failed.
	BuildStatusFailed BuildStatus = "failed"
	// BuildStatusCached indicates the build was skipped because its fingerprint was unchanged.
	BuildStatusCached BuildStatus = "cached"
)

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
