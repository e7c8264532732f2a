package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigInvalid is returned when a declaration is missing a required field or carries an invalid value.
	ErrConfigInvalid = zerr.New("invalid build config")

	// ErrPathResolutionFailure is returned when a declared path does not exist on disk.
	ErrPathResolutionFailure = zerr.New("declared path does not exist")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when no declaration or workspace file can be found.
	ErrConfigNotFound = zerr.New("could not find splitter config or workspace file")

	// ErrNoConfigs is returned when discovery yields no declarations.
	ErrNoConfigs = zerr.New("no build configs found")

	// ErrDriverFailed is returned when the external driver exits unsuccessfully.
	ErrDriverFailed = zerr.New("driver failed")

	// ErrHookFailed is returned when a post-compile hook fails.
	ErrHookFailed = zerr.New("post-compile hook failed")

	// ErrUnknownHook is returned when a hook kind has no handler.
	ErrUnknownHook = zerr.New("unknown hook kind")

	// ErrFixtureCopyFailed is returned when a fixture file cannot be copied.
	ErrFixtureCopyFailed = zerr.New("failed to copy fixture")

	// ErrBuildExecutionFailed is returned when one or more config builds fail.
	ErrBuildExecutionFailed = zerr.New("build execution failed")

	// ErrFingerprintFailed is returned when a config fingerprint cannot be computed.
	ErrFingerprintFailed = zerr.New("failed to compute config fingerprint")

	// ErrStoreReadFailed is returned when the build info store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info store")

	// ErrStoreUnmarshalFailed is returned when the build info store cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build info store")

	// ErrStoreMarshalFailed is returned when the build info store cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build info store")

	// ErrStoreWriteFailed is returned when the build info store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info store")

	// ErrCleanFailed is returned when build state or outputs cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start watcher")

	// ErrUnsupportedFormat is returned when resolved configs are requested in an unknown output format.
	ErrUnsupportedFormat = zerr.New("unsupported output format")

	// ErrManifestParseFailed is returned when a project manifest referenced by a build cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse project manifest")
)
