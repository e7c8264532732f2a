package domain

import "time"

// BuildInfo records the last successful build of a config.
type BuildInfo struct {
	ConfigPath  string    `json:"config_path,omitzero"`
	Fingerprint string    `json:"fingerprint,omitzero"`
	OutputDir   string    `json:"output_dir,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
