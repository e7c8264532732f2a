package domain

const (
	// ConfigFileName is the default name of a project's config declaration.
	ConfigFileName = "splitter.config.yaml"

	// ConfigFileNameJSON is the JSON spelling of a config declaration.
	ConfigFileNameJSON = "splitter.config.json"

	// WorkFileName is the name of the workspace file listing project directories.
	WorkFileName = "splitter.work.yaml"

	// StateDirName is the directory, relative to the discovery root, holding build state.
	StateDirName = ".splitter"
)

// ConfigFileNames lists the declaration names looked up in a project directory, in order of preference.
var ConfigFileNames = []string{ConfigFileName, ConfigFileNameJSON}

// SourceMaps selects how source-map data is emitted by the driver.
type SourceMaps string

const (
	// SourceMapsNone leaves source maps out of the emitted output.
	SourceMapsNone SourceMaps = ""
	// SourceMapsInline embeds source maps in each emitted file.
	SourceMapsInline SourceMaps = "inline"
)

// IsValid reports whether s is a recognized source-map mode.
func (s SourceMaps) IsValid() bool {
	return s == SourceMapsNone || s == SourceMapsInline
}

// HookKind identifies what a post-compile hook does.
type HookKind string

const (
	// HookCopySnapshots copies snapshot fixtures from the project directory into the output directory.
	HookCopySnapshots HookKind = "copySnapshots"
)

const (
	// DefaultSnapshotDir is the fixture directory name used when a hook does not set one.
	DefaultSnapshotDir = "__snapshots__"
	// DefaultSnapshotPattern is the fixture file glob used when a hook does not set one.
	DefaultSnapshotPattern = "*.snap"
)

// Hook is a post-compile action fired once after the driver has emitted a config's output.
// It always runs with the config's own directory and output directory as context.
type Hook struct {
	Kind    HookKind `json:"kind"              yaml:"kind"`
	Dir     string   `json:"dir,omitempty"     yaml:"dir,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// BuildConfig is the fully-resolved declaration of one test project.
// Every path is absolute and anchored at the directory of the declaration file.
type BuildConfig struct {
	ConfigPath       string     `json:"configPath"           yaml:"configPath"`
	ConfigDir        string     `json:"configDir"            yaml:"configDir"`
	AllFiles         bool       `json:"allFiles"             yaml:"allFiles"`
	EntryPath        string     `json:"entryPath"            yaml:"entryPath"`
	OutputDir        string     `json:"outputDir"            yaml:"outputDir"`
	TransformPlugins []string   `json:"transformPlugins"     yaml:"transformPlugins"`
	SourceMaps       SourceMaps `json:"sourceMaps,omitempty" yaml:"sourceMaps,omitempty"`
	OnCompiled       *Hook      `json:"onCompiled,omitempty" yaml:"onCompiled,omitempty"`
	// Inputs lists extra directories the build reads, beyond the config directory
	// and the projects its entry manifest references.
	Inputs []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// Name returns a short label for the config, used in logs and progress output.
func (c *BuildConfig) Name() string {
	return c.ConfigPath
}

// WithDefaults returns a copy of h with empty fields set to their defaults.
func (h Hook) WithDefaults() Hook {
	if h.Dir == "" {
		h.Dir = DefaultSnapshotDir
	}
	if h.Pattern == "" {
		h.Pattern = DefaultSnapshotPattern
	}
	return h
}
