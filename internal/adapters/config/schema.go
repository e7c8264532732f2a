package config

import "gopkg.in/yaml.v3"

// Declaration represents the structure of a splitter.config.yaml file.
type Declaration struct {
	AllFiles   bool     `yaml:"allFiles"`
	Entry      string   `yaml:"entry"`
	OutDir     string   `yaml:"outDir"`
	Babel      BabelDTO `yaml:"babel"`
	OnCompiled *HookDTO `yaml:"onCompiled"`
	Inputs     []string `yaml:"inputs"`
}

// BabelDTO holds the post-processing options of a declaration.
type BabelDTO struct {
	Plugins    []string `yaml:"plugins"`
	SourceMaps string   `yaml:"sourceMaps"`
}

// HookDTO declares the post-compile hook of a declaration.
type HookDTO struct {
	CopySnapshots *SnapshotDTO `yaml:"copySnapshots"`
}

// SnapshotDTO configures the snapshot-fixture copy hook.
// It accepts either a boolean or a mapping with optional dir and pattern keys.
type SnapshotDTO struct {
	Enabled bool
	Dir     string
	Pattern string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *SnapshotDTO) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&s.Enabled)
	}

	var raw struct {
		Dir     string `yaml:"dir"`
		Pattern string `yaml:"pattern"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.Enabled = true
	s.Dir = raw.Dir
	s.Pattern = raw.Pattern
	return nil
}

// Workfile represents the structure of the splitter.work.yaml workspace file.
type Workfile struct {
	Version  string   `yaml:"version"`
	Projects []string `yaml:"projects"`
}
