package ports

import "go.trai.ch/splitter/internal/core/domain"

// InputResolver finds the directories a build reads from.
//
//go:generate go run go.uber.org/mock/mockgen -source=inputs.go -destination=mocks/mock_inputs.go -package=mocks
type InputResolver interface {
	// InputRoots returns the absolute, non-overlapping directories whose files feed cfg's build.
	// The config directory is always among them.
	InputRoots(cfg *domain.BuildConfig) ([]string, error)
}
