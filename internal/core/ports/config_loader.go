// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/splitter/internal/core/domain"

// ConfigResolver turns config declarations into resolved build configs.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigResolver interface {
	// Resolve reads the declaration at path and returns the resolved record.
	// All paths of the record are anchored at the declaration's own directory.
	Resolve(path string) (*domain.BuildConfig, error)

	// Discover finds the declarations that apply to the given working directory.
	// The returned paths are absolute and sorted.
	Discover(cwd string) ([]string, error)
}
