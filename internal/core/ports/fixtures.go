package ports

import (
	"context"

	"go.trai.ch/splitter/internal/core/domain"
)

// FixtureCopier copies snapshot fixtures from a project directory into its output directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=fixtures.go -destination=mocks/mock_fixtures.go -package=mocks
type FixtureCopier interface {
	// CopyFixtures copies files selected by hook from sourceDir to outputDir,
	// preserving their paths relative to sourceDir. It returns the number of files written.
	CopyFixtures(ctx context.Context, sourceDir, outputDir string, hook domain.Hook) (int, error)
}
