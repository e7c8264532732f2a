package ports

import (
	"context"
	"io"

	"go.trai.ch/splitter/internal/core/domain"
)

// Driver runs the external transpiler for a single resolved config.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Driver interface {
	// Compile emits the output for cfg. Process output is streamed to stdout and stderr.
	//
	// It returns an error if the driver cannot be started or exits unsuccessfully.
	Compile(ctx context.Context, cfg *domain.BuildConfig, stdout, stderr io.Writer) error

	// WithCommand returns a Driver that launches command instead of the default executable.
	WithCommand(command []string) Driver
}
