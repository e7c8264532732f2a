package ports

import "go.trai.ch/splitter/internal/core/domain"

// Hasher computes build fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint hashes the resolved record together with the project files it compiles.
	Fingerprint(cfg *domain.BuildConfig) (string, error)
}
