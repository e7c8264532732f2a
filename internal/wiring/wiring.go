// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/splitter/internal/adapters/cas"
	_ "go.trai.ch/splitter/internal/adapters/config"
	_ "go.trai.ch/splitter/internal/adapters/fs"
	_ "go.trai.ch/splitter/internal/adapters/logger"
	_ "go.trai.ch/splitter/internal/adapters/shell"
	_ "go.trai.ch/splitter/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/splitter/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/splitter/internal/app"
	_ "go.trai.ch/splitter/internal/engine/scheduler"
)
