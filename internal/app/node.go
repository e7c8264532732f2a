package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/splitter/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/splitter/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.InputsNodeID,
			scheduler.NodeID,
			shell.NodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	resolver, err := graft.Dep[ports.ConfigResolver](ctx)
	if err != nil {
		return nil, err
	}

	inputs, err := graft.Dep[ports.InputResolver](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	driver, err := graft.Dep[ports.Driver](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(resolver, inputs, sched, driver, store, w, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
