package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/splitter/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/splitter/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/splitter/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/splitter/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/splitter/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fs.CopierNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			driver, err := graft.Dep[ports.Driver](ctx)
			if err != nil {
				return nil, err
			}

			copier, err := graft.Dep[ports.FixtureCopier](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(driver, copier, hasher, store, telemetry), nil
		},
	})
}
