package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/splitter/internal/adapters/logger"
	"go.trai.ch/splitter/internal/core/ports"
)

const NodeID graft.ID = "adapter.driver"

func init() {
	graft.Register(graft.Node[ports.Driver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Driver, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDriver(log, nil), nil
		},
	})
}
