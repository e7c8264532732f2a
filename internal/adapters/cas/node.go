package cas

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/splitter/internal/core/ports"
	"go.trai.ch/zerr"
)

const NodeID graft.ID = "adapter.build_info_store"

func init() {
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BuildInfoStore, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to get current working directory")
			}
			store, err := NewStore(DefaultPath(cwd))
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
