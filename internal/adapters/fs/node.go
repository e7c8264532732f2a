package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/splitter/internal/core/ports"
)

const (
	WalkerNodeID  graft.ID = "adapter.fs.walker"
	InputsNodeID  graft.ID = "adapter.fs.inputs"
	HasherNodeID  graft.ID = "adapter.fs.hasher"
	CopierNodeID  graft.ID = "adapter.fs.fixture_copier"
	rawHasherNode graft.ID = "adapter.fs.hasher.concrete"
)

func init() {
	// Walker Node (Concrete implementation needed by Hasher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Input roots, shared by the hasher and watch mode
	graft.Register(graft.Node[ports.InputResolver]{
		ID:        InputsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InputResolver, error) {
			return NewManifestScanner(), nil
		},
	})

	// Concrete Hasher, shared by the port and the fixture copier
	graft.Register(graft.Node[*Hasher]{
		ID:        rawHasherNode,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, InputsNodeID},
		Run: func(ctx context.Context) (*Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			inputs, err := graft.Dep[ports.InputResolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker, inputs), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{rawHasherNode},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return hasher, nil
		},
	})

	// Fixture Copier Node
	graft.Register(graft.Node[ports.FixtureCopier]{
		ID:        CopierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, rawHasherNode},
		Run: func(ctx context.Context) (ports.FixtureCopier, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewFixtureCopier(walker, hasher), nil
		},
	})
}
