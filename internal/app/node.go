package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/slicer/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/slicer/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/slicer/internal/engine/allocator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			allocator.NodeID,
			fs.LocatorNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			alloc, err := graft.Dep[*allocator.Allocator](ctx)
			if err != nil {
				return nil, err
			}

			locator, err := graft.Dep[ports.RootLocator](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(alloc, locator, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
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

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
