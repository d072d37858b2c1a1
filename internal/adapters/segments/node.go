package segments

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/slicer/internal/core/ports"
)

// NodeID is the unique identifier for the segment store Graft node.
const NodeID graft.ID = "adapter.segment_store"

func init() {
	graft.Register(graft.Node[ports.SegmentStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SegmentStore, error) {
			return NewStore(), nil
		},
	})
}
