package grid

import (
	"context"

	"github.com/inkfold/typeset/internal/core/geom"
)

// GridNode arranges its children in a two-dimensional grid of content
// tracks interleaved with gutter tracks.
type GridNode struct {
	// Tracks defines the sizing of content columns (Inline) and rows
	// (Block).
	Tracks geom.Gen[[]TrackSizing]
	// Gutter defines the sizing of the spacing tracks between content
	// columns and rows. A shorter list than the content tracks has its
	// last entry repeated; an empty list defaults every gutter to zero.
	Gutter geom.Gen[[]TrackSizing]
	// Children are placed row-major into content cells, left-to-right,
	// top-to-bottom.
	Children []LayoutNode
}

// Layout unifies this grid's tracks, resolves column sizes, and lays out
// its rows into the given regions.
func (g *GridNode) Layout(ctx context.Context, regions Regions) ([]Constrained[*Frame], error) {
	l := newLayouter(g, regions)
	if err := l.measureColumns(ctx); err != nil {
		return nil, err
	}
	return l.run(ctx)
}
