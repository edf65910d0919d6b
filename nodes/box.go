package nodes

import (
	"context"

	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/grid"
)

// BoxNode is a rectangular leaf of linear size: an absolute length plus an
// optional fraction of the region's base size per axis. It produces an empty
// frame, optionally carrying a DebugBox action marking its bounds.
type BoxNode struct {
	Width  geom.Linear
	Height geom.Linear
	Debug  bool
}

// NewBoxNode builds a box with fixed absolute dimensions.
func NewBoxNode(w, h geom.Length) *BoxNode {
	return &BoxNode{Width: geom.LinearAbs(w), Height: geom.LinearAbs(h)}
}

// Layout resolves the box's size against the region's base, expands along
// axes the region demands filled, and returns a single frame. A box never
// breaks across regions.
func (b *BoxNode) Layout(ctx context.Context, regions grid.Regions) ([]grid.Constrained[*grid.Frame], error) {
	w := b.Width.Resolve(regions.Base.X)
	h := b.Height.Resolve(regions.Base.Y)

	if regions.Expand.X && regions.Current.X.IsFinite() {
		w = regions.Current.X
	}
	if regions.Expand.Y && regions.Current.Y.IsFinite() {
		h = regions.Current.Y
	}

	frame := grid.NewFrame(geom.NewSize(w, h), h)
	if b.Debug {
		frame.PushAction(grid.Action{Kind: grid.DebugBox, Point: geom.Point{}})
	}

	c := grid.NewConstraints(regions.Expand)
	if !b.Width.IsAbsolute() {
		baseX := regions.Base.X
		c.Base.X = &baseX
	}
	if !b.Height.IsAbsolute() {
		baseY := regions.Base.Y
		c.Base.Y = &baseY
	}

	return []grid.Constrained[*grid.Frame]{frame.Constrain(c)}, nil
}
