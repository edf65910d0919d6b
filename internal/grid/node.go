package grid

import "context"

// LayoutNode is implemented by anything that can be arranged inside a grid
// cell: a nested GridNode, a text run, an image, or any other leaf content.
// Layout must not mutate regions; it returns one Constrained frame per
// region it consumed, always at least one.
type LayoutNode interface {
	Layout(ctx context.Context, regions Regions) ([]Constrained[*Frame], error)
}
