package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/grid"
)

func layoutBox(t *testing.T, b *BoxNode, regions grid.Regions) grid.Constrained[*grid.Frame] {
	t.Helper()
	frames, err := b.Layout(context.Background(), regions)
	require.NoError(t, err)
	require.Len(t, frames, 1, "a box never breaks across regions")
	return frames[0]
}

func TestBoxNodeAbsoluteSize(t *testing.T) {
	got := layoutBox(t, NewBoxNode(30, 10),
		grid.One(geom.NewSize(200, 200), geom.NewSize(200, 200), geom.Spec[bool]{}))

	assert.Equal(t, geom.NewSize(30, 10), got.Item.Size)
	assert.Empty(t, got.Item.Actions)
	assert.Nil(t, got.Constraints.Base.X, "absolute sizes don't depend on the base")
	assert.Nil(t, got.Constraints.Base.Y)
}

func TestBoxNodeRelativeSize(t *testing.T) {
	b := &BoxNode{
		Width:  geom.LinearRatio(0.5),
		Height: geom.LinearAbs(10),
	}
	got := layoutBox(t, b,
		grid.One(geom.NewSize(300, 200), geom.NewSize(200, 100), geom.Spec[bool]{}))

	assert.Equal(t, geom.NewSize(100, 10), got.Item.Size)
	require.NotNil(t, got.Constraints.Base.X, "relative width depends on the base")
	assert.Equal(t, geom.Length(200), *got.Constraints.Base.X)
	assert.Nil(t, got.Constraints.Base.Y)
}

func TestBoxNodeExpands(t *testing.T) {
	got := layoutBox(t, NewBoxNode(30, 10),
		grid.One(geom.NewSize(200, 150), geom.NewSize(200, 150), geom.Spec[bool]{X: true, Y: true}))

	assert.Equal(t, geom.NewSize(200, 150), got.Item.Size)
}

func TestBoxNodeDebugAction(t *testing.T) {
	b := NewBoxNode(5, 5)
	b.Debug = true
	got := layoutBox(t, b,
		grid.One(geom.NewSize(50, 50), geom.NewSize(50, 50), geom.Spec[bool]{}))

	require.Len(t, got.Item.Actions, 1)
	assert.Equal(t, grid.DebugBox, got.Item.Actions[0].Kind)
}
