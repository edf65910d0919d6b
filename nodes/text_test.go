package nodes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/grid"
)

// fixedMeasurer gives every rune a 10pt advance and every line a 14pt
// height, independent of size, so expectations stay readable.
type fixedMeasurer struct{}

func (fixedMeasurer) Width(s string, _ geom.Length) geom.Length {
	return geom.Length(10 * len([]rune(s)))
}

func (fixedMeasurer) LineHeight(_ geom.Length) geom.Length { return 14 }

func layoutText(t *testing.T, node *TextNode, regions grid.Regions) []grid.Constrained[*grid.Frame] {
	t.Helper()
	frames, err := node.Layout(context.Background(), regions)
	require.NoError(t, err)
	require.NotEmpty(t, frames)
	return frames
}

func textActions(f *grid.Frame) (texts []string, moves []geom.Point) {
	for _, a := range f.Actions {
		switch a.Kind {
		case grid.WriteText:
			texts = append(texts, a.Text)
		case grid.MoveAbsolute:
			moves = append(moves, a.Point)
		}
	}
	return
}

func TestTextNodeSingleLine(t *testing.T) {
	node := NewTextNode("hello", fixedMeasurer{}, 0, 12)
	regions := grid.One(geom.NewSize(200, 100), geom.NewSize(200, 100), geom.Spec[bool]{})

	frames := layoutText(t, node, regions)
	require.Len(t, frames, 1)

	frame := frames[0].Item
	assert.Equal(t, geom.Length(50), frame.Size.X)
	assert.Equal(t, geom.Length(14), frame.Size.Y)

	texts, moves := textActions(frame)
	assert.Equal(t, []string{"hello"}, texts)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}}, moves)

	require.Len(t, frame.Actions, 3, "set font, move, write")
	assert.Equal(t, grid.SetFont, frame.Actions[0].Kind)
	assert.Equal(t, geom.Length(12), frame.Actions[0].Size)

	c := frames[0].Constraints
	require.NotNil(t, c.Min.X, "single line records its natural width")
	assert.Equal(t, geom.Length(50), *c.Min.X)
}

func TestTextNodeWrapsAndRecordsExactWidth(t *testing.T) {
	node := NewTextNode("aaaa bbbb cccc", fixedMeasurer{}, 0, 12)
	regions := grid.One(geom.NewSize(90, 100), geom.NewSize(90, 100), geom.Spec[bool]{})

	frames := layoutText(t, node, regions)
	require.Len(t, frames, 1)

	texts, moves := textActions(frames[0].Item)
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, texts)
	assert.Equal(t, []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 14}}, moves)

	c := frames[0].Constraints
	require.NotNil(t, c.Exact.X, "wrapped text depends on the exact region width")
	assert.Equal(t, geom.Length(90), *c.Exact.X)
}

func TestTextNodeFlowsAcrossRegions(t *testing.T) {
	// Five lines into regions of 30pt (2 lines), 30pt (2 lines), rest.
	node := NewTextNode("a\nb\nc\nd\ne", fixedMeasurer{}, 0, 12)
	last := geom.NewSize(100, geom.Inf())
	regions := grid.Regions{
		Current: geom.NewSize(100, 30),
		Base:    geom.NewSize(100, 30),
		Backlog: []geom.Size{geom.NewSize(100, 30)},
		Last:    &last,
	}

	frames := layoutText(t, node, regions)
	require.Len(t, frames, 3)

	for i, want := range [][]string{{"a", "b"}, {"c", "d"}, {"e"}} {
		texts, _ := textActions(frames[i].Item)
		assert.Equal(t, want, texts, "region %d", i)
	}
}

func TestTextNodeFinalRegionTakesRemainder(t *testing.T) {
	// One tiny region and no backlog: everything lands in it rather than
	// being dropped.
	node := NewTextNode("a\nb\nc", fixedMeasurer{}, 0, 12)
	regions := grid.One(geom.NewSize(100, 14), geom.NewSize(100, 14), geom.Spec[bool]{})

	frames := layoutText(t, node, regions)
	require.Len(t, frames, 1)

	texts, _ := textActions(frames[0].Item)
	assert.Equal(t, []string{"a", "b", "c"}, texts)
	assert.Equal(t, geom.Length(42), frames[0].Item.Size.Y)
}

func TestTextNodeEmptyText(t *testing.T) {
	node := NewTextNode("", fixedMeasurer{}, 0, 12)
	regions := grid.One(geom.NewSize(100, 100), geom.NewSize(100, 100), geom.Spec[bool]{})

	frames := layoutText(t, node, regions)
	require.Len(t, frames, 1)
	assert.True(t, frames[0].Item.Size.IsZero())
	assert.Empty(t, frames[0].Item.Actions)
}

func TestTextNodeExpandsToRegion(t *testing.T) {
	node := NewTextNode("hi", fixedMeasurer{}, 0, 12)
	regions := grid.One(geom.NewSize(100, 40), geom.NewSize(100, 40), geom.Spec[bool]{X: true, Y: true})

	frames := layoutText(t, node, regions)
	frame := frames[0].Item
	assert.Equal(t, geom.Length(100), frame.Size.X)
	assert.Equal(t, geom.Length(40), frame.Size.Y)
}
