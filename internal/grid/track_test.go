package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkfold/typeset/internal/core/geom"
)

func TestUnifyTracksInterleavesGutter(t *testing.T) {
	content := []TrackSizing{AutoTrack(), LinearTrack(geom.LinearAbs(50))}
	gutter := []TrackSizing{LinearTrack(geom.LinearAbs(5))}

	out := unifyTracks(content, gutter, 2, AutoTrack())

	assert.Len(t, out, 3, "2 content tracks yield 2*2-1 unified tracks")
	assert.True(t, out[0].Equal(AutoTrack()))
	assert.True(t, out[1].Equal(LinearTrack(geom.LinearAbs(5))), "the gutter entry sits between the content tracks")
	assert.True(t, out[2].Equal(LinearTrack(geom.LinearAbs(50))))
}

func TestUnifyTracksDefaults(t *testing.T) {
	// No explicit tracks at all: content defaults, gutter defaults to zero.
	out := unifyTracks(nil, nil, 3, AutoTrack())

	assert.Len(t, out, 5)
	for i, tr := range out {
		if i%2 == 0 {
			assert.True(t, tr.IsAuto(), "content track %d", i)
		} else {
			assert.True(t, tr.Equal(ZeroTrack()), "gutter track %d", i)
		}
	}
}

func TestUnifyTracksRepeatsLastContentTrack(t *testing.T) {
	content := []TrackSizing{LinearTrack(geom.LinearAbs(10))}
	out := unifyTracks(content, nil, 3, AutoTrack())

	assert.Len(t, out, 5)
	for i := 0; i < 5; i += 2 {
		assert.True(t, out[i].Equal(LinearTrack(geom.LinearAbs(10))))
	}
}

func TestUnifyTracksZeroCount(t *testing.T) {
	assert.Empty(t, unifyTracks(nil, nil, 0, AutoTrack()))
}

func TestTrackSizingPredicates(t *testing.T) {
	assert.True(t, AutoTrack().IsAuto())

	lin, ok := LinearTrack(geom.LinearAbs(7)).IsLinear()
	assert.True(t, ok)
	assert.Equal(t, geom.LinearAbs(7), lin)

	fr, ok := FractionalTrack(2).IsFractional()
	assert.True(t, ok)
	assert.Equal(t, geom.Fractional(2), fr)

	_, ok = AutoTrack().IsLinear()
	assert.False(t, ok)
}

func TestCellIndexing(t *testing.T) {
	children := []LayoutNode{nil, nil, nil, nil}
	g := &GridNode{
		Tracks:   geom.NewGen([]TrackSizing{AutoTrack(), AutoTrack()}, nil),
		Children: children,
	}
	l := newLayouter(g, One(geom.NewSize(100, 100), geom.NewSize(100, 100), geom.Spec[bool]{}))

	assert.Len(t, l.cols, 3)
	assert.Len(t, l.rows, 3)

	// Odd coordinates are gutter.
	assert.Nil(t, l.cell(1, 0))
	assert.Nil(t, l.cell(0, 1))
	assert.Nil(t, l.cell(1, 1))
}

func TestRegionsNextAndInFullLast(t *testing.T) {
	last := geom.NewSize(100, 300)
	r := Regions{
		Current: geom.NewSize(100, 50),
		Base:    geom.NewSize(100, 50),
		Backlog: []geom.Size{geom.NewSize(100, 80)},
		Last:    &last,
	}

	assert.False(t, r.InFullLast())

	r.Next()
	assert.Equal(t, geom.NewSize(100, 80), r.Current)
	assert.False(t, r.InFullLast(), "still not on the repeating region")

	r.Next()
	assert.Equal(t, last, r.Current)
	assert.True(t, r.InFullLast())

	// The repeating region never runs out.
	r.Next()
	assert.Equal(t, last, r.Current)
}

func TestRegionsOneIsFinal(t *testing.T) {
	r := One(geom.NewSize(10, 10), geom.NewSize(10, 10), geom.Spec[bool]{})
	assert.True(t, r.InFullLast())
	r.Next()
	assert.Equal(t, geom.NewSize(10, 10), r.Current, "a single region stays pinned")
}

func TestRegionsIter(t *testing.T) {
	last := geom.NewSize(3, 3)
	r := Regions{
		Current: geom.NewSize(1, 1),
		Base:    geom.NewSize(9, 9),
		Backlog: []geom.Size{geom.NewSize(2, 2)},
		Last:    &last,
	}

	var got []geom.Size
	r.Iter(func(current, _ geom.Size) bool {
		got = append(got, current)
		return true
	})
	assert.Equal(t, []geom.Size{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}, got)

	// Iter must not consume anything.
	assert.Equal(t, geom.NewSize(1, 1), r.Current)
	assert.Len(t, r.Backlog, 1)
}

func TestRegionsMutateTouchesAllSizes(t *testing.T) {
	r := Repeat(geom.NewSize(100, 50), geom.NewSize(100, 50), geom.Spec[bool]{})
	r.Backlog = []geom.Size{geom.NewSize(100, 70)}

	r.Mutate(func(s *geom.Size) { *s = s.Set(geom.Horizontal, 42) })

	assert.Equal(t, geom.Length(42), r.Current.X)
	assert.Equal(t, geom.Length(42), r.Base.X)
	assert.Equal(t, geom.Length(42), r.Backlog[0].X)
	assert.Equal(t, geom.Length(42), r.Last.X)
}

func TestRegionsCloneIsIndependent(t *testing.T) {
	orig := Repeat(geom.NewSize(100, 50), geom.NewSize(100, 50), geom.Spec[bool]{})
	orig.Backlog = []geom.Size{geom.NewSize(100, 70)}

	clone := orig.Clone()
	clone.Next()
	clone.Mutate(func(s *geom.Size) { *s = s.Set(geom.Vertical, 1) })

	assert.Equal(t, geom.NewSize(100, 50), orig.Current)
	assert.Equal(t, geom.NewSize(100, 70), orig.Backlog[0])
	assert.Equal(t, geom.Length(50), orig.Last.Y)
}

func TestConstraintsReusable(t *testing.T) {
	min, max, exact, base := geom.Length(10), geom.Length(100), geom.Length(50), geom.Length(80)

	c := Constraints{}
	c.Min.X = &min
	assert.True(t, c.Reusable(geom.NewSize(10, 0), geom.Size{}))
	assert.True(t, c.Reusable(geom.NewSize(11, 0), geom.Size{}))
	assert.False(t, c.Reusable(geom.NewSize(9, 0), geom.Size{}))

	c = Constraints{}
	c.Max.Y = &max
	assert.True(t, c.Reusable(geom.NewSize(0, 100), geom.Size{}))
	assert.False(t, c.Reusable(geom.NewSize(0, 101), geom.Size{}))

	c = Constraints{}
	c.Exact.X = &exact
	assert.True(t, c.Reusable(geom.NewSize(50, 0), geom.Size{}))
	assert.False(t, c.Reusable(geom.NewSize(50.5, 0), geom.Size{}))

	c = Constraints{}
	c.Base.Y = &base
	assert.True(t, c.Reusable(geom.Size{}, geom.NewSize(0, 80)))
	assert.False(t, c.Reusable(geom.Size{}, geom.NewSize(0, 81)))

	// No captures at all: anything goes.
	assert.True(t, Constraints{}.Reusable(geom.NewSize(1, 2), geom.NewSize(3, 4)))
}
