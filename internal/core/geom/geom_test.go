package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthArithmetic(t *testing.T) {
	a, b := Length(30), Length(12)

	assert.Equal(t, Length(42), a.Add(b))
	assert.Equal(t, Length(18), a.Sub(b))
	assert.Equal(t, Length(60), a.Mul(2))
	assert.Equal(t, Length(15), a.Div(2))
}

func TestLengthInfinity(t *testing.T) {
	inf := Inf()

	assert.True(t, inf.IsInfinite())
	assert.False(t, inf.IsFinite())
	assert.True(t, Length(5).IsFinite())
	assert.False(t, Length(5).IsInfinite())

	// Infinity swallows finite arithmetic.
	assert.True(t, inf.Add(100).IsInfinite())
	assert.True(t, inf.Fits(1e12))
}

func TestLengthFits(t *testing.T) {
	assert.True(t, Length(10).Fits(10))
	assert.True(t, Length(10).Fits(5))
	assert.False(t, Length(10).Fits(11))
}

func TestLengthSetMax(t *testing.T) {
	l := Length(5)
	l.SetMax(3)
	assert.Equal(t, Length(5), l)
	l.SetMax(9)
	assert.Equal(t, Length(9), l)
}

func TestLinearResolve(t *testing.T) {
	cases := []struct {
		name string
		lin  Linear
		base Length
		want Length
	}{
		{"absolute only", LinearAbs(30), 100, 30},
		{"ratio only", LinearRatio(0.5), 100, 50},
		{"mixed", Linear{Ratio: 0.25, Absolute: 10}, 100, 35},
		{"zero", Linear{}, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.lin.Resolve(tc.base))
		})
	}
}

func TestLinearPredicates(t *testing.T) {
	assert.True(t, LinearAbs(5).IsAbsolute())
	assert.False(t, LinearRatio(0.1).IsAbsolute())
	assert.True(t, Linear{}.IsZero())
	assert.False(t, LinearAbs(1).IsZero())
}

func TestFractionalDiv(t *testing.T) {
	assert.Equal(t, Fractional(0.25), Fractional(1).Div(4))
	assert.False(t, Fractional(1).Div(0).IsFinite())
	assert.True(t, Fractional(0).IsZero())
	assert.True(t, Fractional(2).IsFinite())
}

func TestGenSpecConversion(t *testing.T) {
	g := NewGen("inline", "block")

	// Top-to-bottom writing: block runs along Y.
	s := ToSpec(g, Vertical)
	assert.Equal(t, "inline", s.X)
	assert.Equal(t, "block", s.Y)
	assert.Equal(t, g, ToGen(s, Vertical))

	// Sideways writing: block runs along X.
	s = ToSpec(g, Horizontal)
	assert.Equal(t, "block", s.X)
	assert.Equal(t, "inline", s.Y)
	assert.Equal(t, g, ToGen(s, Horizontal))
}

func TestGenGetSet(t *testing.T) {
	g := NewGen(1, 2)
	assert.Equal(t, 1, g.Get(Horizontal))
	assert.Equal(t, 2, g.Get(Vertical))

	g = g.Set(Vertical, 7)
	assert.Equal(t, 7, g.Block)
	assert.Equal(t, 1, g.Inline)
}

func TestSizeGetSet(t *testing.T) {
	s := NewSize(10, 20)
	assert.Equal(t, Length(10), s.Get(Horizontal))
	assert.Equal(t, Length(20), s.Get(Vertical))

	s = s.Set(Horizontal, 99)
	assert.Equal(t, Length(99), s.X)
	assert.False(t, s.IsZero())
	assert.True(t, NewSize(0, 0).IsZero())
}

func TestSum(t *testing.T) {
	assert.Equal(t, Length(0), Sum(nil))
	assert.Equal(t, Length(60), Sum([]Length{10, 20, 30}))
}
