package geom

import "math"

// Length is a signed one-dimensional measure, in points. It may be finite or
// positive infinity (used to express "no limit on this axis" - an
// unconstrained block size during auto-column measurement, for instance).
type Length float64

// Zero is the additive identity.
const Zero Length = 0

// Inf returns the positive-infinite length.
func Inf() Length { return Length(math.Inf(1)) }

// IsInfinite reports whether l is the positive-infinite length.
func (l Length) IsInfinite() bool { return math.IsInf(float64(l), 1) }

// IsFinite reports whether l is a finite, non-NaN length.
func (l Length) IsFinite() bool { return !math.IsInf(float64(l), 0) && !math.IsNaN(float64(l)) }

// Add returns l + other.
func (l Length) Add(other Length) Length { return l + other }

// Sub returns l - other.
func (l Length) Sub(other Length) Length { return l - other }

// Mul returns l scaled by s.
func (l Length) Mul(s float64) Length { return Length(float64(l) * s) }

// Div returns l divided by s.
func (l Length) Div(s float64) Length { return Length(float64(l) / s) }

// Fits reports whether l is at least q - i.e. a region of size l can hold
// content of size q.
func (l Length) Fits(q Length) bool { return l >= q }

// SetMax replaces *l with other if other is larger.
func (l *Length) SetMax(other Length) {
	if other > *l {
		*l = other
	}
}

// Pt returns the length in points as a plain float64, for interop with
// external formatting code (e.g. PDF content-stream operands).
func (l Length) Pt() float64 { return float64(l) }

// Sum adds up a slice of lengths.
func Sum(ls []Length) Length {
	var total Length
	for _, l := range ls {
		total += l
	}
	return total
}
