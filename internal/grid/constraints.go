package grid

import "github.com/inkfold/typeset/internal/core/geom"

// Constraints records which region parameters a laid-out Frame's content
// depends on, so that a cached frame can be validated for reuse against a
// new region without re-running layout.
type Constraints struct {
	Min   geom.Spec[*geom.Length]
	Max   geom.Spec[*geom.Length]
	Exact geom.Spec[*geom.Length]
	Base  geom.Spec[*geom.Length]
	// Expand is the expand mode that was active while the frame was
	// produced. It is not part of the reuse predicate, but a frame laid out
	// to fill its region is only interchangeable with one laid out the same
	// way.
	Expand geom.Spec[bool]
}

// NewConstraints builds a fresh, empty Constraints set for a region with the
// given expand mode. The layouter calls this once per finished region so a
// new region starts with no captures carried over from the previous one.
func NewConstraints(expand geom.Spec[bool]) Constraints {
	return Constraints{Expand: expand}
}

// Reusable reports whether a frame captured under c remains valid for a
// region described by current size and base size: current must be >= any
// set Min, <= any set Max, == any set Exact, and base must equal any set
// Base, independently per physical axis.
func (c Constraints) Reusable(current, base geom.Size) bool {
	return axisReusable(c.Min.X, c.Max.X, c.Exact.X, c.Base.X, current.X, base.X) &&
		axisReusable(c.Min.Y, c.Max.Y, c.Exact.Y, c.Base.Y, current.Y, base.Y)
}

func axisReusable(min, max, exact, baseC *geom.Length, current, base geom.Length) bool {
	if min != nil && current < *min {
		return false
	}
	if max != nil && current > *max {
		return false
	}
	if exact != nil && current != *exact {
		return false
	}
	if baseC != nil && base != *baseC {
		return false
	}
	return true
}

func setSpec(s *geom.Spec[*geom.Length], axis geom.Axis, v geom.Length) {
	vv := v
	if axis == geom.Horizontal {
		s.X = &vv
	} else {
		s.Y = &vv
	}
}

// Constrained pairs a layout result with the Constraints captured while
// producing it.
type Constrained[T any] struct {
	Item        T
	Constraints Constraints
}
