package geom

// Fractional is a nonnegative scalar denoting a share of leftover space,
// e.g. the `1fr` in a track-sizing list. Grid rows and columns sized this way
// split whatever space remains after fixed and auto tracks are measured, in
// proportion to their Fractional value.
type Fractional float64

// IsZero reports whether f claims no leftover space.
func (f Fractional) IsZero() bool { return f == 0 }

// IsFinite reports whether f is a well-formed, non-NaN, non-infinite share.
func (f Fractional) IsFinite() bool {
	return !Length(f).IsInfinite() && float64(f) == float64(f)
}

// Div returns the ratio of f to other. Dividing by zero yields a non-finite
// ratio, which callers are expected to skip.
func (f Fractional) Div(other Fractional) Fractional {
	return Fractional(float64(f) / float64(other))
}
