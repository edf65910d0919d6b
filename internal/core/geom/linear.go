package geom

// Linear is an affine combination of an absolute length and a scalar
// fraction of some base length, i.e. `abs + ratio * base`. It models CSS-like
// "50% + 3pt" track sizes.
type Linear struct {
	Ratio    float64
	Absolute Length
}

// LinearAbs builds a Linear with no relative component.
func LinearAbs(l Length) Linear {
	return Linear{Absolute: l}
}

// LinearRatio builds a Linear with no absolute component.
func LinearRatio(r float64) Linear {
	return Linear{Ratio: r}
}

// Resolve evaluates the linear combination against the given base length.
func (l Linear) Resolve(base Length) Length {
	return l.Absolute.Add(base.Mul(l.Ratio))
}

// IsAbsolute reports whether the linear has no relative component.
func (l Linear) IsAbsolute() bool {
	return l.Ratio == 0
}

// IsZero reports whether the linear resolves to zero regardless of base.
func (l Linear) IsZero() bool {
	return l.Ratio == 0 && l.Absolute == 0
}
