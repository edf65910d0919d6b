package grid

import "github.com/inkfold/typeset/internal/core/geom"

// Regions is the available-space context threaded through layout: the size
// of the region currently being filled, the base size relative lengths
// resolve against, a backlog of further region sizes to move through once
// the current one is full (e.g. subsequent pages), and an optional final
// size that repeats forever after the backlog runs out.
type Regions struct {
	Current geom.Size
	Base    geom.Size
	Backlog []geom.Size
	Last    *geom.Size
	// Expand controls, per physical axis, whether a frame that doesn't use
	// all of Current should still be stretched to fill it.
	Expand geom.Spec[bool]
}

// One builds a Regions with no further backlog: the whole layout must finish
// within a single, final region.
func One(size, base geom.Size, expand geom.Spec[bool]) Regions {
	return Regions{Current: size, Base: base, Expand: expand}
}

// Repeat builds a Regions whose size repeats forever: every region break
// yields another region of the same size. This is the shape a paginated
// document hands to layout.
func Repeat(size, base geom.Size, expand geom.Spec[bool]) Regions {
	last := size
	return Regions{Current: size, Base: base, Last: &last, Expand: expand}
}

// InFullLast reports whether the current region is the final repeating one
// and already at its full size - further region breaks cannot help.
func (r *Regions) InFullLast() bool {
	if len(r.Backlog) > 0 {
		return false
	}
	return r.Last == nil || r.Current == *r.Last
}

// Next advances to the next region: the front of the backlog if one remains,
// otherwise the repeating last region. With neither, the current size stays
// pinned, so every later region has the size of the final one.
func (r *Regions) Next() {
	if len(r.Backlog) > 0 {
		r.Current = r.Backlog[0]
		r.Backlog = r.Backlog[1:]
		return
	}
	if r.Last != nil {
		r.Current = *r.Last
	}
}

// Iter yields the upcoming (current, base) pairs - the current region, then
// the backlog, then the repeating last region if set - without mutating r,
// for as long as fn returns true. Backlog and last regions report their own
// size as base.
func (r *Regions) Iter(fn func(current, base geom.Size) bool) {
	if !fn(r.Current, r.Base) {
		return
	}
	for _, sz := range r.Backlog {
		if !fn(sz, sz) {
			return
		}
	}
	if r.Last != nil {
		fn(*r.Last, *r.Last)
	}
}

// Mutate applies f to the size of every region r knows about: current, base,
// each backlog entry, and the repeating last region.
func (r *Regions) Mutate(f func(*geom.Size)) {
	f(&r.Current)
	f(&r.Base)
	for i := range r.Backlog {
		f(&r.Backlog[i])
	}
	if r.Last != nil {
		f(r.Last)
	}
}

// Clone returns a copy of r safe to hand to a nested layout call: the
// backlog is duplicated so the child advancing via Next never disturbs the
// parent, and the repeating last size gets its own allocation.
func (r Regions) Clone() Regions {
	backlog := make([]geom.Size, len(r.Backlog))
	copy(backlog, r.Backlog)
	out := Regions{Current: r.Current, Base: r.Base, Backlog: backlog, Expand: r.Expand}
	if r.Last != nil {
		last := *r.Last
		out.Last = &last
	}
	return out
}
