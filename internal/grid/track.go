// Package grid implements the two-dimensional track-based layout engine: a
// grid of columns and rows, each sized either to fit its content, to an
// absolute/relative length, or to a share of the leftover space, arranged
// page by page across a sequence of regions.
package grid

import "github.com/inkfold/typeset/internal/core/geom"

// TrackSizing defines how a single column or row is sized.
type TrackSizing struct {
	kind   trackKind
	linear geom.Linear
	fr     geom.Fractional
}

type trackKind int

const (
	trackAuto trackKind = iota
	trackLinear
	trackFractional
)

// AutoTrack fits the track to the size of its content.
func AutoTrack() TrackSizing { return TrackSizing{kind: trackAuto} }

// LinearTrack sizes the track to an absolute length plus a fraction of the
// parent's size.
func LinearTrack(v geom.Linear) TrackSizing { return TrackSizing{kind: trackLinear, linear: v} }

// FractionalTrack sizes the track to a share of the leftover space.
func FractionalTrack(v geom.Fractional) TrackSizing {
	return TrackSizing{kind: trackFractional, fr: v}
}

// ZeroTrack is the linear track sizing to absolute zero - used to fill in
// gutter tracks that were not explicitly specified.
func ZeroTrack() TrackSizing { return LinearTrack(geom.LinearAbs(0)) }

// IsAuto reports whether the track fits its content.
func (t TrackSizing) IsAuto() bool { return t.kind == trackAuto }

// IsLinear reports whether the track has an absolute/relative size, and if
// so returns it.
func (t TrackSizing) IsLinear() (geom.Linear, bool) {
	return t.linear, t.kind == trackLinear
}

// IsFractional reports whether the track claims a share of leftover space,
// and if so returns that share.
func (t TrackSizing) IsFractional() (geom.Fractional, bool) {
	return t.fr, t.kind == trackFractional
}

// Equal reports whether two track sizings are identical.
func (t TrackSizing) Equal(other TrackSizing) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case trackLinear:
		return t.linear == other.linear
	case trackFractional:
		return t.fr == other.fr
	default:
		return true
	}
}

// unifyTracks interleaves content tracks with gutter tracks, extending the
// last explicit track (or falling back to a default) to cover any content
// track without an explicit counterpart, and drops the trailing gutter
// track that follows the final content track.
func unifyTracks(content, gutter []TrackSizing, count int, def TrackSizing) []TrackSizing {
	out := make([]TrackSizing, 0, count*2)
	for i := 0; i < count; i++ {
		out = append(out, trackOrLast(content, i, def))
		out = append(out, trackOrLast(gutter, i, ZeroTrack()))
	}
	if len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out
}

func trackOrLast(tracks []TrackSizing, idx int, def TrackSizing) TrackSizing {
	if idx < len(tracks) {
		return tracks[idx]
	}
	if len(tracks) > 0 {
		return tracks[len(tracks)-1]
	}
	return def
}
