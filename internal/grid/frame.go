package grid

import "github.com/inkfold/typeset/internal/core/geom"

// ActionKind identifies which primitive drawing action a Action value holds.
type ActionKind int

const (
	// MoveAbsolute sets the pending text-origin position.
	MoveAbsolute ActionKind = iota
	// SetFont selects the active font (by loader index) and size.
	SetFont
	// WriteText emits a run of text at the pending position using the
	// active font.
	WriteText
	// DebugBox marks a region for layout debugging; ignored during PDF
	// emission.
	DebugBox
)

// Action is a primitive drawing operation placed inside a Frame. Kind selects
// which of its other fields are meaningful: Point for MoveAbsolute and
// DebugBox, FontIndex and Size for SetFont, Text for WriteText.
type Action struct {
	Kind ActionKind

	Point     geom.Point // MoveAbsolute, DebugBox
	FontIndex int        // SetFont: loader-assigned font index
	Size      geom.Length
	Text      string
}

// Placement records a child frame positioned within a parent frame.
type Placement struct {
	Point geom.Point
	Frame *Frame
}

// Frame is a 2D box of fixed size holding an ordered list of child-frame
// placements plus primitive drawing actions. It is the sole output of
// layout: both the grid engine and its leaf nodes produce Frames, and the
// PDF emitter walks a page's Frame tree to build its content stream.
type Frame struct {
	Size       geom.Size
	Baseline   geom.Length
	Placements []Placement
	Actions    []Action
}

// NewFrame creates an empty frame of the given size. baseline is typically
// the frame's own height for block-level content.
func NewFrame(size geom.Size, baseline geom.Length) *Frame {
	return &Frame{Size: size, Baseline: baseline}
}

// PushFrame nests child as a single placement at point, preserving its
// internal structure.
func (f *Frame) PushFrame(point geom.Point, child *Frame) {
	f.Placements = append(f.Placements, Placement{Point: point, Frame: child})
}

// MergeFrame inlines child's placements and actions into f, translating them
// by point. Used to flatten finished rows into their enclosing region frame
// without adding an extra nesting level.
func (f *Frame) MergeFrame(point geom.Point, child *Frame) {
	for _, p := range child.Placements {
		f.Placements = append(f.Placements, Placement{Point: p.Point.Add(point), Frame: p.Frame})
	}
	for _, a := range child.Actions {
		switch a.Kind {
		case MoveAbsolute, DebugBox:
			a.Point = a.Point.Add(point)
		}
		f.Actions = append(f.Actions, a)
	}
}

// PushAction appends a primitive drawing action to the frame.
func (f *Frame) PushAction(a Action) {
	f.Actions = append(f.Actions, a)
}

// Constrain pairs f with the constraints captured while it was produced.
func (f *Frame) Constrain(c Constraints) Constrained[*Frame] {
	return Constrained[*Frame]{Item: f, Constraints: c}
}
