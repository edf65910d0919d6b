// Package nodes provides the leaf layout nodes that fill grid cells: text
// runs and fixed-size boxes. Each implements grid.LayoutNode and produces
// the primitive frame actions the PDF emitter consumes.
package nodes

import (
	"context"

	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/font"
	"github.com/inkfold/typeset/internal/grid"
	"github.com/inkfold/typeset/internal/render"
)

// Measurer supplies the font metrics text layout needs. *render.Font is the
// production implementation.
type Measurer interface {
	Width(s string, size geom.Length) geom.Length
	LineHeight(size geom.Length) geom.Length
}

var _ Measurer = (*render.Font)(nil)

// TextNode lays out a run of text: wrapped to the region's inline size,
// flowed line by line across as many regions as needed.
type TextNode struct {
	Text string
	// Font measures line advances; FontIndex is what gets stamped on the
	// frame's SetFont action for the PDF emitter to resolve later.
	Font      Measurer
	FontIndex font.Index
	Size      geom.Length
	// Leading overrides the font's intrinsic line height when positive.
	Leading geom.Length
}

// NewTextNode builds a text node at the given size using f for measurement.
func NewTextNode(text string, f Measurer, idx font.Index, size geom.Length) *TextNode {
	return &TextNode{Text: text, Font: f, FontIndex: idx, Size: size}
}

func (t *TextNode) lineHeight() geom.Length {
	if t.Leading > 0 {
		return t.Leading
	}
	if lh := t.Font.LineHeight(t.Size); lh > 0 {
		return lh
	}
	return t.Size
}

func (t *TextNode) measure(s string) geom.Length {
	return t.Font.Width(s, t.Size)
}

// Layout wraps the text to the current region's inline size and distributes
// the resulting lines across regions, one frame per region consumed. The
// final repeating region takes every remaining line, so content is never
// silently dropped.
func (t *TextNode) Layout(ctx context.Context, regions grid.Regions) ([]grid.Constrained[*grid.Frame], error) {
	maxWidth := regions.Current.X
	lines := wrapText(t.Text, maxWidth, t.measure)

	var widest geom.Length
	for _, line := range lines {
		widest.SetMax(t.measure(line))
	}

	lineH := t.lineHeight()
	wrapped := maxWidth.IsFinite() && len(lines) > 1

	var out []grid.Constrained[*grid.Frame]
	r := regions.Clone()

	for len(lines) > 0 {
		n := len(lines)
		if avail := r.Current.Y; avail.IsFinite() && !r.InFullLast() {
			if fit := int(avail.Div(float64(lineH)).Pt()); fit < n {
				n = fit
			}
			if n < 1 {
				n = 1
			}
		}

		width := widest
		if r.Expand.X {
			width = r.Current.X
		}
		height := lineH.Mul(float64(n))
		if r.Expand.Y && r.Current.Y.IsFinite() {
			height = r.Current.Y
		}

		frame := grid.NewFrame(geom.NewSize(width, height), height)
		frame.PushAction(grid.Action{Kind: grid.SetFont, FontIndex: int(t.FontIndex), Size: t.Size})
		for i, line := range lines[:n] {
			frame.PushAction(grid.Action{Kind: grid.MoveAbsolute, Point: geom.NewPoint(0, lineH.Mul(float64(i)))})
			frame.PushAction(grid.Action{Kind: grid.WriteText, Text: line})
		}

		c := grid.NewConstraints(r.Expand)
		setMinY := lineH.Mul(float64(n))
		c.Min.Y = &setMinY
		if wrapped {
			exactX := r.Current.X
			c.Exact.X = &exactX
		} else {
			minX := widest
			c.Min.X = &minX
		}

		out = append(out, frame.Constrain(c))
		lines = lines[n:]
		if len(lines) > 0 {
			r.Next()
		}
	}

	if len(out) == 0 {
		frame := grid.NewFrame(geom.NewSize(0, 0), 0)
		out = append(out, frame.Constrain(grid.NewConstraints(r.Expand)))
	}

	return out, nil
}
