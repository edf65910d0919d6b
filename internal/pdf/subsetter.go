package pdf

import (
	"github.com/inkfold/typeset/internal/core/geom"
	"github.com/inkfold/typeset/internal/font"
	"github.com/inkfold/typeset/internal/grid"
)

// Page is one page's finished layout, ready for PDF export: a frame tree
// (actions may be nested arbitrarily deep inside Placements) sized to the
// page's media box.
type Page struct {
	Frame *grid.Frame
	Size  geom.Size
}

// FontSource resolves a layout-time font index to the parsed font that
// produced it and subsets it down to a used character set, exactly the
// capability FontSubsetter needs from the upstream font loader - satisfied
// by *font.Loader.
type FontSource interface {
	GetWithIndex(i font.Index) (*font.Font, error)
	Subsetted(i font.Index, chars map[rune]struct{}) ([]byte, error)
}

// subsettedFont pairs the original parsed font (for table reads during
// emission) with the bytes actually embedded in the PDF: either the font
// pruned to font.RetainedTables, or a full clone if subsetting failed. In
// both cases every glyph of the original font is kept; glyphs this document
// does not use are not removed.
type subsettedFont struct {
	original *font.Font
	data     []byte
}

// subsetFonts walks every action on every page, in document order, tracking
// which font.Index is active and which characters are drawn under it. It
// returns the fonts actually used - pruned to their retained tables -
// indexed densely from 0, plus the old->new index remap PageStreamEmitter
// needs to rewrite SetFont actions.
func subsetFonts(pages []Page, loader FontSource) ([]subsettedFont, map[font.Index]int, error) {
	const noActiveFont = font.Index(-1)

	fontChars := make(map[font.Index]map[rune]struct{})
	oldToNew := make(map[font.Index]int)
	newToOld := make(map[int]font.Index)
	active := noActiveFont

	walkPage := func(p Page) {
		walkFrame(p.Frame, geom.Point{}, func(_ geom.Point, a grid.Action) {
			switch a.Kind {
			case grid.SetFont:
				idx := font.Index(a.FontIndex)
				active = idx
				if _, seen := oldToNew[idx]; !seen {
					next := len(oldToNew)
					oldToNew[idx] = next
					newToOld[next] = idx
				}
			case grid.WriteText:
				set, ok := fontChars[active]
				if !ok {
					set = make(map[rune]struct{})
					fontChars[active] = set
				}
				for _, r := range a.Text {
					set[r] = struct{}{}
				}
			}
		})
	}
	for _, p := range pages {
		walkPage(p)
	}

	out := make([]subsettedFont, len(oldToNew))
	for i := 0; i < len(oldToNew); i++ {
		oldIdx := newToOld[i]

		f, err := loader.GetWithIndex(oldIdx)
		if err != nil {
			return nil, nil, fontErr("resolve font index %d: %w", oldIdx, err)
		}

		chars := fontChars[oldIdx]
		data, err := loader.Subsetted(oldIdx, chars)
		if err != nil {
			return nil, nil, fontErr("subset font %d: %w", oldIdx, err)
		}

		out[i] = subsettedFont{original: f, data: data}
	}

	return out, oldToNew, nil
}

// walkFrame visits every action in f and its nested placements, in document
// order (the grid layouter visits rows in increasing block index and
// columns in increasing inline index, so a frame's own Placements are
// already in that order). offset accumulates the position of nested frames
// so MoveAbsolute/DebugBox points are reported in the top-level frame's
// coordinate space, mirroring how MergeFrame inlines a child's actions.
func walkFrame(f *grid.Frame, offset geom.Point, visit func(geom.Point, grid.Action)) {
	if f == nil {
		return
	}
	for _, a := range f.Actions {
		switch a.Kind {
		case grid.MoveAbsolute, grid.DebugBox:
			a.Point = a.Point.Add(offset)
		}
		visit(offset, a)
	}
	for _, p := range f.Placements {
		walkFrame(p.Frame, p.Point.Add(offset), visit)
	}
}
