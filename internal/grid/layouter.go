package grid

import (
	"context"

	"github.com/inkfold/typeset/internal/core/geom"
)

// row is the intermediate result of the first pass over a row: auto and
// linear rows are already finished frames, fractional rows are deferred
// until the region's remaining space is known.
type row struct {
	frame *Frame
	fr    geom.Fractional
	y     int
	isFr  bool
}

// layouter performs grid layout: unifying content and gutter tracks,
// resolving column widths, and laying out rows into one or more regions.
// Bidirectional text and alternate writing directions are out of scope; the
// inline axis is always Horizontal and the block axis always Vertical.
type layouter struct {
	inline, block geom.Axis
	expand        geom.Spec[bool]
	cols, rows    []TrackSizing
	children      []LayoutNode
	colsN         int // content column count, used by cell()

	regions Regions
	rcols   []geom.Length
	full    geom.Length
	used    geom.Gen[geom.Length]
	fr      geom.Fractional

	lrows       []row
	constraints Constraints
	finished    []Constrained[*Frame]
}

func newLayouter(g *GridNode, regions Regions) *layouter {
	c := geom.MaxInt(len(g.Tracks.Inline), 1)

	childLen := len(g.Children)
	given := len(g.Tracks.Block)
	needed := childLen/c + clampOneInt(childLen%c)
	r := geom.MaxInt(given, needed)

	cols := unifyTracks(g.Tracks.Inline, g.Gutter.Inline, c, AutoTrack())
	rows := unifyTracks(g.Tracks.Block, g.Gutter.Block, r, AutoTrack())

	inline, block := geom.Horizontal, geom.Vertical
	full := regions.Current.Get(block)
	rcols := make([]geom.Length, len(cols))

	expand := regions.Expand
	regions.Expand = geom.ToSpec(geom.NewGen(true, false), block)

	return &layouter{
		inline:   inline,
		block:    block,
		expand:   expand,
		cols:     cols,
		rows:     rows,
		children: g.Children,
		colsN:    c,

		regions:     regions,
		rcols:       rcols,
		full:        full,
		used:        geom.Gen[geom.Length]{},
		constraints: NewConstraints(expand),
	}
}

func clampOneInt(v int) int {
	if v > 0 {
		return 1
	}
	return 0
}

// cell returns the child occupying column x, row y, or nil if that
// coordinate lands on a gutter track. x and y must be in range; callers are
// expected to iterate only over valid track indices.
func (l *layouter) cell(x, y int) LayoutNode {
	if x%2 == 0 && y%2 == 0 {
		idx := (y/2)*l.colsN + x/2
		if idx < len(l.children) {
			return l.children[idx]
		}
	}
	return nil
}

func (l *layouter) complete(block geom.Length) geom.Size {
	return specToSize(geom.ToSpec(geom.NewGen(l.used.Get(l.inline), block), l.block))
}

func specToSize(s geom.Spec[geom.Length]) geom.Size { return geom.Size{X: s.X, Y: s.Y} }

// measureColumns determines all column sizes: linear tracks resolve
// directly, auto tracks are measured by laying out their cells, and any
// remaining space is either handed to fractional columns or, if columns
// overflow, redistributed by shrinking the largest auto columns.
func (l *layouter) measureColumns(ctx context.Context) error {
	const (
		casePurelyLinear = iota
		caseFitting
		caseExact
		caseOverflowing
	)

	current := l.regions.Current.Get(l.inline)
	base := l.regions.Base.Get(l.inline)

	kase := casePurelyLinear
	var linear geom.Length
	var fr geom.Fractional

	for i, col := range l.cols {
		if col.IsAuto() {
			kase = caseFitting
			continue
		}
		if lin, ok := col.IsLinear(); ok {
			resolved := lin.Resolve(base)
			l.rcols[i] = resolved
			linear += resolved
			continue
		}
		if f, ok := col.IsFractional(); ok {
			kase = caseFitting
			fr += f
		}
	}

	available := current - linear
	if available >= 0 {
		auto, count, err := l.measureAutoColumns(ctx, available)
		if err != nil {
			return err
		}

		remaining := available - auto
		if remaining >= 0 {
			if !fr.IsZero() {
				l.growFractionalColumns(remaining, fr)
				kase = caseExact
			}
		} else {
			l.shrinkAutoColumns(available, count)
			kase = caseExact
		}
	} else if kase == caseFitting {
		kase = caseOverflowing
	}

	// Children could depend on the base size.
	setSpec(&l.constraints.Base, geom.Horizontal, l.regions.Base.X)
	setSpec(&l.constraints.Base, geom.Vertical, l.regions.Base.Y)

	// Sum up the resolved column sizes before capturing constraints, so the
	// fitting case records the width actually consumed.
	l.used = l.used.Set(l.inline, geom.Sum(l.rcols))

	switch kase {
	case caseFitting:
		setSpec(&l.constraints.Min, l.inline, l.used.Get(l.inline))
	case caseExact:
		setSpec(&l.constraints.Exact, l.inline, current)
	case caseOverflowing:
		setSpec(&l.constraints.Max, l.inline, linear)
	}

	return nil
}

// measureAutoColumns lays out every cell in an Auto column to find the
// widest content, returning the total width consumed and the number of
// Auto columns found.
func (l *layouter) measureAutoColumns(ctx context.Context, available geom.Length) (geom.Length, int, error) {
	base := l.regions.Base.Get(l.block)

	var auto geom.Length
	count := 0

	for x, col := range l.cols {
		if !col.IsAuto() {
			continue
		}

		var resolved geom.Length
		for y := 0; y < len(l.rows); y++ {
			node := l.cell(x, y)
			if node == nil {
				continue
			}

			size := specToSize(geom.ToSpec(geom.NewGen(available, geom.Inf()), l.block))
			regions := One(size, l.regions.Base, geom.Spec[bool]{})

			if lin, ok := l.rows[y].IsLinear(); ok {
				regions.Base = regions.Base.Set(l.block, lin.Resolve(base))
			}

			results, err := node.Layout(ctx, regions)
			if err != nil {
				return 0, 0, err
			}
			resolved.SetMax(results[0].Item.Size.Get(l.inline))
		}

		l.rcols[x] = resolved
		auto += resolved
		count++
	}

	return auto, count, nil
}

// growFractionalColumns distributes remaining space to fractional columns
// in proportion to their share. Non-finite ratios are skipped, leaving the
// column at zero width.
func (l *layouter) growFractionalColumns(remaining geom.Length, fr geom.Fractional) {
	for i, col := range l.cols {
		if v, ok := col.IsFractional(); ok {
			ratio := v.Div(fr)
			if ratio.IsFinite() {
				l.rcols[i] = remaining.Mul(float64(ratio))
			}
		}
	}
}

// shrinkAutoColumns redistributes space equally among oversized Auto
// columns so the total fits available.
func (l *layouter) shrinkAutoColumns(available geom.Length, count int) {
	if count == 0 {
		return
	}
	fair := available.Div(float64(count))

	overlarge := 0
	redistribute := available
	for i, col := range l.cols {
		if !col.IsAuto() {
			continue
		}
		if l.rcols[i] > fair {
			overlarge++
		} else {
			redistribute -= l.rcols[i]
		}
	}

	if overlarge == 0 {
		return
	}
	share := redistribute.Div(float64(overlarge))
	for i, col := range l.cols {
		if col.IsAuto() && l.rcols[i] > fair {
			l.rcols[i] = share
		}
	}
}

// run lays out the grid row by row across as many regions as needed and
// returns the finished, constrained frames.
func (l *layouter) run(ctx context.Context) ([]Constrained[*Frame], error) {
	for y := 0; y < len(l.rows); y++ {
		t := l.rows[y]
		switch {
		case t.IsAuto():
			if err := l.layoutAutoRow(ctx, y); err != nil {
				return nil, err
			}
		default:
			if lin, ok := t.IsLinear(); ok {
				if err := l.layoutLinearRow(ctx, lin, y); err != nil {
					return nil, err
				}
				continue
			}
			if v, ok := t.IsFractional(); ok {
				l.fr += v
				setSpec(&l.constraints.Exact, l.block, l.full)
				l.lrows = append(l.lrows, row{fr: v, y: y, isFr: true})
			}
		}
	}

	if err := l.finishRegion(ctx); err != nil {
		return nil, err
	}
	return l.finished, nil
}

func (l *layouter) layoutAutoRow(ctx context.Context, y int) error {
	base := l.regions.Base.Get(l.inline)
	var resolved []geom.Length

	for x, rcol := range l.rcols {
		node := l.cell(x, y)
		if node == nil {
			continue
		}

		regions := l.regions.Clone()
		regions.Mutate(func(s *geom.Size) { *s = s.Set(l.inline, rcol) })
		if l.cols[x].IsAuto() {
			regions.Base = regions.Base.Set(l.inline, base)
		}

		results, err := node.Layout(ctx, regions)
		if err != nil {
			return err
		}

		for i, res := range results {
			sz := res.Item.Size.Get(l.block)
			if i < len(resolved) {
				resolved[i].SetMax(sz)
			} else {
				resolved = append(resolved, sz)
			}
		}
	}

	if len(resolved) == 0 {
		return nil
	}

	if len(resolved) == 1 {
		frame, err := l.layoutSingleRow(ctx, resolved[0], y)
		if err != nil {
			return err
		}
		l.pushRow(frame)
		return nil
	}

	if l.fr.IsZero() {
		n := len(resolved)
		regionIdx := 0
		l.regions.Iter(func(current, _ geom.Size) bool {
			if regionIdx >= n-1 {
				return false
			}
			resolved[regionIdx].SetMax(current.Get(l.block))
			regionIdx++
			return true
		})
	}

	frames, err := l.layoutMultiRow(ctx, resolved, y)
	if err != nil {
		return err
	}
	for i, frame := range frames {
		l.pushRow(frame)
		if i+1 < len(frames) {
			setSpec(&l.constraints.Exact, l.block, l.full)
			if err := l.finishRegion(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *layouter) layoutLinearRow(ctx context.Context, v geom.Linear, y int) error {
	base := l.regions.Base.Get(l.block)
	resolved := v.Resolve(base)
	frame, err := l.layoutSingleRow(ctx, resolved, y)
	if err != nil {
		return err
	}

	length := frame.Size.Get(l.block)
	for !l.regions.Current.Get(l.block).Fits(length) && !l.regions.InFullLast() {
		used := l.used.Get(l.block) + length
		setSpec(&l.constraints.Max, l.block, used)
		if err := l.finishRegion(ctx); err != nil {
			return err
		}
		if y%2 == 1 {
			return nil
		}
	}

	l.pushRow(frame)
	return nil
}

func (l *layouter) layoutSingleRow(ctx context.Context, block geom.Length, y int) (*Frame, error) {
	size := l.complete(block)
	output := NewFrame(size, size.Y)
	var pos geom.Gen[geom.Length]

	for x, rcol := range l.rcols {
		node := l.cell(x, y)
		if node != nil {
			cellSize := specToSize(geom.ToSpec(geom.NewGen(rcol, block), l.block))
			base := l.regions.Base
			if !l.cols[x].IsAuto() {
				base = base.Set(geom.Horizontal, cellSize.X)
			}
			if !l.rows[y].IsAuto() {
				base = base.Set(geom.Vertical, cellSize.Y)
			}

			regions := One(cellSize, base, geom.Spec[bool]{X: true, Y: true})
			results, err := node.Layout(ctx, regions)
			if err != nil {
				return nil, err
			}
			output.PushFrame(genToPoint(pos, l.block), results[0].Item)
		}
		pos = pos.Set(l.inline, pos.Get(l.inline)+rcol)
	}

	return output, nil
}

func (l *layouter) layoutMultiRow(ctx context.Context, resolved []geom.Length, y int) ([]*Frame, error) {
	base := l.regions.Base.Get(l.inline)

	outputs := make([]*Frame, len(resolved))
	for i, v := range resolved {
		size := l.complete(v)
		outputs[i] = NewFrame(size, size.Y)
	}

	size := l.complete(resolved[0])
	regions := One(size, l.regions.Base, geom.Spec[bool]{X: true, Y: true})
	backlog := make([]geom.Size, 0, len(resolved)-1)
	for _, v := range resolved[1:] {
		backlog = append(backlog, l.complete(v))
	}
	regions.Backlog = backlog

	var pos geom.Gen[geom.Length]
	for x, rcol := range l.rcols {
		node := l.cell(x, y)
		if node != nil {
			regions.Mutate(func(s *geom.Size) { *s = s.Set(l.inline, rcol) })
			if l.cols[x].IsAuto() {
				regions.Base = regions.Base.Set(l.inline, base)
			}

			results, err := node.Layout(ctx, regions)
			if err != nil {
				return nil, err
			}
			point := genToPoint(pos, l.block)
			for i, res := range results {
				if i < len(outputs) {
					outputs[i].PushFrame(point, res.Item)
				}
			}
		}
		pos = pos.Set(l.inline, pos.Get(l.inline)+rcol)
	}

	return outputs, nil
}

func (l *layouter) pushRow(frame *Frame) {
	length := frame.Size.Get(l.block)
	l.regions.Current = l.regions.Current.Set(l.block, l.regions.Current.Get(l.block)-length)
	l.used = l.used.Set(l.block, l.used.Get(l.block)+length)
	l.lrows = append(l.lrows, row{frame: frame})
}

// finishRegion closes out the current region: fixed and auto rows are
// already placed, queued fractional rows are resolved against the region's
// leftover space, and the region is merged into a single output frame
// before the layouter advances to the next one.
func (l *layouter) finishRegion(ctx context.Context) error {
	block := l.used.Get(l.block)
	if !l.fr.IsZero() && l.full.IsFinite() {
		block = l.full
	}

	size := l.complete(block)
	setSpec(&l.constraints.Min, l.block, block)

	output := NewFrame(size, size.Y)
	var pos geom.Gen[geom.Length]

	remaining := l.full - l.used.Get(l.block)

	rows := l.lrows
	l.lrows = nil

	for _, r := range rows {
		frame := r.frame
		if r.isFr {
			ratio := r.fr.Div(l.fr)
			if remaining.IsFinite() && ratio.IsFinite() {
				resolved := remaining.Mul(float64(ratio))
				var err error
				frame, err = l.layoutSingleRow(ctx, resolved, r.y)
				if err != nil {
					return err
				}
			} else {
				continue
			}
		}

		point := genToPoint(pos, l.block)
		pos = pos.Set(l.block, pos.Get(l.block)+frame.Size.Get(l.block))
		output.MergeFrame(point, frame)
	}

	l.regions.Next()
	l.full = l.regions.Current.Get(l.block)
	l.used = l.used.Set(l.block, 0)
	l.fr = 0
	l.finished = append(l.finished, output.Constrain(l.constraints))
	l.constraints = NewConstraints(l.expand)
	return nil
}

func genToPoint(g geom.Gen[geom.Length], blockAxis geom.Axis) geom.Point {
	s := geom.ToSpec(g, blockAxis)
	return geom.Point{X: s.X, Y: s.Y}
}
