// Package font wraps TrueType/OpenType font data with the sfnt table
// access, subsetting and text-encoding operations the PDF emitter needs.
package font

import (
	"fmt"
	"sort"
)

// Font wraps a parsed sfnt font file, giving access to its tables and to
// subsetting and text-encoding helpers.
type Font struct {
	raw *directory

	head *HeadTable
	hhea *HheaTable
	maxp *MaxpTable
	post *PostTable
	os2  *OS2Table
	cmap *CmapTable
	name *NameTable
	hmtx *HmtxTable
}

// Parse reads a TrueType/OpenType font from raw bytes and eagerly loads the
// tables the PDF emitter depends on.
func Parse(data []byte) (*Font, error) {
	dir, err := parseDirectory(data)
	if err != nil {
		return nil, err
	}

	f := &Font{raw: dir}

	if f.head, err = dir.head(); err != nil {
		return nil, fmt.Errorf("head table: %w", err)
	}
	if f.hhea, err = dir.hhea(); err != nil {
		return nil, fmt.Errorf("hhea table: %w", err)
	}
	if f.maxp, err = dir.maxp(); err != nil {
		return nil, fmt.Errorf("maxp table: %w", err)
	}
	if f.post, err = dir.post(); err != nil {
		return nil, fmt.Errorf("post table: %w", err)
	}
	if f.os2, err = dir.os2(); err != nil {
		return nil, fmt.Errorf("OS/2 table: %w", err)
	}
	if f.cmap, err = dir.cmap(); err != nil {
		return nil, fmt.Errorf("cmap table: %w", err)
	}
	if f.name, err = dir.name(); err != nil {
		return nil, fmt.Errorf("name table: %w", err)
	}
	if f.hmtx, err = dir.hmtx(int(f.maxp.NumGlyphs), int(f.hhea.NumOfLongHorMetrics)); err != nil {
		return nil, fmt.Errorf("hmtx table: %w", err)
	}

	return f, nil
}

// Head returns the font's `head` table.
func (f *Font) Head() *HeadTable { return f.head }

// Hhea returns the font's `hhea` table.
func (f *Font) Hhea() *HheaTable { return f.hhea }

// Post returns the font's `post` table.
func (f *Font) Post() *PostTable { return f.post }

// OS2 returns the font's `OS/2` table.
func (f *Font) OS2() *OS2Table { return f.os2 }

// Cmap returns the font's Unicode cmap.
func (f *Font) Cmap() *CmapTable { return f.cmap }

// Hmtx returns the font's per-glyph advance widths.
func (f *Font) Hmtx() *HmtxTable { return f.hmtx }

// Name returns the font's naming-table entries.
func (f *Font) Name() *NameTable { return f.name }

// UnitsPerEm returns the font's design grid resolution.
func (f *Font) UnitsPerEm() int { return int(f.head.UnitsPerEm) }

// GlyphIndex returns the glyph ID for r, or 0 (the .notdef glyph) if r is
// not mapped.
func (f *Font) GlyphIndex(r rune) uint16 { return f.cmap.ToGlyph[r] }

// AdvanceWidth returns the advance width, in font units, of the glyph with
// the given ID.
func (f *Font) AdvanceWidth(glyph uint16) uint16 {
	if int(glyph) < len(f.hmtx.Widths) {
		return f.hmtx.Widths[glyph]
	}
	if len(f.hmtx.Widths) > 0 {
		return f.hmtx.Widths[len(f.hmtx.Widths)-1]
	}
	return 0
}

// ToUnicode inverts the cmap: glyph ID to Unicode codepoint. When multiple
// codepoints map to the same glyph, the smallest codepoint wins - ToUnicode
// CMaps need exactly one mapping per CID.
func (f *Font) ToUnicode() map[uint16]rune {
	out := make(map[uint16]rune, len(f.cmap.ToGlyph))
	for r, g := range f.cmap.ToGlyph {
		if existing, ok := out[g]; !ok || r < existing {
			out[g] = r
		}
	}
	return out
}

// EncodeText maps a string to its glyph-index encoding, as required by a
// Type0/Identity-H font: each glyph ID is written as a big-endian uint16.
func (f *Font) EncodeText(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		g := f.GlyphIndex(r)
		out = append(out, byte(g>>8), byte(g))
	}
	return out
}

// UsedGlyphs resolves a set of runes to the glyph IDs a subsetted font must
// retain.
func (f *Font) UsedGlyphs(chars map[rune]struct{}) []uint16 {
	set := make(map[uint16]struct{}, len(chars))
	for r := range chars {
		set[f.GlyphIndex(r)] = struct{}{}
	}
	out := make([]uint16, 0, len(set))
	for g := range set {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RetainedTables is the fixed table list the PDF emitter keeps in a
// subsetted font, per the FontFile2 embedding requirements of PDF 1.7.
var RetainedTables = []string{
	"name", "OS/2", "post", "head", "hhea", "hmtx",
	"maxp", "cmap", "cvt ", "fpgm", "prep", "loca", "glyf",
}

// Subsetted rebuilds the font keeping only RetainedTables, dropping every
// other table (color bitmaps, layout tables, etc). Glyph IDs and the
// glyf/loca table contents are not renumbered - every glyph referenced
// through a retained cmap/hmtx entry stays reachable under its original ID.
// If the font is missing a retained table (e.g. a font with no `cvt `
// program), that table is simply absent from the result.
func (f *Font) Subsetted(chars map[rune]struct{}) ([]byte, error) {
	if len(chars) == 0 {
		return nil, fmt.Errorf("subset: empty character set")
	}
	return pruneTables(f.raw, RetainedTables), nil
}

// Clone returns the font rebuilt with every table it contains and a freshly
// computed directory, used as a fallback when subsetting is not possible or
// not desired.
func (f *Font) Clone() []byte {
	return pruneTables(f.raw, allTags(f.raw))
}

func allTags(d *directory) []string {
	tags := make([]string, 0, len(d.records))
	for _, rec := range d.records {
		tags = append(tags, rec.tagString())
	}
	return tags
}
