package pdf

import (
	"fmt"
	"math"
	"strings"
)

const (
	flagFixedPitch = 1 << 0
	flagSerif      = 1 << 1
	flagSymbolic   = 1 << 2
	flagItalic     = 1 << 6
	flagSmallCap   = 1 << 17
)

const macStyleItalic = 1 << 1

// writeFontObjects emits the five PDF objects (Type0, CIDFont, FontDescriptor,
// ToUnicode CMap, FontFile2) for every subsetted font, at the IDs the plan
// assigned.
func writeFontObjects(w *writer, p plan, fonts []subsettedFont) error {
	for i, sf := range fonts {
		type0ID, cidFontID, descID, toUnicodeID, fontFileID := p.fontObjectIDs(i)
		if err := writeFontObject(w, sf, type0ID, cidFontID, descID, toUnicodeID, fontFileID); err != nil {
			return ioErr(fmt.Errorf("write font %d: %w", i, err))
		}
	}
	return nil
}

func writeFontObject(w *writer, sf subsettedFont, type0ID, cidFontID, descID, toUnicodeID, fontFileID ObjectID) error {
	f := sf.original
	name := f.Name().PostScriptName
	baseFont := "ABCDEF+" + name

	type0 := newDict().
		name("Type", "Font").
		name("Subtype", "Type0").
		name("BaseFont", baseFont).
		name("Encoding", "Identity-H").
		refArray("DescendantFonts", []ObjectID{cidFontID}).
		ref("ToUnicode", toUnicodeID)
	if err := w.writeObj(type0ID, type0.String()); err != nil {
		return err
	}

	unitsPerEm := f.UnitsPerEm()
	toGlyphUnit := func(fu int) int { return glyphUnit(fu, unitsPerEm) }

	widths := make([]float64, len(f.Hmtx().Widths))
	for i, aw := range f.Hmtx().Widths {
		widths[i] = float64(toGlyphUnit(int(aw)))
	}
	systemInfo := newDict().str("Registry", "Adobe").str("Ordering", "Identity").int("Supplement", 0)

	cidFont := newDict().
		name("Type", "Font").
		name("Subtype", "CIDFontType2").
		name("BaseFont", baseFont).
		sub("CIDSystemInfo", systemInfo).
		ref("FontDescriptor", descID).
		raw("W", widthArray(widths))
	if err := w.writeObj(cidFontID, cidFont.String()); err != nil {
		return err
	}

	head := f.Head()
	post := f.Post()
	os2 := f.OS2()

	italic := head.MacStyle&macStyleItalic != 0
	flags := flagSymbolic | flagSmallCap
	if strings.Contains(name, "Serif") {
		flags |= flagSerif
	}
	if post.IsFixedPitch != 0 {
		flags |= flagFixedPitch
	}
	if italic {
		flags |= flagItalic
	}

	bbox := []float64{
		float64(toGlyphUnit(int(head.XMin))),
		float64(toGlyphUnit(int(head.YMin))),
		float64(toGlyphUnit(int(head.XMax))),
		float64(toGlyphUnit(int(head.YMax))),
	}
	italicAngle := float64(post.ItalicAngle) / 65536.0
	stemV := int(10.0 + 0.244*(float64(os2.UsWeightClass)-50.0))

	descriptor := newDict().
		name("Type", "FontDescriptor").
		name("FontName", baseFont).
		int("Flags", flags).
		numArray("FontBBox", bbox).
		num("ItalicAngle", italicAngle).
		int("Ascent", toGlyphUnit(int(os2.STypoAscender))).
		int("Descent", toGlyphUnit(int(os2.STypoDescender))).
		int("CapHeight", toGlyphUnit(int(os2.CapHeight()))).
		int("StemV", stemV).
		ref("FontFile2", fontFileID)
	if err := w.writeObj(descID, descriptor.String()); err != nil {
		return err
	}

	cmapStream := buildToUnicodeCMap(f.ToUnicode())
	toUnicodeDict := newDict().
		name("Type", "CMap").
		name("CMapName", "Custom").
		sub("CIDSystemInfo", systemInfo)
	if err := w.writeStreamObj(toUnicodeID, toUnicodeDict.String(), []byte(cmapStream)); err != nil {
		return err
	}

	fileDict := newDict().int("Length1", len(sf.data))
	return w.writeStreamObj(fontFileID, fileDict.String(), sf.data)
}

// glyphUnit converts a length in font design units to PDF glyph units
// (1/1000 text-space units): font_unit -> pt is 1/units_per_em,
// then pt -> glyph unit is round(1000 * pt).
func glyphUnit(fu, unitsPerEm int) int {
	if unitsPerEm == 0 {
		return 0
	}
	pt := float64(fu) / float64(unitsPerEm)
	return int(math.Round(1000 * pt))
}

func widthArray(widths []float64) string {
	strs := make([]string, len(widths))
	for i, w := range widths {
		strs[i] = formatNum(w)
	}
	return fmt.Sprintf("[0 [%s]]", strings.Join(strs, " "))
}

// buildToUnicodeCMap renders a minimal but complete ToUnicode CMap program:
// one bfchar entry per CID, chunked to stay under the 100-entries-per-section
// convention real PDF tooling expects. CIDFontType2 with no CIDToGIDMap entry
// defaults to Identity, so the CID here is the same dense glyph ID the
// Type0/CIDFont objects already use.
func buildToUnicodeCMap(cidToRune map[uint16]rune) string {
	cids := make([]uint16, 0, len(cidToRune))
	for cid := range cidToRune {
		cids = append(cids, cid)
	}
	sortUint16(cids)

	var b strings.Builder
	b.WriteString("/CIDInit /ProcSet findresource begin\n12 dict begin\nbegincmap\n")
	b.WriteString("/CIDSystemInfo\n<< /Registry (Adobe) /Ordering (UCS) /Supplement 0 >> def\n")
	b.WriteString("/CMapName /Custom def\n/CMapType 2 def\n")
	b.WriteString("1 begincodespacerange\n<0000> <FFFF>\nendcodespacerange\n")

	const chunk = 100
	for start := 0; start < len(cids); start += chunk {
		end := start + chunk
		if end > len(cids) {
			end = len(cids)
		}
		fmt.Fprintf(&b, "%d beginbfchar\n", end-start)
		for _, cid := range cids[start:end] {
			fmt.Fprintf(&b, "%s %s\n", hexString(uint32(cid), 2), utf16beHex(cidToRune[cid]))
		}
		b.WriteString("endbfchar\n")
	}
	b.WriteString("endcmap\nCMapName currentdict /CMap defineresource pop\nend\nend")
	return b.String()
}

// utf16beHex renders a single rune as a PDF hex string of its UTF-16BE code
// units, handling the surrogate-pair case for codepoints outside the BMP.
func utf16beHex(r rune) string {
	if r > 0xFFFF {
		r -= 0x10000
		hi := 0xD800 + (r >> 10)
		lo := 0xDC00 + (r & 0x3FF)
		return fmt.Sprintf("<%04X%04X>", hi, lo)
	}
	return fmt.Sprintf("<%04X>", r)
}

func sortUint16(s []uint16) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
