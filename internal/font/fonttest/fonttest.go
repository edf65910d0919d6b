// Package fonttest builds a minimal, self-contained TrueType font in memory
// for tests: three glyphs (.notdef, A, B), a format 4 cmap, and the metric
// tables the PDF emitter reads. Keeping the bytes synthetic means tests
// never depend on font files on disk.
package fonttest

import (
	"bytes"
	"encoding/binary"
)

// Metric constants baked into the test font, exported so tests can assert
// against them instead of repeating magic numbers.
const (
	UnitsPerEm  = 1000
	Ascender    = 800
	Descender   = -200
	LineGap     = 90
	WeightClass = 400

	// Advance widths, in font units, indexed by glyph ID.
	WidthNotdef = 500
	WidthA      = 600
	WidthB      = 700

	// PostScriptName is the nameID 6 entry.
	PostScriptName = "TestFont-Regular"
)

// Bytes assembles the font file. The layout is deterministic, so two calls
// return identical bytes.
func Bytes() []byte {
	type table struct {
		tag  string
		data []byte
	}

	tables := []table{
		{"OS/2", os2Table()},
		{"cmap", cmapTable()},
		{"glyf", glyfTable()},
		{"head", headTable()},
		{"hhea", hheaTable()},
		{"hmtx", hmtxTable()},
		{"loca", locaTable()},
		{"maxp", maxpTable()},
		{"name", nameTable()},
		{"post", postTable()},
	}

	numTables := uint16(len(tables))
	var searchRange, entrySelector uint16
	for searchRange = 1; searchRange*2 <= numTables; searchRange *= 2 {
		entrySelector++
	}
	searchRange *= 16
	rangeShift := numTables*16 - searchRange

	var out bytes.Buffer
	be(&out, uint32(0x00010000)) // scaler type
	be(&out, numTables)
	be(&out, searchRange)
	be(&out, entrySelector)
	be(&out, rangeShift)

	offset := uint32(12 + 16*int(numTables))
	for _, t := range tables {
		out.WriteString(t.tag)
		be(&out, checksum(t.data))
		be(&out, offset)
		be(&out, uint32(len(t.data)))
		offset += uint32((len(t.data) + 3) &^ 3)
	}
	for _, t := range tables {
		out.Write(t.data)
		if pad := (4 - len(t.data)%4) % 4; pad > 0 {
			out.Write(make([]byte, pad))
		}
	}
	return out.Bytes()
}

func be(w *bytes.Buffer, v any) {
	_ = binary.Write(w, binary.BigEndian, v)
}

func checksum(data []byte) uint32 {
	var sum uint32
	padded := make([]byte, (len(data)+3)&^3)
	copy(padded, data)
	for i := 0; i < len(padded); i += 4 {
		sum += binary.BigEndian.Uint32(padded[i : i+4])
	}
	return sum
}

func headTable() []byte {
	var b bytes.Buffer
	be(&b, uint32(0x00010000)) // version
	be(&b, uint32(0))          // font revision
	be(&b, uint32(0))          // checksum adjustment
	be(&b, uint32(0x5F0F3CF5)) // magic
	be(&b, uint16(0))          // flags
	be(&b, uint16(UnitsPerEm))
	be(&b, int64(0)) // created
	be(&b, int64(0)) // modified
	be(&b, int16(-50))
	be(&b, int16(Descender))
	be(&b, int16(900))
	be(&b, int16(Ascender))
	be(&b, uint16(0)) // mac style
	be(&b, uint16(8)) // lowest rec ppem
	be(&b, int16(2))  // font direction hint
	be(&b, int16(0))  // index to loc format
	be(&b, int16(0))  // glyph data format
	return b.Bytes()
}

func hheaTable() []byte {
	var b bytes.Buffer
	be(&b, uint32(0x00010000))
	be(&b, int16(Ascender))
	be(&b, int16(Descender))
	be(&b, int16(LineGap))
	be(&b, uint16(WidthB)) // advance width max
	be(&b, int16(0))       // min lsb
	be(&b, int16(0))       // min rsb
	be(&b, int16(0))       // x max extent
	be(&b, int16(1))       // caret slope rise
	be(&b, int16(0))       // caret slope run
	be(&b, int16(0))       // caret offset
	be(&b, [4]int16{})     // reserved
	be(&b, int16(0))       // metric data format
	be(&b, uint16(3))      // number of long hor metrics
	return b.Bytes()
}

func hmtxTable() []byte {
	var b bytes.Buffer
	for _, w := range []uint16{WidthNotdef, WidthA, WidthB} {
		be(&b, w)
		be(&b, int16(0)) // lsb
	}
	return b.Bytes()
}

// glyfTable is empty: all three glyphs (.notdef, A, B) have no outline data,
// which the short loca table below represents with identical offsets.
func glyfTable() []byte {
	return []byte{}
}

// locaTable uses the short offset format (indexToLocFormat 0 in head),
// where each stored value is the real offset divided by two. All glyphs
// share the same (empty) glyf range.
func locaTable() []byte {
	var b bytes.Buffer
	for i := 0; i < 4; i++ {
		be(&b, uint16(0))
	}
	return b.Bytes()
}

func maxpTable() []byte {
	var b bytes.Buffer
	be(&b, uint32(0x00010000)) // version 1.0
	be(&b, uint16(3))          // glyph count
	be(&b, uint16(0))          // max points
	be(&b, uint16(0))          // max contours
	be(&b, uint16(0))          // max composite points
	be(&b, uint16(0))          // max composite contours
	be(&b, uint16(0))          // max zones
	be(&b, uint16(0))          // max twilight points
	be(&b, uint16(0))          // max storage
	be(&b, uint16(0))          // max function defs
	be(&b, uint16(0))          // max instruction defs
	be(&b, uint16(0))          // max stack elements
	be(&b, uint16(0))          // max size of instructions
	be(&b, uint16(0))          // max component elements
	be(&b, uint16(0))          // max component depth
	return b.Bytes()
}

func postTable() []byte {
	var b bytes.Buffer
	be(&b, uint32(0x00030000))
	be(&b, int32(0))    // italic angle
	be(&b, int16(-100)) // underline position
	be(&b, int16(50))   // underline thickness
	be(&b, uint32(0))   // is fixed pitch
	return b.Bytes()
}

func os2Table() []byte {
	var b bytes.Buffer
	be(&b, uint16(0)) // version 0: table ends at usWinDescent
	be(&b, int16(500))
	be(&b, uint16(WeightClass))
	be(&b, uint16(5)) // width class
	be(&b, uint16(0)) // fsType
	be(&b, [8]int16{})
	be(&b, int16(0))     // strikeout size
	be(&b, int16(0))     // strikeout position
	be(&b, int16(0))     // family class
	be(&b, [10]byte{})   // panose
	be(&b, [4]uint32{})  // unicode ranges
	be(&b, [4]byte{'T', 'E', 'S', 'T'})
	be(&b, uint16(0x40)) // fsSelection: regular
	be(&b, uint16('A'))
	be(&b, uint16('B'))
	be(&b, int16(Ascender))
	be(&b, int16(Descender))
	be(&b, int16(LineGap))
	be(&b, uint16(Ascender))
	be(&b, uint16(-Descender))
	return b.Bytes()
}

// cmapTable builds a single format 4 subtable mapping 'A' to glyph 1 and
// 'B' to glyph 2.
func cmapTable() []byte {
	var sub bytes.Buffer
	be(&sub, uint16(4))  // format
	be(&sub, uint16(32)) // length
	be(&sub, uint16(0))  // language
	be(&sub, uint16(4))  // segCountX2
	be(&sub, uint16(4))  // search range
	be(&sub, uint16(1))  // entry selector
	be(&sub, uint16(0))  // range shift
	be(&sub, [2]uint16{'B', 0xFFFF}) // end codes
	be(&sub, uint16(0))              // pad
	be(&sub, [2]uint16{'A', 0xFFFF}) // start codes
	be(&sub, [2]int16{1 - 'A', 1})   // id deltas
	be(&sub, [2]uint16{0, 0})        // id range offsets

	var b bytes.Buffer
	be(&b, uint16(0))  // version
	be(&b, uint16(1))  // table count
	be(&b, uint16(3))  // platform: windows
	be(&b, uint16(1))  // encoding: unicode BMP
	be(&b, uint32(12)) // subtable offset
	b.Write(sub.Bytes())
	return b.Bytes()
}

// nameTable builds two Macintosh-platform records: family (nameID 1) and
// PostScript name (nameID 6). Macintosh records store plain bytes, which
// keeps the storage area trivial.
func nameTable() []byte {
	family := "Test Font"
	storage := family + PostScriptName

	var b bytes.Buffer
	be(&b, uint16(0))               // format
	be(&b, uint16(2))               // count
	be(&b, uint16(6+2*12))          // string storage offset
	writeNameRecord(&b, 1, 0, uint16(len(family)))
	writeNameRecord(&b, 6, uint16(len(family)), uint16(len(PostScriptName)))
	b.WriteString(storage)
	return b.Bytes()
}

func writeNameRecord(b *bytes.Buffer, nameID, offset, length uint16) {
	be(b, uint16(1)) // platform: macintosh
	be(b, uint16(0)) // encoding: roman
	be(b, uint16(0)) // language
	be(b, nameID)
	be(b, length)
	be(b, offset)
}
