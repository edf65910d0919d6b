package font

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// This file implements raw TrueType/OpenType table-directory reading, table
// pruning (subsetting to a fixed table list) and the handful of table
// structures the PDF emitter needs (head, hhea, hmtx, maxp, post, OS/2,
// cmap, name). It deliberately does not touch glyph IDs: "subsetting" here
// means dropping every table outside the retained set and rebuilding the
// directory, not renumbering glyphs or rewriting glyf/loca.

type offsetsTable struct {
	ScalerType    uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

type tableRecord struct {
	Tag      [4]byte
	CheckSum uint32
	Offset   uint32
	Length   uint32
}

func (t tableRecord) tagString() string { return string(t.Tag[:]) }

// directory is a parsed sfnt table directory: the raw font bytes plus the
// byte ranges of every table it contains.
type directory struct {
	data    []byte
	offsets offsetsTable
	records []tableRecord
	byTag   map[string]tableRecord
}

func parseDirectory(data []byte) (*directory, error) {
	r := bytes.NewReader(data)
	var off offsetsTable
	if err := binary.Read(r, binary.BigEndian, &off); err != nil {
		return nil, fmt.Errorf("read offset table: %w", err)
	}

	records := make([]tableRecord, off.NumTables)
	if err := binary.Read(r, binary.BigEndian, &records); err != nil {
		return nil, fmt.Errorf("read table records: %w", err)
	}

	byTag := make(map[string]tableRecord, len(records))
	for _, rec := range records {
		byTag[rec.tagString()] = rec
	}

	return &directory{data: data, offsets: off, records: records, byTag: byTag}, nil
}

// section returns a reader over the raw bytes of the named table.
func (d *directory) section(tag string) (*io.SectionReader, error) {
	rec, ok := d.byTag[tag]
	if !ok {
		return nil, fmt.Errorf("table %q not present", tag)
	}
	return io.NewSectionReader(bytes.NewReader(d.data), int64(rec.Offset), int64(rec.Length)), nil
}

// readTableHead seeks to the named table and decodes a fixed-size head
// struct from its start, returning a reader positioned right after it so
// callers can continue decoding variable-length trailing data.
func (d *directory) readTableHead(tag string, head any) (*io.SectionReader, error) {
	sec, err := d.section(tag)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(sec, binary.BigEndian, head); err != nil {
		return nil, fmt.Errorf("read %s head: %w", tag, err)
	}
	return sec, nil
}

// HeadTable is the sfnt `head` table's fixed layout.
type HeadTable struct {
	Version            uint32
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

func (d *directory) head() (*HeadTable, error) {
	h := &HeadTable{}
	_, err := d.readTableHead("head", h)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// HheaTable is the sfnt `hhea` table's fixed layout.
type HheaTable struct {
	Version             uint32
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	Reserved            [4]int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

func (d *directory) hhea() (*HheaTable, error) {
	h := &HheaTable{}
	_, err := d.readTableHead("hhea", h)
	if err != nil {
		return nil, err
	}
	return h, nil
}

type longHorMetric struct {
	AdvanceWidth uint16
	Lsb          int16
}

// HmtxTable gives the advance width of every glyph, in font units.
type HmtxTable struct {
	Widths []uint16
}

func (d *directory) hmtx(numGlyphs int, numLong int) (*HmtxTable, error) {
	sec, err := d.section("hmtx")
	if err != nil {
		return nil, err
	}
	widths := make([]uint16, 0, numGlyphs)
	last := uint16(0)
	for i := 0; i < numLong; i++ {
		var m longHorMetric
		if err := binary.Read(sec, binary.BigEndian, &m); err != nil {
			return nil, fmt.Errorf("read hmtx metric %d: %w", i, err)
		}
		widths = append(widths, m.AdvanceWidth)
		last = m.AdvanceWidth
	}
	for len(widths) < numGlyphs {
		widths = append(widths, last)
	}
	return &HmtxTable{Widths: widths}, nil
}

// MaxpTable carries the glyph count.
type MaxpTable struct {
	Version   uint32
	NumGlyphs uint16
}

func (d *directory) maxp() (*MaxpTable, error) {
	m := &MaxpTable{}
	if _, err := d.readTableHead("maxp", m); err != nil {
		return nil, err
	}
	return m, nil
}

// PostTable carries the italic angle and monospace flag used for the PDF
// FontDescriptor flags.
type PostTable struct {
	Version            uint32
	ItalicAngle        int32
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
}

func (d *directory) post() (*PostTable, error) {
	p := &PostTable{}
	if _, err := d.readTableHead("post", p); err != nil {
		return nil, err
	}
	return p, nil
}

// OS2Table carries the metrics used for FontDescriptor ascent/descent/
// cap-height/stem_v. The version 0 layout is read wholesale; later
// versions append fields that are decoded separately.
type OS2Table struct {
	os2Fixed

	// Version >= 2 extension, read separately since older fonts end the
	// table right after usWinDescent (plus the version 1 code page ranges).
	SxHeight   int16
	SCapHeight int16
}

// os2Fixed is the version 0 OS/2 table layout, decodable in one read.
type os2Fixed struct {
	Version            uint16
	XAvgCharWidth      int16
	UsWeightClass      uint16
	UsWidthClass       uint16
	FsType             uint16
	SubXSize           int16
	SubYSize           int16
	SubXOffset         int16
	SubYOffset         int16
	SupXSize           int16
	SupYSize           int16
	SupXOffset         int16
	SupYOffset         int16
	StrikeoutSize      int16
	StrikeoutPosition  int16
	FamilyClass        int16
	Panose             [10]byte
	UlUnicodeRange1    uint32
	UlUnicodeRange2    uint32
	UlUnicodeRange3    uint32
	UlUnicodeRange4    uint32
	AchVendID          [4]byte
	FsSelection        uint16
	UsFirstCharIndex   uint16
	UsLastCharIndex    uint16
	STypoAscender      int16
	STypoDescender     int16
	STypoLineGap       int16
	UsWinAscent        uint16
	UsWinDescent       uint16
}

// os2v1Ext and os2v2Ext are the trailing fields added by OS/2 table versions
// 1 and 2 respectively.
type os2v1Ext struct {
	UlCodePageRange1 uint32
	UlCodePageRange2 uint32
}

type os2v2Ext struct {
	SxHeight      int16
	SCapHeight    int16
	UsDefaultChar uint16
	UsBreakChar   uint16
	UsMaxContext  uint16
}

func (d *directory) os2() (*OS2Table, error) {
	t := &OS2Table{}
	sec, err := d.readTableHead("OS/2", &t.os2Fixed)
	if err != nil {
		return nil, err
	}
	if t.Version >= 1 {
		var v1 os2v1Ext
		if err := binary.Read(sec, binary.BigEndian, &v1); err != nil {
			return nil, fmt.Errorf("read OS/2 v1 fields: %w", err)
		}
	}
	if t.Version >= 2 {
		var v2 os2v2Ext
		if err := binary.Read(sec, binary.BigEndian, &v2); err != nil {
			return nil, fmt.Errorf("read OS/2 v2 fields: %w", err)
		}
		t.SxHeight = v2.SxHeight
		t.SCapHeight = v2.SCapHeight
	}
	return t, nil
}

// CapHeight returns the cap-height field introduced in OS/2 version 2,
// falling back to the typographic ascender for older tables.
func (t *OS2Table) CapHeight() int16 {
	if t.Version >= 2 {
		return t.SCapHeight
	}
	return t.STypoAscender
}

type cmapHeader struct {
	Version   uint16
	NumTables uint16
}

type cmapRecord struct {
	PlatformID     uint16
	EncodingID     uint16
	SubtableOffset uint32
}

// CmapTable maps Unicode codepoints to glyph IDs.
type CmapTable struct {
	ToGlyph map[rune]uint16
}

func (d *directory) cmap() (*CmapTable, error) {
	sec, err := d.section("cmap")
	if err != nil {
		return nil, err
	}

	var hdr cmapHeader
	if err := binary.Read(sec, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read cmap header: %w", err)
	}

	records := make([]cmapRecord, hdr.NumTables)
	if err := binary.Read(sec, binary.BigEndian, &records); err != nil {
		return nil, fmt.Errorf("read cmap records: %w", err)
	}

	var best *cmapRecord
	for i := range records {
		rec := &records[i]
		if rec.PlatformID == 3 && rec.EncodingID == 1 {
			best = rec
			break
		}
		if rec.PlatformID == 0 {
			best = rec
		}
	}
	if best == nil && len(records) > 0 {
		best = &records[0]
	}
	if best == nil {
		return &CmapTable{ToGlyph: map[rune]uint16{}}, nil
	}

	if _, err := sec.Seek(int64(best.SubtableOffset), io.SeekStart); err != nil {
		return nil, err
	}

	var format uint16
	if err := binary.Read(sec, binary.BigEndian, &format); err != nil {
		return nil, err
	}

	toGlyph := map[rune]uint16{}
	switch format {
	case 4:
		if err := readCmapFormat4(sec, toGlyph); err != nil {
			return nil, err
		}
	case 12:
		if err := readCmapFormat12(sec, toGlyph); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported cmap subtable format %d", format)
	}

	return &CmapTable{ToGlyph: toGlyph}, nil
}

func readCmapFormat4(sec *io.SectionReader, out map[rune]uint16) error {
	var hdr struct {
		Length        uint16
		Language      uint16
		SegCountX2    uint16
		SearchRange   uint16
		EntrySelector uint16
		RangeShift    uint16
	}
	if err := binary.Read(sec, binary.BigEndian, &hdr); err != nil {
		return err
	}
	segCount := int(hdr.SegCountX2 / 2)

	endCodes := make([]uint16, segCount)
	if err := binary.Read(sec, binary.BigEndian, &endCodes); err != nil {
		return err
	}
	var pad uint16
	if err := binary.Read(sec, binary.BigEndian, &pad); err != nil {
		return err
	}
	startCodes := make([]uint16, segCount)
	if err := binary.Read(sec, binary.BigEndian, &startCodes); err != nil {
		return err
	}
	idDeltas := make([]int16, segCount)
	if err := binary.Read(sec, binary.BigEndian, &idDeltas); err != nil {
		return err
	}

	rangeOffsetPos, err := sec.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	idRangeOffsets := make([]uint16, segCount)
	if err := binary.Read(sec, binary.BigEndian, &idRangeOffsets); err != nil {
		return err
	}

	for i := 0; i < segCount; i++ {
		start, end := startCodes[i], endCodes[i]
		if start == 0xFFFF && end == 0xFFFF {
			continue
		}
		for c := uint32(start); c <= uint32(end) && c != 0xFFFF; c++ {
			var glyph uint16
			if idRangeOffsets[i] == 0 {
				glyph = uint16(int32(c) + int32(idDeltas[i]))
			} else {
				glyphOffset := rangeOffsetPos + int64(i)*2 + int64(idRangeOffsets[i]) + int64(c-uint32(start))*2
				if _, err := sec.Seek(glyphOffset, io.SeekStart); err != nil {
					return err
				}
				if err := binary.Read(sec, binary.BigEndian, &glyph); err != nil {
					return err
				}
				if glyph != 0 {
					glyph = uint16(int32(glyph) + int32(idDeltas[i]))
				}
			}
			if glyph != 0 {
				out[rune(c)] = glyph
			}
		}
	}
	return nil
}

func readCmapFormat12(sec *io.SectionReader, out map[rune]uint16) error {
	var hdr struct {
		Reserved uint16
		Length   uint32
		Language uint32
		NumGroups uint32
	}
	if err := binary.Read(sec, binary.BigEndian, &hdr); err != nil {
		return err
	}
	for i := uint32(0); i < hdr.NumGroups; i++ {
		var group struct {
			StartCharCode uint32
			EndCharCode   uint32
			StartGlyphID  uint32
		}
		if err := binary.Read(sec, binary.BigEndian, &group); err != nil {
			return err
		}
		for c := group.StartCharCode; c <= group.EndCharCode; c++ {
			out[rune(c)] = uint16(group.StartGlyphID + (c - group.StartCharCode))
		}
	}
	return nil
}

// NameTable carries the PostScript name (nameID 6), used as the PDF
// BaseFont suffix.
type NameTable struct {
	PostScriptName string
	Family         string
}

type nameHeader struct {
	Format       uint16
	Count        uint16
	StringOffset uint16
}

type nameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Length     uint16
	Offset     uint16
}

func (d *directory) name() (*NameTable, error) {
	sec, err := d.section("name")
	if err != nil {
		return nil, err
	}

	var hdr nameHeader
	if err := binary.Read(sec, binary.BigEndian, &hdr); err != nil {
		return nil, err
	}

	records := make([]nameRecord, hdr.Count)
	if err := binary.Read(sec, binary.BigEndian, &records); err != nil {
		return nil, err
	}

	rec, _ := d.byTag["name"]
	storageStart := int64(rec.Offset) + int64(hdr.StringOffset)

	read := func(r nameRecord) (string, error) {
		buf := make([]byte, r.Length)
		rr := io.NewSectionReader(bytes.NewReader(d.data), storageStart+int64(r.Offset), int64(r.Length))
		if _, err := io.ReadFull(rr, buf); err != nil {
			return "", err
		}
		if r.PlatformID == 3 {
			return decodeUTF16BE(buf), nil
		}
		return string(buf), nil
	}

	nt := &NameTable{}
	for _, r := range records {
		switch r.NameID {
		case 6:
			if s, err := read(r); err == nil && nt.PostScriptName == "" {
				nt.PostScriptName = s
			}
		case 1:
			if s, err := read(r); err == nil && nt.Family == "" {
				nt.Family = s
			}
		}
	}
	if nt.PostScriptName == "" {
		return nil, errors.New("name table: no PostScript name (nameID 6) record found")
	}
	return nt, nil
}

func decodeUTF16BE(b []byte) string {
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[i*2:])
	}
	runes := make([]rune, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		if u >= 0xD800 && u <= 0xDBFF && i+1 < len(units) {
			u2 := units[i+1]
			if u2 >= 0xDC00 && u2 <= 0xDFFF {
				r := (rune(u-0xD800) << 10) + rune(u2-0xDC00) + 0x10000
				runes = append(runes, r)
				i++
				continue
			}
		}
		runes = append(runes, rune(u))
	}
	return string(runes)
}

// pruneTables rebuilds a font file containing only the named tables, in the
// order they were requested, with a freshly computed directory. Tables not
// present in the source font are silently skipped.
func pruneTables(d *directory, keep []string) []byte {
	type kept struct {
		tag  string
		data []byte
	}

	var entries []kept
	for _, tag := range keep {
		rec, ok := d.byTag[tag]
		if !ok {
			continue
		}
		buf := make([]byte, rec.Length)
		copy(buf, d.data[rec.Offset:rec.Offset+rec.Length])
		entries = append(entries, kept{tag: tag, data: buf})
	}

	numTables := uint16(len(entries))
	var searchRange, entrySelector, rangeShift uint16
	for searchRange = 1; searchRange*2 <= uint16(numTables); searchRange *= 2 {
		entrySelector++
	}
	searchRange *= 16
	rangeShift = numTables*16 - searchRange

	var out bytes.Buffer
	binary.Write(&out, binary.BigEndian, offsetsTable{
		ScalerType:    d.offsets.ScalerType,
		NumTables:     numTables,
		SearchRange:   searchRange,
		EntrySelector: entrySelector,
		RangeShift:    rangeShift,
	})

	headerSize := 12 + 16*int(numTables)
	offset := uint32(headerSize)
	for _, e := range entries {
		var tag [4]byte
		copy(tag[:], e.tag)
		binary.Write(&out, binary.BigEndian, tableRecord{
			Tag:      tag,
			CheckSum: checksum(e.data),
			Offset:   offset,
			Length:   uint32(len(e.data)),
		})
		padded := (len(e.data) + 3) &^ 3
		offset += uint32(padded)
	}

	for _, e := range entries {
		out.Write(e.data)
		if pad := (4 - len(e.data)%4) % 4; pad > 0 {
			out.Write(make([]byte, pad))
		}
	}

	return out.Bytes()
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
