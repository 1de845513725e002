/*
Package sfntbuild assembles synthetic font files for tests.

Tests in this module need fonts with very specific properties: a cmap
subtable with a single segment, a descender stored as a positive number, a
collection with two sub-fonts. Real fonts rarely have exactly these, so tests
build the bytes themselves:

	font := sfntbuild.Font(map[string][]byte{
		"head": sfntbuild.Head(2048, 0),
		"maxp": sfntbuild.MaxP(10),
	})

Checksums are left as zero.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package sfntbuild

import (
	"encoding/binary"
	"sort"
)

// Buf is a growing big-endian byte buffer.
type Buf []byte

// U8 appends a byte.
func (b *Buf) U8(v uint8) *Buf {
	*b = append(*b, v)
	return b
}

// U16 appends a big-endian uint16.
func (b *Buf) U16(vs ...uint16) *Buf {
	for _, v := range vs {
		*b = binary.BigEndian.AppendUint16(*b, v)
	}
	return b
}

// I16 appends a big-endian int16.
func (b *Buf) I16(vs ...int16) *Buf {
	for _, v := range vs {
		*b = binary.BigEndian.AppendUint16(*b, uint16(v))
	}
	return b
}

// U32 appends a big-endian uint32.
func (b *Buf) U32(vs ...uint32) *Buf {
	for _, v := range vs {
		*b = binary.BigEndian.AppendUint32(*b, v)
	}
	return b
}

// Bytes appends raw bytes.
func (b *Buf) Bytes(p []byte) *Buf {
	*b = append(*b, p...)
	return b
}

// Zeros appends n zero bytes.
func (b *Buf) Zeros(n int) *Buf {
	*b = append(*b, make([]byte, n)...)
	return b
}

// Len returns the current length.
func (b *Buf) Len() int {
	return len(*b)
}

// --- Containers ------------------------------------------------------------

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionCFF      = 0x4F54544F
)

// Font builds a single sfnt font from tables keyed by their 4-letter tag.
// If the tables contain a "CFF " table, the font gets the OTTO signature.
func Font(tables map[string][]byte) []byte {
	return fontAt(tables, 0)
}

// fontAt builds a font whose table offsets are relative to a file position
// base, as needed for fonts inside a collection.
func fontAt(tables map[string][]byte, base int) []byte {
	tags := make([]string, 0, len(tables))
	for t := range tables {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	version := uint32(sfntVersionTrueType)
	if _, ok := tables["CFF "]; ok {
		version = sfntVersionCFF
	}
	header := Buf{}
	header.U32(version).U16(uint16(len(tags)), 0, 0, 0)
	data := Buf{}
	dirSize := 12 + 16*len(tags)
	for _, t := range tags {
		tbl := tables[t]
		offset := base + dirSize + data.Len()
		header.Bytes(tagBytes(t)).U32(0, uint32(offset), uint32(len(tbl)))
		data.Bytes(tbl)
		for data.Len()%4 != 0 {
			data.U8(0)
		}
	}
	return append(header, data...)
}

// Collection builds a TrueType Collection (version 1) of fonts.
func Collection(fonts ...map[string][]byte) []byte {
	headerSize := 12 + 4*len(fonts)
	header := Buf{}
	header.Bytes([]byte("ttcf")).U16(1, 0).U32(uint32(len(fonts)))
	body := Buf{}
	for _, tables := range fonts {
		offset := headerSize + body.Len()
		header.U32(uint32(offset))
		body.Bytes(fontAt(tables, offset))
	}
	return append(header, body...)
}

// TableRecords builds a raw table directory with the given records, in the
// given order. It may be used to produce directories with duplicate tags.
func TableRecords(records ...Record) []byte {
	b := Buf{}
	b.U32(sfntVersionTrueType).U16(uint16(len(records)), 0, 0, 0)
	for _, r := range records {
		b.Bytes(tagBytes(r.Tag)).U32(0, r.Offset, r.Length)
	}
	return b
}

// Record is a table directory entry.
type Record struct {
	Tag    string
	Offset uint32
	Length uint32
}

func tagBytes(t string) []byte {
	return []byte((t + "    ")[:4])
}

// --- Tables ----------------------------------------------------------------

// Head builds table 'head' with a given units-per-em and 'loca' format.
// The font bounding box is [-100, -200, 1000, 900].
func Head(unitsPerEm uint16, indexToLocFormat int16) []byte {
	b := Buf{}
	b.U32(0x00010000, 0)          // version, fontRevision
	b.U32(0, 0x5F0F3CF5)          // checksumAdjustment, magicNumber
	b.U16(0x000B, unitsPerEm)     // flags, unitsPerEm
	b.Zeros(16)                   // created, modified
	b.I16(-100, -200, 1000, 900)  // xMin, yMin, xMax, yMax
	b.U16(0x0001, 8)              // macStyle, lowestRecPPEM
	b.I16(2, indexToLocFormat, 0) // fontDirectionHint, indexToLocFormat, glyphDataFormat
	return b
}

// HHea holds the values of table 'hhea' set by tests.
type HHea struct {
	Ascender, Descender, LineGap int16
	AdvanceWidthMax              uint16
	CaretSlopeRise               int16
	CaretSlopeRun                int16
	NumberOfHMetrics             uint16
}

// Bytes serializes table 'hhea'.
func (h HHea) Bytes() []byte {
	b := Buf{}
	b.U32(0x00010000)
	b.I16(h.Ascender, h.Descender, h.LineGap)
	b.U16(h.AdvanceWidthMax)
	b.I16(0, 0, 0) // minLeftSideBearing, minRightSideBearing, xMaxExtent
	b.I16(h.CaretSlopeRise, h.CaretSlopeRun)
	b.Zeros(12)
	b.U16(h.NumberOfHMetrics)
	return b
}

// MaxP builds a version 0.5 table 'maxp'.
func MaxP(numGlyphs uint16) []byte {
	b := Buf{}
	b.U32(0x00005000).U16(numGlyphs)
	return b
}

// OS2 holds the values of table 'OS/2' set by tests.
type OS2 struct {
	Version        uint16
	WeightClass    uint16
	WidthClass     uint16
	FsType         uint16
	TypoAscender   int16
	TypoDescender  int16
	WinAscent      uint16
	WinDescent     uint16
	CodePageRange1 uint32
	XHeight        int16
	CapHeight      int16
}

// Bytes serializes table 'OS/2' in its version dependent layout.
func (o OS2) Bytes() []byte {
	b := Buf{}
	b.U16(o.Version).I16(500).U16(o.WeightClass, o.WidthClass, o.FsType)
	b.Zeros(20)               // subscript, superscript, strikeout
	b.I16(0)                  // sFamilyClass
	b.Zeros(10)               // panose
	b.Zeros(16)               // ulUnicodeRange1..4
	b.Bytes([]byte("TEST"))   // achVendID
	b.U16(0x0040, 0x20, 0x7E) // fsSelection, usFirstCharIndex, usLastCharIndex
	b.I16(o.TypoAscender, o.TypoDescender, 90)
	b.U16(o.WinAscent, o.WinDescent)
	if o.Version > 0 {
		b.U32(o.CodePageRange1, 0)
	}
	if o.Version > 1 {
		b.I16(o.XHeight, o.CapHeight)
		b.U16(0, 0x20, 0) // usDefaultChar, usBreakChar, usMaxContext
	}
	return b
}

// Post builds table 'post' (version 3) with an italic angle in 16.16 fixed.
func Post(italicAngle int32, underlinePos, underlineThickness int16, fixedPitch bool) []byte {
	b := Buf{}
	b.U32(0x00030000).U32(uint32(italicAngle))
	b.I16(underlinePos, underlineThickness)
	if fixedPitch {
		b.U32(1)
	} else {
		b.U32(0)
	}
	b.Zeros(16)
	return b
}

// Name is a record of table 'name'. Text is stored as given, i.e. tests must
// supply UTF-16BE bytes for Unicode platforms (see UTF16).
type Name struct {
	Platform, Encoding, Language, NameID uint16
	Text                                 []byte
}

// NameTable builds table 'name' (format 0).
func NameTable(names ...Name) []byte {
	b := Buf{}
	storage := 6 + 12*len(names)
	b.U16(0, uint16(len(names)), uint16(storage))
	strings := Buf{}
	for _, n := range names {
		b.U16(n.Platform, n.Encoding, n.Language, n.NameID)
		b.U16(uint16(len(n.Text)), uint16(strings.Len()))
		strings.Bytes(n.Text)
	}
	return append(b, strings...)
}

// UTF16 encodes a string as UTF-16BE, without surrogate handling.
func UTF16(s string) []byte {
	b := Buf{}
	for _, r := range s {
		b.U16(uint16(r))
	}
	return b
}

// HMtx builds table 'hmtx' from long metrics (advance widths) and trailing
// left side bearings.
func HMtx(advances []uint16, extraLSBs int) []byte {
	b := Buf{}
	for _, a := range advances {
		b.U16(a).I16(0)
	}
	b.Zeros(2 * extraLSBs)
	return b
}

// --- cmap ------------------------------------------------------------------

// Encoding is an encoding record of table 'cmap' together with its subtable.
type Encoding struct {
	Platform, Encoding uint16
	Subtable           []byte
}

// CMap builds table 'cmap'. Encoding records with a nil subtable get an
// offset of 0.
func CMap(encodings ...Encoding) []byte {
	b := Buf{}
	b.U16(0, uint16(len(encodings)))
	offset := 4 + 8*len(encodings)
	subtables := Buf{}
	for _, e := range encodings {
		if e.Subtable == nil {
			b.U16(e.Platform, e.Encoding).U32(0)
			continue
		}
		b.U16(e.Platform, e.Encoding).U32(uint32(offset + subtables.Len()))
		subtables.Bytes(e.Subtable)
	}
	return append(b, subtables...)
}

// CMapFormat0 builds a byte encoding subtable.
func CMapFormat0(glyphs [256]byte) []byte {
	b := Buf{}
	b.U16(0, 262, 0).Bytes(glyphs[:])
	return b
}

// Segment is a segment of a format 4 subtable.
type Segment struct {
	Start, End    uint16
	Delta         int16
	IDRangeOffset uint16
}

// CMapFormat4 builds a segment mapping subtable. The closing 0xFFFF segment
// is appended automatically.
func CMapFormat4(segments []Segment, glyphIDs []uint16) []byte {
	segments = append(segments, Segment{Start: 0xFFFF, End: 0xFFFF, Delta: 1})
	segCount := len(segments)
	length := 16 + 8*segCount + 2*len(glyphIDs)
	b := Buf{}
	b.U16(4, uint16(length), 0, uint16(2*segCount), 0, 0, 0)
	for _, s := range segments {
		b.U16(s.End)
	}
	b.U16(0)
	for _, s := range segments {
		b.U16(s.Start)
	}
	for _, s := range segments {
		b.I16(s.Delta)
	}
	for _, s := range segments {
		b.U16(s.IDRangeOffset)
	}
	b.U16(glyphIDs...)
	return b
}

// CMapFormat6 builds a trimmed table mapping subtable.
func CMapFormat6(firstCode uint16, glyphs []uint16) []byte {
	b := Buf{}
	b.U16(6, uint16(10+2*len(glyphs)), 0, firstCode, uint16(len(glyphs)))
	b.U16(glyphs...)
	return b
}

// Group is a sequential map group of a format 12 subtable.
type Group struct {
	Start, End, StartGlyph uint32
}

// CMapFormat12 builds a segmented coverage subtable.
func CMapFormat12(groups ...Group) []byte {
	b := Buf{}
	b.U16(12, 0).U32(uint32(16+12*len(groups)), 0, uint32(len(groups)))
	for _, g := range groups {
		b.U32(g.Start, g.End, g.StartGlyph)
	}
	return b
}

// --- kern, loca, glyf ------------------------------------------------------

// KernPair is an entry of a format 0 kerning subtable.
type KernPair struct {
	Left, Right uint16
	Value       int16
}

// KernSubtable builds a format 0 kerning subtable with a given coverage.
func KernSubtable(coverage uint16, pairs ...KernPair) []byte {
	b := Buf{}
	length := 14 + 6*len(pairs)
	b.U16(0, uint16(length), coverage)
	b.U16(uint16(len(pairs)), 0, 0, 0)
	for _, p := range pairs {
		b.U16(p.Left, p.Right).I16(p.Value)
	}
	return b
}

// Kern builds a version 0 table 'kern' from subtables.
func Kern(subtables ...[]byte) []byte {
	b := Buf{}
	b.U16(0, uint16(len(subtables)))
	for _, s := range subtables {
		b.Bytes(s)
	}
	return b
}

// Box is a glyph bounding box. A nil *Box denotes an empty glyph.
type Box struct {
	XMin, YMin, XMax, YMax int16
}

// GlyfLoca builds tables 'glyf' and 'loca' for glyphs having just a header
// (no contours needed for bounding boxes). With short offsets, glyph data is
// padded to even lengths.
func GlyfLoca(long bool, boxes ...*Box) (glyf, loca []byte) {
	g, l := Buf{}, Buf{}
	put := func(off int) {
		if long {
			l.U32(uint32(off))
		} else {
			l.U16(uint16(off / 2))
		}
	}
	for _, box := range boxes {
		put(g.Len())
		if box == nil {
			continue
		}
		g.I16(1, box.XMin, box.YMin, box.XMax, box.YMax)
		g.U16(0) // endPtsOfContours[0]
	}
	put(g.Len())
	return g, l
}
