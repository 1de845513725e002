package ot

import (
	"fmt"
	"sort"

	"github.com/npillmayer/fontparse/fontio"
)

// CharMapping is the result of mapping a character code: a glyph and its
// normalized advance width.
type CharMapping struct {
	Glyph int
	Width int
}

// CodeMap maps character codes to glyphs.
type CodeMap map[uint32]CharMapping

// Codes returns the character codes of a map in ascending order.
func (cm CodeMap) Codes() []uint32 {
	codes := make([]uint32, 0, len(cm))
	for c := range cm {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// CMapTable holds the character maps of a font, one per supported role.
// Maps for roles the font does not provide are nil.
type CMapTable struct {
	// Symbol is the legacy Macintosh map (1,0). If the font carries a
	// Windows symbol map (3,0) in format 4, that map replaces it.
	Symbol CodeMap
	// Unicode is the Windows Unicode BMP map (3,1).
	Unicode CodeMap
	// Extended is the Windows Unicode full repertoire map (3,10).
	Extended CodeMap
	// FontSpecific is set for symbol fonts, i.e. fonts with a (3,0) map in format 4.
	FontSpecific bool
}

// Lookup finds the mapping for a character code. Symbol fonts are searched
// in their font-specific map first, all other fonts in their Unicode maps
// first.
func (t *CMapTable) Lookup(code uint32) (CharMapping, bool) {
	order := []CodeMap{t.Extended, t.Unicode, t.Symbol}
	if t.FontSpecific {
		order = []CodeMap{t.Symbol, t.Extended, t.Unicode}
	}
	for _, cm := range order {
		if m, ok := cm[code]; ok {
			return m, true
		}
	}
	return CharMapping{}, false
}

// --- Roles -----------------------------------------------------------------

type cmapRole int

const (
	roleMac cmapRole = iota
	roleSymbol
	roleUnicode
	roleExtended
	roleCount
)

func (role cmapRole) String() string {
	return [...]string{"(1,0) mac", "(3,0) symbol", "(3,1) unicode", "(3,10) extended"}[role]
}

// classifyCMapRecord assigns an encoding record to a role by exact platform
// and encoding match.
func classifyCMapRecord(platform, encoding uint16) (cmapRole, bool) {
	switch {
	case platform == 1 && encoding == 0:
		return roleMac, true
	case platform == 3 && encoding == 0:
		return roleSymbol, true
	case platform == 3 && encoding == 1:
		return roleUnicode, true
	case platform == 3 && encoding == 10:
		return roleExtended, true
	}
	return 0, false
}

// allows reports whether a subtable format is accepted for a role.
func (role cmapRole) allows(format uint16) bool {
	switch role {
	case roleMac:
		return format == 0 || format == 4 || format == 6
	case roleSymbol, roleUnicode:
		return format == 4
	case roleExtended:
		return format == 0 || format == 4 || format == 6 || format == 12
	}
	return false
}

// --- Subtable formats ------------------------------------------------------

// cmapSubtable is one of the supported subtable formats, read from the font
// but not yet expanded to a CodeMap. The set of implementations is closed:
// cmapFormat0, cmapFormat4, cmapFormat6 and cmapFormat12.
type cmapSubtable interface {
	format() uint16
	expand(widths GlyphWidths, fontSpecific bool, warn func(string, ...any)) CodeMap
}

type cmapFormat0 struct {
	glyphs [256]byte
}

type cmapFormat4 struct {
	segments []cmapSegment
	glyphIDs []uint16
}

type cmapSegment struct {
	start, end    uint16
	delta         uint16
	idRangeOffset uint16
}

type cmapFormat6 struct {
	firstCode uint16
	glyphs    []uint16
}

type cmapFormat12 struct {
	groups []cmapGroup
}

type cmapGroup struct {
	start, end, startGlyph uint32
}

func (cmapFormat0) format() uint16  { return 0 }
func (cmapFormat4) format() uint16  { return 4 }
func (cmapFormat6) format() uint16  { return 6 }
func (cmapFormat12) format() uint16 { return 12 }

func mapping(glyph int, widths GlyphWidths) CharMapping {
	return CharMapping{Glyph: glyph, Width: widths.Width(glyph)}
}

func (f cmapFormat0) expand(widths GlyphWidths, _ bool, _ func(string, ...any)) CodeMap {
	cm := make(CodeMap, len(f.glyphs))
	for code, g := range f.glyphs {
		cm[uint32(code)] = mapping(int(g), widths)
	}
	return cm
}

// expand walks all segments, including their end codes. The sentinel
// code 0xFFFF is never mapped. Segments have to ascend; a segment starting
// at or before the end of its predecessor is skipped.
func (f cmapFormat4) expand(widths GlyphWidths, fontSpecific bool, warn func(string, ...any)) CodeMap {
	cm := make(CodeMap)
	segCount := len(f.segments)
	skipped, overlapping := 0, 0
	prevEnd := -1
	for k, seg := range f.segments {
		if int(seg.start) <= prevEnd {
			overlapping++
			continue
		}
		if seg.start <= seg.end {
			prevEnd = int(seg.end)
		}
		for c := int(seg.start); c <= int(seg.end) && c != 0xFFFF; c++ {
			var glyph int
			if seg.idRangeOffset == 0 {
				glyph = (c + int(seg.delta)) & 0xFFFF
			} else {
				idx := k + int(seg.idRangeOffset)/2 - segCount + c - int(seg.start)
				if idx < 0 || idx >= len(f.glyphIDs) {
					skipped++
					continue
				}
				glyph = (int(f.glyphIDs[idx]) + int(seg.delta)) & 0xFFFF
			}
			m := mapping(glyph, widths)
			cm[uint32(c)] = m
			if fontSpecific && c&0xFF00 == 0xF000 {
				cm[uint32(c&0xFF)] = m
			}
		}
	}
	if skipped > 0 {
		warn("format 4: %d codes with glyph index outside of glyph array skipped", skipped)
	}
	if overlapping > 0 {
		warn("format 4: %d segments out of order or overlapping, skipped", overlapping)
	}
	return cm
}

func (f cmapFormat6) expand(widths GlyphWidths, _ bool, _ func(string, ...any)) CodeMap {
	cm := make(CodeMap, len(f.glyphs))
	for i, g := range f.glyphs {
		cm[uint32(f.firstCode)+uint32(i)] = mapping(int(g), widths)
	}
	return cm
}

const maxUnicode = 0x10FFFF

// expand walks all groups. Groups have to ascend without overlap, which
// limits the map to maxUnicode+1 entries; other groups are skipped.
func (f cmapFormat12) expand(widths GlyphWidths, _ bool, warn func(string, ...any)) CodeMap {
	cm := make(CodeMap)
	overlapping := 0
	prevEnd := int64(-1)
	for _, grp := range f.groups {
		if int64(grp.start) <= prevEnd {
			overlapping++
			continue
		}
		end := grp.end
		if end > maxUnicode {
			warn("format 12: group end code %#x beyond Unicode range, clamped", end)
			end = maxUnicode
		}
		if grp.start > end {
			continue
		}
		prevEnd = int64(end)
		g := int(grp.startGlyph)
		for c := grp.start; c <= end; c++ {
			cm[c] = mapping(g, widths)
			g++
		}
	}
	if overlapping > 0 {
		warn("format 12: %d groups out of order or overlapping, skipped", overlapping)
	}
	return cm
}

// --- Decoding --------------------------------------------------------------

// decodeCMap reads the encoding records of table 'cmap', selects a subtable
// per role and expands it. Widths of mapped glyphs are looked up in widths.
//
// Subtables in unsupported formats, or in formats not allowed for their role,
// leave that role empty and are recorded as warnings.
func (d *decoder) decodeCMap(widths GlyphWidths) (*CMapTable, error) {
	loc, err := d.seekTable(TagCmap, 2)
	if err != nil {
		return nil, err
	}
	base := int64(loc.Offset)
	numTables := int(d.r.ReadU16())
	var offsets [roleCount]int64 // relative to table start; 0 is absent
	fontSpecific := false
	for i := 0; i < numTables; i++ {
		platform := d.r.ReadU16()
		encoding := d.r.ReadU16()
		offset := int64(d.r.ReadU32())
		if role, ok := classifyCMapRecord(platform, encoding); ok {
			offsets[role] = offset
			if role == roleSymbol {
				fontSpecific = true
			}
		}
	}
	if err := d.check(TagCmap); err != nil {
		return nil, err
	}
	t := &CMapTable{}
	if offsets[roleMac] > 0 {
		sub, err := d.readCMapSubtable(roleMac, base+offsets[roleMac])
		if err != nil {
			return nil, err
		}
		t.Symbol = d.expandCMapSubtable(sub, widths, false)
	}
	if offsets[roleSymbol] > 0 {
		sub, err := d.readCMapSubtable(roleSymbol, base+offsets[roleSymbol])
		if err != nil {
			return nil, err
		}
		if sub != nil {
			t.Symbol = d.expandCMapSubtable(sub, widths, fontSpecific)
		} else {
			fontSpecific = false
		}
	}
	t.FontSpecific = fontSpecific
	if offsets[roleUnicode] > 0 {
		sub, err := d.readCMapSubtable(roleUnicode, base+offsets[roleUnicode])
		if err != nil {
			return nil, err
		}
		t.Unicode = d.expandCMapSubtable(sub, widths, false)
	}
	if offsets[roleExtended] > 0 {
		sub, err := d.readCMapSubtable(roleExtended, base+offsets[roleExtended])
		if err != nil {
			return nil, err
		}
		t.Extended = d.expandCMapSubtable(sub, widths, false)
	}
	tracer().Debugf("cmap: symbol = %d, unicode = %d, extended = %d entries, font specific = %v",
		len(t.Symbol), len(t.Unicode), len(t.Extended), t.FontSpecific)
	return t, nil
}

func (d *decoder) expandCMapSubtable(sub cmapSubtable, widths GlyphWidths, fontSpecific bool) CodeMap {
	if sub == nil {
		return nil
	}
	warn := func(format string, args ...any) {
		d.warn.addWarning(TagCmap, 0, format, args...)
	}
	return sub.expand(widths, fontSpecific, warn)
}

// readCMapSubtable reads the subtable at absolute offset at. It returns nil
// (and no error) for formats which are not supported for role.
func (d *decoder) readCMapSubtable(role cmapRole, at int64) (cmapSubtable, error) {
	r := d.r
	r.Seek(at)
	format := r.ReadU16()
	if err := d.check(TagCmap); err != nil {
		return nil, err
	}
	if !role.allows(format) {
		d.warn.addWarning(TagCmap, at, "subtable format %d not supported for role %s, ignored", format, role)
		return nil, nil
	}
	var sub cmapSubtable
	switch format {
	case 0:
		r.Skip(4) // length, language
		f := cmapFormat0{}
		r.ReadFull(f.glyphs[:])
		sub = f
	case 4:
		sub = readCMapFormat4(r)
	case 6:
		r.Skip(4) // length, language
		f := cmapFormat6{firstCode: r.ReadU16()}
		f.glyphs = make([]uint16, r.ReadU16())
		for i := range f.glyphs {
			f.glyphs[i] = r.ReadU16()
		}
		sub = f
	case 12:
		r.Skip(10) // reserved, length, language
		n := r.ReadU32()
		if r.Err() == nil && int64(n)*12 > r.Size()-r.Pos() {
			return nil, &FormatError{Kind: ErrTruncated, Table: TagCmap, Source: d.source, Offset: at,
				Err: fmt.Errorf("format 12 claims %d groups", n)}
		}
		f := cmapFormat12{groups: make([]cmapGroup, n)}
		for i := range f.groups {
			f.groups[i] = cmapGroup{start: r.ReadU32(), end: r.ReadU32(), startGlyph: r.ReadU32()}
		}
		sub = f
	default:
		d.warn.addWarning(TagCmap, at, "unsupported subtable format %d, ignored", format)
		return nil, nil
	}
	if err := d.check(TagCmap); err != nil {
		return nil, err
	}
	tracer().Debugf("cmap: role %s uses format %d at offset %d", role, sub.format(), at)
	return sub, nil
}

func readCMapFormat4(r *fontio.Reader) cmapFormat4 {
	length := int(r.ReadU16())
	r.Skip(2) // language
	segCount := int(r.ReadU16()) / 2
	r.Skip(6) // searchRange, entrySelector, rangeShift
	f := cmapFormat4{segments: make([]cmapSegment, segCount)}
	for i := range f.segments {
		f.segments[i].end = r.ReadU16()
	}
	r.Skip(2) // reservedPad
	for i := range f.segments {
		f.segments[i].start = r.ReadU16()
	}
	for i := range f.segments {
		f.segments[i].delta = r.ReadU16()
	}
	for i := range f.segments {
		f.segments[i].idRangeOffset = r.ReadU16()
	}
	if n := length/2 - 8 - segCount*4; n > 0 {
		f.glyphIDs = make([]uint16, n)
		for i := range f.glyphIDs {
			f.glyphIDs[i] = r.ReadU16()
		}
	}
	return f
}
