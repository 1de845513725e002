package otquery

import (
	"github.com/npillmayer/fontparse/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font.
//
// Ascent and descent are taken from table 'hhea'. If both are zero, the
// typographic values of table 'OS/2' are used, if present.
func FontMetrics(otf *ot.Font) (FontMetricsInfo, error) {
	metrics := FontMetricsInfo{}
	upem, err := otf.UnitsPerEm()
	if err != nil {
		return metrics, err
	}
	metrics.UnitsPerEm = sfnt.Units(upem)
	hhea, err := otf.HHea()
	if err != nil {
		return metrics, err
	}
	metrics.Ascent = sfnt.Units(ot.Normalize(hhea.Ascender, upem))
	metrics.Descent = sfnt.Units(ot.Normalize(hhea.Descender, upem))
	metrics.LineGap = sfnt.Units(ot.Normalize(hhea.LineGap, upem))
	metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	if otf.HasTable(ot.TagOS2) {
		os2, err := otf.OS2()
		if err != nil {
			return metrics, err
		}
		if metrics.Ascent == 0 && metrics.Descent == 0 {
			a := sfnt.Units(ot.Normalize(os2.TypoAscender, upem))
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(ot.Normalize(os2.TypoDescender, upem))
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
		metrics.CapHeight = sfnt.Units(upem.Norm(os2.CapHeight))
		metrics.XHeight = sfnt.Units(ot.Normalize(os2.XHeight, upem))
	}
	post, err := otf.Post()
	if err != nil {
		return metrics, err
	}
	metrics.ItalicAngle = post.ItalicAngle
	return metrics, nil
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a given code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	cmap, err := otf.CMap()
	if err != nil {
		tracer().Errorf("cannot look up code-point %U: %v", codepoint, err)
		return 0
	}
	if m, ok := cmap.Lookup(uint32(codepoint)); ok {
		return ot.GlyphIndex(m.Glyph)
	}
	return 0
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: All code-points contained in the font's CMap
// are checked sequentially if they produce the given glyph. The smallest
// code-point found wins.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	cmap, err := otf.CMap()
	if err != nil {
		return 0
	}
	for _, cm := range []ot.CodeMap{cmap.Unicode, cmap.Extended, cmap.Symbol} {
		for _, code := range cm.Codes() {
			if cm[code].Glyph == int(gid) {
				return rune(code)
			}
		}
	}
	return 0
}

// GlyphMetrics retrieves metrics for a given glyph.
//
// Side bearings are derived from the glyph's bounding box. For CFF based fonts
// and glyphs without outline, the bounding box and side bearings are zero.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) (GlyphMetricsInfo, error) {
	metrics := GlyphMetricsInfo{}
	widths, err := otf.GlyphWidths()
	if err != nil {
		return metrics, err
	}
	metrics.Advance = sfnt.Units(widths.Width(int(gid)))
	bboxes, err := otf.BoundingBoxes()
	if err != nil {
		return metrics, err
	}
	if boxes, ok := bboxes.Unwrap(); ok && int(gid) < len(boxes) {
		if box, ok := boxes[gid].Unwrap(); ok {
			metrics.BBox = BoundingBox{
				MinX: sfnt.Units(box.XMin),
				MinY: sfnt.Units(box.YMin),
				MaxX: sfnt.Units(box.XMax),
				MaxY: sfnt.Units(box.YMax),
			}
		}
	}
	// If a glyph has no contours, xMax/xMin are not defined.
	if !metrics.BBox.IsEmpty() {
		metrics.LSB = metrics.BBox.MinX
		metrics.RSB = metrics.Advance - metrics.BBox.MaxX
	}
	return metrics, nil
}

// Kerning returns the kerning value for a pair of glyphs, normalized to 1000
// units per em. Fonts without table 'kern' return 0.
func Kerning(otf *ot.Font, left, right ot.GlyphIndex) sfnt.Units {
	kern, err := otf.Kerning()
	if err != nil {
		return 0
	}
	return sfnt.Units(kern.Kern(left, right))
}
