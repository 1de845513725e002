package ot

// GlyphWidths holds the normalized advance width of every glyph of a font.
type GlyphWidths []int

// Width returns the advance width of glyph g. Glyph indices beyond the end are
// clamped to the last glyph; an empty table yields 0.
func (gw GlyphWidths) Width(g int) int {
	if len(gw) == 0 {
		return 0
	}
	if g < 0 {
		g = 0
	} else if g >= len(gw) {
		g = len(gw) - 1
	}
	return gw[g]
}

// decodeHMtx reads the advance widths of table 'hmtx'. The result has an entry
// for every glyph; glyphs following the last long metric record share its
// advance width ("monospaced tail").
func (d *decoder) decodeHMtx(upem UnitsPerEm, numberOfHMetrics, numGlyphs int) (GlyphWidths, error) {
	loc, err := d.seekTable(TagHmtx, 0)
	if err != nil {
		return nil, err
	}
	if numberOfHMetrics > numGlyphs {
		d.warn.addWarning(TagHmtx, int64(loc.Offset), "numberOfHMetrics %d exceeds glyph count %d, clamped",
			numberOfHMetrics, numGlyphs)
		numberOfHMetrics = numGlyphs
	}
	widths := make(GlyphWidths, numGlyphs)
	for i := 0; i < numberOfHMetrics; i++ {
		widths[i] = Normalize(d.r.ReadU16(), upem)
		d.r.Skip(2) // lsb
	}
	if err := d.check(TagHmtx); err != nil {
		return nil, err
	}
	if numberOfHMetrics > 0 {
		last := widths[numberOfHMetrics-1]
		for i := numberOfHMetrics; i < numGlyphs; i++ {
			widths[i] = last
		}
	}
	tracer().Debugf("hmtx: %d widths, %d explicit", numGlyphs, numberOfHMetrics)
	return widths, nil
}
