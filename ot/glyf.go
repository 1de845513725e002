package ot

import "fmt"

// BoundingBox is a glyph's bounding box, normalized to 1000 units per em.
type BoundingBox struct {
	XMin, YMin int
	XMax, YMax int
}

// decodeBoundingBoxes reads the bounding boxes of all glyphs, using table
// 'loca' to find glyph data in table 'glyf'. Fonts without 'loca' (CFF based
// fonts) yield None. Glyphs without outline data get a None slot.
//
// The number of bounding boxes is one less than the number of 'loca' entries,
// and never more than numGlyphs.
func (d *decoder) decodeBoundingBoxes(head *HeadTable, numGlyphs int) (Option[[]Option[BoundingBox]], error) {
	none := None[[]Option[BoundingBox]]()
	loca, ok := d.dir[TagLoca]
	if !ok {
		tracer().Debugf("font has no table 'loca', no glyph bounding boxes")
		return none, nil
	}
	glyf, ok := d.dir[TagGlyf]
	if !ok {
		return none, missingTable(TagGlyf, d.source)
	}
	if end := int64(loca.Offset) + int64(loca.Length); end > d.r.Size() {
		return none, truncated(TagLoca, d.source,
			fmt.Errorf("table ends at %d, beyond end of font data at %d", end, d.r.Size()))
	}
	entrySize := 2
	if head.IndexToLocFormat != 0 {
		entrySize = 4
	}
	n := int(loca.Length) / entrySize
	if n > numGlyphs+1 {
		d.warn.addWarning(TagLoca, int64(loca.Offset),
			"%d entries for %d glyphs, extra entries ignored", n, numGlyphs)
		n = numGlyphs + 1
	}
	offsets := make([]int64, n)
	d.seekTable(TagLoca, 0)
	for i := range offsets {
		if entrySize == 2 {
			offsets[i] = int64(d.r.ReadU16()) * 2
		} else {
			offsets[i] = int64(d.r.ReadU32())
		}
	}
	if err := d.check(TagLoca); err != nil {
		return none, err
	}
	if len(offsets) == 0 {
		return Some([]Option[BoundingBox]{}), nil
	}
	upem := head.UnitsPerEm
	boxes := make([]Option[BoundingBox], len(offsets)-1)
	for g := range boxes {
		start := offsets[g]
		if start == offsets[g+1] {
			continue // empty glyph
		}
		d.r.Seek(int64(glyf.Offset) + start + 2)
		box := BoundingBox{}
		box.XMin = Normalize(d.r.ReadI16(), upem)
		box.YMin = Normalize(d.r.ReadI16(), upem)
		box.XMax = Normalize(d.r.ReadI16(), upem)
		box.YMax = Normalize(d.r.ReadI16(), upem)
		boxes[g] = Some(box)
	}
	if err := d.check(TagGlyf); err != nil {
		return none, err
	}
	tracer().Debugf("glyf: %d bounding boxes", len(boxes))
	return Some(boxes), nil
}
