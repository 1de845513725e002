package ot

// KerningMap maps glyph pairs to normalized kerning values. Keys are built
// with KernPair.
type KerningMap map[uint32]int

// KernPair packs a pair of glyphs into a KerningMap key.
func KernPair(left, right GlyphIndex) uint32 {
	return uint32(left)<<16 | uint32(right)
}

// Kern returns the kerning value for a glyph pair, or 0.
func (km KerningMap) Kern(left, right GlyphIndex) int {
	return km[KernPair(left, right)]
}

// coverage value (masked by kernCoverageMask) of horizontal format 0 subtables
const (
	kernCoverageMask       = 0xFFF7 // ignore the 'override' bit
	kernCoverageHorizontal = 0x0001
)

// decodeKern reads the format 0 subtables of a 'kern' table (the Windows
// version 0 layout). A missing table yields an empty map.
//
// Subtables are found by summing up the declared subtable lengths, starting
// directly after the table header. Pairs of later subtables override pairs of
// earlier ones.
func (d *decoder) decodeKern(upem UnitsPerEm) (KerningMap, error) {
	kerning := make(KerningMap)
	if !d.dir.Has(TagKern) {
		d.warn.addWarning(TagKern, 0, "table missing, no kerning")
		return kerning, nil
	}
	loc, _ := d.seekTable(TagKern, 2)
	r := d.r
	nTables := int(r.ReadU16())
	checkpoint := int64(loc.Offset) + 4
	for k := 0; k < nTables; k++ {
		r.Seek(checkpoint)
		r.Skip(2) // version
		length := int64(r.ReadU16())
		coverage := r.ReadU16()
		checkpoint += length
		if r.Err() != nil {
			break
		}
		if coverage&kernCoverageMask != kernCoverageHorizontal {
			tracer().Debugf("kern: skipping subtable %d with coverage %#04x", k, coverage)
			continue
		}
		nPairs := int(r.ReadU16())
		r.Skip(6) // searchRange, entrySelector, rangeShift
		pairs := make(KerningMap, nPairs)
		for j := 0; j < nPairs; j++ {
			key := r.ReadU32()
			value := r.ReadI16()
			pairs[key] = Normalize(value, upem)
		}
		if r.Err() != nil {
			break
		}
		for key, v := range pairs {
			kerning[key] = v
		}
	}
	if err := d.check(TagKern); err != nil {
		return nil, err
	}
	tracer().Debugf("kern: %d pairs", len(kerning))
	return kerning, nil
}
