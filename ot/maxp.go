package ot

// DefaultGlyphCount is assumed if a font has no table 'maxp'.
const DefaultGlyphCount = 65536

// MaxPTable holds the glyph count of table 'maxp'.
type MaxPTable struct {
	NumGlyphs int
	Missing   bool // table is absent, NumGlyphs is DefaultGlyphCount
}

func (d *decoder) decodeMaxP() (*MaxPTable, error) {
	if _, ok := d.dir[TagMaxp]; !ok {
		return &MaxPTable{NumGlyphs: DefaultGlyphCount, Missing: true}, nil
	}
	d.seekTable(TagMaxp, 4)
	n := int(d.r.ReadU16())
	if err := d.check(TagMaxp); err != nil {
		return nil, err
	}
	return &MaxPTable{NumGlyphs: n}, nil
}
