package ot

// HeadTable holds the values of table 'head' relevant for clients of this
// package. The bounding box is normalized to 1000 units per em.
type HeadTable struct {
	Flags            uint16
	UnitsPerEm       UnitsPerEm
	XMin, YMin       int
	XMax, YMax       int
	MacStyle         uint16
	LowestRecPPEM    uint16
	IndexToLocFormat int16 // 0 for short offsets, 1 for long offsets in 'loca'
}

// Bold and Italic bits of HeadTable.MacStyle.
const (
	MacStyleBold   = 0x0001
	MacStyleItalic = 0x0002
)

// decodeHead reads table 'head'. A unitsPerEm of 0 makes every normalization
// impossible and is reported as ErrInvalidTable.
func (d *decoder) decodeHead() (*HeadTable, error) {
	loc, err := d.seekTable(TagHead, 16)
	if err != nil {
		return nil, err
	}
	h := &HeadTable{}
	h.Flags = d.r.ReadU16()
	upem := d.r.ReadU16()
	d.r.Skip(16) // created, modified
	xMin, yMin := d.r.ReadI16(), d.r.ReadI16()
	xMax, yMax := d.r.ReadI16(), d.r.ReadI16()
	h.MacStyle = d.r.ReadU16()
	h.LowestRecPPEM = d.r.ReadU16()
	d.r.Skip(2) // fontDirectionHint
	h.IndexToLocFormat = d.r.ReadI16()
	if err := d.check(TagHead); err != nil {
		return nil, err
	}
	if upem == 0 {
		return nil, &FormatError{Kind: ErrInvalidTable, Table: TagHead, Source: d.source,
			Offset: int64(loc.Offset) + 18}
	}
	h.UnitsPerEm = UnitsPerEm(upem)
	h.XMin = Normalize(xMin, h.UnitsPerEm)
	h.YMin = Normalize(yMin, h.UnitsPerEm)
	h.XMax = Normalize(xMax, h.UnitsPerEm)
	h.YMax = Normalize(yMax, h.UnitsPerEm)
	tracer().Debugf("head: units per em = %d, bbox = [%d %d %d %d]", upem, h.XMin, h.YMin, h.XMax, h.YMax)
	return h, nil
}
