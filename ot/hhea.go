package ot

// HHeaTable holds the horizontal header. Values are kept in font units,
// except AdvanceWidthMax, which is normalized.
type HHeaTable struct {
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     int
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	NumberOfHMetrics    int
}

func (d *decoder) decodeHHea(upem UnitsPerEm) (*HHeaTable, error) {
	if _, err := d.seekTable(TagHhea, 4); err != nil {
		return nil, err
	}
	h := &HHeaTable{}
	h.Ascender = d.r.ReadI16()
	h.Descender = d.r.ReadI16()
	h.LineGap = d.r.ReadI16()
	h.AdvanceWidthMax = Normalize(d.r.ReadU16(), upem)
	h.MinLeftSideBearing = d.r.ReadI16()
	h.MinRightSideBearing = d.r.ReadI16()
	h.XMaxExtent = d.r.ReadI16()
	h.CaretSlopeRise = d.r.ReadI16()
	h.CaretSlopeRun = d.r.ReadI16()
	d.r.Skip(12) // caretOffset, 4 reserved, metricDataFormat
	h.NumberOfHMetrics = int(d.r.ReadU16())
	if err := d.check(TagHhea); err != nil {
		return nil, err
	}
	tracer().Debugf("hhea: %d hmetrics", h.NumberOfHMetrics)
	return h, nil
}
