package ot

import (
	"errors"
	"math"
)

// PostTable holds the PostScript related values of table 'post'.
// Underline values are kept in font units.
type PostTable struct {
	ItalicAngle        float64 // degrees, counter-clockwise from vertical
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool
	Synthesized        bool // true if derived from 'hhea', as 'post' is missing
}

// decodePost reads table 'post'. If the table is missing, the italic angle is
// derived from the caret slope in table 'hhea'; this is recorded as a warning.
func (d *decoder) decodePost(hhea func() (*HHeaTable, error)) (*PostTable, error) {
	if _, err := d.seekTable(TagPost, 4); err != nil {
		if !errors.Is(err, ErrRequiredTableMissing) {
			return nil, err
		}
		h, err := hhea()
		if err != nil {
			return nil, err
		}
		angle := -math.Atan2(float64(h.CaretSlopeRun), float64(h.CaretSlopeRise)) * 180 / math.Pi
		d.warn.addWarning(TagPost, 0, "table missing, italic angle %.2f derived from 'hhea' caret slope", angle)
		return &PostTable{ItalicAngle: angle, Synthesized: true}, nil
	}
	p := &PostTable{}
	mantissa := d.r.ReadI16()
	fraction := d.r.ReadU16()
	p.ItalicAngle = float64(mantissa) + float64(fraction)/65536.0
	p.UnderlinePosition = d.r.ReadI16()
	p.UnderlineThickness = d.r.ReadI16()
	p.IsFixedPitch = d.r.ReadU32() != 0
	if err := d.check(TagPost); err != nil {
		return nil, err
	}
	return p, nil
}
