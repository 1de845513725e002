package otlayout

import (
	"iter"
	"slices"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/ot"
)

// Coverage is the set of glyphs a lookup subtable applies to.
// A Coverage is immutable.
type Coverage struct {
	format uint16
	glyphs []ot.GlyphIndex // in table order
	set    map[ot.GlyphIndex]struct{}
	ranges []GlyphRange // format 2 only
}

// GlyphRange is a range record of a format 2 coverage table. The range
// includes End.
type GlyphRange struct {
	Start, End         ot.GlyphIndex
	StartCoverageIndex uint16
}

// Format returns the coverage table format, 1 or 2.
func (c Coverage) Format() uint16 {
	return c.format
}

// Contains reports whether glyph g is covered.
func (c Coverage) Contains(g ot.GlyphIndex) bool {
	_, ok := c.set[g]
	return ok
}

// Len returns the number of glyphs covered.
func (c Coverage) Len() int {
	return len(c.set)
}

// Glyphs returns a copy of the covered glyphs, in table order.
func (c Coverage) Glyphs() []ot.GlyphIndex {
	return slices.Clone(c.glyphs)
}

// Ranges returns a copy of the range records of a format 2 coverage table.
func (c Coverage) Ranges() []GlyphRange {
	return slices.Clone(c.ranges)
}

// All iterates over the covered glyphs, in table order.
func (c Coverage) All() iter.Seq[ot.GlyphIndex] {
	return func(yield func(ot.GlyphIndex) bool) {
		for _, g := range c.glyphs {
			if !yield(g) {
				return
			}
		}
	}
}

// ReadCoverage reads a coverage table at absolute offset at.
// Coverage formats other than 1 and 2 are reported as ot.ErrUnsupportedCoverageFormat.
func ReadCoverage(r *fontio.Reader, at int64) (Coverage, error) {
	r.Seek(at)
	format := r.ReadI16()
	if err := check(r, "coverage"); err != nil {
		return Coverage{}, err
	}
	c := Coverage{format: uint16(format)}
	switch format {
	case 1:
		n := int(r.ReadU16())
		c.glyphs = make([]ot.GlyphIndex, n)
		for i := range c.glyphs {
			c.glyphs[i] = ot.GlyphIndex(r.ReadU16())
		}
	case 2:
		n := int(r.ReadU16())
		c.ranges = make([]GlyphRange, n)
		for i := range c.ranges {
			rng := GlyphRange{
				Start:              ot.GlyphIndex(r.ReadU16()),
				End:                ot.GlyphIndex(r.ReadU16()),
				StartCoverageIndex: r.ReadU16(),
			}
			c.ranges[i] = rng
			if r.Err() != nil {
				break
			}
			for g := int(rng.Start); g <= int(rng.End); g++ {
				c.glyphs = append(c.glyphs, ot.GlyphIndex(g))
			}
		}
	default:
		tracer().Errorf("coverage table at %d has format %d", at, format)
		return Coverage{}, &ot.FormatError{Kind: ot.ErrUnsupportedCoverageFormat,
			Format: int(format), Offset: at}
	}
	if err := check(r, "coverage"); err != nil {
		return Coverage{}, err
	}
	c.set = make(map[ot.GlyphIndex]struct{}, len(c.glyphs))
	for _, g := range c.glyphs {
		c.set[g] = struct{}{}
	}
	return c, nil
}

// ReadCoverages reads a coverage table for each of the absolute offsets
// given.
func ReadCoverages(r *fontio.Reader, locations []int64) ([]Coverage, error) {
	coverages := make([]Coverage, 0, len(locations))
	for _, at := range locations {
		c, err := ReadCoverage(r, at)
		if err != nil {
			return nil, err
		}
		coverages = append(coverages, c)
	}
	return coverages, nil
}
