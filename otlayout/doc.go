/*
Package otlayout reads the record structures shared by the OpenType layout
tables GSUB and GPOS.

Clients are readers of single lookup subtables, e.g. mark-to-base
positioning for PDF text extraction or glyph substitution lists for
subsetting. Package otlayout does not apply lookups; it decodes

▪︎ coverage tables (format 1 and 2)

▪︎ value records and anchor tables

▪︎ mark arrays, base arrays and ligature arrays

▪︎ substitution and positioning lookup records

All readers work on a fontio.Reader and take absolute offsets, i.e. offsets
already resolved against the start of the font source. Readers seek to their
offset before reading. Coordinates are normalized to 1000 units per em, using
an ot.UnitsPerEm handed in by the caller.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"fmt"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.otlayout'
func tracer() tracing.Trace {
	return tracing.Select("font.otlayout")
}

// check converts a sticky read error into an ot.FormatError. The structure
// being read is named in the wrapped cause.
func check(r *fontio.Reader, what string) error {
	if err := r.Err(); err != nil {
		r.Reset()
		return &ot.FormatError{Kind: ot.ErrTruncated, Err: fmt.Errorf("reading %s: %w", what, err)}
	}
	return nil
}

// ReadOffsetArray reads n 16-bit offsets and resolves them against base.
// An offset of 0 stays 0, denoting an absent structure.
func ReadOffsetArray(r *fontio.Reader, n int, base int64) ([]int64, error) {
	locs := make([]int64, n)
	for i := range locs {
		if off := r.ReadU16(); off != 0 {
			locs[i] = base + int64(off)
		}
	}
	if err := check(r, "offset array"); err != nil {
		return nil, err
	}
	return locs, nil
}
