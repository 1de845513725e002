/*
Package ot decodes the table structure of OpenType and TrueType fonts,
including fonts contained in TrueType Collections (*.ttc).

Intended audience for this package are clients which need font metrics and
character mappings in a normalized form, for example for embedding fonts into
documents, measuring text or selecting glyphs:

▪︎ the table directory, resolved for a single font or a sub-font of a collection

▪︎ the fixed-layout header and metrics tables 'head', 'hhea', 'OS/2', 'post' and 'maxp'

▪︎ the naming table 'name'

▪︎ glyph widths ('hmtx') and glyph bounding boxes ('loca' + 'glyf')

▪︎ character maps ('cmap', subtable formats 0, 4, 6 and 12)

▪︎ kerning pairs ('kern', format 0)

All metric values delivered by this package are normalized to a scale of 1000
units per em, regardless of the font's native units-per-em setting.
Normalization truncates towards zero, i.e. it computes

	value * 1000 / unitsPerEm

with integer arithmetic.

A Font is created with Parse, which resolves the table directory only. Tables
are decoded on demand, either one by one with accessors such as Head or CMap,
or in bulk with Load. Decoded tables are immutable and are never changed
once the decoding succeeded.

Package `ot` does not interpret the advanced typography tables (GSUB, GPOS)
as a whole. Readers for the record structures shared by these tables
(coverage tables, anchors, value records, …) are homed in the sister package
`otlayout`.

# Fonts in the wild

Many fonts infringe upon the OpenType specification in small ways. Where a
malformation is common and the intended value is obvious, it is corrected and
reported as a warning (see Font.Warnings). For example, descender values in
table 'OS/2' are sometimes stored as positive numbers; they are flipped to be
≤ 0. Structural problems, like a missing required table or a bad font
signature, are reported as a *FormatError.

# Status

CFF outlines are detected, but not interpreted; clients may extract the raw
'CFF ' table bytes. Variable fonts are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

// Code comments often cite passages from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
