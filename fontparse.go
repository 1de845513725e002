/*
Package fontparse reads OpenType and TrueType fonts, as needed for embedding
fonts into documents.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

Package fontparse is a thin convenience layer. Table decoding lives in
package ot, common queries in package otquery, and the layout table building
blocks (coverage tables, anchors, lookup records) in package otlayout.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontparse

import (
	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/internal/fontload"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/fontparse/otquery"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontparse'
func tracer() tracing.Trace {
	return tracing.Select("fontparse")
}

// LoadFont loads a font file and decodes its tables with the given mode.
// A font of a TrueType Collection is selected by appending its index to the
// file name, e.g. "Helvetica.ttc,1".
func LoadFont(fontfile string, mode ot.LoadMode) (*ot.Font, error) {
	f, err := fontload.LoadOpenTypeFont(fontfile, mode)
	if err != nil {
		tracer().Errorf("cannot load font %s: %v", fontfile, err)
		return nil, err
	}
	for _, w := range f.Font.Warnings() {
		tracer().Infof("%s: %s", f.Fontname, w)
	}
	return f.Font, nil
}

// FromBinary parses raw OpenType bytes and returns a font. Tables are
// decoded on demand.
//
// The input must not change after parsing for the font to be usable.
func FromBinary(data []byte, opts ...ot.ParseOption) (*ot.Font, error) {
	return ot.Parse(fontio.FromBytes(data), opts...)
}

// FamilyName extracts family and subfamily names from a font's `name` table.
// The typographic family (name ID 16) is preferred over the family (ID 1);
// the subfamily follows the family. See otquery.FamilyName.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(f *ot.Font) (family, subfamily string) {
	return otquery.FamilyName(f)
}
