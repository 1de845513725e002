/*
Package otquery answers typical questions clients ask about a font: what is
its name, how wide is the glyph for 'A', which glyph does a code point map
to, may it be embedded into a document.

Package otquery sits on top of package ot and hides the details of which
table holds which piece of information. All metric values are normalized to
1000 units per em and reported as sfnt.Units.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.otquery'
func tracer() tracing.Trace {
	return tracing.Select("font.otquery")
}
