/*
Package fontload locates font files and loads them into memory.

Font names may address a sub-font of a TrueType Collection by appending the
font index to the file name, as in "Helvetica.ttc,1".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// ScalableFont is a parsed scalable font together with its original bytes.
type ScalableFont struct {
	Fontname string // PostScript name
	Filepath string
	Index    ot.Option[int] // index within a collection
	Binary   []byte
	Font     *ot.Font
}

// SplitPath separates a collection index from a font file name.
// "fonts/Helvetica.ttc,1" yields ("fonts/Helvetica.ttc", Some(1)); names
// without an index yield None.
func SplitPath(name string) (string, ot.Option[int], error) {
	k := strings.LastIndexByte(name, ',')
	if k < 0 || !strings.HasSuffix(strings.ToLower(name[:k]), ".ttc") {
		return name, ot.None[int](), nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(name[k+1:]))
	if err != nil {
		return name, ot.None[int](), fmt.Errorf("invalid font index in %q: %w", name, err)
	}
	return name[:k], ot.Some(n), nil
}

// LoadOpenTypeFont loads an OpenType font (TTF, OTF or a font of a TTC) from
// a file and decodes its tables with the given mode.
func LoadOpenTypeFont(fontfile string, mode ot.LoadMode) (*ScalableFont, error) {
	path, index, err := SplitPath(fontfile)
	if err != nil {
		return nil, err
	}
	bytez, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez, filepath.Base(path), index)
	if err != nil {
		return nil, err
	}
	f.Filepath = path
	if err := f.Font.Load(mode); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseOpenTypeFont parses an OpenType font held in memory. name identifies
// the font in error messages.
func ParseOpenTypeFont(fbytes []byte, name string, index ot.Option[int]) (*ScalableFont, error) {
	opts := []ot.ParseOption{ot.WithSourceName(name)}
	if n, ok := index.Unwrap(); ok {
		opts = append(opts, ot.WithCollectionIndex(n))
	}
	otf, err := ot.Parse(fontio.FromBytes(fbytes), opts...)
	if err != nil {
		return nil, err
	}
	f := &ScalableFont{Binary: fbytes, Index: index, Font: otf}
	if f.Fontname, err = otf.PostScriptName(); err != nil {
		tracer().Infof("font %q has no usable name table: %v", name, err)
		f.Fontname = name
	}
	tracer().Debugf("loaded and parsed font %s", f.Fontname)
	return f, nil
}

// SFNT parses the font a second time with package golang.org/x/image/font/sfnt.
func (f *ScalableFont) SFNT() (*sfnt.Font, error) {
	n, ok := f.Index.Unwrap()
	if !ok {
		return sfnt.Parse(f.Binary)
	}
	c, err := sfnt.ParseCollection(f.Binary)
	if err != nil {
		return nil, err
	}
	return c.Font(n)
}

// CrossCheck compares basic values decoded by package ot with the values
// package golang.org/x/image/font/sfnt finds: units per em, number of glyphs
// and the glyph indices of the printable ASCII characters.
func (f *ScalableFont) CrossCheck() error {
	sf, err := f.SFNT()
	if err != nil {
		return fmt.Errorf("x/image cannot parse font: %w", err)
	}
	var errs []error
	upem, err := f.Font.UnitsPerEm()
	if err != nil {
		return err
	}
	if int(sf.UnitsPerEm()) != int(upem) {
		errs = append(errs, fmt.Errorf("units per em: %d ≠ %d", upem, sf.UnitsPerEm()))
	}
	maxp, err := f.Font.MaxP()
	if err != nil {
		return err
	}
	if maxp.NumGlyphs != sf.NumGlyphs() {
		errs = append(errs, fmt.Errorf("number of glyphs: %d ≠ %d", maxp.NumGlyphs, sf.NumGlyphs()))
	}
	cmap, err := f.Font.CMap()
	if err != nil {
		return err
	}
	var buf sfnt.Buffer
	for r := rune(0x20); r < 0x7F; r++ {
		gid, err := sf.GlyphIndex(&buf, r)
		if err != nil {
			continue
		}
		m, _ := cmap.Lookup(uint32(r))
		if m.Glyph != int(gid) {
			errs = append(errs, fmt.Errorf("glyph for %q: %d ≠ %d", r, m.Glyph, gid))
		}
	}
	return errors.Join(errs...)
}
