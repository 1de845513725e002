package ot

import (
	"fmt"

	"github.com/npillmayer/fontparse/fontio"
)

// Font is an OpenType font, parsed from a byte source. Parse resolves the
// table directory only; tables are decoded on first access and cached.
//
// A Font is not safe for concurrent use. Use View to get an independent
// instance for another goroutine.
type Font struct {
	src    fontio.Source
	r      *fontio.Reader
	dir    TableDirectory
	header int64 // offset of the table directory
	source string
	index  Option[int]
	warn   *warningCollector
	decoded
}

// decoded caches tables. Decoded tables are never changed.
type decoded struct {
	head   *HeadTable
	hhea   *HHeaTable
	os2    *OS2Table
	post   *PostTable
	maxp   *MaxPTable
	names  NameEntries
	widths GlyphWidths
	cmap   *CMapTable
	kern   KerningMap
	bboxes *Option[[]Option[BoundingBox]]
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

type parseConfig struct {
	source string
	index  Option[int]
}

// WithSourceName sets a name for the font source, usually the file name. It
// is used in error messages and as the fallback PostScript name.
func WithSourceName(name string) ParseOption {
	return func(c *parseConfig) {
		c.source = name
	}
}

// WithCollectionIndex selects a sub-font of a TrueType Collection.
// Without this option the source must be a single font.
func WithCollectionIndex(n int) ParseOption {
	return func(c *parseConfig) {
		c.index = Some(n)
	}
}

// Parse reads the table directory of a font. The source must remain
// readable and unchanged while the Font is in use.
func Parse(src fontio.Source, opts ...ParseOption) (*Font, error) {
	conf := parseConfig{index: None[int]()}
	for _, opt := range opts {
		opt(&conf)
	}
	r := fontio.NewReader(src)
	dir, header, err := ParseDirectory(r, conf.index, conf.source)
	if err != nil {
		tracer().Errorf("cannot parse font %q: %v", conf.source, err)
		return nil, err
	}
	return &Font{
		src:    src,
		r:      r,
		dir:    dir,
		header: header,
		source: conf.source,
		index:  conf.index,
		warn:   &warningCollector{},
	}, nil
}

// LoadMode selects the tables decoded by Font.Load.
type LoadMode int

const (
	// Minimal loads 'name', 'head', 'OS/2' and 'post'.
	Minimal LoadMode = iota
	// Full loads everything Minimal does, plus 'hhea', 'hmtx' and 'cmap'.
	Full
)

func (m LoadMode) String() string {
	if m == Full {
		return "full"
	}
	return "minimal"
}

// Load decodes a set of tables in one go. It stops at the first error;
// tables decoded before remain cached.
func (f *Font) Load(mode LoadMode) error {
	tracer().Debugf("%s load of font %q", mode, f.source)
	steps := []func() error{
		func() error { _, err := f.Names(); return err },
		func() error { _, err := f.Head(); return err },
		func() error { _, err := f.OS2(); return err },
		func() error { _, err := f.Post(); return err },
	}
	if mode == Full {
		steps = append(steps,
			func() error { _, err := f.HHea(); return err },
			func() error { _, err := f.GlyphWidths(); return err },
			func() error { _, err := f.CMap(); return err },
		)
		tracer().Debugf("font %q has CFF outlines: %v", f.source, f.HasCFF())
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (f *Font) decoder() *decoder {
	return &decoder{r: f.r, dir: f.dir, source: f.source, warn: f.warn}
}

// SourceName returns the name given with WithSourceName.
func (f *Font) SourceName() string {
	return f.source
}

// CollectionIndex returns the sub-font index given with WithCollectionIndex.
func (f *Font) CollectionIndex() Option[int] {
	return f.index
}

// Directory returns a copy of the table directory.
func (f *Font) Directory() TableDirectory {
	dir := make(TableDirectory, len(f.dir))
	for t, loc := range f.dir {
		dir[t] = loc
	}
	return dir
}

// DirectoryOffset returns the absolute offset of the font's table directory.
// It is non-zero for sub-fonts of a collection only.
func (f *Font) DirectoryOffset() int64 {
	return f.header
}

// HasTable reports whether table tag is present.
func (f *Font) HasTable(tag Tag) bool {
	return f.dir.Has(tag)
}

// Warnings lists the anomalies tolerated while decoding tables so far.
func (f *Font) Warnings() []FontWarning {
	return f.warn.list()
}

// Head returns table 'head'.
func (f *Font) Head() (*HeadTable, error) {
	if f.head == nil {
		h, err := f.decoder().decodeHead()
		if err != nil {
			return nil, err
		}
		f.head = h
	}
	return f.head, nil
}

// UnitsPerEm returns the design units per em of the font.
func (f *Font) UnitsPerEm() (UnitsPerEm, error) {
	h, err := f.Head()
	if err != nil {
		return 0, err
	}
	return h.UnitsPerEm, nil
}

// HHea returns table 'hhea'.
func (f *Font) HHea() (*HHeaTable, error) {
	if f.hhea == nil {
		upem, err := f.UnitsPerEm()
		if err != nil {
			return nil, err
		}
		h, err := f.decoder().decodeHHea(upem)
		if err != nil {
			return nil, err
		}
		f.hhea = h
	}
	return f.hhea, nil
}

// OS2 returns table 'OS/2'.
func (f *Font) OS2() (*OS2Table, error) {
	if f.os2 == nil {
		upem, err := f.UnitsPerEm()
		if err != nil {
			return nil, err
		}
		t, err := f.decoder().decodeOS2(upem)
		if err != nil {
			return nil, err
		}
		f.os2 = t
	}
	return f.os2, nil
}

// Post returns table 'post'. If the font has no such table, a substitute is
// synthesized from table 'hhea'.
func (f *Font) Post() (*PostTable, error) {
	if f.post == nil {
		p, err := f.decoder().decodePost(f.HHea)
		if err != nil {
			return nil, err
		}
		f.post = p
	}
	return f.post, nil
}

// MaxP returns the glyph count of table 'maxp'.
func (f *Font) MaxP() (*MaxPTable, error) {
	if f.maxp == nil {
		m, err := f.decoder().decodeMaxP()
		if err != nil {
			return nil, err
		}
		f.maxp = m
	}
	return f.maxp, nil
}

// Names returns the entries of table 'name'.
func (f *Font) Names() (NameEntries, error) {
	if f.names == nil {
		n, err := f.decoder().decodeNames()
		if err != nil {
			return nil, err
		}
		f.names = n
	}
	return f.names, nil
}

// PostScriptName returns the PostScript name of the font (name ID 6). Fonts
// without one are named after their source.
func (f *Font) PostScriptName() (string, error) {
	names, err := f.Names()
	if err != nil {
		return "", err
	}
	return postScriptName(names, f.source), nil
}

// GlyphWidths returns the normalized advance widths of all glyphs.
func (f *Font) GlyphWidths() (GlyphWidths, error) {
	if f.widths == nil {
		head, err := f.Head()
		if err != nil {
			return nil, err
		}
		hhea, err := f.HHea()
		if err != nil {
			return nil, err
		}
		maxp, err := f.MaxP()
		if err != nil {
			return nil, err
		}
		w, err := f.decoder().decodeHMtx(head.UnitsPerEm, hhea.NumberOfHMetrics, maxp.NumGlyphs)
		if err != nil {
			return nil, err
		}
		f.widths = w
	}
	return f.widths, nil
}

// CMap returns the character maps of the font.
func (f *Font) CMap() (*CMapTable, error) {
	if f.cmap == nil {
		widths, err := f.GlyphWidths()
		if err != nil {
			return nil, err
		}
		t, err := f.decoder().decodeCMap(widths)
		if err != nil {
			return nil, err
		}
		f.cmap = t
	}
	return f.cmap, nil
}

// Kerning returns the kerning pairs of table 'kern'. Fonts without the table
// have no kerning pairs.
func (f *Font) Kerning() (KerningMap, error) {
	if f.kern == nil {
		upem, err := f.UnitsPerEm()
		if err != nil {
			return nil, err
		}
		k, err := f.decoder().decodeKern(upem)
		if err != nil {
			return nil, err
		}
		f.kern = k
	}
	return f.kern, nil
}

// BoundingBoxes returns the bounding boxes of all glyphs. Fonts without
// table 'loca' yield None.
func (f *Font) BoundingBoxes() (Option[[]Option[BoundingBox]], error) {
	if f.bboxes == nil {
		head, err := f.Head()
		if err != nil {
			return None[[]Option[BoundingBox]](), err
		}
		maxp, err := f.MaxP()
		if err != nil {
			return None[[]Option[BoundingBox]](), err
		}
		b, err := f.decoder().decodeBoundingBoxes(head, maxp.NumGlyphs)
		if err != nil {
			return b, err
		}
		f.bboxes = &b
	}
	return *f.bboxes, nil
}

// --- Raw bytes -------------------------------------------------------------

// FullFont returns all bytes of the font source. For fonts inside a
// collection this is the complete collection file.
func (f *Font) FullFont() ([]byte, error) {
	r := f.r.View()
	r.Seek(0)
	b := r.ReadBytes(int(f.src.Size()))
	if err := r.Err(); err != nil {
		return nil, truncated(0, f.source, err)
	}
	return b, nil
}

// HasCFF reports whether the font has CFF outlines.
func (f *Font) HasCFF() bool {
	return f.dir.Has(TagCFF)
}

// CFFFont returns the raw bytes of table 'CFF '. Fonts with TrueType
// outlines return nil and no error.
func (f *Font) CFFFont() ([]byte, error) {
	loc, ok := f.dir[TagCFF]
	if !ok {
		return nil, nil
	}
	r := f.r.View()
	r.Seek(int64(loc.Offset))
	b := r.ReadBytes(int(loc.Length))
	if err := r.Err(); err != nil {
		return nil, &FormatError{Kind: ErrTruncated, Table: TagCFF, Source: f.source,
			Offset: int64(loc.Offset), Err: fmt.Errorf("%d bytes: %w", loc.Length, err)}
	}
	return b, nil
}

// View returns an independent Font over the same source. Tables already
// decoded are shared, as they are immutable; tables decoded later are cached
// per instance.
func (f *Font) View() *Font {
	v := *f
	v.r = f.r.View()
	v.warn = &warningCollector{}
	v.warn.merge(f.warn)
	return &v
}
