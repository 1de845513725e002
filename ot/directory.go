package ot

import (
	"fmt"

	"github.com/npillmayer/fontparse/fontio"
)

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionCFF      = 0x4F54544F // OTTO
)

// TagCollection is the signature of a TrueType Collection file header.
var TagCollection = T("ttcf")

// TableLocation is the position of a table within the font source.
// Offsets are absolute; for fonts inside a collection they are relative to
// the start of the collection file, not to the sub-font's directory.
type TableLocation struct {
	Offset uint32
	Length uint32
}

// TableDirectory maps table tags to their locations.
type TableDirectory map[Tag]TableLocation

// Has reports whether a table is present.
func (td TableDirectory) Has(tag Tag) bool {
	_, ok := td[tag]
	return ok
}

// Tags returns the tags of all tables present, in no specific order.
func (td TableDirectory) Tags() []Tag {
	tags := make([]Tag, 0, len(td))
	for t := range td {
		tags = append(tags, t)
	}
	return tags
}

// ParseDirectory locates the table directory of a font and reads its table
// records. If index is set, the source is expected to be a TrueType Collection
// and the directory of sub-font index is read. source identifies the font in
// error messages and may be empty.
//
// ParseDirectory returns the table directory together with the absolute
// offset of the directory header.
//
// The checksums of the table records are not verified. If a tag occurs more
// than once, the last record wins.
func ParseDirectory(r *fontio.Reader, index Option[int], source string) (TableDirectory, int64, error) {
	var dirOffset int64
	if n, isCollection := index.Unwrap(); isCollection {
		if n < 0 {
			return nil, 0, &FormatError{Kind: ErrNegativeFontIndex, Source: source, Index: n}
		}
		r.Seek(0)
		tag := Tag(r.ReadU32())
		if r.Err() != nil || tag != TagCollection {
			return nil, 0, &FormatError{Kind: ErrNotACollection, Source: source, Err: r.Err()}
		}
		r.Skip(4) // major, minor version
		count := int(r.ReadU32())
		if r.Err() != nil {
			return nil, 0, truncated(0, source, r.Err())
		}
		if n >= count {
			return nil, 0, &FormatError{Kind: ErrIndexOutOfRange, Source: source,
				Index: n, Count: count}
		}
		r.Skip(n * 4)
		dirOffset = int64(r.ReadU32())
		if r.Err() != nil {
			return nil, 0, truncated(0, source, r.Err())
		}
		tracer().Debugf("collection %q has %d fonts, font #%d at offset %d", source, count, n, dirOffset)
	}
	r.Seek(dirOffset)
	version := r.ReadU32()
	if r.Err() != nil || (version != sfntVersionTrueType && version != sfntVersionCFF) {
		return nil, 0, &FormatError{Kind: ErrNotAFont, Source: source, Offset: dirOffset}
	}
	numTables := int(r.ReadU16())
	r.Skip(6) // searchRange, entrySelector, rangeShift
	dir := make(TableDirectory, numTables)
	for i := 0; i < numTables; i++ {
		tag := Tag(r.ReadU32())
		r.Skip(4) // checksum
		offset := r.ReadU32()
		length := r.ReadU32()
		dir[tag] = TableLocation{Offset: offset, Length: length}
	}
	if r.Err() != nil {
		return nil, 0, &FormatError{Kind: ErrTruncated, Source: source, Offset: dirOffset,
			Err: fmt.Errorf("reading %d table records: %w", numTables, r.Err())}
	}
	tracer().Debugf("font %q has %d tables", source, len(dir))
	return dir, dirOffset, nil
}

// NumFonts returns the number of fonts in a source: the font count of a
// TrueType Collection, or 1 for a single font.
func NumFonts(src fontio.Source) (int, error) {
	r := fontio.NewReader(src)
	tag := Tag(r.ReadU32())
	if r.Err() != nil {
		return 0, &FormatError{Kind: ErrNotAFont, Err: r.Err()}
	}
	if tag != TagCollection {
		return 1, nil
	}
	r.Skip(4)
	count := int(r.ReadU32())
	if r.Err() != nil {
		return 0, truncated(0, "", r.Err())
	}
	return count, nil
}
