package ot

import (
	"path/filepath"
	"strings"
)

// Name IDs of table 'name' used in this module.
const (
	NameIDCopyright            = 0
	NameIDFamily               = 1
	NameIDSubfamily            = 2
	NameIDUniqueID             = 3
	NameIDFull                 = 4
	NameIDVersion              = 5
	NameIDPostScript           = 6
	NameIDTypographicFamily    = 16
	NameIDTypographicSubfamily = 17
	NameIDPostScriptCID        = 20
)

// NameEntry is a single string of table 'name', already decoded.
type NameEntry struct {
	Platform uint16
	Encoding uint16
	Language uint16
	Text     string
}

// NameEntries maps name IDs to the entries for that ID, in the order the
// records appear in the table.
type NameEntries map[int][]NameEntry

// First returns the text of the first entry for a name ID.
func (ne NameEntries) First(nameID int) (string, bool) {
	entries := ne[nameID]
	if len(entries) == 0 {
		return "", false
	}
	return entries[0].Text, true
}

// isUnicodeName reports whether a name record is UTF-16BE encoded.
func isUnicodeName(platform, encoding uint16) bool {
	return platform == 0 || platform == 3 || (platform == 2 && encoding == 1)
}

func (d *decoder) decodeNames() (NameEntries, error) {
	loc, err := d.seekTable(TagName, 2)
	if err != nil {
		return nil, err
	}
	r := d.r
	count := int(r.ReadU16())
	storage := int64(loc.Offset) + int64(r.ReadU16())
	if err := d.check(TagName); err != nil {
		return nil, err
	}
	names := make(NameEntries)
	for i := 0; i < count; i++ {
		e := NameEntry{}
		e.Platform = r.ReadU16()
		e.Encoding = r.ReadU16()
		e.Language = r.ReadU16()
		nameID := int(r.ReadU16())
		length := int(r.ReadU16())
		offset := int64(r.ReadU16())
		if r.Err() != nil {
			break
		}
		next := r.Pos()
		r.Seek(storage + offset)
		if isUnicodeName(e.Platform, e.Encoding) {
			e.Text = r.ReadUnicodeString(length)
		} else {
			e.Text = r.ReadStandardString(length)
		}
		r.Seek(next)
		names[nameID] = append(names[nameID], e)
	}
	if err := d.check(TagName); err != nil {
		return nil, err
	}
	tracer().Debugf("name: %d records, %d distinct name IDs", count, len(names))
	return names, nil
}

// postScriptName returns the first entry for name ID 6. If there is none, the
// base name of the font file is used, with blanks replaced by dashes.
func postScriptName(names NameEntries, source string) string {
	if ps, ok := names.First(NameIDPostScript); ok {
		return ps
	}
	base := filepath.Base(source)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	return strings.ReplaceAll(base, " ", "-")
}
