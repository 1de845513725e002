package fontio

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ReadStandardString reads n bytes and decodes them as a single-byte string.
// Fonts use the Macintosh and ISO platforms with 8-bit encodings; we decode
// these with Windows-1252 (WinAnsi), which is a superset of Latin-1 for the
// printable range.
func (r *Reader) ReadStandardString(n int) string {
	b := r.ReadBytes(n)
	if len(b) == 0 {
		return ""
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		r.fail(fmt.Errorf("decoding single-byte string: %w", err))
		return ""
	}
	return string(s)
}

// ReadUnicodeString reads n bytes and decodes them as UTF-16BE, i.e. two
// bytes per character. An odd trailing byte is consumed but ignored.
func (r *Reader) ReadUnicodeString(n int) string {
	b := r.ReadBytes(n)
	if len(b) < 2 {
		return ""
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	s, err := enc.NewDecoder().Bytes(b[:len(b)&^1])
	if err != nil {
		r.fail(fmt.Errorf("decoding UTF-16 string: %w", err))
		return ""
	}
	return string(s)
}
