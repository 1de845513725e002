/*
Package fontio provides random access to the bytes of a font file.

Font tables are a maze of offsets, and decoding them means jumping around in
the file: seek to an absolute position, read a couple of big-endian integers,
jump somewhere else. Package fontio offers exactly these primitives and
nothing more. A Reader is a cursor over a Source; every decoder in this module
seeks explicitly before it starts reading and does not rely on the position
left behind by someone else.

A Reader is not safe for concurrent use. Clients needing access from more than
one goroutine call View to get an independent cursor over the same bytes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.io'
func tracer() tracing.Trace {
	return tracing.Select("font.io")
}

// Source is a read-only, random access byte source, e.g. a font file held in
// memory or a file on disk.
type Source interface {
	io.ReaderAt
	Size() int64
}

// FromBytes wraps a byte slice as a Source. The slice must not be changed
// while the Source is in use.
func FromBytes(b []byte) Source {
	return bytes.NewReader(b)
}

// FromFile wraps an open file as a Source.
func FromFile(f *os.File) (Source, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return io.NewSectionReader(f, 0, info.Size()), nil
}

// ErrOutOfBounds is reported if a read reaches beyond the end of a Source or
// a seek targets a negative position.
var ErrOutOfBounds = errors.New("read beyond bounds of font data")

const windowSize = 512

// Reader is a cursor over a Source. Its read methods operate on the current
// position and advance it.
//
// Errors are sticky: after the first failed read, every subsequent read
// returns a zero value and Err reports the first error. Decoders therefore read
// a run of fields and check Err once at the end. Seek clears nothing; an
// error is only cleared by Reset.
type Reader struct {
	src    Source
	pos    int64
	err    error
	window []byte // read-ahead buffer
	from   int64  // file position of window[0]
}

// NewReader creates a Reader positioned at the start of src.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// View returns an independent Reader over the same Source, positioned at the
// same offset. The returned Reader shares no mutable state with r.
func (r *Reader) View() *Reader {
	return &Reader{src: r.src, pos: r.pos}
}

// Size returns the total size of the underlying Source.
func (r *Reader) Size() int64 {
	return r.src.Size()
}

// Pos returns the current absolute reading position.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Err returns the first error encountered by a read, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Reset clears a sticky error.
func (r *Reader) Reset() {
	r.err = nil
}

// Seek moves the cursor to an absolute position.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 {
		r.fail(fmt.Errorf("%w: seek to %d", ErrOutOfBounds, offset))
		return r.err
	}
	r.pos = offset
	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) {
	if n < 0 {
		panic("fontio: negative skip")
	}
	r.pos += int64(n)
}

func (r *Reader) fail(err error) {
	if r.err == nil {
		tracer().Debugf("font reader: %v", err)
		r.err = err
	}
}

// next returns the following n bytes and advances the cursor. The returned
// slice is only valid until the next read.
func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+int64(n) > r.src.Size() {
		r.fail(fmt.Errorf("%w: %d bytes at offset %d, size is %d", ErrOutOfBounds,
			n, r.pos, r.src.Size()))
		return nil
	}
	if n > windowSize {
		buf := make([]byte, n)
		if _, err := r.src.ReadAt(buf, r.pos); err != nil && err != io.EOF {
			r.fail(err)
			return nil
		}
		r.pos += int64(n)
		return buf
	}
	if r.pos < r.from || r.pos+int64(n) > r.from+int64(len(r.window)) {
		if err := r.fill(); err != nil {
			r.fail(err)
			return nil
		}
	}
	start := int(r.pos - r.from)
	r.pos += int64(n)
	return r.window[start : start+n]
}

func (r *Reader) fill() error {
	if cap(r.window) < windowSize {
		r.window = make([]byte, windowSize)
	}
	size := int64(windowSize)
	if rest := r.src.Size() - r.pos; rest < size {
		size = rest
	}
	r.window = r.window[:size]
	k, err := r.src.ReadAt(r.window, r.pos)
	if err == io.EOF && int64(k) == size {
		err = nil
	}
	r.from = r.pos
	return err
}

// ReadU8 reads an unsigned byte.
func (r *Reader) ReadU8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// ReadU16 reads a big-endian uint16.
func (r *Reader) ReadU16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return uint16(b[0])<<8 | uint16(b[1])
}

// ReadI16 reads a big-endian int16.
func (r *Reader) ReadI16() int16 {
	return int16(r.ReadU16())
}

// ReadU32 reads a big-endian uint32.
func (r *Reader) ReadU32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// ReadI32 reads a big-endian int32.
func (r *Reader) ReadI32() int32 {
	return int32(r.ReadU32())
}

// ReadBytes reads n bytes into a freshly allocated slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n < 0 {
		r.fail(fmt.Errorf("%w: negative length %d", ErrOutOfBounds, n))
		return nil
	}
	if n == 0 {
		return []byte{}
	}
	b := r.next(n)
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}

// ReadFull reads len(buf) bytes into buf.
func (r *Reader) ReadFull(buf []byte) error {
	b := r.next(len(buf))
	if b == nil && len(buf) > 0 {
		return r.err
	}
	copy(buf, b)
	return nil
}
