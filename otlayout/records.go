package otlayout

import (
	"fmt"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/ot"
)

// ValueFormat flags of a value record. The device table flags are read over,
// device tables are not interpreted.
const (
	ValueXPlacement       = 0x0001
	ValueYPlacement       = 0x0002
	ValueXAdvance         = 0x0004
	ValueYAdvance         = 0x0008
	ValueXPlacementDevice = 0x0010
	ValueYPlacementDevice = 0x0020
	ValueXAdvanceDevice   = 0x0040
	ValueYAdvanceDevice   = 0x0080
)

// ValueRecord is a GPOS value record, normalized to 1000 units per em.
type ValueRecord struct {
	XPlacement int
	YPlacement int
	XAdvance   int
	YAdvance   int
}

// ReadValueRecord reads a value record at the current position of r. Only the
// fields flagged in format are present.
func ReadValueRecord(r *fontio.Reader, format uint16, upem ot.UnitsPerEm) (ValueRecord, error) {
	vr := ValueRecord{}
	if format&ValueXPlacement != 0 {
		vr.XPlacement = ot.Normalize(r.ReadI16(), upem)
	}
	if format&ValueYPlacement != 0 {
		vr.YPlacement = ot.Normalize(r.ReadI16(), upem)
	}
	if format&ValueXAdvance != 0 {
		vr.XAdvance = ot.Normalize(r.ReadI16(), upem)
	}
	if format&ValueYAdvance != 0 {
		vr.YAdvance = ot.Normalize(r.ReadI16(), upem)
	}
	for _, device := range []uint16{ValueXPlacementDevice, ValueYPlacementDevice,
		ValueXAdvanceDevice, ValueYAdvanceDevice} {
		if format&device != 0 {
			r.Skip(2)
		}
	}
	return vr, check(r, "value record")
}

// Anchor is an attachment point, normalized to 1000 units per em.
type Anchor struct {
	X, Y int
}

// ReadAnchor reads an anchor table at absolute offset at. An offset of 0
// denotes a missing anchor and yields nil.
//
// Only the coordinates are decoded; the contour point of format 2 and the
// device tables of format 3 are ignored.
func ReadAnchor(r *fontio.Reader, at int64, upem ot.UnitsPerEm) (*Anchor, error) {
	if at == 0 {
		return nil, nil
	}
	r.Seek(at)
	format := r.ReadU16()
	a := &Anchor{}
	a.X = ot.Normalize(r.ReadI16(), upem)
	a.Y = ot.Normalize(r.ReadI16(), upem)
	if err := check(r, "anchor"); err != nil {
		return nil, err
	}
	if format < 1 || format > 3 {
		tracer().Debugf("anchor at %d has unknown format %d", at, format)
	}
	return a, nil
}

// ReadAnchorArray reads the anchors for locations[left:right]. A range
// outside of locations is an error of kind ot.ErrInvalidTable.
func ReadAnchorArray(r *fontio.Reader, locations []int64, left, right int, upem ot.UnitsPerEm) ([]*Anchor, error) {
	if left < 0 || left > right || right > len(locations) {
		return nil, &ot.FormatError{Kind: ot.ErrInvalidTable,
			Err: fmt.Errorf("anchor range [%d:%d] outside of %d locations", left, right, len(locations))}
	}
	anchors := make([]*Anchor, right-left)
	for i := left; i < right; i++ {
		a, err := ReadAnchor(r, locations[i], upem)
		if err != nil {
			return nil, err
		}
		anchors[i-left] = a
	}
	return anchors, nil
}

// MarkRecord is an entry of a mark array.
type MarkRecord struct {
	Class  uint16
	Anchor *Anchor
}

// ReadMarkArray reads a mark array at absolute offset at. Anchor offsets are
// relative to the start of the array.
func ReadMarkArray(r *fontio.Reader, at int64, upem ot.UnitsPerEm) ([]MarkRecord, error) {
	r.Seek(at)
	n := int(r.ReadU16())
	marks := make([]MarkRecord, n)
	locations := make([]int64, n)
	for i := range marks {
		marks[i].Class = r.ReadU16()
		locations[i] = at + int64(r.ReadU16())
	}
	if err := check(r, "mark array"); err != nil {
		return nil, err
	}
	for i := range marks {
		a, err := ReadAnchor(r, locations[i], upem)
		if err != nil {
			return nil, err
		}
		marks[i].Anchor = a
	}
	return marks, nil
}

// ReadBaseArray reads a base array at absolute offset at, with classCount
// anchors per base glyph. Missing anchors are nil.
func ReadBaseArray(r *fontio.Reader, at int64, classCount int, upem ot.UnitsPerEm) ([][]*Anchor, error) {
	r.Seek(at)
	n := int(r.ReadU16())
	locations, err := ReadOffsetArray(r, n*classCount, at)
	if err != nil {
		return nil, err
	}
	return readAnchorMatrix(r, locations, n, classCount, upem)
}

// ReadLigatureArray reads a ligature array at absolute offset at. Each
// ligature attach table holds classCount anchors per ligature component;
// its anchor offsets are relative to the ligature attach table.
func ReadLigatureArray(r *fontio.Reader, at int64, classCount int, upem ot.UnitsPerEm) ([][][]*Anchor, error) {
	r.Seek(at)
	n := int(r.ReadU16())
	attachments, err := ReadOffsetArray(r, n, at)
	if err != nil {
		return nil, err
	}
	ligatures := make([][][]*Anchor, n)
	for i, attach := range attachments {
		r.Seek(attach)
		components := int(r.ReadU16())
		locations, err := ReadOffsetArray(r, components*classCount, attach)
		if err != nil {
			return nil, err
		}
		if ligatures[i], err = readAnchorMatrix(r, locations, components, classCount, upem); err != nil {
			return nil, err
		}
	}
	return ligatures, nil
}

func readAnchorMatrix(r *fontio.Reader, locations []int64, rows, classCount int, upem ot.UnitsPerEm) ([][]*Anchor, error) {
	matrix := make([][]*Anchor, rows)
	for k := range matrix {
		row, err := ReadAnchorArray(r, locations, k*classCount, (k+1)*classCount, upem)
		if err != nil {
			return nil, err
		}
		matrix[k] = row
	}
	return matrix, nil
}

// LookupRecord applies a lookup at a position of an input sequence. It is
// used by contextual substitution (SubstLookupRecord) and contextual
// positioning (PosLookupRecord) alike.
type LookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}

// SubstLookupRecord is a LookupRecord of table GSUB.
type SubstLookupRecord = LookupRecord

// PosLookupRecord is a LookupRecord of table GPOS.
type PosLookupRecord = LookupRecord

// ReadSubstLookupRecords reads n lookup records at the current position of r.
func ReadSubstLookupRecords(r *fontio.Reader, n int) ([]SubstLookupRecord, error) {
	return readLookupRecords(r, n)
}

// ReadPosLookupRecords reads n lookup records at the current position of r.
func ReadPosLookupRecords(r *fontio.Reader, n int) ([]PosLookupRecord, error) {
	return readLookupRecords(r, n)
}

func readLookupRecords(r *fontio.Reader, n int) ([]LookupRecord, error) {
	records := make([]LookupRecord, n)
	for i := range records {
		records[i].SequenceIndex = r.ReadU16()
		records[i].LookupListIndex = r.ReadU16()
	}
	if err := check(r, "lookup records"); err != nil {
		return nil, err
	}
	return records, nil
}
