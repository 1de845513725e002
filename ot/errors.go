package ot

import (
	"fmt"
)

// ErrorKind classifies fatal font format errors. ErrorKind values may be used
// as targets for errors.Is:
//
//	if errors.Is(err, ot.ErrIndexOutOfRange) { … }
type ErrorKind int

const (
	ErrNotAFont                  ErrorKind = iota + 1 // bad sfnt signature
	ErrNotACollection                                 // collection index given, but no 'ttcf' header
	ErrNegativeFontIndex                              // collection index < 0
	ErrIndexOutOfRange                                // collection index ≥ number of fonts
	ErrRequiredTableMissing                           // a decoder's table is absent
	ErrUnsupportedCoverageFormat                      // coverage table neither format 1 nor 2
	ErrInvalidTable                                   // a table contains an unusable value
	ErrTruncated                                      // font data ends prematurely
)

var errorKindNames = map[ErrorKind]string{
	ErrNotAFont:                  "not a font",
	ErrNotACollection:            "not a collection",
	ErrNegativeFontIndex:         "negative font index",
	ErrIndexOutOfRange:           "font index out of range",
	ErrRequiredTableMissing:      "required table missing",
	ErrUnsupportedCoverageFormat: "unsupported coverage format",
	ErrInvalidTable:              "invalid table",
	ErrTruncated:                 "truncated font data",
}

// Error makes an ErrorKind usable as an errors.Is target.
func (k ErrorKind) Error() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return "font format error"
}

// FormatError is returned for structural problems of a font which make it (or
// the requested table) unusable. These errors are not recoverable; the source
// bytes are static, so a retry will not change the outcome.
type FormatError struct {
	Kind   ErrorKind
	Table  Tag    // table concerned, 0 for the font header
	Source string // human readable identification of the font, may be empty
	Index  int    // requested collection index (ErrIndexOutOfRange, ErrNegativeFontIndex)
	Count  int    // number of fonts in a collection (ErrIndexOutOfRange)
	Format int    // unsupported format number (ErrUnsupportedCoverageFormat)
	Offset int64  // absolute offset where the problem was detected, if known
	Err    error  // underlying cause, if any
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var msg string
	switch e.Kind {
	case ErrNotAFont:
		msg = "not a valid ttf or otf file"
		if e.Source != "" {
			msg = fmt.Sprintf("%s is not a valid ttf or otf file", e.Source)
		}
	case ErrNotACollection:
		msg = "not a valid ttc file"
		if e.Source != "" {
			msg = fmt.Sprintf("%s is not a valid ttc file", e.Source)
		}
	case ErrNegativeFontIndex:
		msg = "the font index must be positive"
		if e.Source != "" {
			msg = fmt.Sprintf("the font index for %s must be positive", e.Source)
		}
	case ErrIndexOutOfRange:
		msg = fmt.Sprintf("the font index must be between 0 and %d, it is %d", e.Count-1, e.Index)
		if e.Source != "" {
			msg = fmt.Sprintf("the font index for %s must be between 0 and %d, it is %d",
				e.Source, e.Count-1, e.Index)
		}
	case ErrRequiredTableMissing:
		msg = fmt.Sprintf("table '%s' does not exist", e.Table)
		if e.Source != "" {
			msg = fmt.Sprintf("table '%s' does not exist in %s", e.Table, e.Source)
		}
	case ErrUnsupportedCoverageFormat:
		msg = fmt.Sprintf("invalid coverage format: %d", e.Format)
	default:
		msg = e.Kind.Error()
		if e.Table != 0 {
			msg = fmt.Sprintf("table '%s': %s", e.Table, msg)
		}
		if e.Source != "" {
			msg = fmt.Sprintf("%s: %s", e.Source, msg)
		}
	}
	if e.Offset > 0 {
		msg = fmt.Sprintf("%s (at offset %d)", msg, e.Offset)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return "OpenType font format: " + msg
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the ErrorKind of e.
func (e *FormatError) Is(target error) bool {
	if k, ok := target.(ErrorKind); ok {
		return e.Kind == k
	}
	return false
}

func missingTable(tag Tag, source string) error {
	return &FormatError{Kind: ErrRequiredTableMissing, Table: tag, Source: source}
}

// truncated wraps a read error of a table decoder.
func truncated(tag Tag, source string, err error) error {
	return &FormatError{Kind: ErrTruncated, Table: tag, Source: source, Err: err}
}

// --- Warnings --------------------------------------------------------------

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate values which have been corrected or substituted, and do
// not prevent font usage.
type FontWarning struct {
	Table  Tag    // The OpenType table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset int64  // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// warningCollector accumulates warnings during table decoding.
type warningCollector struct {
	warnings []FontWarning
}

// addWarning records a decoding warning.
func (wc *warningCollector) addWarning(table Tag, offset int64, format string, args ...any) {
	issue := fmt.Sprintf(format, args...)
	tracer().Infof("%s: %s", table, issue)
	wc.warnings = append(wc.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// merge appends the warnings of another collector, in order.
func (wc *warningCollector) merge(other *warningCollector) {
	if other == nil {
		return
	}
	wc.warnings = append(wc.warnings, other.warnings...)
}

func (wc *warningCollector) list() []FontWarning {
	if wc.warnings == nil {
		return []FontWarning{}
	}
	out := make([]FontWarning, len(wc.warnings))
	copy(out, wc.warnings)
	return out
}
