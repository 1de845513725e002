package ot

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestFormatErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *FormatError
		expected string
	}{
		{
			name:     "not a collection, with source",
			err:      &FormatError{Kind: ErrNotACollection, Source: "fonts.ttc"},
			expected: "OpenType font format: fonts.ttc is not a valid ttc file",
		},
		{
			name:     "index out of range",
			err:      &FormatError{Kind: ErrIndexOutOfRange, Index: 3, Count: 2},
			expected: "OpenType font format: the font index must be between 0 and 1, it is 3",
		},
		{
			name:     "missing table",
			err:      &FormatError{Kind: ErrRequiredTableMissing, Table: TagHmtx, Source: "x.otf"},
			expected: "OpenType font format: table 'hmtx' does not exist in x.otf",
		},
		{
			name:     "coverage format",
			err:      &FormatError{Kind: ErrUnsupportedCoverageFormat, Format: 3, Offset: 100},
			expected: "OpenType font format: invalid coverage format: 3 (at offset 100)",
		},
		{
			name:     "generic with table",
			err:      &FormatError{Kind: ErrInvalidTable, Table: TagHead},
			expected: "OpenType font format: table 'head': invalid table",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatErrorIs(t *testing.T) {
	cause := errors.New("short read")
	var err error = &FormatError{Kind: ErrTruncated, Table: TagCmap, Err: cause}
	wrapped := fmt.Errorf("loading font: %w", err)
	if !errors.Is(wrapped, ErrTruncated) {
		t.Errorf("expected wrapped error to match kind ErrTruncated")
	}
	if errors.Is(wrapped, ErrNotAFont) {
		t.Errorf("expected wrapped error not to match kind ErrNotAFont")
	}
	if !errors.Is(wrapped, cause) {
		t.Errorf("expected wrapped error to unwrap to its cause")
	}
	var ferr *FormatError
	if !errors.As(wrapped, &ferr) || ferr.Table != TagCmap {
		t.Errorf("expected errors.As to find the FormatError for table cmap")
	}
	if !strings.Contains(err.Error(), "short read") {
		t.Errorf("expected message to contain the cause, is %q", err.Error())
	}
}

func TestFontWarning(t *testing.T) {
	w := FontWarning{Table: TagOS2, Issue: "usWinDescent 200 flipped to negative", Offset: 76}
	expected := "[WARNING] OS/2 at offset 76: usWinDescent 200 flipped to negative"
	if w.String() != expected {
		t.Errorf("String() = %q; want %q", w.String(), expected)
	}
	wc := &warningCollector{}
	if len(wc.list()) != 0 || wc.list() == nil {
		t.Errorf("expected empty, non-nil warnings list")
	}
	wc.addWarning(TagKern, 0, "table missing")
	other := &warningCollector{}
	other.merge(wc)
	if len(other.list()) != 1 || other.list()[0].Table != TagKern {
		t.Errorf("expected merged warning for table kern, have %v", other.list())
	}
}
