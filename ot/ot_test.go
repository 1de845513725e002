package ot

import (
	"testing"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/internal/sfntbuild"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
	if T("CFF") != TagCFF {
		t.Errorf("expected T(CFF) to be padded to 'CFF ', is %q", T("CFF").String())
	}
	if MakeTag([]byte("ab")) != Tag(0x00006162) {
		t.Errorf("expected short tag to be extended at the front, is %#x", uint32(MakeTag([]byte("ab"))))
	}
}

func TestNormalization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tests := []struct {
		v    int
		upem UnitsPerEm
		want int
	}{
		{500, 1000, 500},
		{-123, 1000, -123},
		{1024, 2048, 500},
		{1000, 2048, 488}, // 488.28…
		{-1000, 2048, -488},
		{1, 2048, 0},
		{7, 3, 2333},
	}
	for _, tt := range tests {
		if got := tt.upem.Norm(tt.v); got != tt.want {
			t.Errorf("Norm(%d) with upem %d = %d, want %d", tt.v, tt.upem, got, tt.want)
		}
	}
	if Normalize(int16(-1000), 2048) != -488 {
		t.Errorf("expected Normalize of int16 to truncate towards zero")
	}
	if Normalize(uint16(2048), 2048) != 1000 {
		t.Errorf("expected Normalize of unitsPerEm to be 1000")
	}
}

func TestOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	o := Some(7)
	if v, ok := o.Unwrap(); !ok || v != 7 {
		t.Errorf("expected Some(7) to unwrap to 7, is %d/%v", v, ok)
	}
	n := None[int]()
	if n.IsSome() || n.Or(3) != 3 {
		t.Errorf("expected None to be empty and default to 3")
	}
	s := Map(o, func(i int) string { return string(rune('a' + i)) })
	if s.MustUnwrap() != "h" {
		t.Errorf("expected mapped option to be 'h', is %q", s.MustUnwrap())
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected MustUnwrap of None to panic")
		}
	}()
	n.MustUnwrap()
}

// --- Helpers ---------------------------------------------------------------

// testTables returns the tables of a small but complete TrueType font with
// 10 glyphs and 2048 units per em.
func testTables() map[string][]byte {
	return map[string][]byte{
		"head": sfntbuild.Head(2048, 0),
		"hhea": sfntbuild.HHea{
			Ascender: 1800, Descender: -400, AdvanceWidthMax: 2048,
			CaretSlopeRise: 1, NumberOfHMetrics: 3,
		}.Bytes(),
		"maxp": sfntbuild.MaxP(10),
		"hmtx": sfntbuild.HMtx([]uint16{0, 1024, 2048}, 7),
		"OS/2": sfntbuild.OS2{
			Version: 4, WeightClass: 700, WidthClass: 5,
			TypoAscender: 1600, TypoDescender: -400,
			WinAscent: 1900, WinDescent: 500,
			CodePageRange1: 1, XHeight: 1000, CapHeight: 1400,
		}.Bytes(),
		"post": sfntbuild.Post(-12<<16, -150, 100, false),
		"name": sfntbuild.NameTable(
			sfntbuild.Name{Platform: 1, NameID: 1, Text: []byte("Test Sans")},
			sfntbuild.Name{Platform: 3, Encoding: 1, Language: 0x409, NameID: 1,
				Text: sfntbuild.UTF16("Test Sans")},
			sfntbuild.Name{Platform: 3, Encoding: 1, Language: 0x409, NameID: 2,
				Text: sfntbuild.UTF16("Bold")},
			sfntbuild.Name{Platform: 3, Encoding: 1, Language: 0x409, NameID: 6,
				Text: sfntbuild.UTF16("TestSans-Bold")},
		),
	}
}

func parseTables(t *testing.T, tables map[string][]byte, opts ...ParseOption) *Font {
	t.Helper()
	opts = append([]ParseOption{WithSourceName("testfont.ttf")}, opts...)
	otf, err := Parse(fontio.FromBytes(sfntbuild.Font(tables)), opts...)
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	return otf
}

func without(tables map[string][]byte, tags ...string) map[string][]byte {
	m := make(map[string][]byte, len(tables))
	for k, v := range tables {
		m[k] = v
	}
	for _, tag := range tags {
		delete(m, tag)
	}
	return m
}

func with(tables map[string][]byte, tag string, data []byte) map[string][]byte {
	m := without(tables)
	m[tag] = data
	return m
}
