package otlayout

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/internal/sfntbuild"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prefix is junk in front of every test structure, to make sure readers
// respect absolute offsets.
const prefix = 10

func reader(b sfntbuild.Buf) *fontio.Reader {
	data := append(make([]byte, prefix), b...)
	return fontio.NewReader(fontio.FromBytes(data))
}

func TestCoverageFormat1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(1, 3, 7, 3, 12)
	cov, err := ReadCoverage(reader(b), prefix)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), cov.Format())
	assert.Equal(t, []ot.GlyphIndex{7, 3, 12}, cov.Glyphs(), "table order is kept")
	assert.True(t, cov.Contains(3))
	assert.False(t, cov.Contains(4))
	assert.Equal(t, 3, cov.Len())
	assert.Empty(t, cov.Ranges())
}

func TestCoverageFormat2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(2, 2)
	b.U16(10, 12, 0)
	b.U16(50, 50, 1)
	cov, err := ReadCoverage(reader(b), prefix)
	require.NoError(t, err)
	got := slices.Collect(cov.All())
	assert.Equal(t, []ot.GlyphIndex{10, 11, 12, 50}, got)
	for _, g := range []ot.GlyphIndex{10, 11, 12, 50} {
		assert.True(t, cov.Contains(g), "glyph %d", g)
	}
	assert.False(t, cov.Contains(13))
	assert.Equal(t, []GlyphRange{{10, 12, 0}, {50, 50, 1}}, cov.Ranges())
	// snapshots do not alias
	glyphs := cov.Glyphs()
	glyphs[0] = 99
	assert.False(t, cov.Contains(99))
}

func TestCoverageUnsupportedFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(3, 1, 1)
	_, err := ReadCoverage(reader(b), prefix)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ot.ErrUnsupportedCoverageFormat))
	var ferr *ot.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 3, ferr.Format)
}

func TestCoverages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(1, 1, 5) // at prefix
	b.U16(1, 1, 6) // at prefix+6
	covs, err := ReadCoverages(reader(b), []int64{prefix + 6, prefix})
	require.NoError(t, err)
	require.Len(t, covs, 2)
	assert.True(t, covs[0].Contains(6))
	assert.True(t, covs[1].Contains(5))
}

func TestOffsetArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(4, 0, 100)
	r := reader(b)
	r.Seek(prefix)
	locs, err := ReadOffsetArray(r, 3, 1000)
	require.NoError(t, err)
	assert.Equal(t, []int64{1004, 0, 1100}, locs)
}

func TestValueRecord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.I16(-100, 2048)
	b.U16(0xAAAA, 0xBBBB) // device offsets
	b.I16(77)             // next field
	r := reader(b)
	r.Seek(prefix)
	format := uint16(ValueXPlacement | ValueXAdvance | ValueXPlacementDevice | ValueYAdvanceDevice)
	vr, err := ReadValueRecord(r, format, 2048)
	require.NoError(t, err)
	assert.Equal(t, ValueRecord{XPlacement: -48, XAdvance: 1000}, vr)
	assert.Equal(t, int16(77), r.ReadI16(), "device offsets must be read over")
}

func TestAnchor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(2).I16(500, -250).U16(3) // format 2 with anchor point
	r := reader(b)
	a, err := ReadAnchor(r, prefix, 1000)
	require.NoError(t, err)
	assert.Equal(t, &Anchor{X: 500, Y: -250}, a)
	a, err = ReadAnchor(r, 0, 1000)
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestMarkArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(2)
	b.U16(0, 10) // class 0, anchor at +10
	b.U16(1, 16) // class 1, anchor at +16
	b.U16(1).I16(100, 200)
	b.U16(1).I16(300, 400)
	marks, err := ReadMarkArray(reader(b), prefix, 1000)
	require.NoError(t, err)
	assert.Equal(t, []MarkRecord{
		{Class: 0, Anchor: &Anchor{100, 200}},
		{Class: 1, Anchor: &Anchor{300, 400}},
	}, marks)
}

func TestBaseArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	// 2 base glyphs, 2 mark classes; base 1 has no anchor for class 0
	b := sfntbuild.Buf{}
	b.U16(2)
	b.U16(10, 16, 0, 10)
	b.U16(1).I16(10, 20) // +10
	b.U16(1).I16(30, 40) // +16
	bases, err := ReadBaseArray(reader(b), prefix, 2, 1000)
	require.NoError(t, err)
	require.Len(t, bases, 2)
	assert.Equal(t, []*Anchor{{10, 20}, {30, 40}}, bases[0])
	assert.Nil(t, bases[1][0])
	assert.Equal(t, &Anchor{10, 20}, bases[1][1])
}

func TestLigatureArray(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	// one ligature with 2 components, 1 mark class
	b := sfntbuild.Buf{}
	b.U16(1, 4)        // ligatureCount, ligatureAttach at +4
	b.U16(2, 6, 12)    // componentCount, anchors relative to ligatureAttach
	b.U16(1).I16(1, 2) // +4+6
	b.U16(1).I16(3, 4) // +4+12
	ligs, err := ReadLigatureArray(reader(b), prefix, 1, 1000)
	require.NoError(t, err)
	require.Len(t, ligs, 1)
	require.Len(t, ligs[0], 2)
	assert.Equal(t, []*Anchor{{1, 2}}, ligs[0][0])
	assert.Equal(t, []*Anchor{{3, 4}}, ligs[0][1])
}

func TestLookupRecords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(0, 5, 2, 7)
	r := reader(b)
	r.Seek(prefix)
	subst, err := ReadSubstLookupRecords(r, 2)
	require.NoError(t, err)
	assert.Equal(t, []SubstLookupRecord{{0, 5}, {2, 7}}, subst)
	r.Seek(prefix)
	pos, err := ReadPosLookupRecords(r, 1)
	require.NoError(t, err)
	assert.Equal(t, []PosLookupRecord{{0, 5}}, pos)
	_, err = ReadPosLookupRecords(r, 10)
	assert.True(t, errors.Is(err, ot.ErrTruncated))
}

func TestAnchorArrayRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(1).I16(100, 200)
	r := reader(b)
	locations := []int64{prefix, 0}
	anchors, err := ReadAnchorArray(r, locations, 0, 2, 1000)
	require.NoError(t, err)
	require.Len(t, anchors, 2)
	assert.Equal(t, &Anchor{X: 100, Y: 200}, anchors[0])
	assert.Nil(t, anchors[1])
	for _, lr := range [][2]int{{1, 0}, {0, 3}, {-1, 1}} {
		_, err = ReadAnchorArray(r, locations, lr[0], lr[1], 1000)
		assert.True(t, errors.Is(err, ot.ErrInvalidTable), "range %v", lr)
	}
}

func TestTruncationNamesStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.otlayout")
	defer teardown()
	//
	b := sfntbuild.Buf{}
	b.U16(1)
	_, err := ReadAnchor(reader(b), prefix, 1000)
	require.Error(t, err)
	var ferr *ot.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Empty(t, ferr.Source, "no font name is known at this level")
	assert.True(t, errors.Is(err, fontio.ErrOutOfBounds))
	assert.Contains(t, err.Error(), "reading anchor")
}
