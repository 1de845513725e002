package ot

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/internal/sfntbuild"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorySingleFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := sfntbuild.Font(testTables())
	r := fontio.NewReader(fontio.FromBytes(data))
	dir, at, err := ParseDirectory(r, None[int](), "testfont.ttf")
	require.NoError(t, err)
	assert.Equal(t, int64(0), at)
	assert.Len(t, dir, 7)
	for _, tag := range []Tag{TagHead, TagHhea, TagMaxp, TagHmtx, TagOS2, TagPost, TagName} {
		assert.True(t, dir.Has(tag), "expected table %s in directory", tag)
	}
	assert.False(t, dir.Has(TagCmap))
	assert.Len(t, dir.Tags(), 7)
}

func TestDirectoryDuplicateTagLastWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := sfntbuild.TableRecords(
		sfntbuild.Record{Tag: "head", Offset: 100, Length: 54},
		sfntbuild.Record{Tag: "name", Offset: 200, Length: 10},
		sfntbuild.Record{Tag: "head", Offset: 300, Length: 54},
	)
	r := fontio.NewReader(fontio.FromBytes(data))
	dir, _, err := ParseDirectory(r, None[int](), "")
	require.NoError(t, err)
	assert.Len(t, dir, 2)
	assert.Equal(t, TableLocation{Offset: 300, Length: 54}, dir[TagHead])
}

func TestDirectoryBadSignature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := []byte("true\x00\x00\x00\x00\x00\x00\x00\x00")
	_, err := Parse(fontio.FromBytes(data), WithSourceName("apple.ttf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAFont))
	assert.Contains(t, err.Error(), "apple.ttf is not a valid ttf or otf file")
	//
	_, err = Parse(fontio.FromBytes([]byte{0, 1}))
	assert.True(t, errors.Is(err, ErrNotAFont), "short data should not be a font")
}

func TestCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	second := with(testTables(), "head", sfntbuild.Head(1000, 0))
	data := sfntbuild.Collection(testTables(), second)
	src := fontio.FromBytes(data)
	for i, upem := range []UnitsPerEm{2048, 1000} {
		otf, err := Parse(src, WithSourceName("family.ttc"), WithCollectionIndex(i))
		require.NoError(t, err)
		assert.Greater(t, otf.DirectoryOffset(), int64(0))
		u, err := otf.UnitsPerEm()
		require.NoError(t, err)
		assert.Equal(t, upem, u, "units per em of sub-font #%d", i)
		assert.Equal(t, Some(i), otf.CollectionIndex())
	}
}

func TestCollectionIndexOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := sfntbuild.Collection(testTables(), testTables())
	_, err := Parse(fontio.FromBytes(data), WithSourceName("family.ttc"), WithCollectionIndex(3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	var ferr *FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Count)
	assert.Equal(t, 3, ferr.Index)
	assert.True(t, strings.Contains(err.Error(), "between 0 and 1"), err.Error())
}

func TestCollectionNegativeIndex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := sfntbuild.Collection(testTables())
	_, err := Parse(fontio.FromBytes(data), WithCollectionIndex(-1))
	assert.True(t, errors.Is(err, ErrNegativeFontIndex))
}

func TestNotACollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := sfntbuild.Font(testTables())
	_, err := Parse(fontio.FromBytes(data), WithSourceName("single.ttf"), WithCollectionIndex(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotACollection))
	assert.Contains(t, err.Error(), "single.ttf is not a valid ttc file")
}
