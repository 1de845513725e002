package ot

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/internal/sfntbuild"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMinimal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// no hhea, hmtx, cmap: good enough for minimal mode
	otf := parseTables(t, without(testTables(), "hhea", "hmtx"))
	require.NoError(t, otf.Load(Minimal))
	assert.NotNil(t, otf.head)
	assert.NotNil(t, otf.names)
	assert.NotNil(t, otf.os2)
	assert.NotNil(t, otf.post)
	assert.Nil(t, otf.cmap)
	err := otf.Load(Full)
	assert.True(t, errors.Is(err, ErrRequiredTableMissing))
	assert.NotNil(t, otf.head, "tables decoded before the error are kept")
}

func TestLoadFull(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	sub := sfntbuild.CMapFormat4([]sfntbuild.Segment{{Start: 0x41, End: 0x5A, Delta: -0x40}}, nil)
	otf := parseTables(t, with(testTables(), "cmap", sfntbuild.CMap(
		sfntbuild.Encoding{Platform: 3, Encoding: 1, Subtable: sub})))
	require.NoError(t, otf.Load(Full))
	assert.NotNil(t, otf.hhea)
	assert.Len(t, otf.widths, 10)
	require.NotNil(t, otf.cmap)
	assert.Len(t, otf.cmap.Unicode, 26)
	assert.False(t, otf.HasCFF())
	cff, err := otf.CFFFont()
	assert.NoError(t, err)
	assert.Nil(t, cff)
	// cached tables are returned as is
	c1, _ := otf.CMap()
	c2, _ := otf.CMap()
	assert.Same(t, c1, c2)
	// missing cmap is fatal for full mode only
	otf = parseTables(t, testTables())
	assert.True(t, errors.Is(otf.Load(Full), ErrRequiredTableMissing))
	assert.NoError(t, otf.Load(Minimal))
}

func TestRawBytes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	cffData := []byte("\x01\x00\x04\x02not really CFF")
	tables := with(testTables(), "CFF ", cffData)
	data := sfntbuild.Font(tables)
	otf, err := Parse(fontio.FromBytes(data))
	require.NoError(t, err)
	assert.True(t, otf.HasCFF())
	full, err := otf.FullFont()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, full))
	cff, err := otf.CFFFont()
	require.NoError(t, err)
	assert.Equal(t, cffData, cff)
	assert.Equal(t, byte('O'), data[0], "CFF fonts have signature OTTO")
}

func TestRawBytesOfCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := sfntbuild.Collection(testTables(), testTables())
	otf, err := Parse(fontio.FromBytes(data), WithCollectionIndex(1))
	require.NoError(t, err)
	full, err := otf.FullFont()
	require.NoError(t, err)
	assert.Len(t, full, len(data), "full font of a sub-font is the whole collection")
}

func TestView(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTables(t, testTables())
	head, err := otf.Head()
	require.NoError(t, err)
	var wg sync.WaitGroup
	results := make([]int, 4)
	for i := range results {
		v := otf.View()
		wg.Add(1)
		go func(i int, v *Font) {
			defer wg.Done()
			h, err := v.Head()
			if err != nil || h != head {
				results[i] = -1
				return
			}
			widths, err := v.GlyphWidths()
			if err != nil {
				results[i] = -1
				return
			}
			results[i] = widths.Width(1)
		}(i, v)
	}
	wg.Wait()
	assert.Equal(t, []int{500, 500, 500, 500}, results)
	assert.Nil(t, otf.widths, "views cache their own tables")
}
