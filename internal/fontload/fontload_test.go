package fontload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontparse/internal/sfntbuild"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	path, index, err := SplitPath("fonts/Helvetica.ttc,1")
	require.NoError(t, err)
	assert.Equal(t, "fonts/Helvetica.ttc", path)
	assert.Equal(t, ot.Some(1), index)
	path, index, err = SplitPath("fonts/Some,Font.ttf")
	require.NoError(t, err)
	assert.Equal(t, "fonts/Some,Font.ttf", path)
	assert.True(t, index.IsNone())
	_, _, err = SplitPath("Helvetica.TTC,x")
	assert.Error(t, err)
}

func tables(psName string) map[string][]byte {
	return map[string][]byte{
		"head": sfntbuild.Head(1000, 0),
		"OS/2": sfntbuild.OS2{Version: 1, WeightClass: 400, WidthClass: 5}.Bytes(),
		"post": sfntbuild.Post(0, -100, 50, false),
		"name": sfntbuild.NameTable(sfntbuild.Name{Platform: 3, Encoding: 1,
			Language: 0x409, NameID: 6, Text: sfntbuild.UTF16(psName)}),
	}
}

func TestLoadFromFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	dir := t.TempDir()
	ttf := filepath.Join(dir, "single.ttf")
	require.NoError(t, os.WriteFile(ttf, sfntbuild.Font(tables("Single-Regular")), 0o644))
	ttc := filepath.Join(dir, "family.ttc")
	require.NoError(t, os.WriteFile(ttc,
		sfntbuild.Collection(tables("Family-Regular"), tables("Family-Bold")), 0o644))
	//
	f, err := LoadOpenTypeFont(ttf, ot.Minimal)
	require.NoError(t, err)
	assert.Equal(t, "Single-Regular", f.Fontname)
	assert.Equal(t, ttf, f.Filepath)
	f, err = LoadOpenTypeFont(ttc+",1", ot.Minimal)
	require.NoError(t, err)
	assert.Equal(t, "Family-Bold", f.Fontname)
	assert.Equal(t, ot.Some(1), f.Font.CollectionIndex())
	_, err = LoadOpenTypeFont(ttc+",2", ot.Minimal)
	assert.True(t, errors.Is(err, ot.ErrIndexOutOfRange))
	_, err = LoadOpenTypeFont(filepath.Join(dir, "missing.ttf"), ot.Minimal)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
