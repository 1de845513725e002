package fontparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontparse/internal/sfntbuild"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/fontparse/otquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFont(extra ...sfntbuild.Name) []byte {
	names := append([]sfntbuild.Name{
		{Platform: 1, NameID: 1, Text: []byte("Mac Family")},
		{Platform: 3, Encoding: 1, Language: 0x409, NameID: 1,
			Text: sfntbuild.UTF16("Family")},
		{Platform: 3, Encoding: 1, Language: 0x409, NameID: 2,
			Text: sfntbuild.UTF16("Italic")},
	}, extra...)
	return sfntbuild.Font(map[string][]byte{
		"head": sfntbuild.Head(1000, 0),
		"OS/2": sfntbuild.OS2{Version: 1, WeightClass: 400, WidthClass: 5}.Bytes(),
		"post": sfntbuild.Post(0, -100, 50, false),
		"name": sfntbuild.NameTable(names...),
	})
}

func TestFamilyName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontparse")
	defer teardown()
	//
	otf, err := FromBinary(testFont(), ot.WithSourceName("family.ttf"))
	require.NoError(t, err)
	family, subfamily := FamilyName(otf)
	assert.Equal(t, "Mac Family", family, "first entry wins")
	assert.Equal(t, "Italic", subfamily)
	name, err := otf.PostScriptName()
	require.NoError(t, err)
	assert.Equal(t, "family.ttf", name, "font without PostScript name is named after its source")
	//
	otf, err = FromBinary(testFont(
		sfntbuild.Name{Platform: 3, Encoding: 1, Language: 0x409, NameID: 16,
			Text: sfntbuild.UTF16("Typo Family")},
		sfntbuild.Name{Platform: 3, Encoding: 1, Language: 0x409, NameID: 17,
			Text: sfntbuild.UTF16("Light Italic")},
	), ot.WithSourceName("typo.ttf"))
	require.NoError(t, err)
	family, subfamily = FamilyName(otf)
	assert.Equal(t, "Typo Family", family)
	assert.Equal(t, "Light Italic", subfamily)
	wantFamily, wantSub := otquery.FamilyName(otf)
	assert.Equal(t, wantFamily, family)
	assert.Equal(t, wantSub, subfamily)
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontparse")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "family.ttf")
	require.NoError(t, os.WriteFile(path, testFont(), 0o644))
	otf, err := LoadFont(path, ot.Minimal)
	require.NoError(t, err)
	os2, err := otf.OS2()
	require.NoError(t, err)
	assert.Equal(t, uint16(400), os2.WeightClass)
	_, err = LoadFont(path+".missing", ot.Minimal)
	assert.Error(t, err)
}
