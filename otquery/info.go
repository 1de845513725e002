package otquery

import "github.com/npillmayer/fontparse/ot"

// FontType returns the outline type of a font: "TrueType" or "OpenType CFF".
func FontType(otf *ot.Font) string {
	if otf.HasCFF() {
		return "OpenType CFF"
	}
	return "TrueType"
}

// Info summarizes a font, for listings and diagnostics.
type Info struct {
	PostScriptName string
	Family         string
	Subfamily      string
	Type           string
	Weight         int
	Stretch        Stretch
	Bold, Italic   bool
	FixedPitch     bool
	NumGlyphs      int
	Tables         int
	Embeddable     bool
}

// FontInfo collects an Info record for a font.
func FontInfo(otf *ot.Font) (Info, error) {
	info := Info{Type: FontType(otf), Tables: len(otf.Directory())}
	names, err := Names(otf)
	if err != nil {
		return info, err
	}
	info.PostScriptName = names.FontName
	info.Family = firstText(names.FamilyName)
	info.Subfamily = firstText(names.Subfamily)
	info.Weight = names.Weight
	info.Stretch = names.Stretch
	info.Bold, info.Italic = names.Bold(), names.Italic()
	info.Embeddable = names.AllowEmbedding
	post, err := otf.Post()
	if err != nil {
		return info, err
	}
	info.FixedPitch = post.IsFixedPitch
	maxp, err := otf.MaxP()
	if err != nil {
		return info, err
	}
	info.NumGlyphs = maxp.NumGlyphs
	return info, nil
}
