package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/fontparse/ot"
	"golang.org/x/image/font/sfnt"
)

// PlatformID is the platform of a name record or cmap encoding record.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDISO       PlatformID = 2
	PlatformIDWindows   PlatformID = 3
)

func (p PlatformID) String() string {
	switch p {
	case PlatformIDUnicode:
		return "Unicode"
	case PlatformIDMacintosh:
		return "Macintosh"
	case PlatformIDISO:
		return "ISO"
	case PlatformIDWindows:
		return "Windows"
	}
	return fmt.Sprintf("Platform(%d)", uint16(p))
}

// EncodingID is the platform specific encoding of a name record.
type EncodingID uint16

const (
	EncodingIDWindowsSymbol EncodingID = 0
	EncodingIDWindowsBMP    EncodingID = 1
	EncodingIDUnicodeBMP    EncodingID = 3
)

// NamesRange yields `(nameID, value)` pairs from a font's `name` table, in
// name ID order; entries of a name ID are yielded in table order.
//
// If the table cannot be decoded, nothing is yielded.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		if otf == nil {
			return
		}
		names, err := otf.Names()
		if err != nil {
			tracer().Debugf("no names: %v", err)
			return
		}
		for id := 0; id <= 0xFFFF && len(names) > 0; id++ {
			entries, ok := names[id]
			if !ok {
				continue
			}
			for _, e := range entries {
				if !yield(sfnt.NameID(id), e.Text) {
					return
				}
			}
		}
	}
}

// FontNames collects the names and classification values of a font, as
// needed for font descriptors of documents.
type FontNames struct {
	FontName       string         // PostScript name
	FullName       []ot.NameEntry // name ID 4
	FamilyName     []ot.NameEntry // typographic family (ID 16), or family (ID 1)
	Subfamily      []ot.NameEntry // typographic subfamily (ID 17), or subfamily (ID 2)
	Style          string         // first subfamily entry (ID 2)
	CIDFontName    string         // name ID 20
	Weight         int            // 100 … 900
	Stretch        Stretch
	MacStyle       uint16
	AllowEmbedding bool
}

// Bold reports whether the font is flagged as bold in table 'head'.
func (fn FontNames) Bold() bool {
	return fn.MacStyle&ot.MacStyleBold != 0
}

// Italic reports whether the font is flagged as italic in table 'head'.
func (fn FontNames) Italic() bool {
	return fn.MacStyle&ot.MacStyleItalic != 0
}

// Names collects the FontNames of a font. It needs tables 'name', 'head'
// and 'OS/2'.
//
// Subfamily follows the family: if the font has a typographic family name,
// the typographic subfamily is used, even if it is missing.
func Names(otf *ot.Font) (FontNames, error) {
	fn := FontNames{}
	names, err := otf.Names()
	if err != nil {
		return fn, err
	}
	head, err := otf.Head()
	if err != nil {
		return fn, err
	}
	os2, err := otf.OS2()
	if err != nil {
		return fn, err
	}
	if fn.FontName, err = otf.PostScriptName(); err != nil {
		return fn, err
	}
	fn.FullName = names[int(sfnt.NameIDFull)]
	typoFamily, hasTypoFamily := names[int(sfnt.NameIDTypographicFamily)]
	subfamily := names[int(sfnt.NameIDSubfamily)]
	if hasTypoFamily {
		fn.FamilyName = typoFamily
		fn.Subfamily = names[int(sfnt.NameIDTypographicSubfamily)]
	} else {
		fn.FamilyName = names[int(sfnt.NameIDFamily)]
		fn.Subfamily = subfamily
	}
	if len(subfamily) > 0 {
		fn.Style = subfamily[0].Text
	}
	if cid, ok := names.First(int(sfnt.NameIDPostScriptCID)); ok {
		fn.CIDFontName = cid
	}
	fn.Weight = NormalizeWeight(int(os2.WeightClass))
	fn.Stretch = StretchFromWidthClass(int(os2.WidthClass))
	fn.MacStyle = head.MacStyle
	fn.AllowEmbedding = os2.AllowsEmbedding()
	tracer().Debugf("font names of %s: family = %v, weight = %d", fn.FontName, firstText(fn.FamilyName), fn.Weight)
	return fn, nil
}

// FamilyName returns the first family and subfamily name of a font, or
// empty strings.
func FamilyName(otf *ot.Font) (family, subfamily string) {
	fn, err := Names(otf)
	if err != nil {
		return "", ""
	}
	return firstText(fn.FamilyName), firstText(fn.Subfamily)
}

func firstText(entries []ot.NameEntry) string {
	if len(entries) == 0 {
		return ""
	}
	return entries[0].Text
}

// NormalizeWeight maps a weight class to the range 100 … 900, in steps of 100.
func NormalizeWeight(weight int) int {
	weight = weight / 100 * 100
	if weight < 100 {
		return 100
	}
	if weight > 900 {
		return 900
	}
	return weight
}

// Stretch is the horizontal proportion of a font, derived from the OS/2 width class.
type Stretch int

const (
	UltraCondensed Stretch = iota + 1
	ExtraCondensed
	Condensed
	SemiCondensed
	Normal
	SemiExpanded
	Expanded
	ExtraExpanded
	UltraExpanded
)

var stretchNames = [...]string{"", "UltraCondensed", "ExtraCondensed", "Condensed",
	"SemiCondensed", "Normal", "SemiExpanded", "Expanded", "ExtraExpanded", "UltraExpanded"}

func (s Stretch) String() string {
	if s < UltraCondensed || s > UltraExpanded {
		return "Normal"
	}
	return stretchNames[s]
}

// StretchFromWidthClass converts an OS/2 width class. Values outside of 1 … 9
// are taken as Normal.
func StretchFromWidthClass(widthClass int) Stretch {
	if widthClass < int(UltraCondensed) || widthClass > int(UltraExpanded) {
		return Normal
	}
	return Stretch(widthClass)
}
