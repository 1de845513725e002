package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/internal/fontload"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/fontparse/otlayout"
	"github.com/npillmayer/fontparse/otquery"
	"github.com/pterm/pterm"
)

// --- info ------------------------------------------------------------------

type InfoCmd struct {
	Fonts []string `arg:"" name:"font" help:"Font files" type:"path"`
}

func (cmd *InfoCmd) Run(globals *Globals) error {
	data := [][]string{{"File", "#", "PostScript Name", "Family", "Subfamily", "Type",
		"Weight", "Stretch", "Glyphs", "Embeddable"}}
	for _, name := range cmd.Fonts {
		err := withFonts(name, func(fonts []*ot.Font) error {
			for i, otf := range fonts {
				if globals.Verbose {
					printWarnings(otf)
				}
				info, err := otquery.FontInfo(otf)
				if err != nil {
					return fmt.Errorf("%s #%d: %w", name, i, err)
				}
				data = append(data, []string{name, strconv.Itoa(i), info.PostScriptName,
					info.Family, info.Subfamily, info.Type, strconv.Itoa(info.Weight),
					info.Stretch.String(), strconv.Itoa(info.NumGlyphs), strconv.FormatBool(info.Embeddable)})
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return render(data)
}

// withFonts loads a single font if name carries a collection index, otherwise
// every font of the file. The file stays open while fn runs.
func withFonts(name string, fn func([]*ot.Font) error) error {
	path, index, err := fontload.SplitPath(name)
	if err != nil {
		return err
	}
	if index.IsSome() {
		f, err := fontload.LoadOpenTypeFont(name, ot.Full)
		if err != nil {
			return err
		}
		return fn([]*ot.Font{f.Font})
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	src, err := fontio.FromFile(file)
	if err != nil {
		return err
	}
	fonts, err := otquery.LoadCollection(context.Background(), src, ot.Full, ot.WithSourceName(path))
	if err != nil {
		return err
	}
	return fn(fonts)
}

// --- names -----------------------------------------------------------------

type NamesCmd struct {
	FontArg
}

func (cmd *NamesCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Minimal)
	if err != nil {
		return err
	}
	fn, err := otquery.Names(f.Font)
	if err != nil {
		return err
	}
	pterm.Printf("PostScript name: %s\n", fn.FontName)
	if fn.CIDFontName != "" {
		pterm.Printf("CID font name:   %s\n", fn.CIDFontName)
	}
	pterm.Printf("Style:           %s (weight %d, %s, bold=%v, italic=%v)\n",
		fn.Style, fn.Weight, fn.Stretch, fn.Bold(), fn.Italic())
	data := [][]string{{"Name", "Platform", "Encoding", "Language", "Text"}}
	for _, group := range []struct {
		label   string
		entries []ot.NameEntry
	}{
		{"Family", fn.FamilyName},
		{"Subfamily", fn.Subfamily},
		{"Full", fn.FullName},
	} {
		for _, e := range group.entries {
			data = append(data, []string{group.label, otquery.PlatformID(e.Platform).String(),
				strconv.Itoa(int(e.Encoding)), fmt.Sprintf("%#04x", e.Language), e.Text})
		}
	}
	return render(data)
}

// --- cmap ------------------------------------------------------------------

type CmapCmd struct {
	FontArg
	Map string `short:"m" enum:"lookup,unicode,symbol,extended" default:"lookup" help:"Character map to list"`
}

func (cmd *CmapCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Full)
	if err != nil {
		return err
	}
	cmap, err := f.Font.CMap()
	if err != nil {
		return err
	}
	var cm ot.CodeMap
	switch cmd.Map {
	case "unicode":
		cm = cmap.Unicode
	case "symbol":
		cm = cmap.Symbol
	case "extended":
		cm = cmap.Extended
	default:
		cm = make(ot.CodeMap)
		for _, m := range []ot.CodeMap{cmap.Symbol, cmap.Unicode, cmap.Extended} {
			for code := range m {
				cm[code], _ = cmap.Lookup(code)
			}
		}
	}
	if cm == nil {
		return fmt.Errorf("font has no %s character map", cmd.Map)
	}
	data := [][]string{{"Code", "Glyph", "Width"}}
	for _, code := range cm.Codes() {
		m := cm[code]
		data = append(data, []string{fmt.Sprintf("U+%04X", code), strconv.Itoa(m.Glyph), strconv.Itoa(m.Width)})
	}
	return render(data)
}

// --- widths ----------------------------------------------------------------

type WidthsCmd struct {
	FontArg
}

func (cmd *WidthsCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Full)
	if err != nil {
		return err
	}
	widths, err := f.Font.GlyphWidths()
	if err != nil {
		return err
	}
	data := [][]string{{"Glyph", "Advance"}}
	for g, w := range widths {
		data = append(data, []string{strconv.Itoa(g), strconv.Itoa(w)})
	}
	return render(data)
}

// --- kern ------------------------------------------------------------------

type KernCmd struct {
	FontArg
}

func (cmd *KernCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Minimal)
	if err != nil {
		return err
	}
	kern, err := f.Font.Kerning()
	if err != nil {
		return err
	}
	data := [][]string{{"Left", "Right", "Value"}}
	for _, pair := range sortedKeys(kern) {
		data = append(data, []string{strconv.Itoa(int(pair >> 16)), strconv.Itoa(int(pair & 0xFFFF)),
			strconv.Itoa(kern[pair])})
	}
	return render(data)
}

// --- bbox ------------------------------------------------------------------

type BboxCmd struct {
	FontArg
}

func (cmd *BboxCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Minimal)
	if err != nil {
		return err
	}
	bboxes, err := f.Font.BoundingBoxes()
	if err != nil {
		return err
	}
	boxes, ok := bboxes.Unwrap()
	if !ok {
		return errors.New("font has no table 'loca', bounding boxes are part of the CFF font program")
	}
	data := [][]string{{"Glyph", "xMin", "yMin", "xMax", "yMax"}}
	for g, b := range boxes {
		box, ok := b.Unwrap()
		if !ok {
			data = append(data, []string{strconv.Itoa(g), "-", "-", "-", "-"})
			continue
		}
		data = append(data, []string{strconv.Itoa(g), strconv.Itoa(box.XMin),
			strconv.Itoa(box.YMin), strconv.Itoa(box.XMax), strconv.Itoa(box.YMax)})
	}
	return render(data)
}

// --- coverage --------------------------------------------------------------

type CoverageCmd struct {
	FontArg
	Table  string `short:"t" default:"GSUB" help:"Table the offset is relative to"`
	Offset int64  `short:"o" required:"" help:"Offset of the coverage table"`
}

func (cmd *CoverageCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Minimal)
	if err != nil {
		return err
	}
	loc, ok := f.Font.Directory()[ot.T(cmd.Table)]
	if !ok {
		return fmt.Errorf("table '%s' not found in font", cmd.Table)
	}
	r := fontio.NewReader(fontio.FromBytes(f.Binary))
	cov, err := otlayout.ReadCoverage(r, int64(loc.Offset)+cmd.Offset)
	if err != nil {
		return err
	}
	pterm.Printf("Coverage format %d with %d glyphs\n", cov.Format(), cov.Len())
	for g := range cov.All() {
		pterm.Printf("%d ", g)
	}
	pterm.Println()
	return nil
}

// --- check -----------------------------------------------------------------

type CheckCmd struct {
	FontArg
}

func (cmd *CheckCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Full)
	if err != nil {
		return err
	}
	if err := f.CrossCheck(); err != nil {
		return err
	}
	pterm.Success.Printf("%s: no differences found\n", f.Fontname)
	return nil
}

// --- raw -------------------------------------------------------------------

type RawCmd struct {
	FontArg
	CFF    bool   `help:"Extract table 'CFF ' instead of the complete font file"`
	Output string `short:"o" required:"" type:"path" help:"Output file"`
}

func (cmd *RawCmd) Run(globals *Globals) error {
	f, err := cmd.load(globals, ot.Minimal)
	if err != nil {
		return err
	}
	var b []byte
	if cmd.CFF {
		if !f.Font.HasCFF() {
			return errors.New("font has TrueType outlines, no table 'CFF '")
		}
		b, err = f.Font.CFFFont()
	} else {
		b, err = f.Font.FullFont()
	}
	if err != nil {
		return err
	}
	tracer().Infof("writing %d bytes to %s", len(b), cmd.Output)
	return os.WriteFile(cmd.Output, b, 0o644)
}
