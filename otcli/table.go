package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/fontparse/otlayout"
	"github.com/npillmayer/fontparse/otquery"
	"github.com/pterm/pterm"
)

func sortedTags(dir ot.TableDirectory) []ot.Tag {
	tags := dir.Tags()
	slices.Sort(tags)
	return tags
}

func tablesOp(intp *Intp, op *Op) (error, bool) {
	dir := intp.font.Font.Directory()
	data := [][]string{{"Tag", "Offset", "Length"}}
	for _, tag := range sortedTags(dir) {
		loc := dir[tag]
		data = append(data, []string{tag.String(), strconv.Itoa(int(loc.Offset)), strconv.Itoa(int(loc.Length))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag, ok := op.hasArg()
	if !ok {
		return errors.New("usage: table:<tag>"), false
	}
	if len(tag) < 4 {
		tag += strings.Repeat(" ", 4-len(tag))
	}
	t := ot.T(tag)
	if !intp.font.Font.HasTable(t) {
		return fmt.Errorf("table '%s' not found in font", t), false
	}
	intp.last = t
	tracer().Infof("setting table: %v", t)
	otf := intp.font.Font
	var v any
	var err error
	switch t {
	case ot.TagHead:
		v, err = otf.Head()
	case ot.TagHhea:
		v, err = otf.HHea()
	case ot.TagOS2:
		v, err = otf.OS2()
	case ot.TagPost:
		v, err = otf.Post()
	case ot.TagMaxp:
		v, err = otf.MaxP()
	case ot.TagName:
		return namesOp(intp, op)
	case ot.TagHmtx:
		var widths ot.GlyphWidths
		if widths, err = otf.GlyphWidths(); err == nil {
			v = fmt.Sprintf("%d advance widths", len(widths))
		}
	case ot.TagCmap:
		var cmap *ot.CMapTable
		if cmap, err = otf.CMap(); err == nil {
			v = fmt.Sprintf("symbol=%d unicode=%d extended=%d font-specific=%v",
				len(cmap.Symbol), len(cmap.Unicode), len(cmap.Extended), cmap.FontSpecific)
		}
	case ot.TagKern:
		var kern ot.KerningMap
		if kern, err = otf.Kerning(); err == nil {
			v = fmt.Sprintf("%d kerning pairs", len(kern))
		}
	case ot.TagLoca, ot.TagGlyf:
		var bb ot.Option[[]ot.Option[ot.BoundingBox]]
		if bb, err = otf.BoundingBoxes(); err == nil {
			v = fmt.Sprintf("%d glyph bounding boxes", len(bb.Or(nil)))
		}
	default:
		v = fmt.Sprintf("table '%s' is not decoded", t)
	}
	if err != nil {
		return err, false
	}
	pterm.Printf("%+v\n", v)
	return nil, false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	data := [][]string{{"ID", "Value"}}
	for id, value := range otquery.NamesRange(intp.font.Font) {
		data = append(data, []string{strconv.Itoa(int(id)), value})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// parseCode accepts a single character, "U+20AC" or a decimal number.
func parseCode(arg string) (uint32, error) {
	if r, size := utf8.DecodeRuneInString(arg); size == len(arg) && r != utf8.RuneError {
		return uint32(r), nil
	}
	if strings.HasPrefix(strings.ToUpper(arg), "U+") {
		c, err := strconv.ParseUint(arg[2:], 16, 32)
		return uint32(c), err
	}
	c, err := strconv.ParseUint(arg, 10, 32)
	return uint32(c), err
}

func cmapOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return errors.New("usage: cmap:<char>"), false
	}
	code, err := parseCode(arg)
	if err != nil {
		return err, false
	}
	cmap, err := intp.font.Font.CMap()
	if err != nil {
		return err, false
	}
	m, found := cmap.Lookup(code)
	if !found {
		pterm.Printf("U+%04X is not mapped\n", code)
		return nil, false
	}
	pterm.Printf("U+%04X => glyph %d, width %d\n", code, m.Glyph, m.Width)
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	gid, err := strconv.Atoi(op.arg)
	if err != nil || gid < 0 || gid > 0xFFFF {
		return fmt.Errorf("glyph index not numeric: %v", op.arg), false
	}
	m, err := otquery.GlyphMetrics(intp.font.Font, ot.GlyphIndex(gid))
	if err != nil {
		return err, false
	}
	printGlyphMetrics(ot.GlyphIndex(gid), m)
	return nil, false
}

func kernOp(intp *Intp, op *Op) (error, bool) {
	left, err1 := strconv.Atoi(op.arg)
	right, err2 := strconv.Atoi(op.format)
	if err1 != nil || err2 != nil {
		return errors.New("usage: kern:<left glyph>:<right glyph>"), false
	}
	k := otquery.Kerning(intp.font.Font, ot.GlyphIndex(left), ot.GlyphIndex(right))
	pterm.Printf("kern(%d, %d) = %d\n", left, right, k)
	return nil, false
}

func warningsOp(intp *Intp, op *Op) (error, bool) {
	warnings := intp.font.Font.Warnings()
	if len(warnings) == 0 {
		pterm.Println("no warnings")
	}
	for _, w := range warnings {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

// coverageOp reads a coverage table at an offset relative to the table
// shown last, or at an absolute offset if no table has been selected.
func coverageOp(intp *Intp, op *Op) (error, bool) {
	offset, err := strconv.ParseInt(op.arg, 0, 64)
	if err != nil {
		return errors.New("usage: coverage:<offset>"), false
	}
	if intp.last != 0 {
		offset += int64(intp.font.Font.Directory()[intp.last].Offset)
	}
	r := fontio.NewReader(fontio.FromBytes(intp.font.Binary))
	cov, err := otlayout.ReadCoverage(r, offset)
	if err != nil {
		return err, false
	}
	printCoverage(cov)
	return nil, false
}
