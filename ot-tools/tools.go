/*
Command ot-tools prints diagnostics and table information for OpenType fonts.

	ot-tools info fonts/*.ttf
	ot-tools cmap --extended fonts/Helvetica.ttc,1
	ot-tools raw --cff -o out.cff fonts/Minion.otf

Fonts of a TrueType Collection are addressed by appending the font index to
the file name. The "info" command loads all fonts of a collection if no
index is given.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/npillmayer/fontparse/internal/fontload"
	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

// Globals are flags shared by all commands.
type Globals struct {
	Verbose bool `short:"V" help:"Display additional output, including decoder warnings"`
}

var cli struct {
	Globals

	Info     InfoCmd     `cmd:"" help:"Print a summary of fonts, all fonts of a collection if no index is given"`
	Names    NamesCmd    `cmd:"" help:"List the entries of table 'name'"`
	Cmap     CmapCmd     `cmd:"" help:"List character to glyph mappings"`
	Widths   WidthsCmd   `cmd:"" help:"List the advance widths of glyphs"`
	Kern     KernCmd     `cmd:"" help:"List kerning pairs of table 'kern'"`
	Bbox     BboxCmd     `cmd:"" help:"List glyph bounding boxes"`
	Coverage CoverageCmd `cmd:"" help:"Decode a layout coverage table"`
	Check    CheckCmd    `cmd:"" help:"Compare decoded values with golang.org/x/image/font/sfnt"`
	Raw      RawCmd      `cmd:"" help:"Extract the font program bytes"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("ot-tools"),
		kong.Description("CLI for OpenType font diagnostics."),
		kong.UsageOnError(),
	)
	setupTracing(cli.Verbose)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

func setupTracing(verbose bool) {
	level := "Error"
	if verbose {
		level = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.opentype": level,
		"trace.font.otquery":  level,
		"trace.font.otlayout": level,
		"trace.font.io":       "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintln(os.Stderr, "error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// FontArg is the positional font argument of most commands.
type FontArg struct {
	Font string `arg:"" name:"font" help:"Font file, optionally with collection index (file.ttc,1)"`
}

func (fa FontArg) load(globals *Globals, mode ot.LoadMode) (*fontload.ScalableFont, error) {
	f, err := fontload.LoadOpenTypeFont(fa.Font, mode)
	if err != nil {
		return nil, err
	}
	if globals.Verbose {
		printWarnings(f.Font)
	}
	return f, nil
}

func printWarnings(otf *ot.Font) {
	for _, w := range otf.Warnings() {
		pterm.Warning.Println(w.String())
	}
}

func render(data [][]string) error {
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func sortedKeys(km ot.KerningMap) []uint32 {
	keys := make([]uint32, 0, len(km))
	for k := range km {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
