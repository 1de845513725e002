package main

import (
	"fmt"

	"github.com/npillmayer/fontparse/ot"
	"github.com/npillmayer/fontparse/otlayout"
	"github.com/npillmayer/fontparse/otquery"
	"github.com/pterm/pterm"
)

func printGlyphMetrics(gid ot.GlyphIndex, m otquery.GlyphMetricsInfo) {
	data := [][]string{
		{"Glyph", "Advance", "LSB", "RSB", "BBox"},
		{
			fmt.Sprintf("%d", gid),
			fmt.Sprintf("%d", m.Advance),
			fmt.Sprintf("%d", m.LSB),
			fmt.Sprintf("%d", m.RSB),
			formatBox(m.BBox),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatBox(box otquery.BoundingBox) string {
	if box.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("[%d %d %d %d]", box.MinX, box.MinY, box.MaxX, box.MaxY)
}

func printCoverage(cov otlayout.Coverage) {
	pterm.Printf("Coverage format %d with %d glyphs\n", cov.Format(), cov.Len())
	if cov.Format() == 2 {
		data := [][]string{{"Start", "End", "Coverage Index"}}
		for _, rng := range cov.Ranges() {
			data = append(data, []string{
				fmt.Sprintf("%d", rng.Start),
				fmt.Sprintf("%d", rng.End),
				fmt.Sprintf("%d", rng.StartCoverageIndex),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		return
	}
	pterm.Printf("%v\n", cov.Glyphs())
}
