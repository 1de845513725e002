package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "cmap":
		pterm.Info.Println("cmap")
		pterm.Println(`
	cmap:<char> looks up a character in the font's character maps.
	The character may be given literally, as U+hhhh, or as a decimal number.
	Symbol fonts are searched in their font-specific map first:
	+----------+----------------+----------------+
	| (3,0)    | (3,1), (0,x)   | (3,10), fmt 12 |
	| Symbol   | Unicode        | Extended       |
	+----------+----------------+----------------+
	`)
	case "coverage":
		pterm.Info.Println("coverage")
		pterm.Println(`
	coverage:<offset> reads a layout coverage table. The offset is relative
	to the table selected last (see "table"), or absolute if none is selected.
	Offsets may be given in hex, e.g. coverage:0x2a.
	`)
	default:
		pterm.Info.Println("Commands (combine several on one line, arguments separated by ':')")
		pterm.Println(`
	tables              list the table directory
	table:<tag>         show a decoded table, e.g. table:head or table:OS/2
	names               list the entries of table 'name'
	cmap:<char>         look up a character (help:cmap)
	glyph:<gid>         show metrics of a glyph
	kern:<gid>:<gid>    show the kerning of a glyph pair
	warnings            list warnings collected while decoding
	coverage:<offset>   read a coverage table (help:coverage)
	quit                leave
	`)
	}
}
