package ot

import (
	"github.com/npillmayer/fontparse/fontio"
)

// decoder bundles what every table decoder needs: a reader, the resolved
// table directory, a name for error messages and a sink for warnings.
type decoder struct {
	r      *fontio.Reader
	dir    TableDirectory
	source string
	warn   *warningCollector
}

func newDecoder(r *fontio.Reader, dir TableDirectory, source string) *decoder {
	return &decoder{r: r, dir: dir, source: source, warn: &warningCollector{}}
}

// seekTable positions the reader at offset rel within table tag. It returns
// a FormatError of kind ErrRequiredTableMissing if the table does not exist.
func (d *decoder) seekTable(tag Tag, rel int64) (TableLocation, error) {
	loc, ok := d.dir[tag]
	if !ok {
		return loc, missingTable(tag, d.source)
	}
	d.r.Reset()
	d.r.Seek(int64(loc.Offset) + rel)
	return loc, nil
}

// check converts a sticky read error into a FormatError for table tag.
func (d *decoder) check(tag Tag) error {
	if err := d.r.Err(); err != nil {
		d.r.Reset()
		return truncated(tag, d.source, err)
	}
	return nil
}
