package otquery

import (
	"context"

	"github.com/npillmayer/fontparse/fontio"
	"github.com/npillmayer/fontparse/ot"
	"golang.org/x/sync/errgroup"
)

// LoadCollection parses every font of a source and loads its tables with
// the given mode. A source which is not a TrueType Collection yields a single
// font. Fonts are loaded concurrently, each on its own view of the source.
//
// If any of the fonts fails to load, the first error is returned.
func LoadCollection(ctx context.Context, src fontio.Source, mode ot.LoadMode, opts ...ot.ParseOption) ([]*ot.Font, error) {
	n, err := ot.NumFonts(src)
	if err != nil {
		return nil, err
	}
	isCollection := ot.Tag(fontio.NewReader(src).ReadU32()) == ot.TagCollection
	fonts := make([]*ot.Font, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := opts
			if isCollection {
				o = append(append([]ot.ParseOption(nil), opts...), ot.WithCollectionIndex(i))
			}
			otf, err := ot.Parse(src, o...)
			if err != nil {
				return err
			}
			if err := otf.Load(mode); err != nil {
				return err
			}
			fonts[i] = otf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	tracer().Debugf("loaded %d font(s) in %s mode", n, mode)
	return fonts, nil
}
