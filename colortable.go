package img2term

import (
	"fmt"

	"github.com/wbrown/img2term/imageutil"
)

// ColorPair holds the matched palette indices for one terminal cell:
// Upper indexes the palette matched against the cell's top pixel row,
// Lower against the bottom.
type ColorPair struct {
	Upper int
	Lower int
}

// ColorTable is the per-cell grid of matched palette indices produced
// before rendering. The outer slice is rows in top-to-bottom order, the
// inner slices are columns left-to-right.
type ColorTable [][]ColorPair

// BuildColorTable matches every pixel of img against the upper and
// lower palettes and returns the grid of half-block index pairs. The
// image height must be even; output row y reads source rows 2y and
// 2y+1. Identical inputs always produce identical tables: lookups are
// memoized per call, which skips repeat scans but cannot change a
// result.
func (r *Renderer) BuildColorTable(img *imageutil.RGBAImage, upper, lower Palette) (ColorTable, error) {
	width, height := img.Width(), img.Height()
	if height%2 != 0 {
		return nil, fmt.Errorf("image height %d is not even", height)
	}

	upperCache := newMatchCache(upper, r.ColorMethod)
	lowerCache := newMatchCache(lower, r.ColorMethod)

	table := make(ColorTable, height/2)
	for y := range table {
		row := make([]ColorPair, width)
		for x := 0; x < width; x++ {
			upperPix := rgbFromImageUtil(img.GetRGB(x, 2*y))
			lowerPix := rgbFromImageUtil(img.GetRGB(x, 2*y+1))
			row[x] = ColorPair{
				Upper: upperCache.closest(upperPix),
				Lower: lowerCache.closest(lowerPix),
			}
		}
		table[y] = row
	}
	return table, nil
}
