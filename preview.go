package img2term

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// WritePNG renders a color table to a PNG image. Each cell becomes a
// cellW x cellH rectangle whose top half holds the matched upper
// palette entry and bottom half the lower entry, the geometric
// equivalent of the half-block terminal output. Useful for previewing
// a render without a terminal.
func WritePNG(w io.Writer, table ColorTable, upper, lower Palette, cellW, cellH int) error {
	if len(table) == 0 || len(table[0]) == 0 {
		return fmt.Errorf("color table is empty")
	}
	if cellW < 1 || cellH < 2 {
		return fmt.Errorf("cell size %dx%d is too small to split", cellW, cellH)
	}

	rows, cols := len(table), len(table[0])
	img := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))

	for y, row := range table {
		for x, cell := range row {
			drawCell(img, x*cellW, y*cellH, cellW, cellH,
				upper[cell.Upper], lower[cell.Lower])
		}
	}

	return png.Encode(w, img)
}

// drawCell paints one cell rectangle, the upper color on the top half
// and the lower color on the rest.
func drawCell(img *image.RGBA, x0, y0, cellW, cellH int, upperColor, lowerColor RGB) {
	half := cellH / 2
	for dy := 0; dy < cellH; dy++ {
		c := upperColor
		if dy >= half {
			c = lowerColor
		}
		rgba := color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
		for dx := 0; dx < cellW; dx++ {
			img.SetRGBA(x0+dx, y0+dy, rgba)
		}
	}
}
