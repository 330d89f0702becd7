package img2term

import (
	"embed"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/wbrown/img2term/imageutil"
)

//go:embed colordata/white_bg.json
//go:embed colordata/black_bg.json
var colordata embed.FS

// Palette is an ordered sequence of reference colors. Indices are the
// stable identifiers carried through color tables, escape lookups, and
// console attributes, so a palette must not be reordered once in use.
type Palette []RGB

var (
	// WhiteBG is the 16-color palette tuned for terminals with a
	// light background.
	WhiteBG = mustEmbeddedPalette("white_bg")

	// BlackBG is the 16-color palette tuned for terminals with a
	// dark background.
	BlackBG = mustEmbeddedPalette("black_bg")

	// ANSI256 is the extended terminal palette: the 16 base colors,
	// the 6x6x6 color cube, and the 24-step grayscale ramp.
	ANSI256 = ansi256Palette()
)

// Backgrounds returns the prefix of the palette addressable by
// background escape codes, which only cover 8 colors.
func (p Palette) Backgrounds() Palette {
	if len(p) <= 8 {
		return p
	}
	return p[:8]
}

// LoadPalette loads a palette by embedded name or filesystem path. The
// embedded names are tried first, so "white_bg" and "black_bg" always
// resolve; anything else is read as a JSON file containing an ordered
// array of "#RRGGBB" strings.
func LoadPalette(nameOrPath string) (Palette, error) {
	data, vfsErr := colordata.ReadFile(
		fmt.Sprintf("colordata/%s.json", nameOrPath))
	if vfsErr != nil {
		var fsErr error
		data, fsErr = os.ReadFile(nameOrPath)
		if fsErr != nil {
			return nil, fmt.Errorf("error reading palette: %w", fsErr)
		}
	}
	return parsePaletteJSON(data)
}

// parsePaletteJSON decodes an ordered JSON array of hex color strings.
func parsePaletteJSON(data []byte) (Palette, error) {
	var hexes []string
	if err := json.Unmarshal(data, &hexes); err != nil {
		return nil, fmt.Errorf("error unmarshalling palette JSON: %w", err)
	}
	if len(hexes) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}

	palette := make(Palette, len(hexes))
	for i, hexColor := range hexes {
		hexColor = strings.TrimPrefix(hexColor, "#")
		colorUint, err := strconv.ParseUint(hexColor, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("error parsing color %s: %w",
				hexColor, err)
		}
		palette[i] = rgbFromUint32(uint32(colorUint))
	}
	return palette, nil
}

// mustEmbeddedPalette loads one of the palettes compiled into the
// binary. Failure means the embedded data itself is broken.
func mustEmbeddedPalette(name string) Palette {
	p, err := LoadPalette(name)
	if err != nil {
		panic(fmt.Sprintf("img2term: embedded palette %s: %v", name, err))
	}
	return p
}

// ansi256Palette generates the standard 256-color terminal palette. The
// cube channels step through 0, 95, 135, 175, 215, 255 and the gray
// ramp runs 8, 18, ... 238.
func ansi256Palette() Palette {
	p := make(Palette, 0, 256)
	p = append(p, BlackBG...)

	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				p = append(p, RGB{R: r, G: g, B: b})
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(8 + 10*i)
		p = append(p, RGB{R: v, G: v, B: v})
	}
	return p
}

// AdaptivePalette derives a palette of at most maxColors entries from
// the image itself using median-cut quantization.
func AdaptivePalette(img image.Image, maxColors int) Palette {
	q := quantize.MedianCutQuantizer{}
	quantized := q.Quantize(make(color.Palette, 0, maxColors), img)

	p := make(Palette, len(quantized))
	for i, c := range quantized {
		p[i] = rgbFromImageUtil(imageutil.RGBFromColor(c))
	}
	return p
}
