package img2term

import (
	"fmt"
	"io"
	"strings"

	"github.com/wbrown/img2term/imageutil"
)

// asciiRamp is the 8-glyph luminance ramp, ordered dark to light. Each
// glyph covers an intensity bucket 32 values wide.
const asciiRamp = " .,-~+=@"

// Renderer converts prepared images to terminal output. A Renderer
// carries configuration only; every Write method is a single stateless
// pass over its input, so one Renderer may be reused across images.
type Renderer struct {
	ColorMethod ColorDistanceMethod
	Filter      imageutil.Interpolation
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Defaults: ColorMethod=RedmeanMethod{}, Filter=InterpolationNearest.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		ColorMethod: RedmeanMethod{},
		Filter:      imageutil.InterpolationNearest,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithColorMethod sets the color distance calculation method.
func WithColorMethod(method ColorDistanceMethod) RendererOption {
	return func(r *Renderer) {
		r.ColorMethod = method
	}
}

// WithFilter sets the interpolation filter used by Prepare.
func WithFilter(filter imageutil.Interpolation) RendererOption {
	return func(r *Renderer) {
		r.Filter = filter
	}
}

// Prepare resizes a decoded image to the pixel dimensions planned for a
// (cols, rows) cell grid, using the renderer's filter. The result is
// what the Write methods expect as input.
func (r *Renderer) Prepare(img *imageutil.RGBAImage, cols, rows int, preserveAspect bool) *imageutil.RGBAImage {
	width, height := PlanDimensions(
		img.Width(), img.Height(), cols, rows, preserveAspect)
	return imageutil.Resize(img, width, height, r.Filter)
}

// WriteANSI renders img as 16-color half-block art. The palette must
// have exactly 16 entries; it is matched against upper pixels directly
// and against lower pixels through its 8-entry background prefix. Every
// cell emits a foreground escape, a background escape, and the
// half-block glyph; every row ends with a reset and a newline.
func (r *Renderer) WriteANSI(w io.Writer, img *imageutil.RGBAImage, palette Palette) error {
	if len(palette) != len(fgEscapes) {
		return fmt.Errorf("palette has %d colors, want %d",
			len(palette), len(fgEscapes))
	}
	table, err := r.BuildColorTable(img, palette, palette.Backgrounds())
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, row := range table {
		for _, cell := range row {
			sb.WriteString(fgEscapes[cell.Upper])
			sb.WriteString(bgEscapes[cell.Lower])
			sb.WriteRune(HalfBlock)
		}
		sb.WriteString(ansiReset)
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

// WriteTruecolor renders img with 24-bit escapes, bypassing palette
// matching entirely: each cell carries the literal channel values of
// its upper and lower pixels.
func (r *Renderer) WriteTruecolor(w io.Writer, img *imageutil.RGBAImage) error {
	width, height := img.Width(), img.Height()
	if height%2 != 0 {
		return fmt.Errorf("image height %d is not even", height)
	}

	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			upper := rgbFromImageUtil(img.GetRGB(x, y))
			lower := rgbFromImageUtil(img.GetRGB(x, y+1))
			sb.WriteString(truecolorFg(upper))
			sb.WriteString(truecolorBg(lower))
			sb.WriteRune(HalfBlock)
		}
		sb.WriteString(ansiReset)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteANSI256 renders img as half-block art in the 256-color palette,
// matched for both the upper and lower pixel of every cell.
func (r *Renderer) WriteANSI256(w io.Writer, img *imageutil.RGBAImage) error {
	table, err := r.BuildColorTable(img, ANSI256, ANSI256)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, row := range table {
		for _, cell := range row {
			sb.WriteString(ansi256Fg(cell.Upper))
			sb.WriteString(ansi256Bg(cell.Lower))
			sb.WriteRune(HalfBlock)
		}
		sb.WriteString(ansiReset)
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

// WriteAdaptive renders img constrained to a palette of at most
// maxColors entries quantized from the image itself. The matched
// entries are emitted through 24-bit escapes, so the output displays
// the derived palette exactly.
func (r *Renderer) WriteAdaptive(w io.Writer, img *imageutil.RGBAImage, maxColors int) error {
	palette := AdaptivePalette(img.RGBA, maxColors)
	table, err := r.BuildColorTable(img, palette, palette)
	if err != nil {
		return err
	}

	var sb strings.Builder
	for _, row := range table {
		for _, cell := range row {
			sb.WriteString(truecolorFg(palette[cell.Upper]))
			sb.WriteString(truecolorBg(palette[cell.Lower]))
			sb.WriteRune(HalfBlock)
		}
		sb.WriteString(ansiReset)
		sb.WriteByte('\n')
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

// WriteASCII renders img as grayscale glyph art with no escapes. Only
// even pixel rows are sampled; odd rows are skipped, not merged, to
// compensate for character cells being roughly twice as tall as wide.
// A fully transparent pixel is blank regardless of its color channels.
func (r *Renderer) WriteASCII(w io.Writer, img *imageutil.RGBAImage) error {
	width, height := img.Width(), img.Height()

	var sb strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			intensity := rgbFromImageUtil(img.GetRGB(x, y)).Intensity()
			if img.GetAlpha(x, y) == 0 {
				intensity = 0
			}
			idx := int(intensity) / 32
			if idx >= len(asciiRamp) {
				idx = len(asciiRamp) - 1
			}
			sb.WriteByte(asciiRamp[idx])
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
