package img2term

import "github.com/wbrown/img2term/imageutil"

// RGB represents a color in the RGB color space with 8-bit channels,
// where each channel ranges from 0 to 255. The RGB color space is
// additive, meaning that colors are created by adding together the
// red, green, and blue channels.
type RGB struct {
	R, G, B uint8
}

// toUint32 converts an RGB color to a 32-bit unsigned integer
func (r RGB) toUint32() uint32 {
	return uint32(r.R)<<16 | uint32(r.G)<<8 | uint32(r.B)
}

// rgbFromUint32 converts a 32-bit unsigned integer to an RGB color
func rgbFromUint32(color uint32) RGB {
	return RGB{
		R: uint8(color >> 16),
		G: uint8(color >> 8),
		B: uint8(color),
	}
}

// rgbFromImageUtil converts an imageutil.RGB sample to an RGB color.
func rgbFromImageUtil(c imageutil.RGB) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Intensity reduces an RGB color to a grayscale intensity by averaging
// the channels with truncating integer division, matching the glyph
// ramp's bucket arithmetic.
func (r RGB) Intensity() uint8 {
	return r.R/3 + r.G/3 + r.B/3
}
