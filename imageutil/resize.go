package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest, and the sharpest choice for block-art downsampling.
	InterpolationNearest Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	InterpolationArea
)

// ParseInterpolation maps a filter name to an Interpolation. The zero
// value is returned for unknown names along with false.
func ParseInterpolation(name string) (Interpolation, bool) {
	switch name {
	case "nearest":
		return InterpolationNearest, true
	case "linear":
		return InterpolationLinear, true
	case "area":
		return InterpolationArea, true
	}
	return InterpolationNearest, false
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationArea:
		// CatmullRom provides high quality for both up and down scaling
		scaler = draw.CatmullRom
	default:
		scaler = draw.NearestNeighbor
	}

	scaler.Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}
