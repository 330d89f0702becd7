package img2term

// PlanDimensions computes the pixel dimensions an image should be
// resized to before half-block rendering. Each terminal row displays two
// pixel rows, so the unconstrained target for a (cols, rows) cell grid
// is (cols, rows*2).
//
// With preserveAspect false the unconstrained target is returned
// directly; the upstream resize will stretch the image to fill it. With
// preserveAspect true the image is fit inside the (cols, rows*2) box:
// whichever axis binds determines a single scale applied to both source
// dimensions, truncating to integers. The resulting height is floored
// to an even value so every output row has both an upper and a lower
// pixel; a height of zero is legal and renders nothing.
//
// Zero source or terminal dimensions are a configuration error and must
// be rejected before planning.
func PlanDimensions(srcW, srcH, cols, rows int, preserveAspect bool) (int, int) {
	if !preserveAspect {
		return cols, rows * 2
	}

	ratio := float64(srcW) / float64(srcH)
	targetRatio := float64(cols) / float64(rows*2)

	var scale float64
	if targetRatio > ratio {
		scale = float64(rows*2) / float64(srcH)
	} else {
		scale = float64(cols) / float64(srcW)
	}

	width := int(float64(srcW) * scale)
	height := int(float64(srcH) * scale)
	return width, height &^ 1
}
