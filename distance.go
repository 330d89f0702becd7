package img2term

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorDistanceMethod computes the perceptual distance between two RGB
// colors. Implementations must be deterministic; closest-color searches
// rely on identical inputs producing identical distances.
type ColorDistanceMethod interface {
	Name() string
	Distance(a, b RGB) float64
}

// RedmeanMethod approximates perceptual color difference with a
// weighted Euclidean distance whose red weight is biased by the average
// redness of the compared colors. This is the default method.
type RedmeanMethod struct{}

func (RedmeanMethod) Name() string { return "Redmean" }

func (RedmeanMethod) Distance(a, b RGB) float64 {
	rMean := (float64(a.R) + float64(b.R)) / 2
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return (2+rMean/256)*dr*dr + 4*dg*dg + (2+(255-rMean)/256)*db*db
}

// RGBMethod is the plain Euclidean distance in the RGB color space.
type RGBMethod struct{}

func (RGBMethod) Name() string { return "RGB" }

func (RGBMethod) Distance(a, b RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// LABMethod measures distance in the CIE-Lab color space, which spaces
// colors closer to how the eye discriminates them than raw RGB does.
type LABMethod struct{}

func (LABMethod) Name() string { return "LAB" }

func (LABMethod) Distance(a, b RGB) float64 {
	ca := colorful.Color{
		R: float64(a.R) / 255,
		G: float64(a.G) / 255,
		B: float64(a.B) / 255,
	}
	cb := colorful.Color{
		R: float64(b.R) / 255,
		G: float64(b.G) / 255,
		B: float64(b.B) / 255,
	}
	return ca.DistanceLab(cb)
}

// ParseColorDistanceMethod maps a method name, case-insensitively, to
// its implementation. Unknown names return false.
func ParseColorDistanceMethod(name string) (ColorDistanceMethod, bool) {
	switch strings.ToLower(name) {
	case "redmean":
		return RedmeanMethod{}, true
	case "rgb":
		return RGBMethod{}, true
	case "lab":
		return LABMethod{}, true
	}
	return nil, false
}

// Closest returns the index of the palette entry nearest to c under the
// given method. The palette is scanned linearly in index order and the
// first minimal distance is kept, so ties resolve to the lowest index.
// The palette must be non-empty.
func (p Palette) Closest(c RGB, method ColorDistanceMethod) int {
	best := 0
	bestDist := math.MaxFloat64
	for i, entry := range p {
		d := method.Distance(entry, c)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
