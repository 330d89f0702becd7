package img2term

// matchCache memoizes closest-palette lookups for one palette and
// method pairing. Resized images hold far fewer distinct colors than
// pixels, so table building hits the cache for every repeat sighting
// of a color. A cached index is exactly what Closest would return;
// memoization skips the scan, never the answer.
type matchCache struct {
	palette Palette
	method  ColorDistanceMethod
	indices map[uint32]int

	hits   int
	misses int
}

func newMatchCache(palette Palette, method ColorDistanceMethod) *matchCache {
	return &matchCache{
		palette: palette,
		method:  method,
		indices: make(map[uint32]int),
	}
}

// closest returns the palette index for c, scanning the palette only
// on the first sighting of each color.
func (mc *matchCache) closest(c RGB) int {
	key := c.toUint32()
	if idx, ok := mc.indices[key]; ok {
		mc.hits++
		return idx
	}
	mc.misses++
	idx := mc.palette.Closest(c, mc.method)
	mc.indices[key] = idx
	return idx
}
