package meme

// Bounds returns the bounding box of the text block of a layer, which is MaxWidth wide and TotalHeight high around
// its center.
func Bounds(m Measurer, layer TextLayer) Rect {
	return MeasureLayer(m, layer).Bounds(layer.Center())
}

// HitTest returns the ID of the topmost layer whose bounding box contains p. Layers later in the slice are on top and
// take priority.
func HitTest(m Measurer, p Point, layers []TextLayer) (int, bool) {
	for i := len(layers) - 1; 0 <= i; i-- {
		if Bounds(m, layers[i]).Contains(p) {
			return layers[i].ID, true
		}
	}
	return 0, false
}
