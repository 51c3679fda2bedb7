package autosize

// Toggles returns how many overflow transitions el has gone through, or -1
// when el is not managed.
func Toggles(a *Autosizer, el Element) int {
	c, ok := a.lookup(el)
	if !ok {
		return -1
	}
	return c.toggles
}

// HeightOffset returns the offset computed for el at attach.
func HeightOffset(a *Autosizer, el Element) float64 {
	c, ok := a.lookup(el)
	if !ok {
		return 0
	}
	return c.heightOffset
}
