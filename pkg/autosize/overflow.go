package autosize

// Overflow-y values the engine switches between.
const (
	overflowHidden = "hidden"
	overflowScroll = "scroll"
)

// setOverflowY switches overflow-y and makes sure the text is re-wrapped
// for the new scrollbar state. Some engines keep the old line breaks when
// only overflow changes, so the width is collapsed and layout forced first;
// the original width declaration is then put back untouched.
func setOverflowY(el Element, value string) {
	style := el.Style()
	width := style.GetPropertyValue("width")
	style.SetProperty("width", "0px")
	_ = el.OffsetWidth()
	style.SetProperty("width", width)
	style.SetProperty("overflow-y", value)
}
