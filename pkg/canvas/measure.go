package canvas

// advance is the width of each ASCII code point as a fraction of the font
// size. Control characters take no space.
var advance = [127]float64{
	32: 0.55, 0.55, 0.55, 0.7, 0.6, 0.7, 0.6, 0.55, 0.55, 0.55, 0.55, 0.6, 0.55, 0.55, 0.55, 0.55,
	48: 0.6, 0.6, 0.6, 0.6, 0.7, 0.6, 0.6, 0.6, 0.6, 0.6, 0.55, 0.55, 0.55, 0.6, 0.6, 0.55,
	64: 0.7, 0.7, 0.6, 0.6, 0.6, 0.55, 0.55, 0.6, 0.6, 0.55, 0.55, 0.6, 0.6, 0.7, 0.6, 0.6,
	80: 0.6, 0.6, 0.6, 0.6, 0.6, 0.6, 0.7, 0.7, 0.7, 0.7, 0.6, 0.55, 0.6, 0.55, 0.6, 0.7,
	96: 0.55, 0.55, 0.6, 0.55, 0.55, 0.6, 0.6, 0.6, 0.55, 0.6, 0.55, 0.6, 0.6, 0.6, 0.55, 0.6,
	112: 0.6, 0.55, 0.6, 0.55, 0.55, 0.55, 0.6, 0.7, 0.6, 0.6, 0.6, 0.55, 0.55, 0.55, 0.6,
}

// averageAdvance is used for every rune outside the table.
const averageAdvance = 0.5942105263157896

// MeasureText estimates the rendered width of s at fontSize.
func MeasureText(s string, fontSize float64) float64 {
	var w float64
	for _, r := range s {
		if r >= 0 && int(r) < len(advance) {
			w += advance[r]
		} else {
			w += averageAdvance
		}
	}
	return w * fontSize
}

// MeasureText estimates the width of s at the canvas font size scaled by k.
func (c *Canvas) MeasureText(s string, k float64) float64 {
	return MeasureText(s, c.opts.FontSize*k)
}

// TextLength is the width of s at scale k including padding on both sides.
func (c *Canvas) TextLength(s string, k float64) float64 {
	return c.MeasureText(s, k) + 2*c.opts.TextPadding
}

// FontHeight is the height of one text row at scale k including padding.
func (c *Canvas) FontHeight(k float64) float64 {
	return c.opts.FontSize*1.5*k + 2*c.opts.TextPadding
}

// Fit returns how many characters of width ch fit in width at scale k,
// counting the text padding.
func (c *Canvas) Fit(width float64, ch rune, k float64) int {
	unit := MeasureText(string(ch), c.opts.FontSize*k)
	if unit <= 0 {
		return 0
	}
	n := 0
	for c.TextLength("", k)+unit*float64(n+1) < width {
		n++
	}
	return n
}
