package document

// Cursor is the write position during composition: a 1-based page and a
// vertical offset in millimetres. It is a value; renderers take one and
// return the next.
type Cursor struct {
	Page int
	Y    float64
}

// Start is the cursor at the top of the first page
func Start(g Geometry) Cursor {
	return Cursor{Page: 1, Y: g.ContentTop}
}

// Advance moves the cursor down by dy
func (c Cursor) Advance(dy float64) Cursor {
	c.Y += dy
	return c
}

// Fits reports whether h millimetres of content fit below the cursor
func (c Cursor) Fits(g Geometry, h float64) bool {
	return c.Y+h <= g.ContentBottom
}

// AtTop reports whether the cursor sits at the top of its page
func (c Cursor) AtTop(g Geometry) bool {
	return c.Y <= g.ContentTop
}

// Break returns the cursor at the top of the next page
func (c Cursor) Break(g Geometry) Cursor {
	return Cursor{Page: c.Page + 1, Y: g.ContentTop}
}

// Reserve makes room for h millimetres: when the content would cross the
// bottom of the content area it adds a page to cv and returns the cursor at
// its top. A cursor already at the top of a page is returned unchanged, so
// content taller than a page must be split by the caller.
func Reserve(cv Canvas, c Cursor, h float64) Cursor {
	g := cv.Geometry()
	if c.Fits(g, h) || c.AtTop(g) {
		return c
	}
	cv.AddPage()
	return c.Break(g)
}
