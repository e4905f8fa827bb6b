package engine

// rect is an axis-aligned rectangle in board coordinates, integer mm,
// origin at the board's lower-left corner.
type rect struct {
	x, y, w, h int
}

func (r rect) area() int64 {
	return int64(r.w) * int64(r.h)
}

// contains reports whether a w x h piece fits corner-anchored inside r.
func (r rect) contains(w, h int) bool {
	return w <= r.w && h <= r.h
}

// overlaps reports whether the open interiors of r and o intersect.
// Rectangles that merely share an edge do not overlap.
func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w && r.x+r.w > o.x &&
		r.y < o.y+o.h && r.y+r.h > o.y
}

// containsRect reports whether r fully contains o.
func (r rect) containsRect(o rect) bool {
	return r.x <= o.x && r.y <= o.y &&
		r.x+r.w >= o.x+o.w && r.y+r.h >= o.y+o.h
}
