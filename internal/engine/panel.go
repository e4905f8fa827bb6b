package engine

import "github.com/boardbuyer/boardbuyer/internal/model"

// panel tracks the free space of one board during a packing trial.
// It starts with a single free rectangle spanning the whole board and
// splits the used rectangle on every successful placement. Panels are
// scoped to one trial and discarded afterwards; nothing outside the
// packer ever holds a reference to the free list.
type panel struct {
	board model.BoardType
	free  []rect
	prune bool
}

func newPanel(b model.BoardType, prune bool) *panel {
	return &panel{
		board: b,
		free:  []rect{{0, 0, b.Width, b.Height}},
		prune: prune,
	}
}

// placed describes a successful placement within a panel.
type placed struct {
	x, y, w, h int
	rotated    bool
}

// tryPlace places a w x h piece into the first free rectangle that fits,
// scanning the free list in insertion order. The declared orientation is
// tried across the whole list before the rotated one, so a piece keeps
// its declared orientation whenever either fits. The piece lands at the
// chosen rectangle's lower-left corner. On failure the free list is
// unchanged.
func (p *panel) tryPlace(w, h int, allowRotate bool) (placed, bool) {
	orientations := [2][2]int{{w, h}, {h, w}}
	n := 1
	if allowRotate && w != h {
		n = 2
	}
	for o := 0; o < n; o++ {
		pw, ph := orientations[o][0], orientations[o][1]
		for i, r := range p.free {
			if !r.contains(pw, ph) {
				continue
			}
			p.split(i, pw, ph)
			return placed{x: r.x, y: r.y, w: pw, h: ph, rotated: o == 1}, true
		}
	}
	return placed{}, false
}

// split removes free rectangle i and appends up to two residuals: the
// strip right of the placed piece (piece height only) and the strip above
// it (full rectangle width). Residuals are appended as-is; there is no
// merging or reconciliation with other free rectangles.
func (p *panel) split(i, pw, ph int) {
	r := p.free[i]
	p.free = append(p.free[:i], p.free[i+1:]...)
	if r.w > pw {
		p.free = append(p.free, rect{x: r.x + pw, y: r.y, w: r.w - pw, h: ph})
	}
	if r.h > ph {
		p.free = append(p.free, rect{x: r.x, y: r.y + ph, w: r.w, h: r.h - ph})
	}
	if p.prune {
		p.free = pruneContained(p.free)
	}
}

// pruneContained removes any free rectangle fully contained within
// another. Only active under Settings.ExperimentalPrune.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && b.containsRect(a) && (b != a || j < i) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}
