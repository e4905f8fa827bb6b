package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over on a committed
// board after cutting. Offcuts are a reporting aid only; they are computed
// from the final placements and never feed back into the optimizer.
type Offcut struct {
	ID         string `json:"id"`
	BoardIndex int    `json:"board_index"` // Which committed board it came from
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() int64 {
	return int64(o.Width) * int64(o.Height)
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50

// DetectOffcuts analyzes a committed board and identifies rectangular
// remnant areas large enough to be reused. It subtracts every placement
// from the board rectangle, discards regions contained in a larger one,
// and returns the rest sorted by area descending.
func DetectOffcuts(cb CommittedBoard) []Offcut {
	free := []zone{{0, 0, cb.Board.Width, cb.Board.Height}}
	for _, p := range cb.Placements {
		cut := zone{p.X, p.Y, p.Width, p.Height}
		var next []zone
		for _, f := range free {
			next = append(next, subtractZone(f, cut)...)
		}
		free = next
	}

	free = pruneContainedZones(free)

	var offcuts []Offcut
	for _, f := range free {
		if f.w < MinOffcutDimension || f.h < MinOffcutDimension {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			BoardIndex: cb.Index,
			X:          f.x,
			Y:          f.y,
			Width:      f.w,
			Height:     f.h,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// zone is a rectangle used during offcut detection.
type zone struct {
	x, y, w, h int
}

// subtractZone subtracts sub from base, returning up to four rectangles
// covering the remainder. The results overlap where strips cross; the
// containment prune afterwards keeps only the maximal ones.
func subtractZone(base, sub zone) []zone {
	if base.x >= sub.x+sub.w || base.x+base.w <= sub.x ||
		base.y >= sub.y+sub.h || base.y+base.h <= sub.y {
		return []zone{base}
	}

	var result []zone
	// Left strip
	if sub.x > base.x {
		result = append(result, zone{base.x, base.y, sub.x - base.x, base.h})
	}
	// Right strip
	if sub.x+sub.w < base.x+base.w {
		result = append(result, zone{sub.x + sub.w, base.y, base.x + base.w - (sub.x + sub.w), base.h})
	}
	// Bottom strip
	if sub.y > base.y {
		result = append(result, zone{base.x, base.y, base.w, sub.y - base.y})
	}
	// Top strip
	if sub.y+sub.h < base.y+base.h {
		result = append(result, zone{base.x, sub.y + sub.h, base.w, base.y + base.h - (sub.y + sub.h)})
	}
	return result
}

// pruneContainedZones removes any zone fully contained within another.
func pruneContainedZones(zones []zone) []zone {
	if len(zones) <= 1 {
		return zones
	}
	kept := make([]zone, 0, len(zones))
	for i, a := range zones {
		contained := false
		for j, b := range zones {
			if i == j {
				continue
			}
			if b.x <= a.x && b.y <= a.y &&
				b.x+b.w >= a.x+a.w && b.y+b.h >= a.y+a.h {
				// Identical zones keep only the first occurrence.
				if b == a && j > i {
					continue
				}
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
