// Package engine implements the two-level cutting-stock purchase
// heuristic: a per-board free-rectangle packer and a greedy outer loop
// that buys the board type with the lowest cost per packed area until
// every required piece is placed.
package engine

import (
	"fmt"
	"sort"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// Optimizer drives the greedy board purchase loop.
type Optimizer struct {
	Settings model.Settings

	// Progress, when non-nil, receives a tick after each committed board.
	Progress Progress
}

func New(settings model.Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize expands the required pieces, then repeatedly trial-packs the
// remaining list onto every catalogue entry and commits the board with
// the lowest cost per packed area, until nothing remains. The result is
// deterministic for equal inputs: expansion order, the stable area-desc
// sort, first-fit panel scanning, and catalogue-order tie-breaks leave
// no unspecified choices.
//
// An empty piece list returns an empty plan and no error. Invalid input
// and infeasible piece sets return an error and no partial plan.
func (o *Optimizer) Optimize(pieces []model.Piece, catalogue []model.BoardType) (model.Plan, error) {
	if err := validate(pieces, catalogue); err != nil {
		return model.Plan{}, err
	}

	remaining := expand(pieces)
	if len(remaining) == 0 {
		return model.Plan{}, nil
	}

	var plan model.Plan
	for len(remaining) > 0 {
		bestIdx := -1
		var best trial
		var bestRatio float64

		for i, b := range catalogue {
			tr := simulate(b, remaining, o.Settings)
			if tr.packedArea == 0 {
				continue
			}
			// Price per square mm of demand this board absorbs. Strict
			// less-than keeps the earliest catalogue entry on ties.
			ratio := b.Cost / float64(tr.packedArea)
			if bestIdx < 0 || ratio < bestRatio {
				bestIdx = i
				best = tr
				bestRatio = ratio
			}
		}

		if bestIdx < 0 {
			return model.Plan{}, o.infeasible(remaining, catalogue)
		}

		board := catalogue[bestIdx]
		index := len(plan.Boards) + 1
		for i := range best.placements {
			best.placements[i].BoardIndex = index
		}
		plan.Boards = append(plan.Boards, model.CommittedBoard{
			Board:      board,
			Index:      index,
			Placements: best.placements,
		})
		remaining = best.unplaced

		if o.Progress != nil {
			o.Progress.RoundComplete(board, len(best.placements), len(remaining))
		}
	}

	return plan, nil
}

// expand turns (w, h, quantity) entries into individual pieces and sorts
// them by area descending. The sort is stable so equal-area pieces keep
// their declaration order.
func expand(pieces []model.Piece) []model.Piece {
	var expanded []model.Piece
	for _, p := range pieces {
		for i := 0; i < p.Quantity; i++ {
			cp := p
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Area() > expanded[j].Area()
	})
	return expanded
}

// validate rejects malformed input before any packing work starts.
func validate(pieces []model.Piece, catalogue []model.BoardType) error {
	for _, p := range pieces {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("piece %q: dimensions must be positive, got %dx%d", p.Label, p.Width, p.Height)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("piece %q: quantity must be positive, got %d", p.Label, p.Quantity)
		}
	}
	for _, b := range catalogue {
		if b.Width <= 0 || b.Height <= 0 {
			return fmt.Errorf("board %q: dimensions must be positive, got %dx%d", b.Label, b.Width, b.Height)
		}
		if b.Cost < 0 {
			return fmt.Errorf("board %q: cost must not be negative, got %g", b.Label, b.Cost)
		}
	}
	if len(pieces) > 0 && len(catalogue) == 0 {
		return fmt.Errorf("board catalogue is empty")
	}
	return nil
}

// InfeasibleError reports a required piece that cannot fit on any
// catalogue board in any allowed orientation.
type InfeasibleError struct {
	Piece        model.Piece
	LargestBoard model.BoardType
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("piece %dx%d mm does not fit on any available board type (largest is %dx%d mm)",
		e.Piece.Width, e.Piece.Height, e.LargestBoard.Width, e.LargestBoard.Height)
}

// infeasible builds the error for a round in which no board type packed
// a single piece. That only happens when some remaining piece exceeds
// every board in both orientations; the first such piece is reported
// together with the largest catalogue board.
func (o *Optimizer) infeasible(remaining []model.Piece, catalogue []model.BoardType) error {
	offending := remaining[0]
	for _, p := range remaining {
		if !o.fitsAnyBoard(p, catalogue) {
			offending = p
			break
		}
	}

	largest := catalogue[0]
	for _, b := range catalogue[1:] {
		if b.Area() > largest.Area() {
			largest = b
		}
	}

	return &InfeasibleError{Piece: offending, LargestBoard: largest}
}

func (o *Optimizer) fitsAnyBoard(p model.Piece, catalogue []model.BoardType) bool {
	for _, b := range catalogue {
		if p.Width <= b.Width && p.Height <= b.Height {
			return true
		}
		if o.Settings.AllowRotation && p.Height <= b.Width && p.Width <= b.Height {
			return true
		}
	}
	return false
}
