package engine

import "github.com/boardbuyer/boardbuyer/internal/model"

// trial is the outcome of packing a remaining piece list onto a fresh
// panel of one board type. BoardIndex on the placements is left unset
// until the optimizer commits the trial.
type trial struct {
	placements []model.Placement
	packedArea int64
	unplaced   []model.Piece
}

// simulate iterates pieces in the given order, first-fit placing each one
// onto a fresh panel for b. Pieces that do not fit are collected in their
// original relative order. Identical inputs produce identical trials.
func simulate(b model.BoardType, pieces []model.Piece, s model.Settings) trial {
	p := newPanel(b, s.ExperimentalPrune)
	var tr trial
	for _, pc := range pieces {
		pl, ok := p.tryPlace(pc.Width, pc.Height, s.AllowRotation)
		if !ok {
			tr.unplaced = append(tr.unplaced, pc)
			continue
		}
		tr.placements = append(tr.placements, model.Placement{
			PieceID: pc.ID,
			Label:   pc.Label,
			X:       pl.x,
			Y:       pl.y,
			Width:   pl.w,
			Height:  pl.h,
			Rotated: pl.rotated,
		})
		tr.packedArea += pc.Area()
	}
	return tr
}
