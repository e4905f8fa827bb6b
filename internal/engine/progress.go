package engine

import "github.com/boardbuyer/boardbuyer/internal/model"

// Progress receives round-level events from the optimizer. Sinks are
// purely observational: they must not mutate the optimizer or its inputs.
type Progress interface {
	// RoundComplete fires after a board is committed, with the number of
	// pieces placed on it and the number still waiting.
	RoundComplete(board model.BoardType, placed, remaining int)
}

// ProgressFunc adapts a plain function to the Progress interface.
type ProgressFunc func(board model.BoardType, placed, remaining int)

func (f ProgressFunc) RoundComplete(board model.BoardType, placed, remaining int) {
	f(board, placed, remaining)
}
