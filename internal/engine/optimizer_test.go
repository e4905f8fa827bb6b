package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

func defaultTestSettings() model.Settings {
	return model.DefaultSettings()
}

func piece(w, h, qty int) model.Piece {
	return model.NewPiece("", w, h, qty)
}

func board(w, h int, cost float64) model.BoardType {
	return model.NewBoardType("", w, h, cost)
}

// checkInvariants verifies the structural guarantees every plan must
// satisfy: placements inside board bounds, disjoint interiors, piece
// conservation under rotation, and cost consistency.
func checkInvariants(t *testing.T, plan model.Plan, pieces []model.Piece) {
	t.Helper()

	solution := plan.BoardSolution()
	for _, p := range plan.CuttingPlan() {
		require.GreaterOrEqual(t, p.BoardIndex, 1)
		require.LessOrEqual(t, p.BoardIndex, len(solution))
		b := solution[p.BoardIndex-1]
		assert.GreaterOrEqual(t, p.X, 0)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.LessOrEqual(t, p.X+p.Width, b.Width)
		assert.LessOrEqual(t, p.Y+p.Height, b.Height)
	}

	for _, cb := range plan.Boards {
		for i := 0; i < len(cb.Placements); i++ {
			for j := i + 1; j < len(cb.Placements); j++ {
				a, b := cb.Placements[i], cb.Placements[j]
				ra := rect{a.X, a.Y, a.Width, a.Height}
				rb := rect{b.X, b.Y, b.Width, b.Height}
				assert.False(t, ra.overlaps(rb), "placements %v and %v overlap on board %d", a, b, cb.Index)
			}
		}
	}

	// Piece conservation: the multiset of (short side, long side) pairs
	// in the plan must equal the expanded input.
	want := map[[2]int]int{}
	total := 0
	for _, p := range pieces {
		k := [2]int{min(p.Width, p.Height), max(p.Width, p.Height)}
		want[k] += p.Quantity
		total += p.Quantity
	}
	got := map[[2]int]int{}
	for _, p := range plan.CuttingPlan() {
		k := [2]int{min(p.Width, p.Height), max(p.Width, p.Height)}
		got[k]++
	}
	assert.Equal(t, want, got, "piece multiset not conserved")
	assert.Equal(t, total, plan.PieceCount())

	var cost float64
	for _, b := range solution {
		cost += b.Cost
	}
	assert.Equal(t, cost, plan.TotalCost())
}

func TestOptimize_LargeSheetsAbsorbEverything(t *testing.T) {
	pieces := []model.Piece{
		piece(1000, 400, 5),
		piece(1700, 400, 2),
		piece(1700, 1000, 1),
		piece(1700, 500, 1),
	}
	catalogue := []model.BoardType{
		board(2440, 1220, 45),
		board(600, 300, 5),
		board(800, 400, 9),
		board(1200, 600, 14),
	}

	opt := New(defaultTestSettings())
	plan, err := opt.Optimize(pieces, catalogue)
	require.NoError(t, err)

	// The full sheet wins every round on cost per packed area.
	require.Len(t, plan.Boards, 3)
	for _, cb := range plan.Boards {
		assert.Equal(t, 2440, cb.Board.Width)
		assert.Equal(t, 1220, cb.Board.Height)
	}
	assert.InDelta(t, 135.0, plan.TotalCost(), 1e-9)

	checkInvariants(t, plan, pieces)
}

func TestOptimize_CheaperBoardWinsAtEqualPackedArea(t *testing.T) {
	pieces := []model.Piece{piece(600, 300, 1)}
	catalogue := []model.BoardType{
		board(600, 300, 5),
		board(2440, 1220, 45),
	}

	opt := New(defaultTestSettings())
	plan, err := opt.Optimize(pieces, catalogue)
	require.NoError(t, err)

	require.Len(t, plan.Boards, 1)
	assert.Equal(t, 600, plan.Boards[0].Board.Width)
	assert.InDelta(t, 5.0, plan.TotalCost(), 1e-9)

	require.Len(t, plan.Boards[0].Placements, 1)
	p := plan.Boards[0].Placements[0]
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 600, p.Width)
	assert.Equal(t, 300, p.Height)
	assert.Equal(t, 1, p.BoardIndex)
	assert.False(t, p.Rotated)
}

func TestOptimize_RotationMakesPieceFit(t *testing.T) {
	pieces := []model.Piece{piece(400, 800, 1)}
	catalogue := []model.BoardType{board(800, 400, 9)}

	opt := New(defaultTestSettings())
	plan, err := opt.Optimize(pieces, catalogue)
	require.NoError(t, err)

	require.Len(t, plan.Boards, 1)
	require.Len(t, plan.Boards[0].Placements, 1)
	p := plan.Boards[0].Placements[0]
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 800, p.Width)
	assert.Equal(t, 400, p.Height)
	assert.True(t, p.Rotated)
}

func TestOptimize_RotationDisabledMakesPieceInfeasible(t *testing.T) {
	pieces := []model.Piece{piece(400, 800, 1)}
	catalogue := []model.BoardType{board(800, 400, 9)}

	settings := defaultTestSettings()
	settings.AllowRotation = false

	_, err := New(settings).Optimize(pieces, catalogue)
	require.Error(t, err)

	var infeasible *InfeasibleError
	require.ErrorAs(t, err, &infeasible)
	assert.Equal(t, 400, infeasible.Piece.Width)
	assert.Equal(t, 800, infeasible.Piece.Height)
	assert.Equal(t, 800, infeasible.LargestBoard.Width)
	assert.Equal(t, 400, infeasible.LargestBoard.Height)
}

func TestOptimize_OneBigBoardBeatsManySmall(t *testing.T) {
	pieces := []model.Piece{piece(100, 100, 4)}
	catalogue := []model.BoardType{
		board(200, 200, 4),
		board(100, 100, 3),
	}

	plan, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)

	require.Len(t, plan.Boards, 1)
	assert.Equal(t, 200, plan.Boards[0].Board.Width)
	assert.Len(t, plan.Boards[0].Placements, 4)
	assert.InDelta(t, 4.0, plan.TotalCost(), 1e-9)
	checkInvariants(t, plan, pieces)
}

func TestOptimize_SmallBoardPicksUpLeftoverPiece(t *testing.T) {
	pieces := []model.Piece{
		piece(1000, 1000, 1),
		piece(10, 10, 1),
	}
	catalogue := []model.BoardType{
		board(1000, 1000, 10),
		board(20, 20, 1),
	}

	plan, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)

	// Round one: the big board absorbs the big piece at ratio 10/1e6 and
	// fills completely. Round two: the 20x20 board wins the 10x10 piece
	// at ratio 1/100 against the big board's 10/100.
	require.Len(t, plan.Boards, 2)
	assert.Equal(t, 1000, plan.Boards[0].Board.Width)
	assert.Equal(t, 20, plan.Boards[1].Board.Width)
	assert.InDelta(t, 11.0, plan.TotalCost(), 1e-9)
	checkInvariants(t, plan, pieces)
}

func TestOptimize_Deterministic(t *testing.T) {
	pieces := []model.Piece{
		piece(1000, 400, 5),
		piece(1700, 400, 2),
		piece(1700, 1000, 1),
		piece(1700, 500, 1),
	}
	catalogue := []model.BoardType{
		board(2440, 1220, 45),
		board(600, 300, 5),
		board(800, 400, 9),
		board(1200, 600, 14),
	}

	first, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)
	second, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestOptimize_EmptyRequest(t *testing.T) {
	plan, err := New(defaultTestSettings()).Optimize(nil, []model.BoardType{board(100, 100, 1)})
	require.NoError(t, err)
	assert.Empty(t, plan.Boards)
	assert.Zero(t, plan.TotalCost())

	// An empty catalogue is fine as long as there is nothing to place.
	plan, err = New(defaultTestSettings()).Optimize(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Boards)
}

func TestOptimize_InvalidInput(t *testing.T) {
	catalogue := []model.BoardType{board(100, 100, 1)}

	_, err := New(defaultTestSettings()).Optimize([]model.Piece{piece(0, 10, 1)}, catalogue)
	assert.Error(t, err)

	_, err = New(defaultTestSettings()).Optimize([]model.Piece{piece(10, -5, 1)}, catalogue)
	assert.Error(t, err)

	_, err = New(defaultTestSettings()).Optimize([]model.Piece{piece(10, 10, 0)}, catalogue)
	assert.Error(t, err)

	_, err = New(defaultTestSettings()).Optimize([]model.Piece{piece(10, 10, 1)}, []model.BoardType{board(100, 100, -1)})
	assert.Error(t, err)

	_, err = New(defaultTestSettings()).Optimize([]model.Piece{piece(10, 10, 1)}, nil)
	assert.Error(t, err)
}

func TestOptimize_TieBreakByCatalogueOrder(t *testing.T) {
	// Two identical boards at the same price: the first catalogue entry
	// must win the ratio tie.
	pieces := []model.Piece{piece(50, 50, 1)}
	first := board(100, 100, 2)
	second := board(100, 100, 2)
	catalogue := []model.BoardType{first, second}

	plan, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)
	require.Len(t, plan.Boards, 1)
	assert.Equal(t, first.ID, plan.Boards[0].Board.ID)
}

func TestOptimize_DemandMonotonicity(t *testing.T) {
	catalogue := []model.BoardType{
		board(2440, 1220, 45),
		board(1200, 600, 14),
	}
	pieces := []model.Piece{
		piece(900, 500, 3),
		piece(700, 300, 4),
	}
	doubled := []model.Piece{
		piece(900, 500, 6),
		piece(700, 300, 8),
	}

	base, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)
	more, err := New(defaultTestSettings()).Optimize(doubled, catalogue)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, more.TotalCost(), base.TotalCost())
	checkInvariants(t, base, pieces)
	checkInvariants(t, more, doubled)
}

func TestOptimize_RotationNeverCostsMore(t *testing.T) {
	catalogue := []model.BoardType{
		board(2440, 1220, 45),
		board(1200, 600, 14),
	}
	pieces := []model.Piece{
		piece(500, 1100, 4),
		piece(600, 550, 3),
	}

	withRotation, err := New(defaultTestSettings()).Optimize(pieces, catalogue)
	require.NoError(t, err)

	settings := defaultTestSettings()
	settings.AllowRotation = false
	withoutRotation, err := New(settings).Optimize(pieces, catalogue)
	require.NoError(t, err)

	assert.LessOrEqual(t, withRotation.TotalCost(), withoutRotation.TotalCost())
}

func TestOptimize_ProgressTicksPerCommittedBoard(t *testing.T) {
	pieces := []model.Piece{
		piece(1000, 1000, 1),
		piece(10, 10, 1),
	}
	catalogue := []model.BoardType{
		board(1000, 1000, 10),
		board(20, 20, 1),
	}

	var ticks int
	var lastRemaining int
	opt := New(defaultTestSettings())
	opt.Progress = ProgressFunc(func(_ model.BoardType, _, remaining int) {
		ticks++
		lastRemaining = remaining
	})

	plan, err := opt.Optimize(pieces, catalogue)
	require.NoError(t, err)
	assert.Equal(t, len(plan.Boards), ticks)
	assert.Zero(t, lastRemaining)
}

func TestCompareScenarios(t *testing.T) {
	pieces := []model.Piece{piece(400, 800, 2)}
	catalogue := []model.BoardType{board(800, 400, 9)}

	results := CompareScenarios(DefaultScenarios(model.DefaultSettings()), pieces, catalogue)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, 2, results[0].BoardsUsed)
	assert.InDelta(t, 18.0, results[0].TotalCost, 1e-9)
	assert.InDelta(t, 0.0, results[0].WastePercent, 1e-9)

	// The no-rotation scenario cannot place the pieces at all.
	assert.Error(t, results[1].Err)

	assert.NoError(t, results[2].Err)
}
