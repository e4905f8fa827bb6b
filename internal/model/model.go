package model

import "github.com/google/uuid"

// Piece represents a required rectangular cut. Dimensions are integer
// millimetres; orientation is decided at placement time, not here.
type Piece struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`  // mm
	Height   int    `json:"height"` // mm
	Quantity int    `json:"quantity"`
}

// NewPiece creates a new Piece with a generated ID.
func NewPiece(label string, w, h, qty int) Piece {
	return Piece{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Area returns the piece area in square mm.
func (p Piece) Area() int64 {
	return int64(p.Width) * int64(p.Height)
}

// BoardType represents a purchasable board size from the catalogue.
// Supply is assumed unlimited; the same dimensions may appear more than
// once at different prices and each entry is treated independently.
type BoardType struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Width  int     `json:"width"`  // mm
	Height int     `json:"height"` // mm
	Cost   float64 `json:"cost"`   // price per board
}

// NewBoardType creates a new BoardType with a generated ID.
func NewBoardType(label string, w, h int, cost float64) BoardType {
	return BoardType{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
		Cost:   cost,
	}
}

// Area returns the board area in square mm.
func (b BoardType) Area() int64 {
	return int64(b.Width) * int64(b.Height)
}

// Settings holds optimizer configuration.
type Settings struct {
	// AllowRotation permits placing pieces with width and height swapped.
	AllowRotation bool `json:"allow_rotation"`

	// ExperimentalPrune drops free rectangles that are fully contained in
	// another after each split. Off by default: the stock splitting rule
	// keeps overlapping residuals, and pruning changes which placements
	// succeed downstream.
	ExperimentalPrune bool `json:"experimental_prune"`
}

func DefaultSettings() Settings {
	return Settings{
		AllowRotation:     true,
		ExperimentalPrune: false,
	}
}

// Placement is a single piece cut from a committed board. Width and
// Height are the as-cut dimensions, i.e. already swapped when Rotated.
type Placement struct {
	PieceID    string `json:"piece_id"`
	Label      string `json:"label,omitempty"`
	X          int    `json:"x"` // mm from board's left edge
	Y          int    `json:"y"` // mm from board's bottom edge
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BoardIndex int    `json:"board_index"` // 1-based index in commit order
	Rotated    bool   `json:"rotated"`
}

// Area returns the placement area in square mm.
func (p Placement) Area() int64 {
	return int64(p.Width) * int64(p.Height)
}

// CommittedBoard is one purchased board together with everything cut
// from it. Immutable once the optimizer has committed it.
type CommittedBoard struct {
	Board      BoardType   `json:"board"`
	Index      int         `json:"index"` // 1-based, matches Placement.BoardIndex
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total area of placed pieces in square mm.
func (cb CommittedBoard) UsedArea() int64 {
	var total int64
	for _, p := range cb.Placements {
		total += p.Area()
	}
	return total
}

// TotalArea returns the board area in square mm.
func (cb CommittedBoard) TotalArea() int64 {
	return cb.Board.Area()
}

// Efficiency returns the usage percentage.
func (cb CommittedBoard) Efficiency() float64 {
	ta := cb.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(cb.UsedArea()) / float64(ta) * 100.0
}

// Plan is the full purchase and cutting solution.
type Plan struct {
	Boards []CommittedBoard `json:"boards"`
}

// TotalCost returns the summed cost of all committed boards.
func (pl Plan) TotalCost() float64 {
	var total float64
	for _, cb := range pl.Boards {
		total += cb.Board.Cost
	}
	return total
}

// CuttingPlan returns all placements flattened, ordered by board commit
// order and then by placement order within a board.
func (pl Plan) CuttingPlan() []Placement {
	var out []Placement
	for _, cb := range pl.Boards {
		out = append(out, cb.Placements...)
	}
	return out
}

// BoardSolution returns one BoardType per committed board, indexed
// consistently with Placement.BoardIndex (1-based).
func (pl Plan) BoardSolution() []BoardType {
	out := make([]BoardType, 0, len(pl.Boards))
	for _, cb := range pl.Boards {
		out = append(out, cb.Board)
	}
	return out
}

// PieceCount returns the number of placed pieces across all boards.
func (pl Plan) PieceCount() int {
	total := 0
	for _, cb := range pl.Boards {
		total += len(cb.Placements)
	}
	return total
}

// TotalEfficiency returns overall material usage percentage.
func (pl Plan) TotalEfficiency() float64 {
	var used, total int64
	for _, cb := range pl.Boards {
		used += cb.UsedArea()
		total += cb.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// Project ties everything together for save/load.
type Project struct {
	Name      string      `json:"name"`
	Pieces    []Piece     `json:"pieces"`
	Catalogue []BoardType `json:"catalogue"`
	Settings  Settings    `json:"settings"`
	Plan      *Plan       `json:"plan,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Pieces:    []Piece{},
		Catalogue: []BoardType{},
		Settings:  DefaultSettings(),
	}
}
