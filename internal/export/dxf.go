package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// dxfBoardGap is the spacing in mm between boards laid side by side in
// the exported drawing.
const dxfBoardGap = 100.0

// DXF writes the cutting plan as a DXF line drawing. Boards are laid out
// left to right in commit order with their outlines on the BOARDS layer
// and the placed pieces on the PIECES layer, all in millimetre units so
// the file can feed a CAD or CNC toolchain directly.
func DXF(path string, plan model.Plan) error {
	if len(plan.Boards) == 0 {
		return fmt.Errorf("no boards to export")
	}

	d := dxf.NewDrawing()

	d.AddLayer("BOARDS", dxf.DefaultColor, dxf.DefaultLineType, true)
	offsetX := 0.0
	for _, cb := range plan.Boards {
		drawRect(d, offsetX, 0, float64(cb.Board.Width), float64(cb.Board.Height))
		offsetX += float64(cb.Board.Width) + dxfBoardGap
	}

	d.AddLayer("PIECES", dxfcolor.Red, dxf.DefaultLineType, true)
	offsetX = 0.0
	for _, cb := range plan.Boards {
		for _, p := range cb.Placements {
			drawRect(d, offsetX+float64(p.X), float64(p.Y), float64(p.Width), float64(p.Height))
		}
		offsetX += float64(cb.Board.Width) + dxfBoardGap
	}

	return d.SaveAs(path)
}

// drawRect adds the four edges of a rectangle as LINE entities.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
