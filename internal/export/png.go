package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// pngScale maps board millimetres to pixels. A 2440mm sheet comes out
// around 1220px wide, which keeps files small but labels legible.
const pngScale = 0.5

var pngPalette = []color.NRGBA{
	{76, 175, 80, 255},  // green
	{33, 150, 243, 255}, // blue
	{255, 152, 0, 255},  // orange
	{156, 39, 176, 255}, // purple
	{0, 188, 212, 255},  // cyan
	{244, 67, 54, 255},  // red
	{255, 235, 59, 255}, // yellow
	{121, 85, 72, 255},  // brown
}

var (
	pngBoardFill = color.NRGBA{210, 180, 140, 255}
	pngEdge      = color.NRGBA{30, 30, 30, 255}
)

// RenderBoard rasterizes one committed board: the full board as a filled
// background with each placement drawn as a filled, outlined rectangle.
// The image Y axis points down, so placements measured from the board's
// bottom edge are flipped vertically.
func RenderBoard(cb model.CommittedBoard) *image.NRGBA {
	w := scalePx(cb.Board.Width)
	h := scalePx(cb.Board.Height)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(pngBoardFill), image.Point{}, draw.Src)

	for i, p := range cb.Placements {
		x0 := scalePx(p.X)
		x1 := scalePx(p.X + p.Width)
		y1 := h - scalePx(p.Y)
		y0 := h - scalePx(p.Y+p.Height)

		r := image.Rect(x0, y0, x1, y1)
		draw.Draw(img, r, image.NewUniform(pngPalette[i%len(pngPalette)]), image.Point{}, draw.Src)
		strokeRect(img, r, pngEdge)
	}

	strokeRect(img, img.Bounds(), pngEdge)
	return img
}

// PNGs writes one PNG per committed board into dir, named board-01.png,
// board-02.png and so on in commit order.
func PNGs(dir string, plan model.Plan) error {
	if len(plan.Boards) == 0 {
		return fmt.Errorf("no boards to export")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, cb := range plan.Boards {
		img := RenderBoard(cb)
		path := filepath.Join(dir, fmt.Sprintf("board-%02d.png", cb.Index))
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
	}
	return nil
}

func scalePx(mm int) int {
	px := int(float64(mm) * pngScale)
	if px < 1 && mm > 0 {
		px = 1
	}
	return px
}

// strokeRect draws a 1px outline just inside r.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}
