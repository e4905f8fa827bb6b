// Package export renders cutting plans to distributable file formats:
// PDF layout sheets, PNG raster previews, DXF line drawings, QR-coded
// part labels and Excel workbooks.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/boardbuyer/boardbuyer/internal/model"
	"github.com/boardbuyer/boardbuyer/internal/shopping"
)

// pieceColor represents an RGB color for a placed piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors is the shared palette for placed pieces across all renderers.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// PDF generates a PDF document for the plan. Each committed board is
// rendered on its own page at the board type's full dimensions, followed
// by a summary page with the shopping list and overall statistics.
func PDF(path string, plan model.Plan) error {
	if len(plan.Boards) == 0 {
		return fmt.Errorf("no boards to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, cb := range plan.Boards {
		pdf.AddPage()
		renderBoardPage(pdf, cb)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan)

	return pdf.OutputFileAndClose(path)
}

// renderBoardPage draws one committed board on the current PDF page.
func renderBoardPage(pdf *fpdf.Fpdf, cb model.CommittedBoard) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Board %d: %dx%d mm (cost %.2f)", cb.Index, cb.Board.Width, cb.Board.Height, cb.Board.Cost)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Used area: %d mm2 | Board area: %d mm2 | Efficiency: %.1f%%",
		len(cb.Placements), cb.UsedArea(), cb.TotalArea(), cb.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scaleX := drawWidth / float64(cb.Board.Width)
	scaleY := drawHeight / float64(cb.Board.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(cb.Board.Width) * scale
	canvasH := float64(cb.Board.Height) * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Board background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range cb.Placements {
		col := pieceColors[i%len(pieceColors)]
		pw := float64(p.Width) * scale
		ph := float64(p.Height) * scale
		px := offsetX + float64(p.X)*scale
		// Placement Y is measured from the board's bottom edge; PDF Y grows downward.
		py := offsetY + canvasH - (float64(p.Y)+float64(p.Height))*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			dims := fmt.Sprintf("%dx%d", p.Width, p.Height)
			if p.Rotated {
				dims += " (R)"
			}

			if label := p.Label; label != "" {
				labelW := pdf.GetStringWidth(label)
				if labelW < pw-2 {
					pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
					pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
				}
			}

			dimsW := pdf.GetStringWidth(dims)
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, cb.Board, offsetX, offsetY, canvasW, canvasH)
	drawPieceLegend(pdf, cb, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the board rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, board model.BoardType, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d mm", board.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d mm", board.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPieceLegend renders a compact legend of placed pieces below the board.
func drawPieceLegend(pdf *fpdf.Fpdf, cb model.CommittedBoard, startY float64) {
	if len(cb.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range cb.Placements {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%dx%d", p.Width, p.Height)
		if p.Label != "" {
			label = fmt.Sprintf("%s (%dx%d)", p.Label, p.Width, p.Height)
		}
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with the shopping list and
// overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Purchase Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Boards Purchased", fmt.Sprintf("%d", len(plan.Boards))},
		{"Total Cost", fmt.Sprintf("%.2f", plan.TotalCost())},
		{"Pieces Placed", fmt.Sprintf("%d", plan.PieceCount())},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", plan.TotalEfficiency())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Shopping List", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 55, 35, 35}
	headers := []string{"Count", "Board Size", "Unit Cost", "Subtotal"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	items := shopping.Aggregate(plan)
	pdf.SetFont("Helvetica", "", 9)
	for i, li := range items {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", li.Count),
			fmt.Sprintf("%dx%d mm", li.Width, li.Height),
			fmt.Sprintf("%.2f", li.UnitCost),
			fmt.Sprintf("%.2f", li.Subtotal()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Total row
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2], 6, "Total", "1", 0, "R", true, 0, "")
	pdf.SetXY(marginLeft+colWidths[0]+colWidths[1]+colWidths[2], y)
	pdf.CellFormat(colWidths[3], 6, fmt.Sprintf("%.2f", shopping.TotalCost(items)), "1", 0, "C", true, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoardBuyer - Cutting Stock Purchase Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a piece rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
