package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	PieceLabel string `json:"label"`
	Width      int    `json:"width_mm"`
	Height     int    `json:"height_mm"`
	BoardIndex int    `json:"board"`
	Rotated    bool   `json:"rotated"`
	X          int    `json:"x_mm"`
	Y          int    `json:"y_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// Labels generates a PDF of QR-coded labels for all placed pieces. Each
// label carries the piece name, as-cut dimensions, and a QR code with the
// placement metadata as JSON, laid out on a standard label sheet format.
func Labels(path string, plan model.Plan) error {
	var labels []LabelInfo
	for _, cb := range plan.Boards {
		for _, p := range cb.Placements {
			labels = append(labels, LabelInfo{
				PieceLabel: p.Label,
				Width:      p.Width,
				Height:     p.Height,
				BoardIndex: cb.Index,
				Rotated:    p.Rotated,
				X:          p.X,
				Y:          p.Y,
			})
		}
	}

	if len(labels) == 0 {
		return fmt.Errorf("no pieces placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PieceLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text block on the left side
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	name := info.PieceLabel
	if name == "" {
		name = fmt.Sprintf("Piece %d", seq+1)
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(textX, y+labelPadding+1)
	pdf.CellFormat(textW, 4, name, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(textX, y+labelPadding+6)
	dims := fmt.Sprintf("%d x %d mm", info.Width, info.Height)
	if info.Rotated {
		dims += " (R)"
	}
	pdf.CellFormat(textW, 4, dims, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+11)
	loc := fmt.Sprintf("Board %d @ (%d, %d)", info.BoardIndex, info.X, info.Y)
	pdf.CellFormat(textW, 4, loc, "", 0, "L", false, 0, "")

	return nil
}
