// Package importer provides CSV and Excel import for piece lists and
// board catalogues. It supports automatic delimiter detection, flexible
// column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/boardbuyer/boardbuyer/internal/model"
)

// PieceResult holds the results of a piece-list import.
type PieceResult struct {
	Pieces   []model.Piece
	Errors   []string
	Warnings []string
}

// BoardResult holds the results of a board-catalogue import.
type BoardResult struct {
	Boards   []model.BoardType
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Cost is only meaningful for board catalogues, Quantity only for pieces.
type ColumnMapping struct {
	Label    int
	Width    int
	Height   int
	Quantity int
	Cost     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "part name", "description", "desc", "piece", "item", "board"},
	"width":    {"width", "w", "length", "len", "x"},
	"height":   {"height", "h", "depth", "d", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"cost":     {"cost", "price", "unit cost", "unit price", "eur", "usd"},
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// producing the most consistent multi-column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping, doing
// case-insensitive matching against the known aliases for each role.
// Returns the mapping and true if a header was detected, or a positional
// default (label, width, height, quantity/cost) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Height: -1, Quantity: -1, Cost: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					if mapping.Label == -1 {
						mapping.Label = i
					}
				case "width":
					if mapping.Width == -1 {
						mapping.Width = i
					}
				case "height":
					if mapping.Height == -1 {
						mapping.Height = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "cost":
					if mapping.Cost == -1 {
						mapping.Cost = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Height: 2, Quantity: 3, Cost: 3}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDimension parses a millimetre dimension cell. Fractional values
// are rounded to the nearest integer with a warning.
func parseDimension(s string) (int, string, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, "", nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", err
	}
	rounded := int(math.Round(f))
	if f != float64(rounded) {
		return rounded, fmt.Sprintf("rounded %s to %d mm", s, rounded), nil
	}
	return rounded, "", nil
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parsePieceRow extracts a Piece from a row using the given column mapping.
// Returns the piece, any error message, and any warnings.
func parsePieceRow(row []string, mapping ColumnMapping, rowLabel string, pieceCount int) (model.Piece, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Piece %d", pieceCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Piece{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, warn, err := parseDimension(widthStr)
	if err != nil {
		return model.Piece{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}
	if warn != "" {
		warnings = append(warnings, fmt.Sprintf("%s: width %s", rowLabel, warn))
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Piece{}, fmt.Sprintf("%s: Missing height value", rowLabel), nil
	}
	height, warn, err := parseDimension(heightStr)
	if err != nil {
		return model.Piece{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
	}
	if warn != "" {
		warnings = append(warnings, fmt.Sprintf("%s: height %s", rowLabel, warn))
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.Piece{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Piece{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
	}

	if width <= 0 || height <= 0 || qty <= 0 {
		return model.Piece{}, fmt.Sprintf("%s: Width, height, and quantity must be positive", rowLabel), nil
	}

	return model.NewPiece(label, width, height, qty), "", warnings
}

// parseBoardRow extracts a BoardType from a row using the given column mapping.
func parseBoardRow(row []string, mapping ColumnMapping, rowLabel string, boardCount int) (model.BoardType, string, []string) {
	var warnings []string

	label := getCell(row, mapping.Label)
	if label == "" {
		label = fmt.Sprintf("Board %d", boardCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.BoardType{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, warn, err := parseDimension(widthStr)
	if err != nil {
		return model.BoardType{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}
	if warn != "" {
		warnings = append(warnings, fmt.Sprintf("%s: width %s", rowLabel, warn))
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.BoardType{}, fmt.Sprintf("%s: Missing height value", rowLabel), nil
	}
	height, warn, err := parseDimension(heightStr)
	if err != nil {
		return model.BoardType{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
	}
	if warn != "" {
		warnings = append(warnings, fmt.Sprintf("%s: height %s", rowLabel, warn))
	}

	costStr := getCell(row, mapping.Cost)
	if costStr == "" {
		return model.BoardType{}, fmt.Sprintf("%s: Missing cost value", rowLabel), nil
	}
	cost, err := strconv.ParseFloat(costStr, 64)
	if err != nil {
		return model.BoardType{}, fmt.Sprintf("%s: Invalid cost '%s'", rowLabel, costStr), nil
	}

	if width <= 0 || height <= 0 {
		return model.BoardType{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), nil
	}
	if cost < 0 {
		return model.BoardType{}, fmt.Sprintf("%s: Cost must not be negative", rowLabel), nil
	}

	return model.NewBoardType(label, width, height, cost), "", warnings
}

// readRows loads tabular data from a CSV or Excel file based on the
// extension, returning the rows, a row label prefix for messages, and
// any delimiter warnings.
func readRows(path string) ([][]string, string, []string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") || strings.HasSuffix(strings.ToLower(path), ".xls") {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, "", nil, fmt.Errorf("cannot open Excel file: %w", err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", nil, fmt.Errorf("Excel file has no sheets")
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, "", nil, fmt.Errorf("cannot read Excel data: %w", err)
		}
		return rows, "Row", nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", nil, fmt.Errorf("cannot open file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, "", nil, fmt.Errorf("file is empty")
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	rows, err := parseCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		return nil, "", nil, err
	}
	return rows, "Line", warnings, nil
}

func parseCSV(r io.Reader, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV: %w", err)
	}
	return records, nil
}

// ImportPieces imports a required piece list from a CSV or Excel file.
func ImportPieces(path string) PieceResult {
	rows, prefix, warnings, err := readRows(path)
	if err != nil {
		return PieceResult{Errors: []string{err.Error()}}
	}
	return PiecesFromRows(rows, prefix, warnings)
}

// ImportPiecesFromReader imports pieces from a CSV reader with a known delimiter.
func ImportPiecesFromReader(r io.Reader, delimiter rune) PieceResult {
	rows, err := parseCSV(r, delimiter)
	if err != nil {
		return PieceResult{Errors: []string{err.Error()}}
	}
	return PiecesFromRows(rows, "Line", nil)
}

// PiecesFromRows is the shared piece-import logic for CSV and Excel data.
func PiecesFromRows(rows [][]string, rowPrefix string, initialWarnings []string) PieceResult {
	result := PieceResult{Warnings: initialWarnings}

	startRow, mapping, errMsg, warning := detectLayout(rows, []string{"Width", "Height", "Quantity"},
		func(m ColumnMapping) []int { return []int{m.Width, m.Height, m.Quantity} })
	if errMsg != "" {
		result.Errors = append(result.Errors, errMsg)
		return result
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	for i := startRow; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		piece, errMsg, warnings := parsePieceRow(rows[i], mapping, rowLabel, len(result.Pieces))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Pieces = append(result.Pieces, piece)
	}

	return result
}

// ImportBoards imports a board catalogue from a CSV or Excel file.
func ImportBoards(path string) BoardResult {
	rows, prefix, warnings, err := readRows(path)
	if err != nil {
		return BoardResult{Errors: []string{err.Error()}}
	}
	return BoardsFromRows(rows, prefix, warnings)
}

// BoardsFromRows is the shared board-import logic for CSV and Excel data.
func BoardsFromRows(rows [][]string, rowPrefix string, initialWarnings []string) BoardResult {
	result := BoardResult{Warnings: initialWarnings}

	startRow, mapping, errMsg, warning := detectLayout(rows, []string{"Width", "Height", "Cost"},
		func(m ColumnMapping) []int { return []int{m.Width, m.Height, m.Cost} })
	if errMsg != "" {
		result.Errors = append(result.Errors, errMsg)
		return result
	}
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	for i := startRow; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		board, errMsg, warnings := parseBoardRow(rows[i], mapping, rowLabel, len(result.Boards))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Boards = append(result.Boards, board)
	}

	return result
}

// detectLayout figures out the column mapping and first data row. When a
// header is present it also validates that the required columns exist,
// reporting the missing ones by name.
func detectLayout(rows [][]string, requiredNames []string, required func(ColumnMapping) []int) (int, ColumnMapping, string, string) {
	if len(rows) == 0 {
		return 0, ColumnMapping{}, "No data rows found", ""
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	warning := ""

	if hasHeader {
		startRow = 1
		warning = "Detected header row, skipping"

		var missing []string
		for i, idx := range required(mapping) {
			if idx == -1 {
				missing = append(missing, requiredNames[i])
			}
		}
		if len(missing) > 0 {
			return 0, mapping, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")), ""
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the second column is not numeric, treat
		// the first row as an unrecognized header and keep positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			warning = "Detected header row, skipping"
		}
	}

	return startRow, mapping, "", warning
}
