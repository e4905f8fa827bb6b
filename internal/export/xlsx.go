package export

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/xuri/excelize/v2"

	"github.com/boardbuyer/boardbuyer/internal/model"
	"github.com/boardbuyer/boardbuyer/internal/shopping"
)

// XLSX writes the plan as an Excel workbook with three sheets: the
// shopping list, the cutting plan in commit order, and a cut list
// ordered by piece label for checking off finished parts.
func XLSX(path string, plan model.Plan) error {
	if len(plan.Boards) == 0 {
		return fmt.Errorf("no boards to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeShoppingSheet(f, plan); err != nil {
		return err
	}
	if err := writeCuttingPlanSheet(f, plan); err != nil {
		return err
	}
	if err := writeCutListSheet(f, plan); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeShoppingSheet(f *excelize.File, plan model.Plan) error {
	const sheet = "Shopping List"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []string{"Count", "Width (mm)", "Height (mm)", "Unit Cost", "Subtotal"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	items := shopping.Aggregate(plan)
	row := 2
	for _, li := range items {
		values := []interface{}{li.Count, li.Width, li.Height, li.UnitCost, li.Subtotal()}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}

	if err := f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Total"); err != nil {
		return err
	}
	return f.SetCellValue(sheet, fmt.Sprintf("E%d", row), shopping.TotalCost(items))
}

func writeCuttingPlanSheet(f *excelize.File, plan model.Plan) error {
	const sheet = "Cutting Plan"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Board", "Piece", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, p := range plan.CuttingPlan() {
		values := []interface{}{p.BoardIndex, p.Label, p.X, p.Y, p.Width, p.Height, p.Rotated}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func writeCutListSheet(f *excelize.File, plan model.Plan) error {
	const sheet = "Cut List"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	placements := plan.CuttingPlan()
	// Natural ordering keeps "Shelf 2" ahead of "Shelf 10".
	sort.SliceStable(placements, func(i, j int) bool {
		if placements[i].Label != placements[j].Label {
			return natural.Less(placements[i].Label, placements[j].Label)
		}
		return placements[i].BoardIndex < placements[j].BoardIndex
	})

	headers := []string{"Piece", "Width (mm)", "Height (mm)", "Board", "Rotated"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	row := 2
	for _, p := range placements {
		values := []interface{}{p.Label, p.Width, p.Height, p.BoardIndex, p.Rotated}
		for i, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+i, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}
