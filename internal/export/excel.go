package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wajenzi/fundicut/internal/model"
	"github.com/wajenzi/fundicut/internal/pricing"
	"github.com/xuri/excelize/v2"
)

// ExportExcel writes a computed quote as an Excel workbook with one
// worksheet per concern: summary, items, pieces, bar allocations and
// glass placements.
func ExportExcel(path string, p model.Project) error {
	if p.Result == nil {
		return fmt.Errorf("project has no computed quote")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, headerStyle, p); err != nil {
		return err
	}
	if err := writeItemsSheet(f, headerStyle, p.Items); err != nil {
		return err
	}
	if err := writePiecesSheet(f, headerStyle, p.Result.Pieces); err != nil {
		return err
	}
	if err := writeBarsSheet(f, headerStyle, p.Result.LinearPlans); err != nil {
		return err
	}
	if err := writeGlassSheet(f, headerStyle, p.Result.GlassPlans); err != nil {
		return err
	}

	// Drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	idx, err := f.GetSheetIndex("Summary")
	if err != nil {
		return fmt.Errorf("failed to find summary sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, p model.Project) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	r := p.Result
	rows := [][]interface{}{
		{"Project", p.Name},
		{"Created", p.CreatedAt},
		{"Items", len(p.Items)},
		{"Pieces to Cut", countPieces(r)},
		{"Stock Bars Used", r.TotalBars()},
		{"Sheets Used", r.TotalSheets()},
		{"Skipped Pieces", r.SkippedPieces()},
		{"Charge Method", string(r.Method)},
		{"Total Charge", pricing.FormatAmount(r.TotalCharge)},
	}
	for i, row := range rows {
		if err := writeRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(sheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return fmt.Errorf("failed to style %s sheet: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", "B", 28)
}

func writeItemsSheet(f *excelize.File, headerStyle int, items []model.ProjectItem) error {
	const sheet = "Items"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := []interface{}{"#", "Label", "Style", "Width (mm)", "Height (mm)", "Qty", "Other Dimensions"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	if err := styleHeaderRow(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}

	for i, item := range items {
		row := []interface{}{
			item.ItemID, item.ItemLabel, item.StyleID,
			item.Dimensions["W"], item.Dimensions["H"],
			item.UnitQuantity, extraDimensions(item.Dimensions),
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "B", "C", 22)
}

func writePiecesSheet(f *excelize.File, headerStyle int, pieces []model.LabeledPiece) error {
	const sheet = "Pieces"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := []interface{}{"Item", "Item Label", "Component", "Material", "Shape", "Length (mm)", "Width (mm)", "Qty", "Trim (mm)"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	if err := styleHeaderRow(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}

	for i, piece := range pieces {
		row := []interface{}{
			piece.ItemID, piece.ItemLabel, piece.ComponentName, piece.MaterialID,
			string(piece.Shape), piece.LengthMM, piece.WidthMM, piece.Quantity, piece.OffcutMM,
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "B", "D", 20)
}

func writeBarsSheet(f *excelize.File, headerStyle int, plans []model.CuttingPlan) error {
	const sheet = "Bars"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := []interface{}{"Material", "Shape", "Bar", "Stock (mm)", "Step", "Item", "Component", "Cut (mm)", "Trim (mm)", "Position (mm)", "Bar Waste (mm)"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	if err := styleHeaderRow(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}

	rowNum := 2
	for i := range plans {
		plan := &plans[i]
		for _, bar := range plan.Bars {
			for j, a := range bar.Allocations {
				row := []interface{}{
					plan.MaterialID, string(plan.Shape), bar.BarIndex, bar.StockLengthMM,
					j + 1, a.ItemID, a.ComponentName, a.LengthMM, a.OffcutMM, a.PositionMM, bar.WasteMM,
				}
				if err := writeRow(f, sheet, rowNum, row); err != nil {
					return err
				}
				rowNum++
			}
		}
	}
	return f.SetColWidth(sheet, "A", "B", 16)
}

func writeGlassSheet(f *excelize.File, headerStyle int, plans []model.GlassCuttingPlan) error {
	const sheet = "Glass"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	headers := []interface{}{"Material", "Sheet", "Item", "Component", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return err
	}
	if err := styleHeaderRow(f, sheet, headerStyle, len(headers)); err != nil {
		return err
	}

	rowNum := 2
	for i := range plans {
		plan := &plans[i]
		for _, layout := range plan.Sheets {
			for _, p := range layout.Placements {
				row := []interface{}{
					plan.MaterialID, layout.SheetIndex, p.ItemID, p.ComponentName,
					p.X, p.Y, p.W, p.H, p.Rotated,
				}
				if err := writeRow(f, sheet, rowNum, row); err != nil {
					return err
				}
				rowNum++
			}
		}
	}
	return f.SetColWidth(sheet, "A", "A", 16)
}

// writeRow sets one worksheet row starting at column A.
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("failed to build cell reference: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

// styleHeaderRow applies the bold header style across row 1.
func styleHeaderRow(f *excelize.File, sheet string, style, cols int) error {
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

// extraDimensions formats an item's non-bounding dimensions, e.g.
// "blades=6", for display in a single cell.
func extraDimensions(dims map[string]int) string {
	keys := make([]string, 0, len(dims))
	for k := range dims {
		if k == "W" || k == "H" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, dims[k])
	}
	return strings.Join(parts, ", ")
}
