package export

import (
	"fmt"

	"github.com/wajenzi/fundicut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// DXF layer names for the sheet layout drawing.
const (
	layerSheet  = "SHEET"
	layerPieces = "PIECES"
	layerCuts   = "CUTS"
	layerLabels = "LABELS"
)

// sheetGapMM separates consecutive sheets in model space.
const sheetGapMM = 200.0

// ExportDXF writes a glass cutting plan as a DXF drawing. Sheets are
// laid out side by side in model space; sheet outlines, piece
// rectangles, cut lines and text labels land on separate layers so a
// CAD operator can toggle them independently.
func ExportDXF(path string, plan model.GlassCuttingPlan) error {
	if len(plan.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerSheet, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerSheet, err)
	}
	if _, err := d.AddLayer(layerPieces, color.Green, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerPieces, err)
	}
	if _, err := d.AddLayer(layerCuts, color.Red, table.LT_HIDDEN, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerCuts, err)
	}
	if _, err := d.AddLayer(layerLabels, color.Cyan, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", layerLabels, err)
	}

	sheetW := float64(plan.SheetWMM)
	sheetH := float64(plan.SheetHMM)

	for i := range plan.Sheets {
		offsetX := float64(i) * (sheetW + sheetGapMM)
		if err := drawSheetLayout(d, &plan, &plan.Sheets[i], offsetX, sheetW, sheetH); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// drawSheetLayout draws one sheet at the given x offset. Placement
// coordinates are measured from the sheet's top edge while DXF y
// grows upward, so y values are flipped.
func drawSheetLayout(d *drawing.Drawing, plan *model.GlassCuttingPlan, layout *model.GlassSheetLayout, offsetX, sheetW, sheetH float64) error {
	flipY := func(y float64) float64 { return sheetH - y }

	if err := d.ChangeLayer(layerSheet); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true,
		[]float64{offsetX, 0},
		[]float64{offsetX + sheetW, 0},
		[]float64{offsetX + sheetW, sheetH},
		[]float64{offsetX, sheetH},
	); err != nil {
		return fmt.Errorf("failed to draw sheet outline: %w", err)
	}

	if err := d.ChangeLayer(layerLabels); err != nil {
		return err
	}
	title := fmt.Sprintf("Sheet %d - %s", layout.SheetIndex, plan.MaterialID)
	if _, err := d.Text(title, offsetX, sheetH+40, 0, 50); err != nil {
		return fmt.Errorf("failed to draw sheet title: %w", err)
	}

	for i := range layout.Placements {
		p := &layout.Placements[i]
		x := offsetX + float64(p.X)
		w := float64(p.W)
		h := float64(p.H)
		top := flipY(float64(p.Y))
		bottom := flipY(float64(p.Y) + h)

		if err := d.ChangeLayer(layerPieces); err != nil {
			return err
		}
		if _, err := d.LwPolyline(true,
			[]float64{x, bottom},
			[]float64{x + w, bottom},
			[]float64{x + w, top},
			[]float64{x, top},
		); err != nil {
			return fmt.Errorf("failed to draw piece outline: %w", err)
		}

		if err := d.ChangeLayer(layerLabels); err != nil {
			return err
		}
		label := fmt.Sprintf("%d: %s %dx%d", p.ItemID, p.ComponentName, p.OriginalW, p.OriginalH)
		if _, err := d.Text(label, x+10, bottom+10, 0, 30); err != nil {
			return fmt.Errorf("failed to draw piece label: %w", err)
		}
	}

	if err := d.ChangeLayer(layerCuts); err != nil {
		return err
	}
	cuts := make([]model.GlassCutLine, 0, len(layout.PrimaryCuts)+len(layout.SecondaryCuts))
	cuts = append(cuts, layout.PrimaryCuts...)
	cuts = append(cuts, layout.SecondaryCuts...)
	for _, cut := range cuts {
		var x1, y1, x2, y2 float64
		if cut.Orientation == model.CutVertical {
			x1 = offsetX + float64(cut.PositionMM)
			x2 = x1
			y1 = flipY(float64(cut.FromMM))
			y2 = flipY(float64(cut.ToMM))
		} else {
			x1 = offsetX + float64(cut.FromMM)
			x2 = offsetX + float64(cut.ToMM)
			y1 = flipY(float64(cut.PositionMM))
			y2 = y1
		}
		if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			return fmt.Errorf("failed to draw cut line: %w", err)
		}
	}

	return nil
}
