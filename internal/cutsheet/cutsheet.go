package cutsheet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wajenzi/fundicut/internal/model"
)

// Build converts an optimized cutting plan into the step-by-step hand-out
// a fundi works from at the saw: every bar with its cuts in execution
// order. The trim on a step is what the blade consumes before the next
// cut, so the last step of every bar reports zero.
func Build(plan model.CuttingPlan) model.FundiCuttingSheet {
	sheet := model.FundiCuttingSheet{
		ProfileID:     plan.MaterialID,
		StockLengthMM: plan.StockLengthMM,
		TotalBars:     len(plan.Bars),
		TotalPieces:   plan.TotalPieces,
	}

	for _, bar := range plan.Bars {
		ordered := make([]model.CutAllocation, len(bar.Allocations))
		copy(ordered, bar.Allocations)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].PositionMM < ordered[j].PositionMM
		})

		barSheet := model.FundiBarSheet{
			BarNumber:   bar.BarIndex,
			RemainingMM: bar.WasteMM,
		}
		for i, alloc := range ordered {
			step := model.FundiCutStep{
				Step:      i + 1,
				ItemID:    alloc.ItemID,
				ItemLabel: alloc.ItemLabel,
				CutMM:     alloc.LengthMM,
				OffcutMM:  alloc.OffcutMM,
			}
			if i == len(ordered)-1 {
				step.OffcutMM = 0
			}
			barSheet.Cuts = append(barSheet.Cuts, step)
		}
		sheet.Bars = append(sheet.Bars, barSheet)
	}

	return sheet
}

// BuildAll produces one cutting sheet per plan, in plan order.
func BuildAll(plans []model.CuttingPlan) []model.FundiCuttingSheet {
	var sheets []model.FundiCuttingSheet
	for _, plan := range plans {
		sheets = append(sheets, Build(plan))
	}
	return sheets
}

// RenderText formats a cutting sheet as plain text for printing or a
// terminal. All measurements are whole millimetres.
func RenderText(sheet model.FundiCuttingSheet) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CUTTING SHEET: %s\n", sheet.ProfileID))
	b.WriteString(fmt.Sprintf("Stock bar %dmm, %d bars, %d pieces\n",
		sheet.StockLengthMM, sheet.TotalBars, sheet.TotalPieces))

	for _, bar := range sheet.Bars {
		b.WriteString(fmt.Sprintf("\nBar %d:\n", bar.BarNumber))
		for _, cut := range bar.Cuts {
			b.WriteString(fmt.Sprintf("  %2d. cut %dmm", cut.Step, cut.CutMM))
			if cut.OffcutMM > 0 {
				b.WriteString(fmt.Sprintf(" +%dmm trim", cut.OffcutMM))
			}
			b.WriteString(fmt.Sprintf("  (Item %d: %s)\n", cut.ItemID, cut.ItemLabel))
		}
		if bar.RemainingMM < 0 {
			b.WriteString(fmt.Sprintf("  WARNING: piece exceeds stock by %dmm\n", -bar.RemainingMM))
		} else {
			b.WriteString(fmt.Sprintf("  remaining: %dmm\n", bar.RemainingMM))
		}
	}

	return b.String()
}

// RenderAll renders every sheet, separated by a blank line.
func RenderAll(sheets []model.FundiCuttingSheet) string {
	var parts []string
	for _, s := range sheets {
		parts = append(parts, RenderText(s))
	}
	return strings.Join(parts, "\n")
}
