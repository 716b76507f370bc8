package engine

import (
	"sort"

	"github.com/wajenzi/fundicut/internal/model"
)

// LinearPacker packs linear pieces onto stock bars using the
// best-fit-decreasing heuristic.
type LinearPacker struct {
	StockLengthMM int
}

func NewLinear(stockLengthMM int) *LinearPacker {
	return &LinearPacker{StockLengthMM: stockLengthMM}
}

// cutPiece is a single expanded placement candidate (quantity 1).
type cutPiece struct {
	itemID        int
	itemLabel     string
	componentID   string
	componentName string
	lengthMM      int
	offcutMM      int
}

// openBar tracks a bar while it is being filled.
type openBar struct {
	remaining   int
	cursor      int // start offset for the next allocation
	allocations []model.CutAllocation
}

// Pack places every piece onto stock bars and returns the plan for
// one material and shape.
//
// Pieces are sorted by length descending (ties keep input order) and
// each one goes to the open bar with the smallest remaining space
// that still takes its length alone; the trailing offcut need not
// fit. When no bar fits, a new bar is opened. A piece longer than the
// stock itself still gets a dedicated bar, whose waste goes negative
// so the length bookkeeping stays exact.
func (p *LinearPacker) Pack(materialID string, shape model.ShapeType, pieces []model.LabeledPiece) model.CuttingPlan {
	// Expand pieces by quantity into individual cut candidates
	var expanded []cutPiece
	for _, lp := range pieces {
		for i := 0; i < lp.Quantity; i++ {
			expanded = append(expanded, cutPiece{
				itemID:        lp.ItemID,
				itemLabel:     lp.ItemLabel,
				componentID:   lp.ComponentID,
				componentName: lp.ComponentName,
				lengthMM:      lp.LengthMM,
				offcutMM:      lp.OffcutMM,
			})
		}
	}

	// Longest first; stable so equal lengths keep input order
	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].lengthMM > expanded[j].lengthMM
	})

	var bars []openBar
	for _, c := range expanded {
		// Best fit: the fitting bar with the least remaining space.
		// Ties go to the earliest opened bar.
		best := -1
		for i := range bars {
			if bars[i].remaining < c.lengthMM {
				continue
			}
			if best < 0 || bars[i].remaining < bars[best].remaining {
				best = i
			}
		}
		if best < 0 {
			bars = append(bars, openBar{remaining: p.StockLengthMM})
			best = len(bars) - 1
		}
		bar := &bars[best]

		// Trim is capped so remaining space never goes negative from
		// the offcut itself; only an oversized piece can do that.
		applied := c.offcutMM
		if rest := bar.remaining - c.lengthMM; applied > rest {
			applied = rest
		}
		if applied < 0 {
			applied = 0
		}

		bar.allocations = append(bar.allocations, model.CutAllocation{
			ItemID:        c.itemID,
			ItemLabel:     c.itemLabel,
			ComponentID:   c.componentID,
			ComponentName: c.componentName,
			LengthMM:      c.lengthMM,
			OffcutMM:      applied,
			PositionMM:    bar.cursor,
		})
		bar.cursor += c.lengthMM + applied
		bar.remaining -= c.lengthMM + applied
	}

	plan := model.CuttingPlan{
		MaterialID:    materialID,
		Shape:         shape,
		StockLengthMM: p.StockLengthMM,
		TotalPieces:   len(expanded),
	}
	for i := range bars {
		plan.Bars = append(plan.Bars, model.StockBar{
			BarIndex:      i + 1,
			StockLengthMM: p.StockLengthMM,
			Allocations:   bars[i].allocations,
			WasteMM:       bars[i].remaining,
		})
		plan.TotalWasteMM += bars[i].remaining
	}
	if n := len(plan.Bars); n > 0 {
		plan.WastePct = plan.TotalWasteMM * 100 / (n * p.StockLengthMM)
	}
	return plan
}
