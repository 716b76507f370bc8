package model

import (
	"sort"

	"github.com/google/uuid"
)

// MinBarOffcutMM is the shortest bar tail worth keeping. Shorter tails
// are waste.
const MinBarOffcutMM = 300

// MinSheetOffcutMM is the minimum width or height for a sheet remnant
// to be considered usable.
const MinSheetOffcutMM = 50

// MinSheetOffcutAreaMM2 is the minimum area for a usable sheet remnant.
const MinSheetOffcutAreaMM2 = 10000

// BarOffcut represents the usable tail left on a stock bar after its
// last cut.
type BarOffcut struct {
	ID         string `json:"id"`
	MaterialID string `json:"material_id"`
	BarIndex   int    `json:"bar_index"`
	LengthMM   int    `json:"length_mm"`
}

// SheetOffcut represents a usable rectangular remnant on a cut sheet.
// Coordinates are measured from the sheet's top-left corner.
type SheetOffcut struct {
	ID         string `json:"id"`
	MaterialID string `json:"material_id"`
	SheetIndex int    `json:"sheet_index"`
	X          int    `json:"x_mm"`
	Y          int    `json:"y_mm"`
	WMM        int    `json:"w_mm"`
	HMM        int    `json:"h_mm"`
}

// AreaMM2 returns the remnant area in square millimetres.
func (o SheetOffcut) AreaMM2() int64 {
	return int64(o.WMM) * int64(o.HMM)
}

// DetectBarOffcuts returns the reusable tails of a linear cutting plan,
// longest first. Bars whose waste is negative carry an oversize piece
// and leave nothing.
func DetectBarOffcuts(plan CuttingPlan) []BarOffcut {
	var offcuts []BarOffcut
	for _, bar := range plan.Bars {
		if bar.WasteMM < MinBarOffcutMM {
			continue
		}
		offcuts = append(offcuts, BarOffcut{
			ID:         uuid.New().String()[:8],
			MaterialID: plan.MaterialID,
			BarIndex:   bar.BarIndex,
			LengthMM:   bar.WasteMM,
		})
	}
	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].LengthMM > offcuts[j].LengthMM
	})
	return offcuts
}

// DetectSheetOffcuts returns the reusable remnants of a glass cutting
// plan, largest first. The guillotine layout leaves two remnant kinds:
// the full-height strip right of the last strip, and the tail below
// the last piece of each strip.
func DetectSheetOffcuts(plan GlassCuttingPlan) []SheetOffcut {
	var offcuts []SheetOffcut
	for i := range plan.Sheets {
		offcuts = append(offcuts, sheetOffcuts(&plan.Sheets[i], plan)...)
	}
	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].AreaMM2() > offcuts[j].AreaMM2()
	})
	return offcuts
}

type stripExtent struct {
	x      int
	width  int
	bottom int
}

func sheetOffcuts(layout *GlassSheetLayout, plan GlassCuttingPlan) []SheetOffcut {
	if len(layout.Placements) == 0 {
		return []SheetOffcut{{
			ID:         uuid.New().String()[:8],
			MaterialID: layout.MaterialID,
			SheetIndex: layout.SheetIndex,
			WMM:        plan.SheetWMM,
			HMM:        plan.SheetHMM,
		}}
	}

	// Rebuild the strip extents from the placements. Pieces in one
	// strip share their X position, and the widest piece set the strip
	// width when the strip was opened.
	byX := map[int]*stripExtent{}
	var xs []int
	for i := range layout.Placements {
		pl := &layout.Placements[i]
		s, ok := byX[pl.X]
		if !ok {
			s = &stripExtent{x: pl.X}
			byX[pl.X] = s
			xs = append(xs, pl.X)
		}
		if pl.W > s.width {
			s.width = pl.W
		}
		if pl.Y+pl.H > s.bottom {
			s.bottom = pl.Y + pl.H
		}
	}
	sort.Ints(xs)

	var offcuts []SheetOffcut
	add := func(x, y, w, h int) {
		if w < MinSheetOffcutMM || h < MinSheetOffcutMM {
			return
		}
		if int64(w)*int64(h) < MinSheetOffcutAreaMM2 {
			return
		}
		offcuts = append(offcuts, SheetOffcut{
			ID:         uuid.New().String()[:8],
			MaterialID: layout.MaterialID,
			SheetIndex: layout.SheetIndex,
			X:          x,
			Y:          y,
			WMM:        w,
			HMM:        h,
		})
	}

	last := byX[xs[len(xs)-1]]
	rightX := last.x + last.width + plan.KerfMM
	add(rightX, 0, plan.SheetWMM-rightX, plan.SheetHMM)

	for _, x := range xs {
		s := byX[x]
		tailY := s.bottom + plan.KerfMM
		add(s.x, tailY, s.width, plan.SheetHMM-tailY)
	}

	return offcuts
}

// DetectAllOffcuts collects the reusable remnants across every plan of
// a quote.
func DetectAllOffcuts(r *QuoteResult) ([]BarOffcut, []SheetOffcut) {
	var bars []BarOffcut
	var sheets []SheetOffcut
	for i := range r.LinearPlans {
		bars = append(bars, DetectBarOffcuts(r.LinearPlans[i])...)
	}
	for i := range r.GlassPlans {
		sheets = append(sheets, DetectSheetOffcuts(r.GlassPlans[i])...)
	}
	return bars, sheets
}

// TotalOffcutAreaMM2 returns the combined area of the given remnants.
func TotalOffcutAreaMM2(offcuts []SheetOffcut) int64 {
	var total int64
	for _, o := range offcuts {
		total += o.AreaMM2()
	}
	return total
}
