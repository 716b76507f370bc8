package engine

import (
	"fmt"
	"sort"

	"github.com/wajenzi/fundicut/internal/model"
)

// AreaPacker packs rectangular pieces onto stock sheets using
// guillotine strip packing: primary cuts divide a sheet into
// full-height vertical strips, and pieces stack top to bottom within
// each strip, separated by secondary cuts.
type AreaPacker struct {
	Sheet model.SheetStock
}

func NewArea(sheet model.SheetStock) *AreaPacker {
	return &AreaPacker{Sheet: sheet}
}

// areaPiece is a single expanded placement candidate (quantity 1).
type areaPiece struct {
	itemID        int
	itemLabel     string
	componentID   string
	componentName string
	w, h          int // x-extent and y-extent before rotation
}

// strip is one full-height vertical column on a sheet. Its width is
// fixed by its first piece; later pieces must be no wider.
type strip struct {
	x          int
	width      int
	usedHeight int
	placements []model.GlassPlacement
}

// sheetState is one sheet while it is being packed.
type sheetState struct {
	strips []strip
	placed []model.GlassPlacement // chronological placement order
}

// Pack places every piece onto sheets and returns the plan for one
// area material.
//
// Pieces are sorted by width descending (ties keep input order).
// Rotation is decided against the bare sheet dimensions: a piece is
// rotated only when its normal orientation fits no sheet at all and
// rotation is allowed. Each piece goes to the strip on the current
// sheet left with the least height after taking it; when no strip
// fits, a new strip opens to the right of the last one, and when the
// sheet width is exhausted a new sheet starts. Pieces that fit no
// sheet dimension even rotated are collected in Skipped rather than
// failing the plan.
func (p *AreaPacker) Pack(materialID string, pieces []model.LabeledPiece) model.GlassCuttingPlan {
	expanded := expandAreaPieces(pieces)
	return p.packOrder(materialID, expanded, greedyOrder(expanded))
}

// expandAreaPieces expands pieces by quantity into individual placement
// candidates.
func expandAreaPieces(pieces []model.LabeledPiece) []areaPiece {
	var expanded []areaPiece
	for _, lp := range pieces {
		for i := 0; i < lp.Quantity; i++ {
			expanded = append(expanded, areaPiece{
				itemID:        lp.ItemID,
				itemLabel:     lp.ItemLabel,
				componentID:   lp.ComponentID,
				componentName: lp.ComponentName,
				w:             lp.LengthMM,
				h:             lp.WidthMM,
			})
		}
	}
	return expanded
}

// greedyOrder returns candidate indices widest first; equal widths keep
// input order.
func greedyOrder(expanded []areaPiece) []int {
	order := make([]int, len(expanded))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return expanded[order[i]].w > expanded[order[j]].w
	})
	return order
}

// packOrder places candidates in the given order; everything else
// follows Pack's strip rules.
func (p *AreaPacker) packOrder(materialID string, expanded []areaPiece, order []int) model.GlassCuttingPlan {
	sheetW, sheetH, kerf := p.Sheet.WidthMM, p.Sheet.HeightMM, p.Sheet.KerfMM

	var sheets []sheetState
	var skipped []model.LabeledPiece

	for _, idx := range order {
		c := expanded[idx]
		w, h := c.w, c.h
		rotated := false
		if w > sheetW || h > sheetH {
			if p.Sheet.AllowRotate && h <= sheetW && w <= sheetH {
				w, h = h, w
				rotated = true
			} else {
				skipped = append(skipped, model.LabeledPiece{
					Piece: model.Piece{
						ComponentID:   c.componentID,
						ComponentName: c.componentName,
						MaterialID:    materialID,
						Shape:         model.ShapeFillArea,
						LengthMM:      c.w,
						WidthMM:       c.h,
						Quantity:      1,
					},
					ItemID:    c.itemID,
					ItemLabel: c.itemLabel,
				})
				continue
			}
		}

		if len(sheets) == 0 {
			sheets = append(sheets, sheetState{})
		}
		cur := &sheets[len(sheets)-1]

		// Best fit among the current sheet's strips: the one left
		// with the least height after taking the piece. Ties go to
		// the leftmost strip.
		best := -1
		bestRemaining := 0
		for i := range cur.strips {
			s := &cur.strips[i]
			if w > s.width {
				continue
			}
			rem := sheetH - s.usedHeight - kerf - h
			if rem < 0 {
				continue
			}
			if best < 0 || rem < bestRemaining {
				best = i
				bestRemaining = rem
			}
		}

		var pl model.GlassPlacement
		if best >= 0 {
			s := &cur.strips[best]
			y := s.usedHeight + kerf
			pl = placementFor(c, s.x, y, w, h, rotated)
			s.usedHeight = y + h
			s.placements = append(s.placements, pl)
		} else {
			x := 0
			if n := len(cur.strips); n > 0 {
				last := &cur.strips[n-1]
				x = last.x + last.width + kerf
			}
			if x+w > sheetW {
				sheets = append(sheets, sheetState{})
				cur = &sheets[len(sheets)-1]
				x = 0
			}
			pl = placementFor(c, x, 0, w, h, rotated)
			cur.strips = append(cur.strips, strip{
				x:          x,
				width:      w,
				usedHeight: h,
				placements: []model.GlassPlacement{pl},
			})
		}
		cur.placed = append(cur.placed, pl)
	}

	plan := model.GlassCuttingPlan{
		MaterialID:   materialID,
		SheetWMM:     sheetW,
		SheetHMM:     sheetH,
		KerfMM:       kerf,
		Skipped:      skipped,
		SkippedCount: len(skipped),
	}
	for i := range sheets {
		layout := buildLayout(&sheets[i], i+1, materialID, sheetW, sheetH)
		plan.Sheets = append(plan.Sheets, layout)
		plan.TotalPieces += layout.PieceCount
		plan.TotalPieceAreaMM2 += layout.PieceAreaMM2
		plan.TotalWasteMM2 += layout.WasteMM2
	}
	plan.TotalSheets = len(plan.Sheets)

	if plan.TotalSheets > 0 {
		totalArea := int64(sheetW) * int64(sheetH) * int64(plan.TotalSheets)
		pct := plan.TotalWasteMM2 * 100 / totalArea
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		plan.WastePct = int(pct)
	}
	return plan
}

func placementFor(c areaPiece, x, y, w, h int, rotated bool) model.GlassPlacement {
	return model.GlassPlacement{
		ItemID:        c.itemID,
		ItemLabel:     c.itemLabel,
		ComponentID:   c.componentID,
		ComponentName: c.componentName,
		X:             x,
		Y:             y,
		W:             w,
		H:             h,
		OriginalW:     c.w,
		OriginalH:     c.h,
		Rotated:       rotated,
	}
}

// buildLayout derives the ordered cut lines for a packed sheet.
// Primary cuts split off the strips left to right and are numbered
// first; secondary cuts then separate the pieces within each strip
// top to bottom, continuing the numbering.
func buildLayout(st *sheetState, index int, materialID string, sheetW, sheetH int) model.GlassSheetLayout {
	layout := model.GlassSheetLayout{
		SheetIndex: index,
		MaterialID: materialID,
		Placements: st.placed,
	}

	step := 0
	for i := 0; i < len(st.strips)-1; i++ {
		s := &st.strips[i]
		step++
		pos := s.x + s.width
		layout.PrimaryCuts = append(layout.PrimaryCuts, model.GlassCutLine{
			Step:        step,
			Orientation: model.CutVertical,
			PositionMM:  pos,
			FromMM:      0,
			ToMM:        sheetH,
			IsPrimary:   true,
			StripIndex:  i + 1,
			Description: fmt.Sprintf("Vertical cut at %dmm, full sheet height", pos),
		})
	}
	for i := range st.strips {
		s := &st.strips[i]
		for j := 0; j < len(s.placements)-1; j++ {
			pl := &s.placements[j]
			step++
			pos := pl.Y + pl.H
			layout.SecondaryCuts = append(layout.SecondaryCuts, model.GlassCutLine{
				Step:        step,
				Orientation: model.CutHorizontal,
				PositionMM:  pos,
				FromMM:      s.x,
				ToMM:        s.x + s.width,
				IsPrimary:   false,
				StripIndex:  i + 1,
				Description: fmt.Sprintf("Horizontal cut at %dmm across strip %d", pos, i+1),
			})
		}
	}

	layout.PieceCount = len(st.placed)
	for i := range st.placed {
		layout.PieceAreaMM2 += st.placed[i].AreaMM2()
	}
	layout.WasteMM2 = int64(sheetW)*int64(sheetH) - layout.PieceAreaMM2
	return layout
}
