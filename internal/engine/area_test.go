package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wajenzi/fundicut/internal/model"
)

func glassPieceFixture(componentID string, length, width, qty int) model.LabeledPiece {
	return model.LabeledPiece{
		Piece: model.Piece{
			ComponentID:   componentID,
			ComponentName: componentID,
			MaterialID:    "GLASS-4",
			Shape:         model.ShapeFillArea,
			LengthMM:      length,
			WidthMM:       width,
			Quantity:      qty,
		},
		ItemID:    1,
		ItemLabel: "Item 1",
	}
}

func testSheet(w, h, kerf int, rotate bool) model.SheetStock {
	return model.SheetStock{WidthMM: w, HeightMM: h, KerfMM: kerf, AllowRotate: rotate}
}

func TestAreaPack_SinglePiece(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, true))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 600, 400, 1),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]
	require.Len(t, sheet.Placements, 1)

	pl := sheet.Placements[0]
	assert.Equal(t, 0, pl.X)
	assert.Equal(t, 0, pl.Y)
	assert.Equal(t, 600, pl.W)
	assert.Equal(t, 400, pl.H)
	assert.False(t, pl.Rotated, "piece fits normally, no rotation")

	assert.Empty(t, sheet.PrimaryCuts, "a single strip needs no primary cut")
	assert.Empty(t, sheet.SecondaryCuts, "a single piece needs no secondary cut")
	assert.Equal(t, int64(240000), sheet.PieceAreaMM2)
	assert.Equal(t, int64(2160000), sheet.WasteMM2)
	assert.Equal(t, 1, plan.TotalPieces)
	assert.Equal(t, 90, plan.WastePct)
	assert.Equal(t, 0, plan.SkippedCount)
}

func TestAreaPack_PiecesStackWithinStrip(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 600, 400, 3),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]
	require.Len(t, sheet.Placements, 3)

	assert.Equal(t, 0, sheet.Placements[0].Y)
	assert.Equal(t, 400, sheet.Placements[1].Y)
	assert.Equal(t, 800, sheet.Placements[2].Y)
	for _, pl := range sheet.Placements {
		assert.Equal(t, 0, pl.X, "all three stack in the first strip")
	}

	assert.Empty(t, sheet.PrimaryCuts)
	require.Len(t, sheet.SecondaryCuts, 2)
	assert.Equal(t, 400, sheet.SecondaryCuts[0].PositionMM)
	assert.Equal(t, 800, sheet.SecondaryCuts[1].PositionMM)
}

func TestAreaPack_KerfSeparatesPiecesAndStrips(t *testing.T) {
	// With a 10mm kerf only two 400mm pieces fit a 1200mm strip;
	// the third starts a new strip shifted by the kerf.
	packer := NewArea(testSheet(2000, 1200, 10, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 600, 400, 3),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]
	require.Len(t, sheet.Placements, 3)

	assert.Equal(t, 0, sheet.Placements[0].Y)
	assert.Equal(t, 410, sheet.Placements[1].Y, "stacked piece sits below a kerf gap")
	assert.Equal(t, 610, sheet.Placements[2].X, "new strip starts after width plus kerf")
	assert.Equal(t, 0, sheet.Placements[2].Y)

	require.Len(t, sheet.PrimaryCuts, 1)
	assert.Equal(t, 600, sheet.PrimaryCuts[0].PositionMM, "primary cut runs along the strip's right edge")
}

func TestAreaPack_SortsByWidthDecreasing(t *testing.T) {
	// Input order is narrow first; the packer must still lay the
	// widest piece down first.
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("narrow", 400, 1000, 1),
		glassPieceFixture("wide", 600, 1000, 1),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]
	require.Len(t, sheet.Placements, 2)
	assert.Equal(t, "wide", sheet.Placements[0].ComponentID)
	assert.Equal(t, 0, sheet.Placements[0].X)
	assert.Equal(t, "narrow", sheet.Placements[1].ComponentID)
	assert.Equal(t, 600, sheet.Placements[1].X)
}

func TestAreaPack_BestFitChoosesTightestStrip(t *testing.T) {
	// Strip 1 is left with 500mm, strip 2 with 300mm. A 280mm piece
	// fits both and must take the tighter strip 2.
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("tall-a", 600, 700, 1),
		glassPieceFixture("tall-b", 600, 900, 1),
		glassPieceFixture("small", 500, 280, 1),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]
	require.Len(t, sheet.Placements, 3)

	small := sheet.Placements[2]
	assert.Equal(t, "small", small.ComponentID)
	assert.Equal(t, 600, small.X, "best fit sends the piece to strip 2")
	assert.Equal(t, 900, small.Y)
}

func TestAreaPack_StripTieGoesToLeftmost(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("tall-a", 600, 800, 1),
		glassPieceFixture("tall-b", 600, 800, 1),
		glassPieceFixture("small", 500, 400, 1),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]
	small := sheet.Placements[2]
	assert.Equal(t, 0, small.X, "equal remaining height goes to the leftmost strip")
	assert.Equal(t, 800, small.Y)
}

// ─── Rotation Tests ────────────────────────────────────────────────

func TestAreaPack_NeverRotatesWhenNormalFits(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, true))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 400, 900, 1),
	})

	pl := plan.Sheets[0].Placements[0]
	assert.False(t, pl.Rotated, "rotation is a last resort, never an optimization")
	assert.Equal(t, 400, pl.W)
	assert.Equal(t, 900, pl.H)
}

func TestAreaPack_RotatesWhenOnlyRotatedFits(t *testing.T) {
	packer := NewArea(testSheet(1200, 2000, 0, true))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 1300, 600, 1),
	})

	require.Len(t, plan.Sheets, 1)
	pl := plan.Sheets[0].Placements[0]
	assert.True(t, pl.Rotated)
	assert.Equal(t, 600, pl.W)
	assert.Equal(t, 1300, pl.H)
	assert.Equal(t, 1300, pl.OriginalW, "original orientation is preserved for labeling")
	assert.Equal(t, 600, pl.OriginalH)
	assert.Equal(t, 0, plan.SkippedCount)
}

func TestAreaPack_RotationDisallowedSkips(t *testing.T) {
	packer := NewArea(testSheet(1200, 2000, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 1300, 600, 1),
	})

	assert.Empty(t, plan.Sheets)
	assert.Equal(t, 1, plan.SkippedCount)
	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, "pane", plan.Skipped[0].ComponentID)
}

func TestAreaPack_UnfittablePieceIsSkippedNotFatal(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, true))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("huge", 2500, 1300, 2),
		glassPieceFixture("pane", 600, 400, 1),
	})

	require.Len(t, plan.Sheets, 1, "the plan still packs what it can")
	assert.Equal(t, 1, plan.TotalPieces, "total counts placed pieces only")
	assert.Equal(t, 2, plan.SkippedCount, "every skipped unit is surfaced")
	require.Len(t, plan.Skipped, 2)
	assert.Equal(t, "huge", plan.Skipped[0].ComponentID)
	assert.Equal(t, 2500, plan.Skipped[0].LengthMM)
	assert.Equal(t, 1, plan.Skipped[0].Quantity, "skips are recorded per unit")
}

// ─── Sheet Overflow Tests ──────────────────────────────────────────

func TestAreaPack_NewSheetWhenWidthExhausted(t *testing.T) {
	packer := NewArea(testSheet(1000, 1000, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("col", 600, 1000, 2),
	})

	require.Len(t, plan.Sheets, 2)
	assert.Equal(t, 1, plan.Sheets[0].SheetIndex)
	assert.Equal(t, 2, plan.Sheets[1].SheetIndex)
	assert.Equal(t, 0, plan.Sheets[1].Placements[0].X, "overflow piece starts the new sheet's first strip")
	assert.Equal(t, 2, plan.TotalSheets)
}

func TestAreaPack_EarlierSheetsAreNeverRevisited(t *testing.T) {
	// Sheet 1 keeps 400mm of free width, which would take the last
	// piece, but packing only ever looks at the current sheet.
	packer := NewArea(testSheet(1000, 1000, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("col-a", 600, 1000, 1),
		glassPieceFixture("col-b", 600, 1000, 1),
		glassPieceFixture("late", 300, 500, 1),
	})

	require.Len(t, plan.Sheets, 2)
	assert.Len(t, plan.Sheets[0].Placements, 1)
	require.Len(t, plan.Sheets[1].Placements, 2)
	late := plan.Sheets[1].Placements[1]
	assert.Equal(t, "late", late.ComponentID)
	assert.Equal(t, 600, late.X, "late piece opens a strip on the current sheet")
}

// ─── Cut Line Tests ────────────────────────────────────────────────

func TestAreaPack_CutLineDerivation(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("a", 600, 500, 2),
		glassPieceFixture("b", 400, 300, 3),
	})

	require.Len(t, plan.Sheets, 1)
	sheet := plan.Sheets[0]

	// Two strips: the 600-wide pieces stack in strip 1, the 400-wide
	// pieces in strip 2.
	require.Len(t, sheet.PrimaryCuts, 1)
	primary := sheet.PrimaryCuts[0]
	assert.Equal(t, 1, primary.Step, "primary cuts are numbered first")
	assert.Equal(t, model.CutVertical, primary.Orientation)
	assert.Equal(t, 600, primary.PositionMM)
	assert.Equal(t, 0, primary.FromMM)
	assert.Equal(t, 1200, primary.ToMM, "primary cuts span the full sheet height")
	assert.True(t, primary.IsPrimary)
	assert.Equal(t, 1, primary.StripIndex)

	require.Len(t, sheet.SecondaryCuts, 3)
	first := sheet.SecondaryCuts[0]
	assert.Equal(t, 2, first.Step, "secondary numbering continues after primaries")
	assert.Equal(t, model.CutHorizontal, first.Orientation)
	assert.Equal(t, 500, first.PositionMM)
	assert.Equal(t, 0, first.FromMM)
	assert.Equal(t, 600, first.ToMM, "secondary cuts span their strip's width")
	assert.False(t, first.IsPrimary)
	assert.Equal(t, 1, first.StripIndex)

	assert.Equal(t, 2, sheet.SecondaryCuts[1].StripIndex)
	assert.Equal(t, 300, sheet.SecondaryCuts[1].PositionMM)
	assert.Equal(t, 600, sheet.SecondaryCuts[1].FromMM)
	assert.Equal(t, 1000, sheet.SecondaryCuts[1].ToMM)
	assert.Equal(t, 600, sheet.SecondaryCuts[2].PositionMM)
}

func TestAreaPack_CutCountInvariant(t *testing.T) {
	packer := NewArea(testSheet(2440, 1220, 3, true))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("a", 900, 500, 3),
		glassPieceFixture("b", 700, 450, 4),
		glassPieceFixture("c", 350, 300, 6),
		glassPieceFixture("d", 1100, 600, 2),
	})

	for _, sheet := range plan.Sheets {
		stripPieces := map[int]int{}
		for _, cut := range sheet.SecondaryCuts {
			stripPieces[cut.StripIndex]++
		}
		strips := len(sheet.PrimaryCuts) + 1
		assert.Len(t, sheet.Placements, sheet.PieceCount)
		for idx, count := range stripPieces {
			assert.LessOrEqual(t, idx, strips, "secondary cuts reference existing strips")
			_ = count
		}
		totalSecondary := len(sheet.SecondaryCuts)
		assert.Equal(t, sheet.PieceCount-strips, totalSecondary,
			"each strip with M pieces yields M-1 secondary cuts")
	}
}

// ─── Invariant Tests ───────────────────────────────────────────────

func TestAreaPack_WasteConservation(t *testing.T) {
	packer := NewArea(testSheet(2440, 1220, 3, true))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("a", 900, 500, 3),
		glassPieceFixture("b", 700, 450, 4),
		glassPieceFixture("c", 350, 300, 6),
	})

	sheetArea := int64(2440) * int64(1220)
	for _, sheet := range plan.Sheets {
		var placed int64
		for i := range sheet.Placements {
			placed += sheet.Placements[i].AreaMM2()
		}
		assert.Equal(t, placed, sheet.PieceAreaMM2)
		assert.Equal(t, sheetArea, sheet.PieceAreaMM2+sheet.WasteMM2,
			"sheet %d: piece area + waste must equal the sheet area exactly", sheet.SheetIndex)
	}
}

func TestAreaPack_WastePctBounds(t *testing.T) {
	packer := NewArea(testSheet(1000, 1000, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("exact", 1000, 1000, 1),
	})

	require.Len(t, plan.Sheets, 1)
	assert.Equal(t, int64(0), plan.TotalWasteMM2)
	assert.Equal(t, 0, plan.WastePct)
}

func TestAreaPack_QuantityExpansion(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{
		glassPieceFixture("pane", 500, 300, 5),
	})

	assert.Equal(t, 5, plan.TotalPieces)
}

func TestAreaPack_CarriesLabels(t *testing.T) {
	piece := glassPieceFixture("glass-pane", 600, 400, 1)
	piece.ItemID = 2
	piece.ItemLabel = "Bedroom Window"

	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", []model.LabeledPiece{piece})

	pl := plan.Sheets[0].Placements[0]
	assert.Equal(t, 2, pl.ItemID)
	assert.Equal(t, "Bedroom Window", pl.ItemLabel)
	assert.Equal(t, "glass-pane", pl.ComponentID)
	assert.Equal(t, "GLASS-4", plan.MaterialID)
}

func TestAreaPack_EmptyInput(t *testing.T) {
	packer := NewArea(testSheet(2000, 1200, 0, false))
	plan := packer.Pack("GLASS-4", nil)

	assert.Empty(t, plan.Sheets)
	assert.Equal(t, 0, plan.TotalSheets)
	assert.Equal(t, 0, plan.TotalPieces)
	assert.Equal(t, 0, plan.WastePct)
}

func TestAreaPack_Deterministic(t *testing.T) {
	pieces := []model.LabeledPiece{
		glassPieceFixture("a", 900, 500, 3),
		glassPieceFixture("b", 900, 450, 4),
		glassPieceFixture("c", 350, 300, 6),
		glassPieceFixture("d", 1100, 600, 2),
	}
	packer := NewArea(testSheet(2440, 1220, 3, true))

	first := packer.Pack("GLASS-4", pieces)
	for i := 0; i < 5; i++ {
		again := packer.Pack("GLASS-4", pieces)
		require.Equal(t, first, again, "identical input must produce an identical plan")
	}
}
