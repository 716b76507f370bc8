package model

import (
	"testing"
)

func TestShapeTypeIsArea(t *testing.T) {
	if !ShapeFillArea.IsArea() {
		t.Error("FILL_AREA should be an area shape")
	}
	if ShapeCut.IsArea() {
		t.Error("CUT_SHAPE should not be an area shape")
	}
	if ShapeFillCut.IsArea() {
		t.Error("FILL_CUT is linear infill, not an area shape")
	}
}

func TestPieceAreaMM2(t *testing.T) {
	p := Piece{LengthMM: 600, WidthMM: 400}
	if got := p.AreaMM2(); got != 240000 {
		t.Errorf("expected area 240000, got %d", got)
	}

	linear := Piece{LengthMM: 2400}
	if got := linear.AreaMM2(); got != 0 {
		t.Errorf("expected 0 area for linear piece, got %d", got)
	}
}

func TestPieceAreaMM2_LargeDimensions(t *testing.T) {
	// 100m x 100m in mm overflows int32 math; the result must not wrap.
	p := Piece{LengthMM: 100000, WidthMM: 100000}
	if got := p.AreaMM2(); got != 10000000000 {
		t.Errorf("expected area 10000000000, got %d", got)
	}
}

func TestStockBarUsedMM(t *testing.T) {
	b := StockBar{
		StockLengthMM: 6000,
		Allocations: []CutAllocation{
			{LengthMM: 2400, OffcutMM: 5},
			{LengthMM: 1200, OffcutMM: 0},
		},
	}
	if got := b.UsedMM(); got != 3605 {
		t.Errorf("expected 3605mm used, got %d", got)
	}
}

func TestStockConfigBarLength(t *testing.T) {
	cfg := StockConfig{
		DefaultBarLengthMM: 6000,
		BarLengthsMM:       map[string]int{"ALU-38": 5800},
	}

	if got := cfg.BarLength("ALU-38"); got != 5800 {
		t.Errorf("expected configured length 5800, got %d", got)
	}
	if got := cfg.BarLength("STEEL-25"); got != 6000 {
		t.Errorf("expected default length 6000 for unlisted material, got %d", got)
	}
}

func TestStockConfigBarLengthIgnoresZeroEntry(t *testing.T) {
	cfg := StockConfig{
		DefaultBarLengthMM: 6000,
		BarLengthsMM:       map[string]int{"ALU-38": 0},
	}
	if got := cfg.BarLength("ALU-38"); got != 6000 {
		t.Errorf("zero-length entry should fall back to default, got %d", got)
	}
}

func TestStockConfigSheetFor(t *testing.T) {
	cfg := StockConfig{
		Sheets: map[string]SheetStock{
			"GLASS-4": {WidthMM: 2000, HeightMM: 1200, KerfMM: 0, AllowRotate: true},
		},
	}

	s, ok := cfg.SheetFor("GLASS-4")
	if !ok {
		t.Fatal("expected sheet config for GLASS-4")
	}
	if s.WidthMM != 2000 || s.HeightMM != 1200 {
		t.Errorf("expected 2000x1200 sheet, got %dx%d", s.WidthMM, s.HeightMM)
	}

	if _, ok := cfg.SheetFor("MESH-1"); ok {
		t.Error("expected no sheet config for unlisted material")
	}
}

func TestDefaultStockConfig(t *testing.T) {
	cfg := DefaultStockConfig()
	if cfg.DefaultBarLengthMM != 6000 {
		t.Errorf("expected 6000mm default bar, got %d", cfg.DefaultBarLengthMM)
	}
	if cfg.BarLengthsMM == nil || cfg.Sheets == nil {
		t.Error("expected initialized maps")
	}
}

func TestRatesLookups(t *testing.T) {
	r := Rates{
		StyleRates:    map[string]int64{"sliding-window": 250000},
		MaterialRates: map[string]int64{"ALU-38": 180000},
	}

	if got := r.StyleRate("sliding-window"); got != 250000 {
		t.Errorf("expected style rate 250000, got %d", got)
	}
	if got := r.StyleRate("unknown"); got != 0 {
		t.Errorf("missing style rate should be 0, got %d", got)
	}
	if got := r.MaterialRate("ALU-38"); got != 180000 {
		t.Errorf("expected material rate 180000, got %d", got)
	}
	if got := r.MaterialRate("unknown"); got != 0 {
		t.Errorf("missing material rate should be 0, got %d", got)
	}
}

func TestRatesLookupsNilMaps(t *testing.T) {
	var r Rates
	if got := r.StyleRate("any"); got != 0 {
		t.Errorf("nil map lookup should be 0, got %d", got)
	}
	if got := r.MaterialRate("any"); got != 0 {
		t.Errorf("nil map lookup should be 0, got %d", got)
	}
}

func TestGlassPlacementAreaMM2(t *testing.T) {
	p := GlassPlacement{W: 600, H: 400}
	if got := p.AreaMM2(); got != 240000 {
		t.Errorf("expected area 240000, got %d", got)
	}
}

func TestGlassCuttingPlanEfficiency(t *testing.T) {
	plan := GlassCuttingPlan{
		SheetWMM:          2000,
		SheetHMM:          1200,
		TotalSheets:       1,
		TotalPieceAreaMM2: 240000,
	}
	if got := plan.Efficiency(); got != 10 {
		t.Errorf("expected 10%% efficiency, got %d%%", got)
	}

	empty := GlassCuttingPlan{}
	if got := empty.Efficiency(); got != 0 {
		t.Errorf("expected 0%% efficiency for empty plan, got %d%%", got)
	}
}

func TestQuoteResultTotals(t *testing.T) {
	q := QuoteResult{
		LinearPlans: []CuttingPlan{
			{Bars: []StockBar{{BarIndex: 1}, {BarIndex: 2}}},
			{Bars: []StockBar{{BarIndex: 1}}},
		},
		GlassPlans: []GlassCuttingPlan{
			{TotalSheets: 2, SkippedCount: 1},
		},
	}

	if got := q.TotalBars(); got != 3 {
		t.Errorf("expected 3 bars, got %d", got)
	}
	if got := q.TotalSheets(); got != 2 {
		t.Errorf("expected 2 sheets, got %d", got)
	}
	if got := q.SkippedPieces(); got != 1 {
		t.Errorf("expected 1 skipped piece, got %d", got)
	}
}
