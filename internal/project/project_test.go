package project

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wajenzi/fundicut/internal/geometry"
	"github.com/wajenzi/fundicut/internal/model"
	"github.com/wajenzi/fundicut/internal/style"
)

func testStock() model.StockConfig {
	return model.StockConfig{
		DefaultBarLengthMM: 6000,
		BarLengthsMM:       map[string]int{"SHS-25": 5800},
		Sheets: map[string]model.SheetStock{
			"GLASS-4": {WidthMM: 2000, HeightMM: 1200, KerfMM: 0, AllowRotate: true},
		},
	}
}

func casementItem(t *testing.T, itemID int, label string, w, h, qty int) model.ProjectItem {
	t.Helper()
	item, err := model.NewProjectItem(itemID, label, "casement-window", map[string]int{"W": w, "H": h}, qty)
	if err != nil {
		t.Fatalf("unexpected error building item: %v", err)
	}
	return item
}

func TestComputePiecesLabelsEveryPiece(t *testing.T) {
	items := []model.ProjectItem{
		casementItem(t, 1, "Kitchen Window", 1200, 1200, 1),
		casementItem(t, 2, "Bedroom Window", 800, 600, 1),
	}

	pieces, err := ComputePieces(items, style.NewCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 5 components per casement item.
	if len(pieces) != 10 {
		t.Fatalf("expected 10 pieces, got %d", len(pieces))
	}
	for i, p := range pieces[:5] {
		if p.ItemID != 1 || p.ItemLabel != "Kitchen Window" {
			t.Errorf("piece %d: expected item 1 label, got %d %q", i, p.ItemID, p.ItemLabel)
		}
	}
	for i, p := range pieces[5:] {
		if p.ItemID != 2 || p.ItemLabel != "Bedroom Window" {
			t.Errorf("piece %d: expected item 2 label, got %d %q", i+5, p.ItemID, p.ItemLabel)
		}
	}
}

func TestComputePiecesScopesDoNotLeak(t *testing.T) {
	items := []model.ProjectItem{
		casementItem(t, 1, "Big", 1200, 1200, 1),
		casementItem(t, 2, "Small", 800, 600, 1),
	}

	pieces, err := ComputePieces(items, style.NewCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Each item evaluates against its own dimensions.
	if pieces[0].LengthMM != 1200 {
		t.Errorf("item 1 frame: expected 1200, got %d", pieces[0].LengthMM)
	}
	if pieces[5].LengthMM != 800 {
		t.Errorf("item 2 frame: expected 800, got %d", pieces[5].LengthMM)
	}
}

func TestComputePiecesUnknownStyle(t *testing.T) {
	item, err := model.NewProjectItem(1, "Mystery", "no-such-style", map[string]int{"W": 1000, "H": 1000}, 1)
	if err != nil {
		t.Fatalf("unexpected error building item: %v", err)
	}

	_, err = ComputePieces([]model.ProjectItem{item}, style.NewCatalog())
	if err == nil {
		t.Fatal("expected error for unknown style, got nil")
	}
	var styleErr *UnknownStyleError
	if !errors.As(err, &styleErr) {
		t.Fatalf("expected *UnknownStyleError, got %T", err)
	}
	if styleErr.ItemID != 1 || styleErr.StyleID != "no-such-style" {
		t.Errorf("expected item 1 style no-such-style, got %d %q", styleErr.ItemID, styleErr.StyleID)
	}
}

func TestComputePiecesWrapsGeometryError(t *testing.T) {
	item, err := model.NewProjectItem(1, "Missing Height", "casement-window", map[string]int{"W": 1000}, 1)
	if err != nil {
		t.Fatalf("unexpected error building item: %v", err)
	}

	_, err = ComputePieces([]model.ProjectItem{item}, style.NewCatalog())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var dimErr *geometry.DimensionMissingError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected wrapped *DimensionMissingError, got %v", err)
	}
}

func TestPlanRoutesShapesToPackers(t *testing.T) {
	items := []model.ProjectItem{casementItem(t, 1, "Kitchen Window", 1200, 1200, 1)}

	result, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Linear plans sorted by material: beading first, then the frame
	// profile. Glass goes to the area packer.
	if len(result.LinearPlans) != 2 {
		t.Fatalf("expected 2 linear plans, got %d", len(result.LinearPlans))
	}
	if result.LinearPlans[0].MaterialID != "BEAD-12" || result.LinearPlans[0].Shape != model.ShapeFillCut {
		t.Errorf("expected BEAD-12 FILL_CUT first, got %s %s",
			result.LinearPlans[0].MaterialID, result.LinearPlans[0].Shape)
	}
	if result.LinearPlans[1].MaterialID != "SHS-25" || result.LinearPlans[1].Shape != model.ShapeCut {
		t.Errorf("expected SHS-25 CUT_SHAPE second, got %s %s",
			result.LinearPlans[1].MaterialID, result.LinearPlans[1].Shape)
	}
	if len(result.GlassPlans) != 1 || result.GlassPlans[0].MaterialID != "GLASS-4" {
		t.Fatalf("expected 1 glass plan for GLASS-4, got %+v", result.GlassPlans)
	}
	if result.GlassPlans[0].TotalPieces != 2 {
		t.Errorf("expected 2 glass pieces, got %d", result.GlassPlans[0].TotalPieces)
	}
	if len(result.FundiSheets) != 2 {
		t.Fatalf("expected one fundi sheet per linear plan, got %d", len(result.FundiSheets))
	}
	if result.FundiSheets[0].ProfileID != "BEAD-12" || result.FundiSheets[1].ProfileID != "SHS-25" {
		t.Errorf("expected fundi sheets in plan order, got %q then %q",
			result.FundiSheets[0].ProfileID, result.FundiSheets[1].ProfileID)
	}
}

func TestPlanUsesPerMaterialBarLength(t *testing.T) {
	items := []model.ProjectItem{casementItem(t, 1, "Kitchen Window", 1200, 1200, 1)}

	result, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, plan := range result.LinearPlans {
		switch plan.MaterialID {
		case "SHS-25":
			if plan.StockLengthMM != 5800 {
				t.Errorf("SHS-25: expected configured 5800mm stock, got %d", plan.StockLengthMM)
			}
		case "BEAD-12":
			if plan.StockLengthMM != 6000 {
				t.Errorf("BEAD-12: expected default 6000mm stock, got %d", plan.StockLengthMM)
			}
		}
	}
}

func TestPlanSkipsAreaMaterialWithoutSheetSize(t *testing.T) {
	items := []model.ProjectItem{casementItem(t, 1, "Kitchen Window", 1200, 1200, 1)}
	stock := testStock()
	stock.Sheets = nil

	result, err := Plan(items, style.NewCatalog(), stock, model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.GlassPlans) != 0 {
		t.Errorf("expected no glass plans without sheet sizes, got %d", len(result.GlassPlans))
	}
	if len(result.LinearPlans) != 2 {
		t.Errorf("expected linear packing unaffected, got %d plans", len(result.LinearPlans))
	}
}

func TestPlanChargeRateBased(t *testing.T) {
	items := []model.ProjectItem{
		casementItem(t, 1, "Window A", 1200, 1200, 1),
		casementItem(t, 2, "Window B", 1000, 1000, 1),
	}
	rates := model.Rates{StyleRates: map[string]int64{"casement-window": 250000}}

	result, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeRateBased, rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalCharge != 500000 {
		t.Errorf("expected 500000, got %d", result.TotalCharge)
	}
	if result.Method != model.ChargeRateBased {
		t.Errorf("expected method RATE_BASED, got %q", result.Method)
	}
}

func TestPlanChargeCostBased(t *testing.T) {
	items := []model.ProjectItem{casementItem(t, 1, "Kitchen Window", 1200, 1200, 1)}
	rates := model.Rates{
		MaterialRates: map[string]int64{
			"BEAD-12": 500,
			"SHS-25":  1200,
			"GLASS-4": 8000,
		},
		LaborCost: 1000,
	}

	result, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeCostBased, rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 beading bars, 2 frame bars, 1 glass sheet, plus labor.
	want := int64(2*500 + 2*1200 + 1*8000 + 1000)
	if result.TotalCharge != want {
		t.Errorf("expected %d, got %d", want, result.TotalCharge)
	}
}

func TestPlanDeterministic(t *testing.T) {
	items := []model.ProjectItem{
		casementItem(t, 1, "Window A", 1200, 1200, 2),
		casementItem(t, 2, "Window B", 900, 1100, 1),
	}
	rates := model.Rates{StyleRates: map[string]int64{"casement-window": 250000}}

	first, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeRateBased, rates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeRateBased, rates)
		if err != nil {
			t.Fatalf("unexpected error on run %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced a different result", i)
		}
	}
}

func TestPlanManyMaterials(t *testing.T) {
	louvre, err := model.NewProjectItem(2, "Louvre", "louvre-window",
		map[string]int{"W": 900, "H": 1200, "blades": 6}, 1)
	if err != nil {
		t.Fatalf("unexpected error building item: %v", err)
	}
	door, err := model.NewProjectItem(3, "Back Door", "swing-door",
		map[string]int{"W": 900, "H": 2100}, 1)
	if err != nil {
		t.Fatalf("unexpected error building item: %v", err)
	}
	items := []model.ProjectItem{
		casementItem(t, 1, "Kitchen Window", 1200, 1200, 1),
		louvre,
		door,
	}
	stock := testStock()
	stock.Sheets["GLASS-6"] = model.SheetStock{WidthMM: 2440, HeightMM: 1830, KerfMM: 3, AllowRotate: true}
	stock.Sheets["STEEL-SHEET"] = model.SheetStock{WidthMM: 2440, HeightMM: 1220, KerfMM: 2, AllowRotate: true}

	// More material groups than pack workers, so slots must still come
	// back in sorted order.
	result, err := Plan(items, style.NewCatalog(), stock, model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var linearOrder []string
	for _, plan := range result.LinearPlans {
		linearOrder = append(linearOrder, plan.MaterialID)
	}
	wantLinear := []string{"BEAD-12", "LOUVRE-FRAME", "RUBBER-SEAL", "SHS-25", "SHS-38"}
	if !reflect.DeepEqual(linearOrder, wantLinear) {
		t.Errorf("expected linear plans %v, got %v", wantLinear, linearOrder)
	}

	var glassOrder []string
	for _, plan := range result.GlassPlans {
		glassOrder = append(glassOrder, plan.MaterialID)
	}
	wantGlass := []string{"GLASS-4", "GLASS-6", "STEEL-SHEET"}
	if !reflect.DeepEqual(glassOrder, wantGlass) {
		t.Errorf("expected glass plans %v, got %v", wantGlass, glassOrder)
	}

	if len(result.FundiSheets) != len(result.LinearPlans) {
		t.Fatalf("expected one fundi sheet per linear plan, got %d for %d plans",
			len(result.FundiSheets), len(result.LinearPlans))
	}
	for i := range result.FundiSheets {
		if result.FundiSheets[i].ProfileID != result.LinearPlans[i].MaterialID {
			t.Errorf("fundi sheet %d: expected %s, got %s",
				i, result.LinearPlans[i].MaterialID, result.FundiSheets[i].ProfileID)
		}
	}
}

func TestPlanOptimizedNeverWorse(t *testing.T) {
	items := []model.ProjectItem{
		casementItem(t, 1, "Window A", 1200, 1200, 2),
		casementItem(t, 2, "Window B", 1000, 900, 2),
		casementItem(t, 3, "Window C", 800, 700, 2),
	}

	plain, err := Plan(items, style.NewCatalog(), testStock(), model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	optimized, err := PlanOptimized(items, style.NewCatalog(), testStock(), model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Linear packing is untouched by the order search.
	if !reflect.DeepEqual(plain.LinearPlans, optimized.LinearPlans) {
		t.Error("optimized run changed the linear plans")
	}
	for i := range plain.GlassPlans {
		if optimized.GlassPlans[i].TotalSheets > plain.GlassPlans[i].TotalSheets {
			t.Errorf("%s: optimizer used %d sheets, plain packing %d",
				plain.GlassPlans[i].MaterialID,
				optimized.GlassPlans[i].TotalSheets, plain.GlassPlans[i].TotalSheets)
		}
		if optimized.GlassPlans[i].TotalPieces != plain.GlassPlans[i].TotalPieces {
			t.Errorf("%s: optimizer must place the same pieces", plain.GlassPlans[i].MaterialID)
		}
	}
}

func TestPlanOptimizedDeterministic(t *testing.T) {
	items := []model.ProjectItem{
		casementItem(t, 1, "Window A", 1200, 1200, 2),
		casementItem(t, 2, "Window B", 900, 1100, 2),
	}

	first, err := PlanOptimized(items, style.NewCatalog(), testStock(), model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := PlanOptimized(items, style.NewCatalog(), testStock(), model.ChargeRateBased, model.Rates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, again) {
		t.Fatal("optimized planning must be deterministic")
	}
}

func TestQuoteUsesDocumentSettings(t *testing.T) {
	p := model.NewProject()
	p.Items = []model.ProjectItem{casementItem(t, 1, "Kitchen Window", 1200, 1200, 1)}
	p.Stock = testStock()
	p.Method = model.ChargeRateBased
	p.Rates = model.Rates{StyleRates: map[string]int64{"casement-window": 300000}}

	result, err := Quote(p, style.NewCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalCharge != 300000 {
		t.Errorf("expected 300000, got %d", result.TotalCharge)
	}
	if p.Result != nil {
		t.Error("Quote must not mutate the document")
	}
}
