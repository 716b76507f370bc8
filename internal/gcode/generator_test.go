package gcode

import (
	"strings"
	"testing"

	"github.com/wajenzi/fundicut/internal/model"
)

// newTestLayout builds a packed 1000x600 sheet with two strips: two
// 400mm wide panes stacked in the first strip and one 200mm panel in
// the second. One primary cut releases the strips, one secondary cut
// separates the stacked panes.
func newTestLayout() model.GlassSheetLayout {
	return model.GlassSheetLayout{
		SheetIndex: 1,
		MaterialID: "GLASS-4",
		Placements: []model.GlassPlacement{
			{ItemID: 1, ItemLabel: "Window A", ComponentID: "pane", ComponentName: "Pane", X: 0, Y: 0, W: 400, H: 250, OriginalW: 400, OriginalH: 250},
			{ItemID: 1, ItemLabel: "Window A", ComponentID: "pane", ComponentName: "Pane", X: 0, Y: 253, W: 400, H: 300, OriginalW: 400, OriginalH: 300},
			{ItemID: 2, ItemLabel: "Door B", ComponentID: "panel", ComponentName: "Panel", X: 403, Y: 0, W: 200, H: 500, OriginalW: 200, OriginalH: 500},
		},
		PrimaryCuts: []model.GlassCutLine{
			{Step: 1, Orientation: model.CutVertical, PositionMM: 400, FromMM: 0, ToMM: 600, IsPrimary: true, StripIndex: 1, Description: "Vertical cut at 400mm, full sheet height"},
		},
		SecondaryCuts: []model.GlassCutLine{
			{Step: 2, Orientation: model.CutHorizontal, PositionMM: 250, FromMM: 0, ToMM: 400, StripIndex: 1, Description: "Horizontal cut at 250mm across strip 1"},
		},
		PieceCount:   3,
		PieceAreaMM2: 320000,
		WasteMM2:     280000,
	}
}

func newTestPlan() model.GlassCuttingPlan {
	return model.GlassCuttingPlan{
		MaterialID:  "GLASS-4",
		SheetWMM:    1000,
		SheetHMM:    600,
		KerfMM:      3,
		Sheets:      []model.GlassSheetLayout{newTestLayout()},
		TotalSheets: 1,
		TotalPieces: 3,
	}
}

func TestGenerateSheet_HeaderAndFooter(t *testing.T) {
	gen := New(DefaultSettings())
	plan := newTestPlan()
	code := gen.GenerateSheet(plan, plan.Sheets[0])

	for _, want := range []string{
		"; FundiCut program - sheet 1, material GLASS-4",
		"; Stock: 1000 x 600 mm",
		"; Pieces: 3, Cuts: 2",
		"G21",
		"G90",
		"; Job complete",
		"M2",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("expected program to contain %q, got:\n%s", want, code)
		}
	}
}

func TestGenerateSheet_ScoresInStepOrder(t *testing.T) {
	gen := New(DefaultSettings())
	plan := newTestPlan()
	code := gen.GenerateSheet(plan, plan.Sheets[0])

	first := strings.Index(code, "Step 1: Vertical cut at 400mm")
	second := strings.Index(code, "Step 2: Horizontal cut at 250mm")
	if first < 0 || second < 0 {
		t.Fatalf("expected both step comments, got:\n%s", code)
	}
	if first > second {
		t.Error("expected step 1 before step 2")
	}

	// Vertical cut scores bottom to top at x=400; the plan's y axis is
	// mirrored so the span 0..600 stays 0..600 on a 600mm sheet.
	if !strings.Contains(code, "G1 X400.0 Y600.0 F3000.0") {
		t.Errorf("expected vertical score line, got:\n%s", code)
	}
	// Horizontal cut at plan y=250 lands at table y=350.
	if !strings.Contains(code, "G1 X400.0 Y350.0 F3000.0") {
		t.Errorf("expected horizontal score line, got:\n%s", code)
	}
}

func TestGenerateSheet_RoundTrip(t *testing.T) {
	gen := New(DefaultSettings())
	plan := newTestPlan()
	code := gen.GenerateSheet(plan, plan.Sheets[0])

	segments := ScoreSegments(code)
	if len(segments) != 2 {
		t.Fatalf("expected 2 score segments, got %d", len(segments))
	}

	want := []Segment{
		{X0: 400, Y0: 0, X1: 400, Y1: 600},
		{X0: 0, Y0: 350, X1: 400, Y1: 350},
	}
	for i, w := range want {
		if segments[i] != w {
			t.Errorf("segment %d: expected %+v, got %+v", i, w, segments[i])
		}
	}
}

func TestGenerateSheet_ConflictWarning(t *testing.T) {
	gen := New(DefaultSettings())
	plan := newTestPlan()
	layout := plan.Sheets[0]
	// A vertical cut through the middle of the first strip crosses
	// both stacked panes.
	layout.PrimaryCuts = append(layout.PrimaryCuts, model.GlassCutLine{
		Step: 3, Orientation: model.CutVertical, PositionMM: 200, FromMM: 0, ToMM: 600,
		IsPrimary: true, StripIndex: 1, Description: "Vertical cut at 200mm, full sheet height",
	})
	code := gen.GenerateSheet(plan, layout)

	if !strings.Contains(code, "WARNING: sheet 1 step 3 cuts through item 1 Pane of \"Window A\"") {
		t.Errorf("expected conflict warning in header, got:\n%s", code)
	}
}

func TestGenerateSheet_NoWarningsForCleanLayout(t *testing.T) {
	gen := New(DefaultSettings())
	plan := newTestPlan()
	code := gen.GenerateSheet(plan, plan.Sheets[0])

	if strings.Contains(code, "WARNING") {
		t.Errorf("expected no warnings for a packer layout, got:\n%s", code)
	}
}

func TestGenerateAll_OneProgramPerSheet(t *testing.T) {
	plan := newTestPlan()
	second := newTestLayout()
	second.SheetIndex = 2
	plan.Sheets = append(plan.Sheets, second)
	plan.TotalSheets = 2

	programs := New(DefaultSettings()).GenerateAll(plan)
	if len(programs) != 2 {
		t.Fatalf("expected 2 programs, got %d", len(programs))
	}
	if !strings.Contains(programs[0], "sheet 1") {
		t.Error("expected first program to name sheet 1")
	}
	if !strings.Contains(programs[1], "sheet 2") {
		t.Error("expected second program to name sheet 2")
	}
}

func TestGenerateSheet_GrblProfile(t *testing.T) {
	settings := DefaultSettings()
	settings.Profile = "grbl"
	gen := New(settings)
	plan := newTestPlan()
	code := gen.GenerateSheet(plan, plan.Sheets[0])

	if !strings.Contains(code, "( FundiCut program - sheet 1, material GLASS-4)") {
		t.Errorf("expected parenthesised comments, got:\n%s", code)
	}
	if !strings.Contains(code, "G0 Z10.000") {
		t.Errorf("expected 3 decimal places, got:\n%s", code)
	}
}

func TestGetProfile_UnknownFallsBackToGeneric(t *testing.T) {
	if got := GetProfile("something-else").Name; got != "generic" {
		t.Errorf("expected generic fallback, got %q", got)
	}
	if got := GetProfile("GRBL").Name; got != "grbl" {
		t.Errorf("expected case-insensitive match, got %q", got)
	}
}
