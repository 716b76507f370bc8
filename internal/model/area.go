package model

// CutOrientation represents the direction of a guillotine cut line.
type CutOrientation string

const (
	CutVertical   CutOrientation = "V" // Full-height cut along the x-axis position
	CutHorizontal CutOrientation = "H" // Cut across a strip at a y-axis position
)

// GlassPlacement represents one rectangular piece placed on a sheet.
// Coordinates are measured from the sheet's top-left corner.
type GlassPlacement struct {
	ItemID        int    `json:"item_id"`
	ItemLabel     string `json:"item_label"`
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name"`
	X             int    `json:"x_mm"`
	Y             int    `json:"y_mm"`
	W             int    `json:"w_mm"` // As placed, after any rotation
	H             int    `json:"h_mm"`
	OriginalW     int    `json:"original_w_mm"`
	OriginalH     int    `json:"original_h_mm"`
	Rotated       bool   `json:"rotated"`
}

// AreaMM2 returns the placed piece area in square millimetres.
func (p *GlassPlacement) AreaMM2() int64 {
	return int64(p.W) * int64(p.H)
}

// GlassCutLine represents one guillotine cut a fundi executes on a sheet.
type GlassCutLine struct {
	Step        int            `json:"step"` // 1-based, primaries numbered before secondaries
	Orientation CutOrientation `json:"orientation"`
	PositionMM  int            `json:"position_mm"`
	FromMM      int            `json:"from_mm"`
	ToMM        int            `json:"to_mm"`
	IsPrimary   bool           `json:"is_primary"` // True for full-height strip-dividing cuts
	StripIndex  int            `json:"strip_index"`
	Description string         `json:"description"`
}

// GlassSheetLayout represents one packed sheet: its placements and the
// ordered cut lines that produce them.
type GlassSheetLayout struct {
	SheetIndex    int              `json:"sheet_index"` // 1-based
	MaterialID    string           `json:"material_id"`
	Placements    []GlassPlacement `json:"placements"`
	PrimaryCuts   []GlassCutLine   `json:"primary_cuts"`
	SecondaryCuts []GlassCutLine   `json:"secondary_cuts"`
	PieceCount    int              `json:"piece_count"`
	PieceAreaMM2  int64            `json:"piece_area_mm2"`
	WasteMM2      int64            `json:"waste_mm2"`
}

// GlassCuttingPlan represents the 2D packing result for one area material.
type GlassCuttingPlan struct {
	MaterialID        string             `json:"material_id"`
	SheetWMM          int                `json:"sheet_w_mm"`
	SheetHMM          int                `json:"sheet_h_mm"`
	KerfMM            int                `json:"kerf_mm"`
	Sheets            []GlassSheetLayout `json:"sheets"`
	TotalSheets       int                `json:"total_sheets"`
	TotalPieces       int                `json:"total_pieces"`
	TotalPieceAreaMM2 int64              `json:"total_piece_area_mm2"`
	TotalWasteMM2     int64              `json:"total_waste_mm2"`
	WastePct          int                `json:"waste_pct"` // Integer-truncated, clamped to [0,100]
	Skipped           []LabeledPiece     `json:"skipped,omitempty"`
	SkippedCount      int                `json:"skipped_count"`
}

// Efficiency returns the share of sheet area covered by pieces, in
// integer percent.
func (p *GlassCuttingPlan) Efficiency() int {
	total := int64(p.SheetWMM) * int64(p.SheetHMM) * int64(p.TotalSheets)
	if total == 0 {
		return 0
	}
	return int(p.TotalPieceAreaMM2 * 100 / total)
}
