package model

// ShapeType classifies how a style component is fabricated and which
// packer its pieces are routed to.
type ShapeType string

const (
	ShapeCut      ShapeType = "CUT_SHAPE" // Linear profile piece cut from stock bars
	ShapeFillArea ShapeType = "FILL_AREA" // Rectangular infill (glass, mesh, board) cut from sheets
	ShapeFillCut  ShapeType = "FILL_CUT"  // Linear infill (flat bar, beading) cut from stock bars
)

// IsArea reports whether pieces of this shape are packed onto sheets
// rather than stock bars.
func (s ShapeType) IsArea() bool {
	return s == ShapeFillArea
}

// Orientation selects which bounding dimension a frame component
// derives its length from when it has no formula.
type Orientation string

const (
	OrientationHorizontal Orientation = "HORIZONTAL" // Length follows the width W
	OrientationVertical   Orientation = "VERTICAL"   // Length follows the height H
)

// ChargeMethod represents the pricing strategy for a quote.
type ChargeMethod string

const (
	ChargeRateBased ChargeMethod = "RATE_BASED" // Flat per-style rate times unit quantity
	ChargeCostBased ChargeMethod = "COST_BASED" // Stock bars and sheets consumed, plus labor
)

// Piece represents one physical piece computed from a style component.
// Quantity already includes the item's unit quantity.
type Piece struct {
	ComponentID   string    `json:"component_id"`
	ComponentName string    `json:"component_name"`
	MaterialID    string    `json:"material_id"`
	Shape         ShapeType `json:"shape_type"`
	LengthMM      int       `json:"length_mm"`
	WidthMM       int       `json:"width_mm,omitempty"` // Area shapes only; 0 for linear pieces
	Quantity      int       `json:"quantity"`
	OffcutMM      int       `json:"offcut_mm"` // Trim allowance consumed after each cut
}

// AreaMM2 returns the area of a single piece in square millimetres.
// Linear pieces have no width and report 0.
func (p *Piece) AreaMM2() int64 {
	return int64(p.LengthMM) * int64(p.WidthMM)
}

// LabeledPiece is a Piece stamped with the project item it belongs to.
type LabeledPiece struct {
	Piece
	ItemID    int    `json:"item_id"`
	ItemLabel string `json:"item_label"`
}
