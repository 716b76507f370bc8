package model

// CutAllocation represents one piece placed on a stock bar.
type CutAllocation struct {
	ItemID        int    `json:"item_id"`
	ItemLabel     string `json:"item_label"`
	ComponentID   string `json:"component_id"`
	ComponentName string `json:"component_name"`
	LengthMM      int    `json:"length_mm"`   // Exact piece length, trim never included
	OffcutMM      int    `json:"offcut_mm"`   // Trim actually consumed after this cut
	PositionMM    int    `json:"position_mm"` // Start offset on the bar
}

// StockBar represents one stock bar with its ordered allocations.
type StockBar struct {
	BarIndex      int             `json:"bar_index"` // 1-based
	StockLengthMM int             `json:"stock_length_mm"`
	Allocations   []CutAllocation `json:"allocations"`
	WasteMM       int             `json:"waste_mm"` // Negative when a single piece exceeds the stock
}

// UsedMM returns the bar length consumed by cuts and applied trim.
func (b *StockBar) UsedMM() int {
	used := 0
	for _, a := range b.Allocations {
		used += a.LengthMM + a.OffcutMM
	}
	return used
}

// CuttingPlan represents the 1D packing result for one material and shape.
type CuttingPlan struct {
	MaterialID    string     `json:"material_id"`
	Shape         ShapeType  `json:"shape_type"`
	StockLengthMM int        `json:"stock_length_mm"`
	Bars          []StockBar `json:"bars"`
	TotalPieces   int        `json:"total_pieces"`
	TotalWasteMM  int        `json:"total_waste_mm"`
	WastePct      int        `json:"waste_pct"` // Integer-truncated share of total stock length
}

// BarsUsed returns the number of stock bars the plan consumes.
func (p *CuttingPlan) BarsUsed() int {
	return len(p.Bars)
}
