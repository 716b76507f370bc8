package model

// Rates holds the pricing inputs for a quote. Amounts are integer
// minor units (e.g. cents) so totals stay exact.
type Rates struct {
	StyleRates    map[string]int64 `json:"style_rates,omitempty"`    // style_id -> per-unit rate
	MaterialRates map[string]int64 `json:"material_rates,omitempty"` // material_id -> per bar/sheet cost
	LaborCost     int64            `json:"labor_cost"`
}

// StyleRate returns the per-unit rate for a style, 0 when unpriced.
func (r *Rates) StyleRate(styleID string) int64 {
	return r.StyleRates[styleID]
}

// MaterialRate returns the per-bar or per-sheet cost for a material,
// 0 when unpriced.
func (r *Rates) MaterialRate(materialID string) int64 {
	return r.MaterialRates[materialID]
}

// QuoteResult represents the full output of a project quote run:
// every labeled piece, the packing plans, the workshop cutting sheets
// and the charge total. It is plain data the caller owns.
type QuoteResult struct {
	Pieces      []LabeledPiece      `json:"pieces"`
	LinearPlans []CuttingPlan       `json:"linear_plans"`
	GlassPlans  []GlassCuttingPlan  `json:"glass_plans"`
	FundiSheets []FundiCuttingSheet `json:"fundi_sheets"`
	Method      ChargeMethod        `json:"charge_method"`
	TotalCharge int64               `json:"total_charge"`
}

// TotalBars returns the stock bars consumed across all linear plans.
func (q *QuoteResult) TotalBars() int {
	total := 0
	for i := range q.LinearPlans {
		total += q.LinearPlans[i].BarsUsed()
	}
	return total
}

// TotalSheets returns the sheets consumed across all glass plans.
func (q *QuoteResult) TotalSheets() int {
	total := 0
	for i := range q.GlassPlans {
		total += q.GlassPlans[i].TotalSheets
	}
	return total
}

// SkippedPieces returns the count of area pieces no sheet could fit.
// A nonzero value means the quote is incomplete and needs review.
func (q *QuoteResult) SkippedPieces() int {
	total := 0
	for i := range q.GlassPlans {
		total += q.GlassPlans[i].SkippedCount
	}
	return total
}
