package model

import (
	"fmt"

	"github.com/google/uuid"
)

// BarLot represents a count of identical stock bars on hand.
type BarLot struct {
	ID         string `json:"id"`
	MaterialID string `json:"material_id"`
	LengthMM   int    `json:"length_mm"`
	Quantity   int    `json:"quantity"`
}

// SheetLot represents a count of identical stock sheets on hand.
type SheetLot struct {
	ID         string `json:"id"`
	MaterialID string `json:"material_id"`
	WMM        int    `json:"w_mm"`
	HMM        int    `json:"h_mm"`
	Quantity   int    `json:"quantity"`
}

// Inventory holds the workshop's stock on hand. Lots are unique per
// material and size; adding stock merges into the matching lot.
type Inventory struct {
	Bars   []BarLot   `json:"bars"`
	Sheets []SheetLot `json:"sheets"`
}

// NewInventory returns an empty inventory. Stock is counted in, never
// preset, so a fresh inventory holds nothing.
func NewInventory() Inventory {
	return Inventory{Bars: []BarLot{}, Sheets: []SheetLot{}}
}

// FindBarLot returns the lot for a material and bar length, or nil.
func (inv *Inventory) FindBarLot(materialID string, lengthMM int) *BarLot {
	for i := range inv.Bars {
		if inv.Bars[i].MaterialID == materialID && inv.Bars[i].LengthMM == lengthMM {
			return &inv.Bars[i]
		}
	}
	return nil
}

// FindSheetLot returns the lot for a material and sheet size, or nil.
func (inv *Inventory) FindSheetLot(materialID string, wmm, hmm int) *SheetLot {
	for i := range inv.Sheets {
		s := &inv.Sheets[i]
		if s.MaterialID == materialID && s.WMM == wmm && s.HMM == hmm {
			return s
		}
	}
	return nil
}

// AddBars merges qty bars into the matching lot, opening a new lot for
// an unseen material or length.
func (inv *Inventory) AddBars(materialID string, lengthMM, qty int) {
	if lot := inv.FindBarLot(materialID, lengthMM); lot != nil {
		lot.Quantity += qty
		return
	}
	inv.Bars = append(inv.Bars, BarLot{
		ID:         uuid.New().String()[:8],
		MaterialID: materialID,
		LengthMM:   lengthMM,
		Quantity:   qty,
	})
}

// AddSheets merges qty sheets into the matching lot.
func (inv *Inventory) AddSheets(materialID string, wmm, hmm, qty int) {
	if lot := inv.FindSheetLot(materialID, wmm, hmm); lot != nil {
		lot.Quantity += qty
		return
	}
	inv.Sheets = append(inv.Sheets, SheetLot{
		ID:         uuid.New().String()[:8],
		MaterialID: materialID,
		WMM:        wmm,
		HMM:        hmm,
		Quantity:   qty,
	})
}

// CountBars returns the bars on hand for a material and length.
func (inv *Inventory) CountBars(materialID string, lengthMM int) int {
	if lot := inv.FindBarLot(materialID, lengthMM); lot != nil {
		return lot.Quantity
	}
	return 0
}

// CountSheets returns the sheets on hand for a material and size.
func (inv *Inventory) CountSheets(materialID string, wmm, hmm int) int {
	if lot := inv.FindSheetLot(materialID, wmm, hmm); lot != nil {
		return lot.Quantity
	}
	return 0
}

// Shortage reports stock a quote needs beyond what is on hand.
type Shortage struct {
	MaterialID string `json:"material_id"`
	Stock      string `json:"stock"` // e.g. "6000mm bar", "2440x1830mm sheet"
	Needed     int    `json:"needed"`
	OnHand     int    `json:"on_hand"`
}

// CheckQuote compares a quote's stock consumption against the
// inventory and returns what is missing, in plan order. An empty
// result means the job can be cut from stock on hand.
func (inv *Inventory) CheckQuote(r *QuoteResult) []Shortage {
	var shortages []Shortage
	for i := range r.LinearPlans {
		plan := &r.LinearPlans[i]
		needed := plan.BarsUsed()
		onHand := inv.CountBars(plan.MaterialID, plan.StockLengthMM)
		if needed > onHand {
			shortages = append(shortages, Shortage{
				MaterialID: plan.MaterialID,
				Stock:      fmt.Sprintf("%dmm bar", plan.StockLengthMM),
				Needed:     needed,
				OnHand:     onHand,
			})
		}
	}
	for i := range r.GlassPlans {
		plan := &r.GlassPlans[i]
		onHand := inv.CountSheets(plan.MaterialID, plan.SheetWMM, plan.SheetHMM)
		if plan.TotalSheets > onHand {
			shortages = append(shortages, Shortage{
				MaterialID: plan.MaterialID,
				Stock:      fmt.Sprintf("%dx%dmm sheet", plan.SheetWMM, plan.SheetHMM),
				Needed:     plan.TotalSheets,
				OnHand:     onHand,
			})
		}
	}
	return shortages
}

// ConsumeQuote removes a quote's stock consumption from the inventory,
// clamping lots at zero. Materials without a lot are ignored.
func (inv *Inventory) ConsumeQuote(r *QuoteResult) {
	for i := range r.LinearPlans {
		plan := &r.LinearPlans[i]
		if lot := inv.FindBarLot(plan.MaterialID, plan.StockLengthMM); lot != nil {
			lot.Quantity -= plan.BarsUsed()
			if lot.Quantity < 0 {
				lot.Quantity = 0
			}
		}
	}
	for i := range r.GlassPlans {
		plan := &r.GlassPlans[i]
		if lot := inv.FindSheetLot(plan.MaterialID, plan.SheetWMM, plan.SheetHMM); lot != nil {
			lot.Quantity -= plan.TotalSheets
			if lot.Quantity < 0 {
				lot.Quantity = 0
			}
		}
	}
}
