package model

// FundiCutStep represents one numbered cut on a bar sheet.
type FundiCutStep struct {
	Step      int    `json:"step"` // 1-based within the bar
	ItemID    int    `json:"item_id"`
	ItemLabel string `json:"item_label"`
	CutMM     int    `json:"cut_mm"`
	OffcutMM  int    `json:"offcut_mm"` // Trim before the next cut; 0 on the last step
}

// FundiBarSheet represents the ordered cut list for one stock bar.
type FundiBarSheet struct {
	BarNumber   int            `json:"bar_number"`
	Cuts        []FundiCutStep `json:"cuts"`
	RemainingMM int            `json:"remaining_mm"`
}

// FundiCuttingSheet represents the workshop hand-out for one material:
// every bar with its cuts in execution order.
type FundiCuttingSheet struct {
	ProfileID     string          `json:"profile_id"` // Material the bars are cut from
	StockLengthMM int             `json:"stock_length_mm"`
	TotalBars     int             `json:"total_bars"`
	Bars          []FundiBarSheet `json:"bars"`
	TotalPieces   int             `json:"total_pieces"`
}
