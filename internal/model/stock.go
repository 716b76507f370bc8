package model

// SheetStock represents the raw sheet an area material is cut from.
type SheetStock struct {
	WidthMM     int  `json:"width_mm"`
	HeightMM    int  `json:"height_mm"`
	KerfMM      int  `json:"kerf_mm"`
	AllowRotate bool `json:"allow_rotate"`
}

// StockConfig maps materials to the raw stock they are cut from.
// Linear materials fall back to the default bar length when unlisted;
// area materials without a sheet entry are not packed at all.
type StockConfig struct {
	DefaultBarLengthMM int                   `json:"default_bar_length_mm"`
	BarLengthsMM       map[string]int        `json:"bar_lengths_mm,omitempty"`
	Sheets             map[string]SheetStock `json:"sheets,omitempty"`
}

// DefaultStockConfig returns the standard workshop stock: 6m bars and
// no sheet materials configured.
func DefaultStockConfig() StockConfig {
	return StockConfig{
		DefaultBarLengthMM: 6000,
		BarLengthsMM:       map[string]int{},
		Sheets:             map[string]SheetStock{},
	}
}

// BarLength returns the stock bar length for a linear material.
func (c *StockConfig) BarLength(materialID string) int {
	if l, ok := c.BarLengthsMM[materialID]; ok && l > 0 {
		return l
	}
	return c.DefaultBarLengthMM
}

// SheetFor returns the sheet stock for an area material. The second
// return is false when the material has no configured sheet.
func (c *StockConfig) SheetFor(materialID string) (SheetStock, bool) {
	s, ok := c.Sheets[materialID]
	return s, ok
}
