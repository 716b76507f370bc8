package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wajenzi/fundicut/internal/model"
)

// DefaultInventoryPath returns the default location of the stock
// inventory file, ~/.fundicut/inventory.json
func DefaultInventoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".fundicut", "inventory.json")
}

// SaveInventory persists the inventory to the given path as JSON,
// creating missing parent directories.
func SaveInventory(path string, inv model.Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the given path. A missing
// file is not an error; counting starts from an empty inventory.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewInventory(), nil
		}
		return model.Inventory{}, fmt.Errorf("failed to read inventory file: %w", err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse inventory file: %w", err)
	}
	if inv.Bars == nil {
		inv.Bars = []model.BarLot{}
	}
	if inv.Sheets == nil {
		inv.Sheets = []model.SheetLot{}
	}
	return inv, nil
}

// MergeInventory reads another inventory file and folds its lots into
// the existing inventory, summing quantities for matching sizes. Used
// when a stock count arrives as a file from another machine.
func MergeInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read inventory file: %w", err)
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse inventory file: %w", err)
	}
	for _, lot := range imported.Bars {
		existing.AddBars(lot.MaterialID, lot.LengthMM, lot.Quantity)
	}
	for _, lot := range imported.Sheets {
		existing.AddSheets(lot.MaterialID, lot.WMM, lot.HMM, lot.Quantity)
	}
	return existing, nil
}
