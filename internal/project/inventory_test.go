package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wajenzi/fundicut/internal/model"
)

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.NewInventory()
	inv.AddBars("SHS-25", 6000, 12)
	inv.AddSheets("GLASS-4", 2440, 1830, 3)

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if got := loaded.CountBars("SHS-25", 6000); got != 12 {
		t.Errorf("expected 12 bars after reload, got %d", got)
	}
	if got := loaded.CountSheets("GLASS-4", 2440, 1830); got != 3 {
		t.Errorf("expected 3 sheets after reload, got %d", got)
	}
}

func TestLoadInventoryMissingFile(t *testing.T) {
	inv, err := LoadInventory(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("expected empty inventory for missing file, got error: %v", err)
	}
	if len(inv.Bars) != 0 || len(inv.Sheets) != 0 {
		t.Errorf("expected empty inventory, got %+v", inv)
	}
	if inv.Bars == nil || inv.Sheets == nil {
		t.Error("expected non-nil lot slices")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestMergeInventorySumsQuantities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delivery.json")

	delivery := model.NewInventory()
	delivery.AddBars("SHS-25", 6000, 5)
	delivery.AddBars("SHS-38", 6000, 4)
	if err := SaveInventory(path, delivery); err != nil {
		t.Fatal(err)
	}

	existing := model.NewInventory()
	existing.AddBars("SHS-25", 6000, 10)

	merged, err := MergeInventory(path, existing)
	if err != nil {
		t.Fatalf("MergeInventory failed: %v", err)
	}
	if got := merged.CountBars("SHS-25", 6000); got != 15 {
		t.Errorf("expected merged count 15, got %d", got)
	}
	if got := merged.CountBars("SHS-38", 6000); got != 4 {
		t.Errorf("expected new lot with 4 bars, got %d", got)
	}
}

func TestMergeInventoryMissingFile(t *testing.T) {
	existing := model.NewInventory()
	existing.AddBars("SHS-25", 6000, 10)

	_, err := MergeInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing merge source")
	}
}

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected inventory.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".fundicut" {
		t.Errorf("expected parent dir .fundicut, got %s", filepath.Dir(path))
	}
}
