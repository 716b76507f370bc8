package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InvalidProjectItemError reports a project item that failed validation.
type InvalidProjectItemError struct {
	ItemID int
	Reason string
}

func (e *InvalidProjectItemError) Error() string {
	return fmt.Sprintf("invalid project item %d: %s", e.ItemID, e.Reason)
}

// ProjectItem represents one ordered line of a project: a style at
// concrete dimensions, requested some number of times.
type ProjectItem struct {
	ItemID       int            `json:"item_id"` // 1-based position in the project
	ItemLabel    string         `json:"item_label"`
	StyleID      string         `json:"style_id"`
	Dimensions   map[string]int `json:"dimensions"` // W and H plus any custom variables
	UnitQuantity int            `json:"unit_quantity"`
}

// NewProjectItem builds a validated project item. Validation fails fast
// so a half-formed item never reaches the engine.
func NewProjectItem(itemID int, label, styleID string, dims map[string]int, unitQuantity int) (ProjectItem, error) {
	if itemID < 1 {
		return ProjectItem{}, &InvalidProjectItemError{ItemID: itemID, Reason: "item_id must be 1 or greater"}
	}
	if strings.TrimSpace(label) == "" {
		return ProjectItem{}, &InvalidProjectItemError{ItemID: itemID, Reason: "item_label must not be empty"}
	}
	if unitQuantity < 1 {
		return ProjectItem{}, &InvalidProjectItemError{ItemID: itemID, Reason: "unit_quantity must be 1 or greater"}
	}
	return ProjectItem{
		ItemID:       itemID,
		ItemLabel:    label,
		StyleID:      styleID,
		Dimensions:   dims,
		UnitQuantity: unitQuantity,
	}, nil
}

// Project ties a quote job together for save/load.
type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CreatedAt string        `json:"created_at"`
	Items     []ProjectItem `json:"items"`
	Stock     StockConfig   `json:"stock"`
	Method    ChargeMethod  `json:"charge_method"`
	Rates     Rates         `json:"rates"`
	Result    *QuoteResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      "Untitled",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Items:     []ProjectItem{},
		Stock:     DefaultStockConfig(),
		Method:    ChargeRateBased,
	}
}

// NextItemID returns the id the next appended item should take.
func (p *Project) NextItemID() int {
	return len(p.Items) + 1
}
