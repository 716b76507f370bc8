package style

import (
	"errors"
	"fmt"

	"github.com/wajenzi/fundicut/internal/model"
)

// ErrInvalidDefinition reports a style definition that fails its
// construction invariants.
var ErrInvalidDefinition = errors.New("invalid style definition")

// Component represents one parametrized part of a style. Components
// are evaluated strictly in declared order; a component with no
// length formula is a "frame" piece that takes its length from the
// bounding dimension selected by its orientation.
type Component struct {
	ComponentID   string            `json:"component_id"` // Unique within the style
	Name          string            `json:"name"`         // Shared-name key, need not be unique
	Shape         model.ShapeType   `json:"shape_type"`
	MaterialID    string            `json:"material_id"`
	Quantity      int               `json:"quantity"`
	FormulaLength string            `json:"formula_length,omitempty"` // Empty = frame derivation
	FormulaWidth  string            `json:"formula_width,omitempty"`  // Area shapes only
	Orientation   model.Orientation `json:"orientation,omitempty"`    // Used only when FormulaLength is empty
	OffcutMM      int               `json:"offcut_mm"`
}

// IsFrame reports whether the component derives its length from the
// bounding dimensions instead of a formula.
func (c *Component) IsFrame() bool {
	return c.FormulaLength == ""
}

// Definition represents a parametrized product style: an ordered list
// of components whose sizes are derived from the dimensions W, H and
// any custom variables the formulas reference.
type Definition struct {
	StyleID    string            `json:"style_id"`
	Name       string            `json:"name"`
	Components []Component       `json:"components"`
	Variables  map[string]string `json:"variables,omitempty"` // Custom variable name -> description
}

// NewDefinition validates and builds a style definition. Definitions
// that fail validation are never returned partially built.
func NewDefinition(styleID, name string, components []Component) (Definition, error) {
	d := Definition{
		StyleID:    styleID,
		Name:       name,
		Components: components,
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// Validate checks the definition invariants: a non-empty component
// list, component IDs unique within the style, quantities at least 1
// and non-negative offcuts.
func (d *Definition) Validate() error {
	if d.StyleID == "" {
		return fmt.Errorf("%w: missing style_id", ErrInvalidDefinition)
	}
	if len(d.Components) == 0 {
		return fmt.Errorf("%w: style %q has no components", ErrInvalidDefinition, d.StyleID)
	}
	seen := make(map[string]bool, len(d.Components))
	for i, c := range d.Components {
		if c.ComponentID == "" {
			return fmt.Errorf("%w: style %q component %d has no component_id", ErrInvalidDefinition, d.StyleID, i)
		}
		if seen[c.ComponentID] {
			return fmt.Errorf("%w: style %q has duplicate component_id %q", ErrInvalidDefinition, d.StyleID, c.ComponentID)
		}
		seen[c.ComponentID] = true
		if c.Quantity < 1 {
			return fmt.Errorf("%w: style %q component %q has quantity %d", ErrInvalidDefinition, d.StyleID, c.ComponentID, c.Quantity)
		}
		if c.OffcutMM < 0 {
			return fmt.Errorf("%w: style %q component %q has negative offcut", ErrInvalidDefinition, d.StyleID, c.ComponentID)
		}
	}
	return nil
}

// Registry resolves style IDs to definitions. The engine performs no
// lookup itself and never checks active/inactive status; a policy
// layer upstream enforces that before calling.
type Registry interface {
	Lookup(styleID string) (Definition, bool)
}
