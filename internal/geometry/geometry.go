package geometry

import (
	"fmt"

	"github.com/wajenzi/fundicut/internal/formula"
	"github.com/wajenzi/fundicut/internal/model"
	"github.com/wajenzi/fundicut/internal/style"
)

// DimensionMissingError reports a mandatory bounding dimension absent
// from the request. W and H must always be supplied.
type DimensionMissingError struct {
	Name string
}

func (e *DimensionMissingError) Error() string {
	return fmt.Sprintf("required dimension %q is missing", e.Name)
}

// computed is the resolved size of a component name, recorded at its
// first occurrence so later same-named components reuse it.
type computed struct {
	length int
	width  int
}

// ComputePieces walks a style's components in declared order and
// resolves each one to a physical piece for the given dimensions.
//
// The walk maintains a growing scope seeded with the dimensions:
// every component's computed length is registered under its name, so
// later formulas can reference earlier components (e.g. "Hframe - 75").
// Components sharing a name are evaluated once; the first occurrence
// wins and later ones copy its computed size without re-evaluating.
// Negative results clamp to 0. Piece quantities are multiplied by
// unitQuantity, the number of physical units of the whole style.
func ComputePieces(def style.Definition, dims map[string]int, unitQuantity int) ([]model.Piece, error) {
	w, ok := dims["W"]
	if !ok {
		return nil, &DimensionMissingError{Name: "W"}
	}
	h, ok := dims["H"]
	if !ok {
		return nil, &DimensionMissingError{Name: "H"}
	}

	scope := formula.ScopeFrom(dims)
	firstByName := make(map[string]computed)

	pieces := make([]model.Piece, 0, len(def.Components))
	for i := range def.Components {
		c := &def.Components[i]

		var length, width int
		if prior, seen := firstByName[c.Name]; seen {
			length, width = prior.length, prior.width
		} else {
			if c.IsFrame() {
				if c.Orientation == model.OrientationHorizontal {
					length = w
				} else {
					length = h
				}
			} else {
				v, err := formula.Evaluate(c.FormulaLength, scope)
				if err != nil {
					return nil, fmt.Errorf("style %q component %q length: %w", def.StyleID, c.ComponentID, err)
				}
				length = v
			}
			if length < 0 {
				length = 0
			}

			// FILL_AREA and FILL_CUT carry a width; plain cuts do not.
			if c.Shape != model.ShapeCut {
				if c.FormulaWidth != "" {
					v, err := formula.Evaluate(c.FormulaWidth, scope)
					if err != nil {
						return nil, fmt.Errorf("style %q component %q width: %w", def.StyleID, c.ComponentID, err)
					}
					width = v
				} else {
					width = h
				}
				if width < 0 {
					width = 0
				}
			}

			firstByName[c.Name] = computed{length: length, width: width}
			scope.Set(c.Name, length)
		}

		pieces = append(pieces, model.Piece{
			ComponentID:   c.ComponentID,
			ComponentName: c.Name,
			MaterialID:    c.MaterialID,
			Shape:         c.Shape,
			LengthMM:      length,
			WidthMM:       width,
			Quantity:      c.Quantity * unitQuantity,
			OffcutMM:      c.OffcutMM,
		})
	}

	return pieces, nil
}
