package style

import "github.com/wajenzi/fundicut/internal/model"

// Built-in styles covering the common workshop products. Custom
// catalogs layer on top of these.
var BuiltinStyles = []Definition{
	{
		StyleID: "sliding-window-2t",
		Name:    "Sliding Window (2 Track)",
		Components: []Component{
			{
				ComponentID: "outer-top",
				Name:        "Wframe",
				Shape:       model.ShapeCut,
				MaterialID:  "ALU-38",
				Quantity:    2,
				Orientation: model.OrientationHorizontal,
				OffcutMM:    5,
			},
			{
				ComponentID: "outer-side",
				Name:        "Hframe",
				Shape:       model.ShapeCut,
				MaterialID:  "ALU-38",
				Quantity:    2,
				Orientation: model.OrientationVertical,
				OffcutMM:    5,
			},
			{
				ComponentID:   "sash-vertical",
				Name:          "Hsash",
				Shape:         model.ShapeCut,
				MaterialID:    "ALU-SASH",
				Quantity:      4,
				FormulaLength: "Hframe - 75",
				OffcutMM:      5,
			},
			{
				ComponentID:   "sash-horizontal",
				Name:          "Wsash",
				Shape:         model.ShapeCut,
				MaterialID:    "ALU-SASH",
				Quantity:      4,
				FormulaLength: "W/2 + 25",
				OffcutMM:      5,
			},
			{
				ComponentID:   "glass-pane",
				Name:          "glass",
				Shape:         model.ShapeFillArea,
				MaterialID:    "GLASS-4",
				Quantity:      2,
				FormulaLength: "W/2 - 45",
				FormulaWidth:  "Hsash - 90",
			},
		},
	},
	{
		StyleID: "casement-window",
		Name:    "Casement Window",
		Components: []Component{
			{
				ComponentID: "frame-top",
				Name:        "Wframe",
				Shape:       model.ShapeCut,
				MaterialID:  "SHS-25",
				Quantity:    2,
				Orientation: model.OrientationHorizontal,
				OffcutMM:    5,
			},
			{
				ComponentID: "frame-side",
				Name:        "Hframe",
				Shape:       model.ShapeCut,
				MaterialID:  "SHS-25",
				Quantity:    2,
				Orientation: model.OrientationVertical,
				OffcutMM:    5,
			},
			{
				ComponentID:   "mullion",
				Name:          "mullion",
				Shape:         model.ShapeCut,
				MaterialID:    "SHS-25",
				Quantity:      1,
				FormulaLength: "Hframe - 50",
				OffcutMM:      5,
			},
			{
				ComponentID:   "glass-pane",
				Name:          "glass",
				Shape:         model.ShapeFillArea,
				MaterialID:    "GLASS-4",
				Quantity:      2,
				FormulaLength: "(W - 3*25)/2",
				FormulaWidth:  "Hframe - 50",
			},
			{
				ComponentID:   "beading",
				Name:          "beading",
				Shape:         model.ShapeFillCut,
				MaterialID:    "BEAD-12",
				Quantity:      4,
				FormulaLength: "(W - 3*25)/2 + Hframe - 50",
				OffcutMM:      3,
			},
		},
	},
	{
		StyleID: "louvre-window",
		Name:    "Louvre Window",
		Components: []Component{
			{
				ComponentID: "frame-top",
				Name:        "Wframe",
				Shape:       model.ShapeCut,
				MaterialID:  "LOUVRE-FRAME",
				Quantity:    2,
				Orientation: model.OrientationHorizontal,
				OffcutMM:    5,
			},
			{
				ComponentID: "frame-side",
				Name:        "Hframe",
				Shape:       model.ShapeCut,
				MaterialID:  "LOUVRE-FRAME",
				Quantity:    2,
				Orientation: model.OrientationVertical,
				OffcutMM:    5,
			},
			{
				ComponentID:   "blade",
				Name:          "blade",
				Shape:         model.ShapeFillArea,
				MaterialID:    "GLASS-6",
				Quantity:      6,
				FormulaLength: "W - 90",
				FormulaWidth:  "(H - 60)/blades + 25",
			},
		},
		Variables: map[string]string{
			"blades": "Number of glass blades per panel",
		},
	},
	{
		StyleID: "swing-door",
		Name:    "Swing Door (Single Leaf)",
		Components: []Component{
			{
				ComponentID: "frame-side",
				Name:        "Hframe",
				Shape:       model.ShapeCut,
				MaterialID:  "SHS-38",
				Quantity:    2,
				Orientation: model.OrientationVertical,
				OffcutMM:    5,
			},
			{
				ComponentID: "frame-top",
				Name:        "Wframe",
				Shape:       model.ShapeCut,
				MaterialID:  "SHS-38",
				Quantity:    1,
				Orientation: model.OrientationHorizontal,
				OffcutMM:    5,
			},
			{
				ComponentID:   "leaf-vertical",
				Name:          "Hleaf",
				Shape:         model.ShapeCut,
				MaterialID:    "SHS-25",
				Quantity:      2,
				FormulaLength: "Hframe - 10",
				OffcutMM:      5,
			},
			{
				ComponentID:   "leaf-rail",
				Name:          "Wleaf",
				Shape:         model.ShapeCut,
				MaterialID:    "SHS-25",
				Quantity:      3,
				FormulaLength: "W - 86",
				OffcutMM:      5,
			},
			{
				// Seals run the same length as the leaf verticals and
				// share their name, so they are never re-derived.
				ComponentID: "seal-vertical",
				Name:        "Hleaf",
				Shape:       model.ShapeFillCut,
				MaterialID:  "RUBBER-SEAL",
				Quantity:    2,
			},
			{
				ComponentID:   "panel",
				Name:          "panel",
				Shape:         model.ShapeFillArea,
				MaterialID:    "STEEL-SHEET",
				Quantity:      2,
				FormulaLength: "W - 86",
				FormulaWidth:  "(Hleaf - 75)/2",
			},
		},
	},
}

// GetBuiltin returns a built-in style by id.
func GetBuiltin(styleID string) (Definition, bool) {
	for _, d := range BuiltinStyles {
		if d.StyleID == styleID {
			return d, true
		}
	}
	return Definition{}, false
}

// BuiltinIDs returns the ids of all built-in styles.
func BuiltinIDs() []string {
	var ids []string
	for _, d := range BuiltinStyles {
		ids = append(ids, d.StyleID)
	}
	return ids
}
