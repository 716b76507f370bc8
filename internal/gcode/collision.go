package gcode

import (
	"fmt"

	"github.com/wajenzi/fundicut/internal/model"
)

// Conflict records a cut line that would run through a placed piece
// instead of alongside it. A layout produced by the packer never has
// these, but a hand-edited plan can, and scoring through the middle of
// a pane ruins it.
type Conflict struct {
	SheetIndex  int
	Step        int
	ItemID      int
	ItemLabel   string
	Component   string
	Description string
}

// FindConflicts checks every cut line of a sheet layout against every
// placement and returns the cuts that cross a piece's interior. Cuts
// along a piece edge are the normal case and are not conflicts.
func FindConflicts(layout model.GlassSheetLayout) []Conflict {
	var conflicts []Conflict

	check := func(cuts []model.GlassCutLine) {
		for _, cut := range cuts {
			for _, pl := range layout.Placements {
				if !cutCrossesPlacement(cut, pl) {
					continue
				}
				conflicts = append(conflicts, Conflict{
					SheetIndex:  layout.SheetIndex,
					Step:        cut.Step,
					ItemID:      pl.ItemID,
					ItemLabel:   pl.ItemLabel,
					Component:   pl.ComponentName,
					Description: cut.Description,
				})
			}
		}
	}

	check(layout.PrimaryCuts)
	check(layout.SecondaryCuts)

	return conflicts
}

// cutCrossesPlacement reports whether the cut line passes through the
// strict interior of the placement. Both are in plan coordinates with
// the origin at the sheet's top-left corner.
func cutCrossesPlacement(cut model.GlassCutLine, pl model.GlassPlacement) bool {
	switch cut.Orientation {
	case model.CutVertical:
		if cut.PositionMM <= pl.X || cut.PositionMM >= pl.X+pl.W {
			return false
		}
		return max(cut.FromMM, pl.Y) < min(cut.ToMM, pl.Y+pl.H)
	case model.CutHorizontal:
		if cut.PositionMM <= pl.Y || cut.PositionMM >= pl.Y+pl.H {
			return false
		}
		return max(cut.FromMM, pl.X) < min(cut.ToMM, pl.X+pl.W)
	default:
		return false
	}
}

// FormatConflictWarnings renders conflicts as one-line warnings for
// program headers and logs.
func FormatConflictWarnings(conflicts []Conflict) []string {
	warnings := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		warnings = append(warnings, fmt.Sprintf(
			"sheet %d step %d cuts through item %d %s of %q",
			c.SheetIndex, c.Step, c.ItemID, c.Component, c.ItemLabel))
	}
	return warnings
}
