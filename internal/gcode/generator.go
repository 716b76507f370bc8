// Package gcode writes cutting-table programs for packed glass sheets.
// A scoring head travels above the sheet, drops onto the glass at the
// start of each cut line and scores it end to end in plan step order.
package gcode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wajenzi/fundicut/internal/model"
)

// Settings drive program generation for one table.
type Settings struct {
	Profile  string
	FeedRate float64 // mm/min while scoring
	TravelZ  float64 // head height between scores, mm
	ScoreZ   float64 // head height while scoring, mm
}

// DefaultSettings returns parameters that suit a typical scoring table.
func DefaultSettings() Settings {
	return Settings{
		Profile:  "generic",
		FeedRate: 3000,
		TravelZ:  10,
		ScoreZ:   0,
	}
}

// Generator produces programs from a glass cutting plan.
type Generator struct {
	Settings Settings
	profile  Profile
}

func New(settings Settings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  GetProfile(settings.Profile),
	}
}

// GenerateAll produces one program per packed sheet.
func (g *Generator) GenerateAll(plan model.GlassCuttingPlan) []string {
	var programs []string
	for i := range plan.Sheets {
		programs = append(programs, g.GenerateSheet(plan, plan.Sheets[i]))
	}
	return programs
}

// GenerateSheet produces the program for a single sheet. Primary cuts
// release the strips first, then secondary cuts separate the pieces,
// following the plan's step numbering. The table origin is the sheet's
// bottom-left corner, so plan coordinates are mirrored vertically.
func (g *Generator) GenerateSheet(plan model.GlassCuttingPlan, layout model.GlassSheetLayout) string {
	var b strings.Builder

	g.writeHeader(&b, plan, layout)

	for _, cut := range orderedCuts(layout) {
		x0, y0, x1, y1 := cutSegment(cut, plan.SheetHMM)
		g.writeScore(&b, cut, x0, y0, x1, y1)
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, plan model.GlassCuttingPlan, layout model.GlassSheetLayout) {
	cuts := len(layout.PrimaryCuts) + len(layout.SecondaryCuts)

	b.WriteString(g.comment(fmt.Sprintf("FundiCut program - sheet %d, material %s", layout.SheetIndex, layout.MaterialID)))
	b.WriteString(g.comment(fmt.Sprintf("Stock: %d x %d mm", plan.SheetWMM, plan.SheetHMM)))
	b.WriteString(g.comment(fmt.Sprintf("Pieces: %d, Cuts: %d", layout.PieceCount, cuts)))
	for _, w := range FormatConflictWarnings(FindConflicts(layout)) {
		b.WriteString(g.comment("WARNING: " + w))
	}
	b.WriteString("\n")

	for _, code := range g.profile.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString(fmt.Sprintf("%s Z%s\n", g.profile.RapidMove, g.format(g.Settings.TravelZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeScore(b *strings.Builder, cut model.GlassCutLine, x0, y0, x1, y1 float64) {
	p := g.profile

	b.WriteString(g.comment(fmt.Sprintf("Step %d: %s", cut.Step, cut.Description)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(x0), g.format(y0)))
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.FeedMove, g.format(g.Settings.ScoreZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(x1), g.format(y1), g.format(g.Settings.FeedRate)))
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(g.Settings.TravelZ)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString(g.comment("Job complete"))
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

// orderedCuts merges primary and secondary cuts into step order.
func orderedCuts(layout model.GlassSheetLayout) []model.GlassCutLine {
	cuts := make([]model.GlassCutLine, 0, len(layout.PrimaryCuts)+len(layout.SecondaryCuts))
	cuts = append(cuts, layout.PrimaryCuts...)
	cuts = append(cuts, layout.SecondaryCuts...)
	sort.Slice(cuts, func(i, j int) bool {
		return cuts[i].Step < cuts[j].Step
	})
	return cuts
}

// cutSegment maps a cut line to table coordinates. Vertical cuts run
// bottom to top, horizontal cuts left to right.
func cutSegment(cut model.GlassCutLine, sheetH int) (x0, y0, x1, y1 float64) {
	if cut.Orientation == model.CutVertical {
		return float64(cut.PositionMM), float64(sheetH - cut.ToMM),
			float64(cut.PositionMM), float64(sheetH - cut.FromMM)
	}
	return float64(cut.FromMM), float64(sheetH - cut.PositionMM),
		float64(cut.ToMM), float64(sheetH - cut.PositionMM)
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf(fmt.Sprintf("%%.%df", g.profile.DecimalPlaces), v)
}
