// Package export writes computed quotes to the formats a workshop
// actually hands around: PDF quote documents, QR piece labels, Excel
// workbooks and DXF sheet layouts.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/wajenzi/fundicut/internal/model"
	"github.com/wajenzi/fundicut/internal/pricing"
)

// pieceColor represents an RGB color for a placed piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors keeps neighbouring pieces visually distinct on the
// sheet layout diagrams.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportQuotePDF generates the quote document for a computed project:
// a summary page, one page per fundi cutting sheet, and one page per
// packed glass sheet with a visual layout diagram.
func ExportQuotePDF(path string, p model.Project) error {
	if p.Result == nil {
		return fmt.Errorf("project has no computed quote")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderSummaryPage(pdf, p)

	for i := range p.Result.FundiSheets {
		pdf.AddPage()
		renderFundiSheetPage(pdf, p.Result.FundiSheets[i], i+1)
	}

	for i := range p.Result.GlassPlans {
		plan := &p.Result.GlassPlans[i]
		for j := range plan.Sheets {
			pdf.AddPage()
			renderGlassSheetPage(pdf, plan, &plan.Sheets[j])
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderSummaryPage draws the quote overview: overall statistics,
// the item list and per-material plan breakdowns.
func renderSummaryPage(pdf *fpdf.Fpdf, p model.Project) {
	r := p.Result

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, fmt.Sprintf("Quote: %s", p.Name), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Items", fmt.Sprintf("%d", len(p.Items))},
		{"Pieces to Cut", fmt.Sprintf("%d", countPieces(r))},
		{"Stock Bars Used", fmt.Sprintf("%d", r.TotalBars())},
		{"Sheets Used", fmt.Sprintf("%d", r.TotalSheets())},
		{"Charge Method", string(r.Method)},
		{"Total Charge", pricing.FormatAmount(r.TotalCharge)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 3

	// Item list, capped so a large project cannot push the plan
	// tables off the page
	const maxItemRows = 12
	itemRows := make([][]string, 0, len(p.Items))
	for _, item := range p.Items {
		itemRows = append(itemRows, []string{
			fmt.Sprintf("%d", item.ItemID),
			item.ItemLabel,
			item.StyleID,
			itemSize(item),
			fmt.Sprintf("%d", item.UnitQuantity),
		})
	}
	truncated := 0
	if len(itemRows) > maxItemRows {
		truncated = len(itemRows) - maxItemRows
		itemRows = itemRows[:maxItemRows]
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Items", "", 0, "L", false, 0, "")
	y += 9

	y = renderTable(pdf, y,
		[]float64{12, 75, 55, 40, 18},
		[]string{"#", "Label", "Style", "Size (mm)", "Qty"},
		itemRows)

	if truncated > 0 {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 5, fmt.Sprintf("... and %d more items", truncated), "", 0, "L", false, 0, "")
		y += 6
	}

	if len(r.LinearPlans) > 0 {
		y += 3
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Bar Cutting Plans", "", 0, "L", false, 0, "")
		y += 9

		rows := make([][]string, 0, len(r.LinearPlans))
		for i := range r.LinearPlans {
			plan := &r.LinearPlans[i]
			rows = append(rows, []string{
				plan.MaterialID,
				string(plan.Shape),
				fmt.Sprintf("%d", plan.StockLengthMM),
				fmt.Sprintf("%d", plan.BarsUsed()),
				fmt.Sprintf("%d", plan.TotalPieces),
				fmt.Sprintf("%d%%", plan.WastePct),
			})
		}
		y = renderTable(pdf, y,
			[]float64{45, 38, 25, 18, 20, 20},
			[]string{"Material", "Shape", "Bar (mm)", "Bars", "Pieces", "Waste"},
			rows)
	}

	if len(r.GlassPlans) > 0 {
		y += 3
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Sheet Cutting Plans", "", 0, "L", false, 0, "")
		y += 9

		rows := make([][]string, 0, len(r.GlassPlans))
		for i := range r.GlassPlans {
			plan := &r.GlassPlans[i]
			rows = append(rows, []string{
				plan.MaterialID,
				fmt.Sprintf("%d x %d", plan.SheetWMM, plan.SheetHMM),
				fmt.Sprintf("%d", plan.TotalSheets),
				fmt.Sprintf("%d", plan.TotalPieces),
				fmt.Sprintf("%d", plan.SkippedCount),
				fmt.Sprintf("%d%%", plan.WastePct),
			})
		}
		y = renderTable(pdf, y,
			[]float64{45, 35, 18, 18, 18, 20},
			[]string{"Material", "Sheet (mm)", "Sheets", "Pieces", "Skipped", "Waste"},
			rows)
	}

	if r.SkippedPieces() > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Pieces No Sheet Could Fit", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for i := range r.GlassPlans {
			for _, piece := range r.GlassPlans[i].Skipped {
				pdf.SetXY(marginLeft+5, y)
				text := fmt.Sprintf("- Item %d %s: %s %d x %d mm",
					piece.ItemID, piece.ItemLabel, piece.ComponentName, piece.LengthMM, piece.WidthMM)
				pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
				y += 5
			}
		}
	}

	renderFooter(pdf)
}

// renderFundiSheetPage draws the ordered cut list for one material,
// bar by bar, flowing across two columns and onto extra pages when a
// plan needs many bars.
func renderFundiSheetPage(pdf *fpdf.Fpdf, sheet model.FundiCuttingSheet, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting Sheet %d: %s", sheetNum, sheet.ProfileID)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Stock bar: %d mm | Bars: %d | Pieces: %d",
		sheet.StockLengthMM, sheet.TotalBars, sheet.TotalPieces)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	colWidth := (pageWidth - marginLeft - marginRight - 10) / 2
	x := marginLeft
	y := drawAreaTop
	col := 0

	for _, bar := range sheet.Bars {
		blockH := float64(len(bar.Cuts))*5 + 16
		if y+blockH > pageHeight-marginBottom {
			col++
			if col > 1 {
				pdf.AddPage()
				col = 0
			}
			x = marginLeft + float64(col)*(colWidth+10)
			y = drawAreaTop
		}
		y = renderBarTable(pdf, x, y, colWidth, bar) + 6
	}

	renderFooter(pdf)
}

// renderBarTable draws the cut table for one bar and returns the y
// position below it.
func renderBarTable(pdf *fpdf.Fpdf, x, y, width float64, bar model.FundiBarSheet) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(x, y)
	pdf.CellFormat(width, 6, fmt.Sprintf("Bar %d", bar.BarNumber), "", 0, "L", false, 0, "")
	y += 7

	colWidths := []float64{12, 24, 24, width - 60}
	headers := []string{"Cut", "Length", "Trim", "Item"}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	cx := x
	for i, h := range headers {
		pdf.SetXY(cx, y)
		pdf.CellFormat(colWidths[i], 5, h, "1", 0, "C", true, 0, "")
		cx += colWidths[i]
	}
	y += 5

	pdf.SetFont("Helvetica", "", 8)
	for i, cut := range bar.Cuts {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			fmt.Sprintf("%d", cut.Step),
			fmt.Sprintf("%d mm", cut.CutMM),
			fmt.Sprintf("%d mm", cut.OffcutMM),
			truncateText(pdf, fmt.Sprintf("%d: %s", cut.ItemID, cut.ItemLabel), colWidths[3]-2),
		}
		cx = x
		for j, cell := range row {
			align := "C"
			if j == 3 {
				align = "L"
			}
			pdf.SetXY(cx, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, align, true, 0, "")
			cx += colWidths[j]
		}
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetXY(x, y+1)
	if bar.RemainingMM < 0 {
		pdf.SetTextColor(200, 0, 0)
		pdf.CellFormat(width, 4, fmt.Sprintf("Exceeds stock by %d mm", -bar.RemainingMM), "", 0, "L", false, 0, "")
	} else {
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(width, 4, fmt.Sprintf("Remaining: %d mm", bar.RemainingMM), "", 0, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	return y + 5
}

// renderGlassSheetPage draws a single packed sheet scaled to fit the
// page, with its placements, cut sequence and a legend.
func renderGlassSheetPage(pdf *fpdf.Fpdf, plan *model.GlassCuttingPlan, layout *model.GlassSheetLayout) {
	sheetW := float64(plan.SheetWMM)
	sheetH := float64(plan.SheetHMM)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Glass Sheet %d: %s (%d x %d mm)",
		layout.SheetIndex, plan.MaterialID, plan.SheetWMM, plan.SheetHMM)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	cutCount := len(layout.PrimaryCuts) + len(layout.SecondaryCuts)
	stats := fmt.Sprintf("Pieces: %d | Piece area: %d mm² | Waste: %d mm² | Cuts: %d",
		layout.PieceCount, layout.PieceAreaMM2, layout.WasteMM2, cutCount)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scaleX := drawWidth / sheetW
	scaleY := drawHeight / sheetH
	scale := math.Min(scaleX, scaleY)

	canvasW := sheetW * scale
	canvasH := sheetH * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background
	pdf.SetFillColor(235, 245, 250)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i := range layout.Placements {
		p := &layout.Placements[i]
		col := pieceColors[i%len(pieceColors)]
		pw := float64(p.W) * scale
		ph := float64(p.H) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Piece label (only if rectangle is large enough)
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := fmt.Sprintf("%d: %s", p.ItemID, p.ComponentName)
			dims := fmt.Sprintf("%dx%d", p.W, p.H)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawCutLines(pdf, layout, scale, offsetX, offsetY)
	drawSheetDimensions(pdf, plan, offsetX, offsetY, canvasW, canvasH)
	drawPiecesLegend(pdf, layout, offsetY+canvasH+5)
	renderFooter(pdf)
}

// drawCutLines overlays the guillotine cut sequence on the layout.
// Primary strip cuts are drawn heavier than the cross cuts inside a
// strip, and every line carries its step number.
func drawCutLines(pdf *fpdf.Fpdf, layout *model.GlassSheetLayout, scale, offsetX, offsetY float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetFont("Helvetica", "B", 6)

	draw := func(cut model.GlassCutLine, width float64) {
		pdf.SetLineWidth(width)
		pos := float64(cut.PositionMM) * scale
		from := float64(cut.FromMM) * scale
		to := float64(cut.ToMM) * scale

		if cut.Orientation == model.CutVertical {
			pdf.Line(offsetX+pos, offsetY+from, offsetX+pos, offsetY+to)
			pdf.SetXY(offsetX+pos+0.5, offsetY+from+0.5)
		} else {
			pdf.Line(offsetX+from, offsetY+pos, offsetX+to, offsetY+pos)
			pdf.SetXY(offsetX+from+0.5, offsetY+pos+0.5)
		}
		pdf.CellFormat(5, 3, fmt.Sprintf("%d", cut.Step), "", 0, "L", false, 0, "")
	}

	for _, cut := range layout.PrimaryCuts {
		draw(cut, 0.5)
	}
	for _, cut := range layout.SecondaryCuts {
		draw(cut, 0.25)
	}

	pdf.SetTextColor(0, 0, 0)
}

// drawSheetDimensions adds width and height labels outside the sheet
// rectangle.
func drawSheetDimensions(pdf *fpdf.Fpdf, plan *model.GlassCuttingPlan, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the sheet)
	widthLabel := fmt.Sprintf("%d mm", plan.SheetWMM)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the sheet, rotated)
	heightLabel := fmt.Sprintf("%d mm", plan.SheetHMM)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPiecesLegend renders a compact legend of placed pieces at the
// bottom of the sheet page.
func drawPiecesLegend(pdf *fpdf.Fpdf, layout *model.GlassSheetLayout, startY float64) {
	if len(layout.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i := range layout.Placements {
		p := &layout.Placements[i]
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%d: %s (%dx%d)", p.ItemID, p.ComponentName, p.OriginalW, p.OriginalH)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderTable draws a bordered table with a shaded header row and
// alternating row fills, returning the y position below it.
func renderTable(pdf *fpdf.Fpdf, y float64, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, truncateText(pdf, cell, colWidths[j]-2), "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}
	return y
}

// renderFooter draws the generator line at the bottom of the page.
func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by FundiCut - Workshop Cutting Optimizer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// truncateText shortens s with an ellipsis until it fits within maxW.
func truncateText(pdf *fpdf.Fpdf, s string, maxW float64) string {
	if pdf.GetStringWidth(s) <= maxW {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > maxW {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// itemSize formats an item's bounding dimensions for display.
func itemSize(item model.ProjectItem) string {
	w := item.Dimensions["W"]
	h := item.Dimensions["H"]
	switch {
	case w > 0 && h > 0:
		return fmt.Sprintf("%d x %d", w, h)
	case w > 0:
		return fmt.Sprintf("%d", w)
	case h > 0:
		return fmt.Sprintf("%d", h)
	default:
		return "-"
	}
}

// labelFontSize returns an appropriate font size based on the
// rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// countPieces returns the total piece quantity across the quote.
func countPieces(r *model.QuoteResult) int {
	total := 0
	for i := range r.Pieces {
		total += r.Pieces[i].Quantity
	}
	return total
}
