package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/wajenzi/fundicut/internal/model"
)

// Label sources: where the fundi finds the piece after cutting.
const (
	SourceBar   = "bar"
	SourceSheet = "sheet"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	ItemID    int    `json:"item"`
	ItemLabel string `json:"item_label"`
	Component string `json:"component"`
	Material  string `json:"material"`
	LengthMM  int    `json:"length_mm"`
	WidthMM   int    `json:"width_mm,omitempty"`
	Source    string `json:"source"`
	Index     int    `json:"index"` // Bar number or sheet number
	Rotated   bool   `json:"rotated,omitempty"`
	XMM       int    `json:"x_mm,omitempty"`
	YMM       int    `json:"y_mm,omitempty"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per cut piece,
// laid out on a standard label sheet format (Avery 5160 / 3 columns x
// 10 rows on US Letter) so they can be stuck on pieces as they come
// off the saw.
func ExportLabels(path string, result model.QuoteResult) error {
	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for item %d: %w", label.ItemID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Item label (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	title := truncateText(pdf, fmt.Sprintf("%d: %s", info.ItemID, info.ItemLabel), textW)
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	// Component and dimensions
	dims := fmt.Sprintf("%d mm", info.LengthMM)
	if info.WidthMM > 0 {
		dims = fmt.Sprintf("%d x %d mm", info.LengthMM, info.WidthMM)
	}
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncateText(pdf, fmt.Sprintf("%s  %s", info.Component, dims), textW), "", 1, "L", false, 0, "")

	// Source stock and position info
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	var srcInfo string
	if info.Source == SourceSheet {
		srcInfo = fmt.Sprintf("Sheet %d - %s @ (%d, %d)", info.Index, info.Material, info.XMM, info.YMM)
	} else {
		srcInfo = fmt.Sprintf("Bar %d - %s", info.Index, info.Material)
	}
	pdf.CellFormat(textW, 3, truncateText(pdf, srcInfo, textW), "", 1, "L", false, 0, "")

	// Rotation indicator
	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts one label per cut piece from a quote:
// every bar allocation in the linear plans and every placement in the
// glass plans.
func CollectLabelInfos(result model.QuoteResult) []LabelInfo {
	var labels []LabelInfo
	for i := range result.LinearPlans {
		plan := &result.LinearPlans[i]
		for _, bar := range plan.Bars {
			for _, a := range bar.Allocations {
				labels = append(labels, LabelInfo{
					ItemID:    a.ItemID,
					ItemLabel: a.ItemLabel,
					Component: a.ComponentName,
					Material:  plan.MaterialID,
					LengthMM:  a.LengthMM,
					Source:    SourceBar,
					Index:     bar.BarIndex,
				})
			}
		}
	}
	for i := range result.GlassPlans {
		plan := &result.GlassPlans[i]
		for _, sheet := range plan.Sheets {
			for _, p := range sheet.Placements {
				labels = append(labels, LabelInfo{
					ItemID:    p.ItemID,
					ItemLabel: p.ItemLabel,
					Component: p.ComponentName,
					Material:  plan.MaterialID,
					LengthMM:  p.OriginalW,
					WidthMM:   p.OriginalH,
					Source:    SourceSheet,
					Index:     sheet.SheetIndex,
					Rotated:   p.Rotated,
					XMM:       p.X,
					YMM:       p.Y,
				})
			}
		}
	}
	return labels
}
