package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

const (
	thaiFontFamily = "THSarabunNew"
	fallbackFont   = "Helvetica"

	pageWidth     = 190.0 // A4 minus 10mm margins
	pageBreakAt   = 260.0
	lineHeight    = 7.0
	colSeqWidth   = 14.0
	colAmountW    = 38.0
	colItemWidth  = pageWidth - colSeqWidth - colAmountW
	bodyFontSize  = 14.0
	titleFontSize = 20.0
)

// PDFRenderer draws the official travel expense form (แบบ 8708 ส่วนที่ ๑).
type PDFRenderer struct {
	fontPath     string
	boldFontPath string
	logger       *zap.Logger
}

// NewPDFRenderer creates a renderer. fontPath points at THSarabunNew.ttf;
// the bold face is looked up next to it as "THSarabunNew Bold.ttf".
func NewPDFRenderer(fontPath string, logger *zap.Logger) *PDFRenderer {
	bold := ""
	if fontPath != "" {
		bold = filepath.Join(filepath.Dir(fontPath), "THSarabunNew Bold.ttf")
	}
	return &PDFRenderer{
		fontPath:     fontPath,
		boldFontPath: bold,
		logger:       logger,
	}
}

// WritePDF implements port.PDFWriter
func (r *PDFRenderer) WritePDF(ctx context.Context, doc *port.ClaimDocument, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := NewFormData(doc)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("ใบเบิกค่าใช้จ่ายในการเดินทางไปราชการ", true)
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 15)
	family := r.registerFonts(pdf)

	w := &formWriter{pdf: pdf, family: family}
	pdf.AddPage()
	w.heading(data)
	w.narrative(data)
	w.table(data)
	w.totals(data)
	w.signature(data)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		r.logger.Error("Failed to write PDF",
			zap.String("output_path", outputPath),
			zap.Error(err))
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	r.logger.Info("Expense form PDF written",
		zap.String("traveler", data.TravelerName),
		zap.String("output_path", outputPath),
		zap.String("font", family))
	return nil
}

// registerFonts returns the family to draw with. Without the Thai font the
// core font is used and Thai glyphs will not render.
func (r *PDFRenderer) registerFonts(pdf *gofpdf.Fpdf) string {
	if r.fontPath == "" {
		r.logger.Warn("No PDF font configured, using core font")
		return fallbackFont
	}
	if _, err := os.Stat(r.fontPath); err != nil {
		r.logger.Warn("Thai font not found, using core font",
			zap.String("font_path", r.fontPath))
		return fallbackFont
	}

	pdf.AddUTF8Font(thaiFontFamily, "", r.fontPath)
	if _, err := os.Stat(r.boldFontPath); err == nil {
		pdf.AddUTF8Font(thaiFontFamily, "B", r.boldFontPath)
	} else {
		// regular face doubles as bold
		pdf.AddUTF8Font(thaiFontFamily, "B", r.fontPath)
	}
	return thaiFontFamily
}

type formWriter struct {
	pdf    *gofpdf.Fpdf
	family string
}

func (w *formWriter) font(style string, size float64) {
	w.pdf.SetFont(w.family, style, size)
}

func (w *formWriter) heading(data *FormData) {
	pdf := w.pdf
	w.font("", bodyFontSize)
	pdf.CellFormat(0, lineHeight, "แบบ 8708 ส่วนที่ ๑", "", 1, "R", false, 0, "")

	w.font("B", titleFontSize)
	pdf.CellFormat(0, 10, "ใบเบิกค่าใช้จ่ายในการเดินทางไปราชการ", "", 1, "C", false, 0, "")

	w.font("", bodyFontSize)
	if data.Department != "" {
		pdf.CellFormat(0, lineHeight, "ที่ทำการ "+data.Department, "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(0, lineHeight, "วันที่ "+ThaiDate(data.IssuedAt), "", 1, "R", false, 0, "")
	pdf.Ln(2)
	pdf.CellFormat(0, lineHeight, "เรื่อง ขออนุมัติเบิกค่าใช้จ่ายในการเดินทางไปราชการ", "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func (w *formWriter) narrative(data *FormData) {
	text := fmt.Sprintf("ตามที่ข้าพเจ้า %s ตำแหน่ง %s", orDash(data.TravelerName), orDash(data.Position))
	if data.Department != "" {
		text += " สังกัด " + data.Department
	}
	text += " ได้รับอนุมัติให้เดินทางไปราชการ"
	if data.Destination != "" {
		text += " ณ " + data.Destination
	}
	if data.Purpose != "" {
		text += " เพื่อ " + data.Purpose
	}
	if !data.Start.IsZero() && !data.End.IsZero() {
		text += fmt.Sprintf(" โดยออกเดินทางวันที่ %s และกลับถึงวันที่ %s รวมเวลาไปราชการครั้งนี้ %s",
			ThaiDateTime(data.Start), ThaiDateTime(data.End), thaiDuration(data.End.Sub(data.Start)))
	}
	text += " ข้าพเจ้าขอเบิกค่าใช้จ่ายในการเดินทางไปราชการ ดังนี้"

	w.font("", bodyFontSize)
	w.pdf.MultiCell(0, lineHeight, "        "+text, "", "L", false)
	w.pdf.Ln(3)
}

func (w *formWriter) tableHeader() {
	pdf := w.pdf
	w.font("B", bodyFontSize)
	pdf.CellFormat(colSeqWidth, lineHeight+1, "ลำดับ", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colItemWidth, lineHeight+1, "รายการ", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colAmountW, lineHeight+1, "จำนวนเงิน (บาท)", "1", 1, "C", false, 0, "")
	w.font("", bodyFontSize)
}

func (w *formWriter) table(data *FormData) {
	pdf := w.pdf
	w.tableHeader()

	left, _, _, _ := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY() > pageBreakAt {
			pdf.AddPage()
			w.tableHeader()
		}

		label := row.Label
		if row.Detail != "" {
			label += " (" + row.Detail + ")"
		}
		if row.Capped {
			label += " *"
		}

		top := pdf.GetY()
		pdf.SetXY(left+colSeqWidth, top)
		pdf.MultiCell(colItemWidth, lineHeight, label, "LR", "L", false)
		bottom := pdf.GetY()

		pdf.SetXY(left, top)
		pdf.CellFormat(colSeqWidth, bottom-top, fmt.Sprintf("%d", row.Sequence), "LR", 0, "C", false, 0, "")
		pdf.SetXY(left+colSeqWidth+colItemWidth, top)
		pdf.CellFormat(colAmountW, bottom-top, FormatBaht(row.Amount), "LR", 1, "R", false, 0, "")
		pdf.Line(left, bottom, left+pageWidth, bottom)
		pdf.SetXY(left, bottom)
	}
}

func (w *formWriter) totals(data *FormData) {
	pdf := w.pdf
	w.font("B", bodyFontSize)
	pdf.CellFormat(colSeqWidth+colItemWidth, lineHeight+1, "รวมทั้งสิ้น", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colAmountW, lineHeight+1, FormatBaht(data.Total), "1", 1, "R", false, 0, "")

	w.font("", bodyFontSize)
	pdf.CellFormat(0, lineHeight+1, "จำนวนเงิน (ตัวอักษร) ("+data.TotalText+")", "1", 1, "C", false, 0, "")

	if len(data.Subtotals) > 0 {
		pdf.Ln(2)
		for _, sub := range data.Subtotals {
			pdf.CellFormat(colSeqWidth+colItemWidth, lineHeight, sub.Title, "", 0, "R", false, 0, "")
			pdf.CellFormat(colAmountW, lineHeight, FormatBaht(sub.Amount), "", 1, "R", false, 0, "")
		}
	}
	if data.HasCapped {
		pdf.Ln(1)
		pdf.CellFormat(0, lineHeight, "* เบิกได้ไม่เกินอัตราที่กำหนด", "", 1, "L", false, 0, "")
	}
}

func (w *formWriter) signature(data *FormData) {
	pdf := w.pdf
	if pdf.GetY() > pageBreakAt-20 {
		pdf.AddPage()
	}
	pdf.Ln(8)
	w.font("", bodyFontSize)
	pdf.CellFormat(0, lineHeight, "ลงชื่อ ........................................ ผู้ขอรับเงิน", "", 1, "R", false, 0, "")
	pdf.CellFormat(0, lineHeight, "("+orDash(data.TravelerName)+")", "", 1, "R", false, 0, "")
	if data.Position != "" {
		pdf.CellFormat(0, lineHeight, "ตำแหน่ง "+data.Position, "", 1, "R", false, 0, "")
	}
}

// thaiDuration renders a trip length as "2 วัน 5 ชั่วโมง".
func thaiDuration(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	switch {
	case days == 0:
		return fmt.Sprintf("%d ชั่วโมง", hours)
	case hours == 0:
		return fmt.Sprintf("%d วัน", days)
	default:
		return fmt.Sprintf("%d วัน %d ชั่วโมง", days, hours)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Verify interface compliance
var _ port.PDFWriter = (*PDFRenderer)(nil)
