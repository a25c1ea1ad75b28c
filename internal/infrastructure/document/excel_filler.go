package document

import (
	"context"
	"fmt"
	"os"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Workbook layout
const (
	summarySheet = "สรุปค่าใช้จ่าย"

	cellTitle       = "A1"
	cellName        = "B3"
	cellPosition    = "E3"
	cellDepartment  = "B4"
	cellGrade       = "E4"
	cellDestination = "B5"
	cellPurpose     = "E5"
	cellStart       = "B6"
	cellEnd         = "E6"

	headerRow    = 8
	dataRowStart = 9

	colSequence = "A"
	colCategory = "B"
	colLabel    = "C"
	colDetail   = "D"
	colAmount   = "E"
	colRemarks  = "F"

	numFmtThousands = 4 // #,##0.00
)

var labelCells = map[string]string{
	"A3": "ชื่อ",
	"D3": "ตำแหน่ง",
	"A4": "สังกัด",
	"D4": "ระดับ",
	"A5": "ไปราชการ ณ",
	"D5": "วัตถุประสงค์",
	"A6": "ออกเดินทาง",
	"D6": "กลับถึง",
}

var tableHeader = []string{"ลำดับ", "ประเภท", "รายการ", "รายละเอียด", "จำนวนเงิน (บาท)", "หมายเหตุ"}

// ExcelFiller writes the expense summary workbook. With a template the
// template's first sheet is filled in place; otherwise a fresh workbook
// is built.
type ExcelFiller struct {
	templatePath string
	fontName     string
	logger       *zap.Logger
}

// NewExcelFiller creates an ExcelFiller. A configured template that does
// not exist is an error; an empty templatePath selects a fresh workbook.
func NewExcelFiller(templatePath, fontName string, logger *zap.Logger) (*ExcelFiller, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err != nil {
			return nil, fmt.Errorf("template file not found: %s", templatePath)
		}
	}
	return &ExcelFiller{
		templatePath: templatePath,
		fontName:     fontName,
		logger:       logger,
	}, nil
}

// WriteWorkbook implements port.SpreadsheetWriter
func (f *ExcelFiller) WriteWorkbook(ctx context.Context, doc *port.ClaimDocument, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := NewFormData(doc)
	if err != nil {
		return err
	}

	file, sheet, err := f.open()
	if err != nil {
		return err
	}
	defer file.Close()

	if err := f.fillHeader(file, sheet, data); err != nil {
		return fmt.Errorf("failed to fill header: %w", err)
	}
	next, err := f.fillRows(file, sheet, data)
	if err != nil {
		return fmt.Errorf("failed to fill items: %w", err)
	}
	if err := f.fillTotals(file, sheet, data, next); err != nil {
		return fmt.Errorf("failed to fill totals: %w", err)
	}

	if err := file.SaveAs(outputPath); err != nil {
		f.logger.Error("Failed to save workbook",
			zap.String("output_path", outputPath),
			zap.Error(err))
		return fmt.Errorf("failed to save file: %w", err)
	}

	f.logger.Info("Expense workbook written",
		zap.String("traveler", data.TravelerName),
		zap.String("output_path", outputPath),
		zap.Int("item_count", len(data.Rows)))
	return nil
}

func (f *ExcelFiller) open() (*excelize.File, string, error) {
	if f.templatePath != "" {
		file, err := excelize.OpenFile(f.templatePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open template: %w", err)
		}
		return file, file.GetSheetName(0), nil
	}

	file := excelize.NewFile()
	if err := file.SetSheetName(file.GetSheetName(0), summarySheet); err != nil {
		_ = file.Close()
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if f.fontName != "" {
		if err := file.SetDefaultFont(f.fontName); err != nil {
			f.logger.Warn("Failed to set workbook font, Thai text may fall back to the viewer default",
				zap.String("font", f.fontName),
				zap.Error(err))
		}
	}
	_ = file.SetColWidth(summarySheet, colSequence, colSequence, 7)
	_ = file.SetColWidth(summarySheet, colCategory, colCategory, 14)
	_ = file.SetColWidth(summarySheet, colLabel, colDetail, 40)
	_ = file.SetColWidth(summarySheet, colAmount, colAmount, 16)
	_ = file.SetColWidth(summarySheet, colRemarks, colRemarks, 50)
	return file, summarySheet, nil
}

func (f *ExcelFiller) fillHeader(file *excelize.File, sheet string, data *FormData) error {
	values := map[string]interface{}{
		cellTitle:       "สรุปค่าใช้จ่ายในการเดินทางไปราชการ",
		cellName:        data.TravelerName,
		cellPosition:    data.Position,
		cellDepartment:  data.Department,
		cellGrade:       data.Grade,
		cellDestination: data.Destination,
		cellPurpose:     data.Purpose,
	}
	if !data.Start.IsZero() {
		values[cellStart] = ThaiDateTime(data.Start)
	}
	if !data.End.IsZero() {
		values[cellEnd] = ThaiDateTime(data.End)
	}
	for cell, label := range labelCells {
		values[cell] = label
	}
	for i, h := range tableHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		values[cell] = h
	}

	for cell, v := range values {
		if err := file.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}

	bold, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := file.SetCellStyle(sheet, cellTitle, cellTitle, bold); err != nil {
		return err
	}
	return file.SetCellStyle(sheet, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", colRemarks, headerRow), bold)
}

// fillRows writes one row per item and returns the next free row.
func (f *ExcelFiller) fillRows(file *excelize.File, sheet string, data *FormData) (int, error) {
	money, err := file.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return 0, err
	}

	row := dataRowStart
	for _, r := range data.Rows {
		cells := []struct {
			col   string
			value interface{}
		}{
			{colSequence, r.Sequence},
			{colCategory, r.Category},
			{colLabel, r.Label},
			{colDetail, r.Detail},
			{colAmount, r.Amount.InexactFloat64()},
			{colRemarks, r.Remarks},
		}
		for _, c := range cells {
			cell := fmt.Sprintf("%s%d", c.col, row)
			if err := file.SetCellValue(sheet, cell, c.value); err != nil {
				return 0, fmt.Errorf("failed to set %s: %w", cell, err)
			}
		}
		amountCell := fmt.Sprintf("%s%d", colAmount, row)
		if err := file.SetCellStyle(sheet, amountCell, amountCell, money); err != nil {
			return 0, err
		}
		row++
	}
	return row, nil
}

func (f *ExcelFiller) fillTotals(file *excelize.File, sheet string, data *FormData, row int) error {
	money, err := file.NewStyle(&excelize.Style{NumFmt: numFmtThousands, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row++
	for _, sub := range data.Subtotals {
		if err := f.setLabelAmount(file, sheet, row, "รวม"+sub.Title, sub.Amount.InexactFloat64(), money); err != nil {
			return err
		}
		row++
	}

	if err := f.setLabelAmount(file, sheet, row, "รวมทั้งสิ้น", data.Total.InexactFloat64(), money); err != nil {
		return err
	}
	row++

	textCell := fmt.Sprintf("%s%d", colLabel, row)
	if err := file.SetCellValue(sheet, textCell, "("+data.TotalText+")"); err != nil {
		return err
	}
	return file.MergeCell(sheet, textCell, fmt.Sprintf("%s%d", colAmount, row))
}

func (f *ExcelFiller) setLabelAmount(file *excelize.File, sheet string, row int, label string, amount float64, style int) error {
	labelCell := fmt.Sprintf("%s%d", colDetail, row)
	amountCell := fmt.Sprintf("%s%d", colAmount, row)
	if err := file.SetCellValue(sheet, labelCell, label); err != nil {
		return err
	}
	if err := file.SetCellValue(sheet, amountCell, amount); err != nil {
		return err
	}
	return file.SetCellStyle(sheet, amountCell, amountCell, style)
}

// Verify interface compliance
var _ port.SpreadsheetWriter = (*ExcelFiller)(nil)
