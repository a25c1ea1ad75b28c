package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func sampleDocument() *port.ClaimDocument {
	bkk, _ := time.LoadLocation("Asia/Bangkok")
	if bkk == nil {
		bkk = time.UTC
	}
	return &port.ClaimDocument{
		Traveler: entity.TravelerProfile{
			Name:       "สมชาย ใจดี",
			Position:   "นักวิชาการ",
			Grade:      entity.GradeC1ToC8,
			Department: "กรมบัญชีกลาง",
		},
		Purpose:     "ประชุมสัมมนา",
		Destination: "เชียงใหม่",
		Start:       time.Date(2025, 3, 3, 8, 0, 0, 0, bkk),
		End:         time.Date(2025, 3, 5, 18, 0, 0, 0, bkk),
		IssuedAt:    time.Date(2025, 3, 10, 9, 0, 0, 0, bkk),
		Summary: &entity.ExpenseSummary{
			Items: []entity.LineItem{
				{
					Section: entity.SectionPerDiem,
					Label:   "ค่าเบี้ยเลี้ยงเดินทาง",
					Detail:  "3 วัน x 240 บาท",
					Amount:  decimal.NewFromInt(720),
				},
				{
					Section:         entity.SectionAccommodation,
					Label:           "ค่าเช่าที่พัก",
					Detail:          "1 คืน",
					Amount:          decimal.NewFromInt(1500),
					CeilingExceeded: true,
					Notes:           []string{"เบิกได้ไม่เกินอัตราที่กำหนด"},
				},
			},
			Subtotals: []entity.SectionSubtotal{
				{Section: entity.SectionPerDiem, Amount: decimal.NewFromInt(720), Count: 1},
				{Section: entity.SectionAccommodation, Amount: decimal.NewFromInt(1500), Count: 1},
			},
			GrandTotal:     decimal.NewFromInt(2220),
			GrandTotalText: "สองพันสองร้อยยี่สิบบาทถ้วน",
		},
	}
}

func TestThaiDates(t *testing.T) {
	ts := time.Date(2025, 3, 3, 8, 30, 0, 0, time.UTC)

	assert.Equal(t, "3 มีนาคม 2568", ThaiDate(ts))
	assert.Equal(t, "3 มี.ค. 68", ThaiShortDate(ts))
	assert.Equal(t, "3 มีนาคม 2568 เวลา 08:30 น.", ThaiDateTime(ts))
}

func TestFormatBaht(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"720", "720.00"},
		{"1500.5", "1,500.50"},
		{"1234567.891", "1,234,567.89"},
		{"-2500", "-2,500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBaht(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestThaiDuration(t *testing.T) {
	assert.Equal(t, "5 ชั่วโมง", thaiDuration(5*time.Hour))
	assert.Equal(t, "2 วัน", thaiDuration(48*time.Hour))
	assert.Equal(t, "2 วัน 10 ชั่วโมง", thaiDuration(58*time.Hour))
}

func TestNewFormData(t *testing.T) {
	t.Run("flattens summary rows", func(t *testing.T) {
		data, err := NewFormData(sampleDocument())
		require.NoError(t, err)

		require.Len(t, data.Rows, 2)
		assert.Equal(t, 1, data.Rows[0].Sequence)
		assert.Equal(t, "เบี้ยเลี้ยง", data.Rows[0].Category)
		assert.Equal(t, "ที่พัก", data.Rows[1].Category)
		assert.True(t, data.Rows[1].Capped)
		assert.Equal(t, "เบิกได้ไม่เกินอัตราที่กำหนด", data.Rows[1].Remarks)
		assert.True(t, data.HasCapped)
		require.Len(t, data.Subtotals, 2)
		assert.Equal(t, "ค่าเช่าที่พัก", data.Subtotals[1].Title)
		assert.Equal(t, "C1-C8", data.Grade)
	})

	t.Run("requires a summary", func(t *testing.T) {
		_, err := NewFormData(&port.ClaimDocument{})
		assert.ErrorIs(t, err, ErrNoSummary)

		_, err = NewFormData(nil)
		assert.ErrorIs(t, err, ErrNoSummary)
	})

	t.Run("defaults issue date to now", func(t *testing.T) {
		doc := sampleDocument()
		doc.IssuedAt = time.Time{}
		data, err := NewFormData(doc)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), data.IssuedAt, time.Minute)
	})
}

func TestExcelFiller_WriteWorkbook(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	raw := excelize.Options{RawCellValue: true}

	t.Run("builds a fresh workbook", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "claim.xlsx")
		filler, err := NewExcelFiller("", "TH Sarabun New", logger)
		require.NoError(t, err)

		require.NoError(t, filler.WriteWorkbook(ctx, sampleDocument(), out))
		assert.FileExists(t, out)

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()

		cell := func(ref string) string {
			v, err := f.GetCellValue(summarySheet, ref, raw)
			require.NoError(t, err)
			return v
		}

		assert.Equal(t, "สมชาย ใจดี", cell(cellName))
		assert.Equal(t, "นักวิชาการ", cell(cellPosition))
		assert.Equal(t, "กรมบัญชีกลาง", cell(cellDepartment))
		assert.Equal(t, "เชียงใหม่", cell(cellDestination))
		assert.Equal(t, "3 มีนาคม 2568 เวลา 08:00 น.", cell(cellStart))
		assert.Equal(t, "ลำดับ", cell("A8"))

		assert.Equal(t, "1", cell("A9"))
		assert.Equal(t, "เบี้ยเลี้ยง", cell("B9"))
		assert.Equal(t, "ค่าเบี้ยเลี้ยงเดินทาง", cell("C9"))
		assert.Equal(t, "720", cell("E9"))
		assert.Equal(t, "เบิกได้ไม่เกินอัตราที่กำหนด", cell("F10"))

		assert.Equal(t, "รวมค่าเบี้ยเลี้ยงเดินทาง", cell("D12"))
		assert.Equal(t, "รวมค่าเช่าที่พัก", cell("D13"))
		assert.Equal(t, "รวมทั้งสิ้น", cell("D14"))
		assert.Equal(t, "2220", cell("E14"))
		assert.Equal(t, "(สองพันสองร้อยยี่สิบบาทถ้วน)", cell("C15"))
	})

	t.Run("fills an existing template", func(t *testing.T) {
		dir := t.TempDir()
		tmpl := filepath.Join(dir, "template.xlsx")
		src := excelize.NewFile()
		require.NoError(t, src.SetSheetName("Sheet1", "Form"))
		require.NoError(t, src.SetCellValue("Form", "H1", "keep"))
		require.NoError(t, src.SaveAs(tmpl))
		require.NoError(t, src.Close())

		filler, err := NewExcelFiller(tmpl, "", logger)
		require.NoError(t, err)

		out := filepath.Join(dir, "claim.xlsx")
		require.NoError(t, filler.WriteWorkbook(ctx, sampleDocument(), out))

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()

		name, _ := f.GetCellValue("Form", cellName)
		keep, _ := f.GetCellValue("Form", "H1")
		assert.Equal(t, "สมชาย ใจดี", name)
		assert.Equal(t, "keep", keep)
	})

	t.Run("missing template is rejected", func(t *testing.T) {
		_, err := NewExcelFiller(filepath.Join(t.TempDir(), "missing.xlsx"), "", logger)
		assert.Error(t, err)
	})

	t.Run("document without summary", func(t *testing.T) {
		filler, err := NewExcelFiller("", "", logger)
		require.NoError(t, err)
		err = filler.WriteWorkbook(ctx, &port.ClaimDocument{}, filepath.Join(t.TempDir(), "x.xlsx"))
		assert.ErrorIs(t, err, ErrNoSummary)
	})
}

func TestPDFRenderer_WritePDF(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("falls back to core font when Thai font is missing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "claim.pdf")
		r := NewPDFRenderer(filepath.Join(t.TempDir(), "THSarabunNew.ttf"), logger)

		require.NoError(t, r.WritePDF(ctx, sampleDocument(), out))

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
	})

	t.Run("embeds the Thai font when available", func(t *testing.T) {
		fontPath := filepath.Join("..", "..", "..", "assets", "fonts", "THSarabunNew.ttf")
		if _, err := os.Stat(fontPath); os.IsNotExist(err) {
			t.Skip("Thai font not found, skipping test")
		}
		out := filepath.Join(t.TempDir(), "claim.pdf")
		r := NewPDFRenderer(fontPath, logger)

		require.NoError(t, r.WritePDF(ctx, sampleDocument(), out))
		assert.FileExists(t, out)
	})

	t.Run("long claims spill onto more pages", func(t *testing.T) {
		doc := sampleDocument()
		for i := 0; i < 60; i++ {
			doc.Summary.Items = append(doc.Summary.Items, entity.LineItem{
				Section: entity.SectionTransportation,
				Label:   "ค่าพาหนะ",
				Detail:  "taxi",
				Amount:  decimal.NewFromInt(100),
			})
		}
		out := filepath.Join(t.TempDir(), "long.pdf")
		r := NewPDFRenderer("", logger)
		require.NoError(t, r.WritePDF(ctx, doc, out))

		preview := NewPreviewRenderer(0, logger)
		_, err := preview.RenderPNG(ctx, out, 1)
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		r := NewPDFRenderer("", logger)
		err := r.WritePDF(cctx, sampleDocument(), filepath.Join(t.TempDir(), "x.pdf"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPreviewRenderer_RenderPNG(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	out := filepath.Join(t.TempDir(), "claim.pdf")
	require.NoError(t, NewPDFRenderer("", logger).WritePDF(ctx, sampleDocument(), out))

	r := NewPreviewRenderer(72, logger)

	t.Run("renders first page", func(t *testing.T) {
		img, err := r.RenderPNG(ctx, out, 0)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))
	})

	t.Run("rejects pages out of range", func(t *testing.T) {
		_, err := r.RenderPNG(ctx, out, 5)
		assert.ErrorIs(t, err, ErrPageOutOfRange)

		_, err = r.RenderPNG(ctx, out, -1)
		assert.ErrorIs(t, err, ErrPageOutOfRange)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := r.RenderPNG(ctx, filepath.Join(t.TempDir(), "none.pdf"), 0)
		assert.Error(t, err)
	})
}
