package document

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// ErrPageOutOfRange is returned when the requested page does not exist.
var ErrPageOutOfRange = port.ErrPageOutOfRange

// DefaultPreviewDPI renders a readable A4 page without excessive size.
const DefaultPreviewDPI = 110.0

// PreviewRenderer rasterises generated PDFs with MuPDF.
type PreviewRenderer struct {
	dpi    float64
	logger *zap.Logger
}

// NewPreviewRenderer creates a renderer; dpi <= 0 uses DefaultPreviewDPI.
func NewPreviewRenderer(dpi float64, logger *zap.Logger) *PreviewRenderer {
	if dpi <= 0 {
		dpi = DefaultPreviewDPI
	}
	return &PreviewRenderer{dpi: dpi, logger: logger}
}

// RenderPNG implements port.PreviewRenderer. Pages are zero-based.
func (r *PreviewRenderer) RenderPNG(ctx context.Context, pdfPath string, page int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("PDF file not found: %s", pdfPath)
	}

	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if page < 0 || page >= doc.NumPage() {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, doc.NumPage())
	}

	img, err := doc.ImageDPI(page, r.dpi)
	if err != nil {
		r.logger.Warn("Failed to rasterise page",
			zap.String("pdf_path", pdfPath),
			zap.Int("page", page),
			zap.Error(err))
		return nil, fmt.Errorf("failed to render page %d: %w", page, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	r.logger.Debug("Rendered preview",
		zap.Int("page", page),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Verify interface compliance
var _ port.PreviewRenderer = (*PreviewRenderer)(nil)
