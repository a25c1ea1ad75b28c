package port

import (
	"context"
	"errors"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
)

// ErrPageOutOfRange is returned when a preview page does not exist.
var ErrPageOutOfRange = errors.New("page out of range")

// ClaimDocument is everything printed on a travel expense form.
type ClaimDocument struct {
	Traveler    entity.TravelerProfile
	Purpose     string
	Destination string
	Start       time.Time
	End         time.Time
	Summary     *entity.ExpenseSummary
	IssuedAt    time.Time
}

// SpreadsheetWriter writes the expense summary workbook to path.
type SpreadsheetWriter interface {
	WriteWorkbook(ctx context.Context, doc *ClaimDocument, path string) error
}

// PDFWriter writes the travel expense form to path.
type PDFWriter interface {
	WritePDF(ctx context.Context, doc *ClaimDocument, path string) error
}

// PreviewRenderer rasterises one page of a PDF file to PNG.
type PreviewRenderer interface {
	RenderPNG(ctx context.Context, pdfPath string, page int) ([]byte, error)
}
