package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/google/uuid"
)

// Document formats
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat is returned for a format other than pdf or xlsx
var ErrUnsupportedFormat = errors.New("unsupported document format")

// GeneratedDocument is a rendered claim form on disk
type GeneratedDocument struct {
	Format      string
	FileName    string
	Path        string
	ContentType string
	GrandTotal  string
}

// DocumentService renders computed claims into forms
type DocumentService interface {
	Generate(ctx context.Context, input *ClaimInput, format string) (*GeneratedDocument, error)
	Preview(ctx context.Context, input *ClaimInput, page int) ([]byte, error)
}

type documentServiceImpl struct {
	calculation   CalculationService
	folderManager port.FolderManager
	pdfWriter     port.PDFWriter
	xlsxWriter    port.SpreadsheetWriter
	preview       port.PreviewRenderer
	now           func() time.Time
	logger        Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	calculation CalculationService,
	folderManager port.FolderManager,
	pdfWriter port.PDFWriter,
	xlsxWriter port.SpreadsheetWriter,
	preview port.PreviewRenderer,
	logger Logger,
) DocumentService {
	return &documentServiceImpl{
		calculation:   calculation,
		folderManager: folderManager,
		pdfWriter:     pdfWriter,
		xlsxWriter:    xlsxWriter,
		preview:       preview,
		now:           time.Now,
		logger:        logger,
	}
}

// Generate calculates the claim and writes it in the requested format
// into a fresh output folder.
func (s *documentServiceImpl) Generate(ctx context.Context, input *ClaimInput, format string) (*GeneratedDocument, error) {
	var contentType string
	switch format {
	case FormatPDF:
		contentType = "application/pdf"
	case FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	doc, err := s.buildDocument(ctx, input)
	if err != nil {
		return nil, err
	}

	folderName := s.folderName(doc)
	folder, err := s.folderManager.CreateFolder(ctx, folderName)
	if err != nil {
		s.logger.Error("Failed to create output folder", "folder", folderName, "error", err)
		return nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	fileName := s.folderManager.SanitizeName(fmt.Sprintf("travel_expense_%s.%s", doc.Traveler.Name, format))
	path := filepath.Join(folder, fileName)

	switch format {
	case FormatPDF:
		err = s.pdfWriter.WritePDF(ctx, doc, path)
	case FormatXLSX:
		err = s.xlsxWriter.WriteWorkbook(ctx, doc, path)
	}
	if err != nil {
		s.logger.Error("Failed to render document", "format", format, "path", path, "error", err)
		return nil, fmt.Errorf("failed to render %s: %w", format, err)
	}

	s.logger.Info("Document generated", "format", format, "path", path)
	return &GeneratedDocument{
		Format:      format,
		FileName:    fileName,
		Path:        path,
		ContentType: contentType,
		GrandTotal:  doc.Summary.GrandTotal.StringFixed(2),
	}, nil
}

// Preview renders one page of the claim's PDF form as PNG. page is
// one-based. The intermediate PDF is removed afterwards.
func (s *documentServiceImpl) Preview(ctx context.Context, input *ClaimInput, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", port.ErrPageOutOfRange, page)
	}

	generated, err := s.Generate(ctx, input, FormatPDF)
	if err != nil {
		return nil, err
	}

	folderName := filepath.Base(filepath.Dir(generated.Path))
	defer func() {
		if err := s.folderManager.Delete(context.Background(), folderName); err != nil {
			s.logger.Error("Failed to remove preview folder", "folder", folderName, "error", err)
		}
	}()

	png, err := s.preview.RenderPNG(ctx, generated.Path, page-1)
	if err != nil {
		return nil, fmt.Errorf("failed to render preview: %w", err)
	}
	return png, nil
}

func (s *documentServiceImpl) buildDocument(ctx context.Context, input *ClaimInput) (*port.ClaimDocument, error) {
	result, err := s.calculation.Calculate(ctx, input)
	if err != nil {
		return nil, err
	}
	req, err := input.ToRequest()
	if err != nil {
		return nil, err
	}
	return &port.ClaimDocument{
		Traveler:    req.Traveler,
		Purpose:     req.Trip.Purpose(),
		Destination: req.Trip.Destination(),
		Start:       req.Trip.Start(),
		End:         req.Trip.End(),
		Summary:     result.Summary,
		IssuedAt:    s.now(),
	}, nil
}

// folderName is unique per generated claim
func (s *documentServiceImpl) folderName(doc *port.ClaimDocument) string {
	return fmt.Sprintf("%s_%s_%s",
		s.now().Format("20060102_150405"),
		doc.Traveler.Name,
		uuid.NewString()[:8])
}
