// Package document renders computed claims into the travel expense
// workbook, the official PDF form and PNG previews.
package document

import (
	"errors"
	"strings"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/shopspring/decimal"
)

// ErrNoSummary is returned when a document has no computed summary.
var ErrNoSummary = errors.New("claim document has no summary")

// FormData is the claim flattened into printable rows.
type FormData struct {
	Department   string
	TravelerName string
	Position     string
	Grade        string
	Purpose      string
	Destination  string
	Start        time.Time
	End          time.Time
	IssuedAt     time.Time
	Rows         []FormRow
	Subtotals    []FormSubtotal
	Total        decimal.Decimal
	TotalText    string
	HasCapped    bool
}

// FormRow is one printed line item.
type FormRow struct {
	Sequence int
	Category string
	Label    string
	Detail   string
	Amount   decimal.Decimal
	Capped   bool
	Remarks  string
}

// FormSubtotal is one printed section subtotal.
type FormSubtotal struct {
	Title  string
	Amount decimal.Decimal
}

// NewFormData flattens doc for rendering.
func NewFormData(doc *port.ClaimDocument) (*FormData, error) {
	if doc == nil || doc.Summary == nil {
		return nil, ErrNoSummary
	}

	issued := doc.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}

	data := &FormData{
		Department:   doc.Traveler.Department,
		TravelerName: doc.Traveler.Name,
		Position:     doc.Traveler.Position,
		Grade:        doc.Traveler.Grade.String(),
		Purpose:      doc.Purpose,
		Destination:  doc.Destination,
		Start:        doc.Start,
		End:          doc.End,
		IssuedAt:     issued,
		Total:        doc.Summary.GrandTotal,
		TotalText:    doc.Summary.GrandTotalText,
	}

	for i, item := range doc.Summary.Items {
		data.Rows = append(data.Rows, FormRow{
			Sequence: i + 1,
			Category: sectionCategory(item.Section),
			Label:    item.Label,
			Detail:   item.Detail,
			Amount:   item.Amount,
			Capped:   item.CeilingExceeded,
			Remarks:  strings.Join(item.Notes, "; "),
		})
		data.HasCapped = data.HasCapped || item.CeilingExceeded
	}
	for _, sub := range doc.Summary.Subtotals {
		data.Subtotals = append(data.Subtotals, FormSubtotal{Title: sub.Section.Title(), Amount: sub.Amount})
	}
	return data, nil
}
