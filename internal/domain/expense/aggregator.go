// Package expense composes calculator output into an itemised claim summary.
package expense

import (
	"github.com/garyjia/gov-travel-expense/internal/domain/bahttext"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Sections holds the line items produced by each calculator.
type Sections struct {
	PerDiem        []entity.LineItem
	Accommodation  []entity.LineItem
	Transportation []entity.LineItem
	TrainingMeal   []entity.LineItem
}

func (s Sections) bySection() [][]entity.LineItem {
	return [][]entity.LineItem{s.PerDiem, s.Accommodation, s.Transportation, s.TrainingMeal}
}

// Aggregator builds expense summaries.
type Aggregator struct{}

// NewAggregator creates an aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate concatenates the sections in presentation order, sums the
// grand total and renders it in Thai words. It fails with
// entity.ErrEmptyClaim when every section is empty.
func (a *Aggregator) Aggregate(s Sections) (*entity.ExpenseSummary, error) {
	lists := s.bySection()

	count := 0
	for _, items := range lists {
		count += len(items)
	}
	if count == 0 {
		return nil, entity.ErrEmptyClaim
	}

	summary := &entity.ExpenseSummary{Items: make([]entity.LineItem, 0, count)}
	total := decimal.Zero
	for i, items := range lists {
		section := entity.AllSections[i]
		subtotal := decimal.Zero
		for _, item := range items {
			item.Section = section
			item.Amount = entity.RoundMoney(item.Amount)
			summary.Items = append(summary.Items, item)
			subtotal = subtotal.Add(item.Amount)
		}
		if len(items) > 0 {
			summary.Subtotals = append(summary.Subtotals, entity.SectionSubtotal{
				Section: section,
				Amount:  subtotal,
				Count:   len(items),
			})
		}
		total = total.Add(subtotal)
	}

	summary.GrandTotal = entity.RoundMoney(total)
	summary.GrandTotalText = bahttext.Convert(summary.GrandTotal)
	return summary, nil
}
