package entity

import "github.com/shopspring/decimal"

// Section groups line items; the numeric order is the presentation order.
type Section int

const (
	SectionPerDiem Section = iota + 1
	SectionAccommodation
	SectionTransportation
	SectionTrainingMeal
)

// AllSections lists sections in presentation order.
var AllSections = []Section{SectionPerDiem, SectionAccommodation, SectionTransportation, SectionTrainingMeal}

// Code is the stable identifier used in API payloads.
func (s Section) Code() string {
	switch s {
	case SectionPerDiem:
		return "per_diem"
	case SectionAccommodation:
		return "accommodation"
	case SectionTransportation:
		return "transportation"
	case SectionTrainingMeal:
		return "training_meal"
	default:
		return "unknown"
	}
}

// Title is the Thai heading printed on documents.
func (s Section) Title() string {
	switch s {
	case SectionPerDiem:
		return "ค่าเบี้ยเลี้ยงเดินทาง"
	case SectionAccommodation:
		return "ค่าเช่าที่พัก"
	case SectionTransportation:
		return "ค่าพาหนะ"
	case SectionTrainingMeal:
		return "ค่าอาหารและอาหารว่าง (ฝึกอบรม)"
	default:
		return "อื่น ๆ"
	}
}

// LineItem is one reimbursable amount. CeilingExceeded is informational:
// the amount has already been capped.
type LineItem struct {
	Section         Section
	Label           string
	Detail          string
	Amount          decimal.Decimal
	CeilingExceeded bool
	Notes           []string
}

// SectionSubtotal is the sum of one section's line items.
type SectionSubtotal struct {
	Section Section
	Amount  decimal.Decimal
	Count   int
}

// ExpenseSummary is the itemised result of a calculation request.
type ExpenseSummary struct {
	Items          []LineItem
	Subtotals      []SectionSubtotal
	GrandTotal     decimal.Decimal
	GrandTotalText string
}

// ItemsIn returns the items of one section in order.
func (s *ExpenseSummary) ItemsIn(section Section) []LineItem {
	var items []LineItem
	for _, item := range s.Items {
		if item.Section == section {
			items = append(items, item)
		}
	}
	return items
}

// HasCeilingExceeded reports whether any item was capped.
func (s *ExpenseSummary) HasCeilingExceeded() bool {
	for _, item := range s.Items {
		if item.CeilingExceeded {
			return true
		}
	}
	return false
}
