package calculator

import (
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
	"github.com/shopspring/decimal"
)

const (
	noteReceiptRequired   = "ต้องแนบใบเสร็จรับเงินและใบแจ้งรายการ (Folio) ประกอบการเบิก"
	noteSingleRoomReason  = "ระดับ C1-C8 ฝึกอบรม ณ สถานที่เอกชน ต้องพักคู่ หากพักเดี่ยวต้องมีหนังสือรับรองเหตุผลความจำเป็น"
	noteVehicleSleep      = "พักแรมบนยานพาหนะ ไม่มีสิทธิ์เบิกค่าเช่าที่พัก"
	noteStateVenueCeiling = "ฝึกอบรม ณ สถานที่ราชการ ใช้เพดานค่าเช่าที่พักทั่วไป"
)

// AccommodationQuote is the reimbursement of one accommodation entry.
type AccommodationQuote struct {
	Entry           entity.AccommodationEntry `json:"-"`
	NightlyRate     decimal.Decimal           `json:"nightly_rate"` // paid per night
	Ceiling         decimal.Decimal           `json:"ceiling"`      // zero when no ceiling applies
	Amount          decimal.Decimal           `json:"amount"`
	CeilingExceeded bool                      `json:"ceiling_exceeded"`
	Notes           []string                  `json:"notes,omitempty"`
}

// LineItem converts the quote into an accommodation line item.
func (q AccommodationQuote) LineItem() entity.LineItem {
	label := "ค่าเช่าที่พัก"
	if q.Entry.Description != "" {
		label = fmt.Sprintf("%s (%s)", label, q.Entry.Description)
	}

	var detail string
	switch q.Entry.Method {
	case entity.AccommodationLumpSum:
		detail = fmt.Sprintf("เหมาจ่าย %s บาท/คืน x %d คืน", q.NightlyRate.StringFixed(2), q.Entry.Nights)
	case entity.AccommodationActualReceipt:
		detail = fmt.Sprintf("จ่ายจริง (%s) %s บาท/คืน x %d คืน เพดาน %s บาท/คืน",
			roomLabel(q.Entry.RoomType), q.NightlyRate.StringFixed(2), q.Entry.Nights, q.Ceiling.StringFixed(2))
	default:
		detail = "พักแรมบนยานพาหนะ"
	}

	return entity.LineItem{
		Section:         entity.SectionAccommodation,
		Label:           label,
		Detail:          detail,
		Amount:          q.Amount,
		CeilingExceeded: q.CeilingExceeded,
		Notes:           append([]string(nil), q.Notes...),
	}
}

// AccommodationCalculator computes lodging reimbursements.
type AccommodationCalculator struct {
	tables *ratetable.Tables
}

// NewAccommodationCalculator creates an accommodation calculator over tables.
func NewAccommodationCalculator(tables *ratetable.Tables) *AccommodationCalculator {
	return &AccommodationCalculator{tables: tables}
}

// Calculate quotes every entry and returns one line item per entry.
func (c *AccommodationCalculator) Calculate(entries []entity.AccommodationEntry, traveler entity.TravelerProfile) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(entries))
	for i, entry := range entries {
		q, err := c.Quote(entry, traveler)
		if err != nil {
			return nil, fmt.Errorf("accommodation entry %d: %w", i+1, err)
		}
		items = append(items, q.LineItem())
	}
	return items, nil
}

// Quote computes the reimbursement of one entry. Claims above the ceiling
// are capped and flagged, never rejected.
func (c *AccommodationCalculator) Quote(entry entity.AccommodationEntry, traveler entity.TravelerProfile) (AccommodationQuote, error) {
	if entry.Nights < 0 {
		return AccommodationQuote{}, fmt.Errorf("%w: %d", entity.ErrInvalidNights, entry.Nights)
	}
	if entry.ClaimedNightly.IsNegative() {
		return AccommodationQuote{}, fmt.Errorf("%w: claimed %s", entity.ErrNegativeAmount, entry.ClaimedNightly)
	}
	if entry.RoomType == "" {
		entry.RoomType = entity.RoomSingle
	}
	if entry.Purpose == "" {
		entry.Purpose = entity.PurposeGeneral
	}
	if entry.Purpose == entity.PurposeTraining && entry.Venue == "" {
		entry.Venue = entity.VenuePrivate
	}

	q := AccommodationQuote{Entry: entry, NightlyRate: decimal.Zero, Ceiling: decimal.Zero, Amount: decimal.Zero}
	if entry.Method == entity.AccommodationVehicleSleep {
		q.Notes = []string{noteVehicleSleep}
		return q, nil
	}

	row, err := c.tables.RateFor(traveler.Grade)
	if err != nil {
		return AccommodationQuote{}, err
	}
	privateTraining := entry.Purpose == entity.PurposeTraining && entry.Venue == entity.VenuePrivate
	ceiling := row.Ceiling(entry.RoomType, entry.Purpose, entry.Venue)
	nights := decimal.NewFromInt(int64(entry.Nights))

	if entry.Purpose == entity.PurposeTraining && entry.Venue == entity.VenueState {
		q.Notes = append(q.Notes, noteStateVenueCeiling)
	}
	if privateTraining && traveler.Grade == entity.GradeC1ToC8 && entry.RoomType == entity.RoomSingle {
		q.Notes = append(q.Notes, noteSingleRoomReason)
	}

	switch entry.Method {
	case entity.AccommodationLumpSum:
		q.NightlyRate = row.AccommodationLumpSum
		if privateTraining {
			q.NightlyRate = ceiling
			q.Ceiling = ceiling
			q.Notes = append(q.Notes, noteReceiptRequired)
		}
	case entity.AccommodationActualReceipt:
		q.Ceiling = ceiling
		q.NightlyRate = decimal.Min(entry.ClaimedNightly, ceiling)
		q.CeilingExceeded = entry.ClaimedNightly.GreaterThan(ceiling)
		q.Notes = append(q.Notes, noteReceiptRequired)
		if q.CeilingExceeded {
			q.Notes = append(q.Notes, fmt.Sprintf("ค่าที่พักจริง %s บาท/คืน เกินเพดาน เบิกได้ %s บาท/คืน",
				entry.ClaimedNightly.StringFixed(2), ceiling.StringFixed(2)))
		}
	default:
		return AccommodationQuote{}, fmt.Errorf("%w: accommodation method %q", entity.ErrInvalidValue, entry.Method)
	}

	q.Amount = entity.RoundMoney(q.NightlyRate.Mul(nights))
	return q, nil
}

func roomLabel(r entity.RoomType) string {
	if r == entity.RoomDouble {
		return "ห้องคู่"
	}
	return "ห้องเดี่ยว"
}
