// Package calculator implements the regulation rules that turn a trip into
// reimbursable line items. Calculators are stateless and share one
// read-only *ratetable.Tables.
package calculator

import (
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
	"github.com/shopspring/decimal"
)

var (
	one  = decimal.NewFromInt(1)
	half = decimal.NewFromFloat(0.5)
)

// DayAllowance is the allowance of one eligible day.
type DayAllowance struct {
	Day           int             `json:"day"`
	Portion       decimal.Decimal `json:"portion"` // 1 for a full day, 0.5 for a half day
	Base          decimal.Decimal `json:"base"`
	MealsProvided int             `json:"meals_provided"`
	Deduction     decimal.Decimal `json:"deduction"`
	Net           decimal.Decimal `json:"net"`
}

// PerDiemResult is the per-diem entitlement of a trip.
type PerDiemResult struct {
	Grade     entity.Grade    `json:"grade"`
	Days      decimal.Decimal `json:"days"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	Gross     decimal.Decimal `json:"gross"`
	Deduction decimal.Decimal `json:"deduction"`
	Net       decimal.Decimal `json:"net"`
	Overnight bool            `json:"overnight"`
	Breakdown []DayAllowance  `json:"breakdown"`
}

// LineItems returns one per-diem item, or none when no day is eligible.
func (r PerDiemResult) LineItems() []entity.LineItem {
	if !r.Days.IsPositive() {
		return nil
	}
	item := entity.LineItem{
		Section: entity.SectionPerDiem,
		Label:   fmt.Sprintf("ค่าเบี้ยเลี้ยงเดินทาง (%s)", r.Grade),
		Detail:  fmt.Sprintf("%s วัน x %s บาท", r.Days.String(), r.DailyRate.StringFixed(2)),
		Amount:  r.Net,
	}
	if r.Deduction.IsPositive() {
		meals := 0
		for _, d := range r.Breakdown {
			meals += d.MealsProvided
		}
		item.Notes = append(item.Notes,
			fmt.Sprintf("หักค่าอาหารที่ผู้จัดจัดให้ %d มื้อ เป็นเงิน %s บาท", meals, r.Deduction.StringFixed(2)))
	}
	return []entity.LineItem{item}
}

// PerDiemCalculator computes daily allowances.
type PerDiemCalculator struct {
	tables *ratetable.Tables
}

// NewPerDiemCalculator creates a per-diem calculator over tables.
func NewPerDiemCalculator(tables *ratetable.Tables) *PerDiemCalculator {
	return &PerDiemCalculator{tables: tables}
}

// EligibleDays returns the number of days paid for trip: whole 24-hour
// blocks plus one when the leftover reaches the partial-day threshold.
// A same-day trip pays one day from the partial-day threshold and half a
// day from the half-day threshold.
func (c *PerDiemCalculator) EligibleDays(trip entity.TripSchedule) (decimal.Decimal, bool) {
	policy := c.tables.Policy()
	overnight := trip.Overnight(policy.OvernightCutoffHour)

	if overnight {
		days := trip.WholeDays()
		if trip.Remainder() >= policy.PartialDayThreshold {
			days++
		}
		return decimal.NewFromInt(int64(days)), true
	}

	d := trip.Duration()
	switch {
	case d >= policy.PartialDayThreshold:
		return one, false
	case policy.HalfDayThreshold > 0 && d >= policy.HalfDayThreshold:
		return half, false
	default:
		return decimal.Zero, false
	}
}

// Calculate returns the per-diem entitlement. meals[i] lists the meals the
// host provided on day i; entries beyond the eligible days are ignored and
// missing entries mean no meal was provided.
func (c *PerDiemCalculator) Calculate(trip entity.TripSchedule, traveler entity.TravelerProfile, meals []entity.MealSet) (PerDiemResult, error) {
	row, err := c.tables.RateFor(traveler.Grade)
	if err != nil {
		return PerDiemResult{}, err
	}
	policy := c.tables.Policy()
	days, overnight := c.EligibleDays(trip)

	result := PerDiemResult{
		Grade:     traveler.Grade,
		Days:      days,
		DailyRate: row.PerDiemDaily,
		Gross:     decimal.Zero,
		Deduction: decimal.Zero,
		Net:       decimal.Zero,
		Overnight: overnight,
		Breakdown: []DayAllowance{},
	}

	remaining := days
	for i := 0; remaining.IsPositive(); i++ {
		portion := decimal.Min(remaining, one)
		remaining = remaining.Sub(portion)

		var provided entity.MealSet
		if i < len(meals) {
			provided = meals[i]
		}

		base := entity.RoundMoney(row.PerDiemDaily.Mul(portion))
		deduction := policy.MealDeduction.Of(row.PerDiemDaily, int64(provided.Count()))
		deduction = decimal.Min(deduction, base)
		net := base.Sub(deduction)

		result.Breakdown = append(result.Breakdown, DayAllowance{
			Day:           i + 1,
			Portion:       portion,
			Base:          base,
			MealsProvided: provided.Count(),
			Deduction:     deduction,
			Net:           net,
		})
		result.Gross = result.Gross.Add(base)
		result.Deduction = result.Deduction.Add(deduction)
		result.Net = result.Net.Add(net)
	}
	return result, nil
}
