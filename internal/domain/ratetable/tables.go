// Package ratetable holds the regulation lookup tables shared read-only by
// every calculator: per-grade rates, mileage, taxi fares and policy thresholds.
package ratetable

import (
	"errors"
	"fmt"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ErrIncompleteTable is returned when a definition misses a required row
// or carries an out-of-range value.
var ErrIncompleteTable = errors.New("incomplete rate table")

// RateRow is the grade-dependent row of the regulation.
type RateRow struct {
	PerDiemDaily                 decimal.Decimal
	AccommodationLumpSum         decimal.Decimal
	AccommodationCeiling         decimal.Decimal // single room
	AccommodationCeilingDouble   decimal.Decimal
	TrainingPrivateCeilingSingle decimal.Decimal // private training venue
	TrainingPrivateCeilingDouble decimal.Decimal
}

// Ceiling returns the nightly actual-receipt ceiling for a room, purpose and venue.
// Training at a state venue uses the general ceilings.
func (r RateRow) Ceiling(room entity.RoomType, purpose entity.TripPurpose, venue entity.Venue) decimal.Decimal {
	if purpose == entity.PurposeTraining && venue == entity.VenuePrivate {
		if room == entity.RoomDouble {
			return r.TrainingPrivateCeilingDouble
		}
		return r.TrainingPrivateCeilingSingle
	}
	if room == entity.RoomDouble {
		return r.AccommodationCeilingDouble
	}
	return r.AccommodationCeiling
}

// MealRate is the per-head rate of one training meal and one snack.
type MealRate struct {
	Meal  decimal.Decimal
	Snack decimal.Decimal
}

// Fraction is an exact rational factor.
type Fraction struct {
	Numerator   int64
	Denominator int64
}

// Of returns d × n / den rounded to money precision.
func (f Fraction) Of(d decimal.Decimal, n int64) decimal.Decimal {
	return entity.RoundMoney(d.Mul(decimal.NewFromInt(n * f.Numerator)).
		Div(decimal.NewFromInt(f.Denominator)))
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Policy holds the day-counting thresholds and the meal deduction factor.
type Policy struct {
	// PartialDayThreshold is the minimum leftover time that counts as a full day.
	PartialDayThreshold time.Duration
	// HalfDayThreshold is the minimum same-day duration paid as half a day; zero disables half days.
	HalfDayThreshold time.Duration
	// OvernightCutoffHour is the local hour after midnight at which a night away is counted.
	OvernightCutoffHour int
	// MealDeduction is the share of the daily rate removed per provided meal.
	MealDeduction Fraction
}

// Definition is the raw content of the tables before validation.
type Definition struct {
	Rates         map[entity.Grade]RateRow
	Mileage       map[entity.VehicleKind]decimal.Decimal
	Taxi          TaxiFares
	TrainingMeals map[entity.Venue]map[entity.TrainingType]MealRate
	Policy        Policy
}

// Tables is the validated, immutable regulation data. A *Tables is safe for
// concurrent use; accessors return copies.
type Tables struct {
	def Definition
}

// New validates def for completeness and returns an independent copy.
func New(def Definition) (*Tables, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &Tables{def: def.clone()}, nil
}

// RateFor returns the row for grade g.
func (t *Tables) RateFor(g entity.Grade) (RateRow, error) {
	row, ok := t.def.Rates[g]
	if !ok {
		return RateRow{}, &entity.UnknownGradeError{Grade: g.String()}
	}
	return row, nil
}

// MileageRatePerKm returns the compensation per kilometre for a private vehicle.
func (t *Tables) MileageRatePerKm(v entity.VehicleKind) (decimal.Decimal, error) {
	rate, ok := t.def.Mileage[v]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: vehicle %q", entity.ErrInvalidValue, v)
	}
	return rate, nil
}

// TaxiBaseFare returns the flag-fall fare of a route class.
func (t *Tables) TaxiBaseFare(route entity.TaxiRoute) (decimal.Decimal, error) {
	fare, ok := t.def.Taxi.BaseFare[route]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: taxi route %q", entity.ErrInvalidValue, route)
	}
	return fare, nil
}

// TaxiRouteCap returns the reimbursement cap of a route and whether one applies.
func (t *Tables) TaxiRouteCap(route entity.TaxiRoute) (decimal.Decimal, bool) {
	limit, ok := t.def.Taxi.RouteCap[route]
	if !ok || !limit.IsPositive() {
		return decimal.Zero, false
	}
	return limit, true
}

// TaxiFares returns a copy of the taxi fare table.
func (t *Tables) TaxiFares() TaxiFares {
	return t.def.Taxi.clone()
}

// TrainingMealRate returns the meal and snack rates for a venue and training type.
func (t *Tables) TrainingMealRate(venue entity.Venue, tt entity.TrainingType) (MealRate, error) {
	rate, ok := t.def.TrainingMeals[venue][tt]
	if !ok {
		return MealRate{}, fmt.Errorf("%w: training meal rate %s/%s", entity.ErrInvalidValue, venue, tt)
	}
	return rate, nil
}

// Policy returns the day-counting policy.
func (t *Tables) Policy() Policy {
	return t.def.Policy
}

// Definition returns a copy of the full table content.
func (t *Tables) Definition() Definition {
	return t.def.clone()
}

func (d Definition) validate() error {
	for _, g := range entity.AllGrades {
		row, ok := d.Rates[g]
		if !ok {
			return fmt.Errorf("%w: no rate row for grade %s", ErrIncompleteTable, g)
		}
		for name, v := range map[string]decimal.Decimal{
			"per diem":                row.PerDiemDaily,
			"lump sum":                row.AccommodationLumpSum,
			"single ceiling":          row.AccommodationCeiling,
			"double ceiling":          row.AccommodationCeilingDouble,
			"training single ceiling": row.TrainingPrivateCeilingSingle,
			"training double ceiling": row.TrainingPrivateCeilingDouble,
		} {
			if v.IsNegative() {
				return fmt.Errorf("%w: negative %s for grade %s", ErrIncompleteTable, name, g)
			}
		}
	}
	for g := range d.Rates {
		if !g.Valid() {
			return fmt.Errorf("%w: row for unknown grade %s", ErrIncompleteTable, g)
		}
	}

	for _, v := range entity.AllVehicleKinds {
		rate, ok := d.Mileage[v]
		if !ok || rate.IsNegative() {
			return fmt.Errorf("%w: mileage rate for %s", ErrIncompleteTable, v)
		}
	}

	if err := d.Taxi.validate(); err != nil {
		return err
	}

	for _, venue := range entity.AllVenues {
		for _, tt := range []entity.TrainingType{entity.TrainingTypeA, entity.TrainingTypeB} {
			rate, ok := d.TrainingMeals[venue][tt]
			if !ok || rate.Meal.IsNegative() || rate.Snack.IsNegative() {
				return fmt.Errorf("%w: training meal rate %s/%s", ErrIncompleteTable, venue, tt)
			}
		}
	}

	p := d.Policy
	if p.PartialDayThreshold <= 0 || p.PartialDayThreshold > 24*time.Hour {
		return fmt.Errorf("%w: partial day threshold %s", ErrIncompleteTable, p.PartialDayThreshold)
	}
	if p.HalfDayThreshold < 0 || p.HalfDayThreshold > p.PartialDayThreshold {
		return fmt.Errorf("%w: half day threshold %s", ErrIncompleteTable, p.HalfDayThreshold)
	}
	if p.OvernightCutoffHour < 0 || p.OvernightCutoffHour > 23 {
		return fmt.Errorf("%w: overnight cutoff hour %d", ErrIncompleteTable, p.OvernightCutoffHour)
	}
	if p.MealDeduction.Denominator <= 0 || p.MealDeduction.Numerator < 0 {
		return fmt.Errorf("%w: meal deduction %d/%d", ErrIncompleteTable,
			p.MealDeduction.Numerator, p.MealDeduction.Denominator)
	}
	return nil
}

func (d Definition) clone() Definition {
	out := Definition{
		Rates:         make(map[entity.Grade]RateRow, len(d.Rates)),
		Mileage:       make(map[entity.VehicleKind]decimal.Decimal, len(d.Mileage)),
		Taxi:          d.Taxi.clone(),
		TrainingMeals: make(map[entity.Venue]map[entity.TrainingType]MealRate, len(d.TrainingMeals)),
		Policy:        d.Policy,
	}
	for k, v := range d.Rates {
		out.Rates[k] = v
	}
	for k, v := range d.Mileage {
		out.Mileage[k] = v
	}
	for venue, rates := range d.TrainingMeals {
		inner := make(map[entity.TrainingType]MealRate, len(rates))
		for k, v := range rates {
			inner[k] = v
		}
		out.TrainingMeals[venue] = inner
	}
	return out
}
