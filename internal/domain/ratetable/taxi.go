package ratetable

import (
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// TaxiTier charges PerKm for every kilometre up to UpToKm. A zero UpToKm
// marks the open-ended last tier.
type TaxiTier struct {
	UpToKm decimal.Decimal
	PerKm  decimal.Decimal
}

// TaxiFares is the taxi-meter fare table.
type TaxiFares struct {
	BaseFare         map[entity.TaxiRoute]decimal.Decimal
	IncludedKm       decimal.Decimal
	Tiers            []TaxiTier
	TrafficPerMinute decimal.Decimal
	AppBookingFee    decimal.Decimal
	AirportFee       decimal.Decimal
	// RouteCap limits the reimbursable fare of a route; missing or zero means uncapped.
	RouteCap map[entity.TaxiRoute]decimal.Decimal
}

// MeterFare returns the metered fare for distanceKm before surcharges and caps.
// Distances up to IncludedKm pay exactly base; beyond it every kilometre is
// charged at the rate of the tier it falls in. The result never drops below base.
func (f TaxiFares) MeterFare(base, distanceKm decimal.Decimal) decimal.Decimal {
	fare := base
	covered := f.IncludedKm
	for _, tier := range f.Tiers {
		if distanceKm.LessThanOrEqual(covered) {
			break
		}
		upper := distanceKm
		if tier.UpToKm.IsPositive() && tier.UpToKm.LessThan(distanceKm) {
			upper = tier.UpToKm
		}
		if upper.GreaterThan(covered) {
			fare = fare.Add(upper.Sub(covered).Mul(tier.PerKm))
			covered = upper
		}
	}
	return decimal.Max(fare, base)
}

func (f TaxiFares) validate() error {
	for _, route := range entity.AllTaxiRoutes {
		base, ok := f.BaseFare[route]
		if !ok || base.IsNegative() {
			return fmt.Errorf("%w: taxi base fare for %s", ErrIncompleteTable, route)
		}
	}
	if f.IncludedKm.IsNegative() {
		return fmt.Errorf("%w: taxi included distance %s", ErrIncompleteTable, f.IncludedKm)
	}
	if len(f.Tiers) == 0 {
		return fmt.Errorf("%w: no taxi tiers", ErrIncompleteTable)
	}
	prev := f.IncludedKm
	for i, tier := range f.Tiers {
		if tier.PerKm.IsNegative() {
			return fmt.Errorf("%w: taxi tier %d rate %s", ErrIncompleteTable, i, tier.PerKm)
		}
		last := i == len(f.Tiers)-1
		if !tier.UpToKm.IsPositive() {
			if !last {
				return fmt.Errorf("%w: open-ended taxi tier %d must be last", ErrIncompleteTable, i)
			}
			continue
		}
		if tier.UpToKm.LessThanOrEqual(prev) {
			return fmt.Errorf("%w: taxi tier %d bound %s not increasing", ErrIncompleteTable, i, tier.UpToKm)
		}
		prev = tier.UpToKm
	}
	for name, v := range map[string]decimal.Decimal{
		"traffic rate": f.TrafficPerMinute,
		"app fee":      f.AppBookingFee,
		"airport fee":  f.AirportFee,
	} {
		if v.IsNegative() {
			return fmt.Errorf("%w: negative taxi %s", ErrIncompleteTable, name)
		}
	}
	for route, limit := range f.RouteCap {
		if limit.IsNegative() {
			return fmt.Errorf("%w: negative taxi cap for %s", ErrIncompleteTable, route)
		}
	}
	return nil
}

func (f TaxiFares) clone() TaxiFares {
	out := f
	out.BaseFare = make(map[entity.TaxiRoute]decimal.Decimal, len(f.BaseFare))
	for k, v := range f.BaseFare {
		out.BaseFare[k] = v
	}
	out.RouteCap = make(map[entity.TaxiRoute]decimal.Decimal, len(f.RouteCap))
	for k, v := range f.RouteCap {
		out.RouteCap[k] = v
	}
	out.Tiers = append([]TaxiTier(nil), f.Tiers...)
	return out
}
