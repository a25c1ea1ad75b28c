package calculator

import (
	"errors"
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
	"github.com/shopspring/decimal"
)

// Transport leg kinds.
const (
	KindTaxi            = "taxi"
	KindPrivateVehicle  = "private_vehicle"
	KindPublicTransport = "fare"
)

// TransportLeg is one itemised trip leg. The set of variants is closed:
// TaxiTrip, PrivateVehicleTrip and FareTrip.
type TransportLeg interface {
	Kind() string
	quote(tables *ratetable.Tables) (TransportQuote, error)
}

// TaxiTrip is a taxi ride estimated from the meter tariff unless a flat
// fare is given.
type TaxiTrip struct {
	Route          entity.TaxiRoute
	DistanceKm     decimal.Decimal
	FlatFare       decimal.NullDecimal
	TrafficMinutes int
	AppBooking     bool
	Airport        bool
	Description    string
}

// PrivateVehicleTrip is compensated per kilometre.
type PrivateVehicleTrip struct {
	Vehicle     entity.VehicleKind
	DistanceKm  decimal.Decimal
	Description string
}

// FareTrip is a ticketed public transport fare reimbursed as paid.
type FareTrip struct {
	Mode        entity.FareMode
	Fare        decimal.Decimal
	Description string
}

func (TaxiTrip) Kind() string           { return KindTaxi }
func (PrivateVehicleTrip) Kind() string { return KindPrivateVehicle }
func (FareTrip) Kind() string           { return KindPublicTransport }

// TransportQuote is the reimbursement of one leg.
type TransportQuote struct {
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	DistanceKm  decimal.Decimal `json:"distance_km"`
	Rate        decimal.Decimal `json:"rate"`       // mileage per km
	MeterFare   decimal.Decimal `json:"meter_fare"` // taxi distance fare
	Surcharges  decimal.Decimal `json:"surcharges"` // taxi traffic and fees
	Estimate    decimal.Decimal `json:"estimate"`   // before the route cap
	Cap         decimal.Decimal `json:"cap"`
	Capped      bool            `json:"capped"`
	Amount      decimal.Decimal `json:"amount"`
	Detail      string          `json:"detail"`
}

// LineItem converts the quote into a transportation line item.
func (q TransportQuote) LineItem() entity.LineItem {
	item := entity.LineItem{
		Section:         entity.SectionTransportation,
		Label:           transportLabel(q),
		Detail:          q.Detail,
		Amount:          q.Amount,
		CeilingExceeded: q.Capped,
	}
	if q.Capped {
		item.Notes = []string{fmt.Sprintf("ค่าแท็กซี่ประมาณการ %s บาท เกินวงเงิน เบิกได้ %s บาท",
			q.Estimate.StringFixed(2), q.Cap.StringFixed(2))}
	}
	return item
}

func transportLabel(q TransportQuote) string {
	var label string
	switch q.Kind {
	case KindTaxi:
		label = "ค่าแท็กซี่"
	case KindPrivateVehicle:
		label = "ค่าชดเชยน้ำมันเชื้อเพลิง (ยานพาหนะส่วนตัว)"
	default:
		label = "ค่าโดยสารสาธารณะ"
	}
	if q.Description != "" {
		label = fmt.Sprintf("%s (%s)", label, q.Description)
	}
	return label
}

func (t TaxiTrip) quote(tables *ratetable.Tables) (TransportQuote, error) {
	if t.DistanceKm.IsNegative() {
		return TransportQuote{}, &entity.InvalidDistanceError{Kind: KindTaxi, Description: t.Description, DistanceKm: t.DistanceKm}
	}
	if t.TrafficMinutes < 0 {
		return TransportQuote{}, fmt.Errorf("%w: traffic minutes %d", entity.ErrNegativeAmount, t.TrafficMinutes)
	}
	route := t.Route
	if route == "" {
		route = entity.TaxiIntraProvince
	}

	q := TransportQuote{Kind: KindTaxi, Description: t.Description, DistanceKm: t.DistanceKm}

	if t.FlatFare.Valid {
		if t.FlatFare.Decimal.IsNegative() {
			return TransportQuote{}, fmt.Errorf("%w: flat fare %s", entity.ErrNegativeAmount, t.FlatFare.Decimal)
		}
		q.Estimate = entity.RoundMoney(t.FlatFare.Decimal)
		q.Detail = fmt.Sprintf("เหมาจ่าย %s บาท", q.Estimate.StringFixed(2))
	} else {
		base, err := tables.TaxiBaseFare(route)
		if err != nil {
			return TransportQuote{}, err
		}
		fares := tables.TaxiFares()
		q.MeterFare = fares.MeterFare(base, t.DistanceKm)
		q.Surcharges = fares.TrafficPerMinute.Mul(decimal.NewFromInt(int64(t.TrafficMinutes)))
		if t.AppBooking {
			q.Surcharges = q.Surcharges.Add(fares.AppBookingFee)
		}
		if t.Airport {
			q.Surcharges = q.Surcharges.Add(fares.AirportFee)
		}
		q.Estimate = entity.RoundMoney(q.MeterFare.Add(q.Surcharges))
		q.Detail = fmt.Sprintf("ตามมิเตอร์ %s กม.", t.DistanceKm.String())
	}

	q.Amount = q.Estimate
	if limit, ok := tables.TaxiRouteCap(route); ok && q.Estimate.GreaterThan(limit) {
		q.Cap = limit
		q.Capped = true
		q.Amount = limit
	}
	return q, nil
}

func (p PrivateVehicleTrip) quote(tables *ratetable.Tables) (TransportQuote, error) {
	if p.DistanceKm.IsNegative() {
		return TransportQuote{}, &entity.InvalidDistanceError{Kind: KindPrivateVehicle, Description: p.Description, DistanceKm: p.DistanceKm}
	}
	vehicle := p.Vehicle
	if vehicle == "" {
		vehicle = entity.VehiclePrivateCar
	}
	rate, err := tables.MileageRatePerKm(vehicle)
	if err != nil {
		return TransportQuote{}, err
	}
	amount := entity.RoundMoney(p.DistanceKm.Mul(rate))
	return TransportQuote{
		Kind:        KindPrivateVehicle,
		Description: p.Description,
		DistanceKm:  p.DistanceKm,
		Rate:        rate,
		Estimate:    amount,
		Amount:      amount,
		Detail:      fmt.Sprintf("%s กม. x %s บาท", p.DistanceKm.String(), rate.StringFixed(2)),
	}, nil
}

func (f FareTrip) quote(*ratetable.Tables) (TransportQuote, error) {
	if f.Fare.IsNegative() {
		return TransportQuote{}, fmt.Errorf("%w: fare %s", entity.ErrNegativeAmount, f.Fare)
	}
	amount := entity.RoundMoney(f.Fare)
	return TransportQuote{
		Kind:        KindPublicTransport,
		Description: f.Description,
		DistanceKm:  decimal.Zero,
		Estimate:    amount,
		Amount:      amount,
		Detail:      fareModeLabel(f.Mode),
	}, nil
}

func fareModeLabel(m entity.FareMode) string {
	switch m {
	case entity.FareTrain:
		return "รถไฟ"
	case entity.FareBus:
		return "รถโดยสารประจำทาง"
	case entity.FareSkytrain:
		return "รถไฟฟ้า"
	case entity.FareVan:
		return "รถตู้โดยสาร"
	case entity.FareTukTuk:
		return "รถสามล้อ"
	default:
		return string(m)
	}
}

// TransportationCalculator computes taxi estimates, mileage and fares.
type TransportationCalculator struct {
	tables *ratetable.Tables
}

// NewTransportationCalculator creates a transportation calculator over tables.
func NewTransportationCalculator(tables *ratetable.Tables) *TransportationCalculator {
	return &TransportationCalculator{tables: tables}
}

// Quote computes one leg.
func (c *TransportationCalculator) Quote(leg TransportLeg) (TransportQuote, error) {
	return leg.quote(c.tables)
}

// EstimateTaxi computes a taxi fare estimate.
func (c *TransportationCalculator) EstimateTaxi(trip TaxiTrip) (TransportQuote, error) {
	return trip.quote(c.tables)
}

// Calculate returns one line item per leg, in input order. Entries are
// never merged. A negative distance fails with *entity.InvalidDistanceError
// carrying the leg index.
func (c *TransportationCalculator) Calculate(legs []TransportLeg) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(legs))
	for i, leg := range legs {
		q, err := leg.quote(c.tables)
		if err != nil {
			var distErr *entity.InvalidDistanceError
			if errors.As(err, &distErr) {
				distErr.Index = i
				return nil, distErr
			}
			return nil, fmt.Errorf("transport leg %d: %w", i+1, err)
		}
		items = append(items, q.LineItem())
	}
	return items, nil
}
