package http

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/garyjia/gov-travel-expense/internal/application/service"
	"github.com/garyjia/gov-travel-expense/internal/domain/calculator"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/expense"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
)

// Money is a baht amount serialised with exactly two decimal places
type Money struct {
	decimal.Decimal
}

func money(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// MarshalJSON writes the amount as a quoted string such as "400.00"
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Database  string `json:"database,omitempty"`
}

// LineItemResponse is one row of the itemised summary
type LineItemResponse struct {
	Section         string   `json:"section"`
	SectionTitle    string   `json:"section_title"`
	Label           string   `json:"label"`
	Detail          string   `json:"detail,omitempty"`
	Amount          Money    `json:"amount"`
	CeilingExceeded bool     `json:"ceiling_exceeded"`
	Notes           []string `json:"notes,omitempty"`
}

// SubtotalResponse is the total of one section
type SubtotalResponse struct {
	Section string `json:"section"`
	Title   string `json:"title"`
	Amount  Money  `json:"amount"`
	Count   int    `json:"count"`
}

// CalculationResponse is returned by the calculate endpoint
type CalculationResponse struct {
	Items          []LineItemResponse    `json:"items"`
	Subtotals      []SubtotalResponse    `json:"subtotals"`
	GrandTotal     Money                 `json:"grand_total"`
	GrandTotalText string                `json:"grand_total_text"`
	PerDiem        PerDiemResponse       `json:"per_diem"`
	TrainingMeal   *TrainingMealResponse `json:"training_meal,omitempty"`
}

// DayAllowanceResponse is one day of the per-diem breakdown
type DayAllowanceResponse struct {
	Day           int             `json:"day"`
	Portion       decimal.Decimal `json:"portion"`
	Base          Money           `json:"base"`
	MealsProvided int             `json:"meals_provided"`
	Deduction     Money           `json:"deduction"`
	Net           Money           `json:"net"`
}

// PerDiemResponse is the per-diem entitlement with its daily breakdown
type PerDiemResponse struct {
	Grade     string                 `json:"grade"`
	Days      decimal.Decimal        `json:"days"`
	DailyRate Money                  `json:"daily_rate"`
	Gross     Money                  `json:"gross"`
	Deduction Money                  `json:"deduction"`
	Net       Money                  `json:"net"`
	Overnight bool                   `json:"overnight"`
	Breakdown []DayAllowanceResponse `json:"breakdown"`
}

// TrainingMealResponse is the training meal budget
type TrainingMealResponse struct {
	TrainingType string `json:"training_type"`
	Venue        string `json:"venue"`
	MealRate     Money  `json:"meal_rate"`
	SnackRate    Money  `json:"snack_rate"`
	Meals        int    `json:"meals"`
	Snacks       int    `json:"snacks"`
	MealTotal    Money  `json:"meal_total"`
	SnackTotal   Money  `json:"snack_total"`
	Amount       Money  `json:"amount"`
}

// TransportQuoteResponse is returned by the taxi estimate endpoint
type TransportQuoteResponse struct {
	Kind        string          `json:"kind"`
	Description string          `json:"description,omitempty"`
	DistanceKm  decimal.Decimal `json:"distance_km"`
	MeterFare   Money           `json:"meter_fare"`
	Surcharges  Money           `json:"surcharges"`
	Estimate    Money           `json:"estimate"`
	Cap         Money           `json:"cap"`
	Capped      bool            `json:"capped"`
	Amount      Money           `json:"amount"`
	Detail      string          `json:"detail"`
}

// SaveDraftRequest is the body of POST /drafts
type SaveDraftRequest struct {
	Name  string              `json:"name" binding:"required"`
	Claim *service.ClaimInput `json:"claim" binding:"required"`
}

// DraftResponse carries a loaded draft and its decoded claim
type DraftResponse struct {
	*entity.Draft
	Claim *service.ClaimInput `json:"claim,omitempty"`
}

// GradeRatesResponse is one grade row of the rate table
type GradeRatesResponse struct {
	Grade                        string `json:"grade"`
	TrainingType                 string `json:"training_type"`
	PerDiemDaily                 Money  `json:"per_diem_daily"`
	AccommodationLumpSum         Money  `json:"accommodation_lump_sum"`
	AccommodationCeiling         Money  `json:"accommodation_ceiling"`
	AccommodationCeilingDouble   Money  `json:"accommodation_ceiling_double"`
	TrainingPrivateCeilingSingle Money  `json:"training_private_ceiling_single"`
	TrainingPrivateCeilingDouble Money  `json:"training_private_ceiling_double"`
}

// TaxiTierResponse is one band of the taxi meter
type TaxiTierResponse struct {
	UpToKm decimal.Decimal `json:"up_to_km"`
	PerKm  Money           `json:"per_km"`
}

// TaxiRatesResponse exposes the taxi fare schedule
type TaxiRatesResponse struct {
	BaseFare         map[string]Money   `json:"base_fare"`
	IncludedKm       decimal.Decimal    `json:"included_km"`
	Tiers            []TaxiTierResponse `json:"tiers"`
	TrafficPerMinute Money              `json:"traffic_per_minute"`
	AppBookingFee    Money              `json:"app_booking_fee"`
	AirportFee       Money              `json:"airport_fee"`
	RouteCap         map[string]Money   `json:"route_cap"`
}

// MealRateResponse is the per-person training meal rate
type MealRateResponse struct {
	Meal  Money `json:"meal"`
	Snack Money `json:"snack"`
}

// PolicyResponse exposes the day-counting thresholds
type PolicyResponse struct {
	PartialDayThresholdHours float64 `json:"partial_day_threshold_hours"`
	HalfDayThresholdHours    float64 `json:"half_day_threshold_hours"`
	OvernightCutoffHour      int     `json:"overnight_cutoff_hour"`
	MealDeduction            string  `json:"meal_deduction"`
}

// RatesResponse is returned by GET /rates so forms can show ceilings
type RatesResponse struct {
	Grades        []GradeRatesResponse                   `json:"grades"`
	Mileage       map[string]Money                       `json:"mileage"`
	Taxi          TaxiRatesResponse                      `json:"taxi"`
	TrainingMeals map[string]map[string]MealRateResponse `json:"training_meals"`
	Policy        PolicyResponse                         `json:"policy"`
}

func newCalculationResponse(result *expense.Result) CalculationResponse {
	summary := result.Summary
	resp := CalculationResponse{
		Items:          make([]LineItemResponse, 0, len(summary.Items)),
		Subtotals:      make([]SubtotalResponse, 0, len(summary.Subtotals)),
		GrandTotal:     money(summary.GrandTotal),
		GrandTotalText: summary.GrandTotalText,
		PerDiem:        newPerDiemResponse(result.PerDiem),
	}
	if q := result.TrainingMeal; q != nil {
		resp.TrainingMeal = &TrainingMealResponse{
			TrainingType: string(q.Type),
			Venue:        string(q.Venue),
			MealRate:     money(q.MealRate),
			SnackRate:    money(q.SnackRate),
			Meals:        q.Meals,
			Snacks:       q.Snacks,
			MealTotal:    money(q.MealTotal),
			SnackTotal:   money(q.SnackTotal),
			Amount:       money(q.Amount),
		}
	}
	for _, item := range summary.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			Section:         item.Section.Code(),
			SectionTitle:    item.Section.Title(),
			Label:           item.Label,
			Detail:          item.Detail,
			Amount:          money(item.Amount),
			CeilingExceeded: item.CeilingExceeded,
			Notes:           item.Notes,
		})
	}
	for _, sub := range summary.Subtotals {
		resp.Subtotals = append(resp.Subtotals, SubtotalResponse{
			Section: sub.Section.Code(),
			Title:   sub.Section.Title(),
			Amount:  money(sub.Amount),
			Count:   sub.Count,
		})
	}
	return resp
}

func newPerDiemResponse(r calculator.PerDiemResult) PerDiemResponse {
	resp := PerDiemResponse{
		Grade:     r.Grade.String(),
		Days:      r.Days,
		DailyRate: money(r.DailyRate),
		Gross:     money(r.Gross),
		Deduction: money(r.Deduction),
		Net:       money(r.Net),
		Overnight: r.Overnight,
		Breakdown: make([]DayAllowanceResponse, 0, len(r.Breakdown)),
	}
	for _, d := range r.Breakdown {
		resp.Breakdown = append(resp.Breakdown, DayAllowanceResponse{
			Day:           d.Day,
			Portion:       d.Portion,
			Base:          money(d.Base),
			MealsProvided: d.MealsProvided,
			Deduction:     money(d.Deduction),
			Net:           money(d.Net),
		})
	}
	return resp
}

func newTransportQuoteResponse(q *calculator.TransportQuote) TransportQuoteResponse {
	return TransportQuoteResponse{
		Kind:        q.Kind,
		Description: q.Description,
		DistanceKm:  q.DistanceKm,
		MeterFare:   money(q.MeterFare),
		Surcharges:  money(q.Surcharges),
		Estimate:    money(q.Estimate),
		Cap:         money(q.Cap),
		Capped:      q.Capped,
		Amount:      money(q.Amount),
		Detail:      q.Detail,
	}
}

func newRatesResponse(def ratetable.Definition) RatesResponse {
	resp := RatesResponse{
		Grades:        make([]GradeRatesResponse, 0, len(def.Rates)),
		Mileage:       make(map[string]Money, len(def.Mileage)),
		TrainingMeals: make(map[string]map[string]MealRateResponse, len(def.TrainingMeals)),
		Taxi: TaxiRatesResponse{
			BaseFare:         make(map[string]Money, len(def.Taxi.BaseFare)),
			IncludedKm:       def.Taxi.IncludedKm,
			TrafficPerMinute: money(def.Taxi.TrafficPerMinute),
			AppBookingFee:    money(def.Taxi.AppBookingFee),
			AirportFee:       money(def.Taxi.AirportFee),
			RouteCap:         make(map[string]Money, len(def.Taxi.RouteCap)),
		},
		Policy: PolicyResponse{
			PartialDayThresholdHours: def.Policy.PartialDayThreshold.Hours(),
			HalfDayThresholdHours:    def.Policy.HalfDayThreshold.Hours(),
			OvernightCutoffHour:      def.Policy.OvernightCutoffHour,
			MealDeduction:            def.Policy.MealDeduction.String(),
		},
	}

	grades := make([]entity.Grade, 0, len(def.Rates))
	for g := range def.Rates {
		grades = append(grades, g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i] < grades[j] })
	for _, g := range grades {
		row := def.Rates[g]
		resp.Grades = append(resp.Grades, GradeRatesResponse{
			Grade:                        g.String(),
			TrainingType:                 string(g.TrainingType()),
			PerDiemDaily:                 money(row.PerDiemDaily),
			AccommodationLumpSum:         money(row.AccommodationLumpSum),
			AccommodationCeiling:         money(row.AccommodationCeiling),
			AccommodationCeilingDouble:   money(row.AccommodationCeilingDouble),
			TrainingPrivateCeilingSingle: money(row.TrainingPrivateCeilingSingle),
			TrainingPrivateCeilingDouble: money(row.TrainingPrivateCeilingDouble),
		})
	}

	for kind, rate := range def.Mileage {
		resp.Mileage[string(kind)] = money(rate)
	}
	for route, fare := range def.Taxi.BaseFare {
		resp.Taxi.BaseFare[string(route)] = money(fare)
	}
	for route, limit := range def.Taxi.RouteCap {
		resp.Taxi.RouteCap[string(route)] = money(limit)
	}
	for _, tier := range def.Taxi.Tiers {
		resp.Taxi.Tiers = append(resp.Taxi.Tiers, TaxiTierResponse{UpToKm: tier.UpToKm, PerKm: money(tier.PerKm)})
	}
	for venue, byType := range def.TrainingMeals {
		rates := make(map[string]MealRateResponse, len(byType))
		for tt, rate := range byType {
			rates[string(tt)] = MealRateResponse{Meal: money(rate.Meal), Snack: money(rate.Snack)}
		}
		resp.TrainingMeals[string(venue)] = rates
	}
	return resp
}
