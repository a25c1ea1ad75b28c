package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
	"github.com/shopspring/decimal"
)

// RegulationConfig overrides the built-in regulation figures. Every value is
// optional; an empty string keeps the built-in figure. Amounts are decimal
// strings so no float rounding enters the tables.
type RegulationConfig struct {
	Grades        map[string]GradeRateConfig           `mapstructure:"grades"` // keyed by band, e.g. "C1-C8"
	Mileage       map[string]string                    `mapstructure:"mileage"`
	Taxi          TaxiConfig                           `mapstructure:"taxi"`
	TrainingMeals map[string]map[string]MealRateConfig `mapstructure:"training_meals"` // venue -> training type
	Policy        PolicyConfig                         `mapstructure:"policy"`
}

// GradeRateConfig is one grade row
type GradeRateConfig struct {
	PerDiemDaily                 string `mapstructure:"per_diem_daily"`
	AccommodationLumpSum         string `mapstructure:"accommodation_lump_sum"`
	AccommodationCeiling         string `mapstructure:"accommodation_ceiling"`
	AccommodationCeilingDouble   string `mapstructure:"accommodation_ceiling_double"`
	TrainingPrivateCeilingSingle string `mapstructure:"training_private_ceiling_single"`
	TrainingPrivateCeilingDouble string `mapstructure:"training_private_ceiling_double"`
}

// TaxiConfig is the taxi fare table. Tiers, when given, replace the
// built-in tiers entirely.
type TaxiConfig struct {
	BaseFare         map[string]string `mapstructure:"base_fare"`
	IncludedKm       string            `mapstructure:"included_km"`
	Tiers            []TaxiTierConfig  `mapstructure:"tiers"`
	TrafficPerMinute string            `mapstructure:"traffic_per_minute"`
	AppBookingFee    string            `mapstructure:"app_booking_fee"`
	AirportFee       string            `mapstructure:"airport_fee"`
	RouteCap         map[string]string `mapstructure:"route_cap"`
}

// TaxiTierConfig is one per-km band; an empty up_to_km is open-ended
type TaxiTierConfig struct {
	UpToKm string `mapstructure:"up_to_km"`
	PerKm  string `mapstructure:"per_km"`
}

// MealRateConfig is a training meal and snack rate
type MealRateConfig struct {
	Meal  string `mapstructure:"meal"`
	Snack string `mapstructure:"snack"`
}

// PolicyConfig holds day-counting thresholds
type PolicyConfig struct {
	PartialDayThreshold string `mapstructure:"partial_day_threshold"` // e.g. "12h"
	HalfDayThreshold    string `mapstructure:"half_day_threshold"`    // "0" disables half days
	OvernightCutoffHour string `mapstructure:"overnight_cutoff_hour"`
	MealDeduction       string `mapstructure:"meal_deduction"` // e.g. "1/3"
}

// Tables builds validated rate tables from the built-in definition with
// the configured overrides applied.
func (r RegulationConfig) Tables() (*ratetable.Tables, error) {
	def, err := r.Definition()
	if err != nil {
		return nil, err
	}
	return ratetable.New(def)
}

// Definition applies the overrides to ratetable.DefaultDefinition.
func (r RegulationConfig) Definition() (ratetable.Definition, error) {
	def := ratetable.DefaultDefinition()

	for key, row := range r.Grades {
		grade, err := entity.ParseGrade(key)
		if err != nil {
			return def, fmt.Errorf("grades.%s: %w", key, err)
		}
		current := def.Rates[grade]
		if err := overlayGrade(&current, row); err != nil {
			return def, fmt.Errorf("grades.%s: %w", key, err)
		}
		def.Rates[grade] = current
	}

	for key, raw := range r.Mileage {
		vehicle, err := entity.ParseVehicleKind(key)
		if err != nil {
			return def, fmt.Errorf("mileage: %w", err)
		}
		if err := setAmount(def.Mileage, vehicle, raw, "mileage."+key); err != nil {
			return def, err
		}
	}

	if err := r.Taxi.overlay(&def.Taxi); err != nil {
		return def, err
	}

	for venueKey, byType := range r.TrainingMeals {
		venue, err := entity.ParseVenue(venueKey)
		if err != nil {
			return def, fmt.Errorf("training_meals: %w", err)
		}
		if def.TrainingMeals[venue] == nil {
			def.TrainingMeals[venue] = make(map[entity.TrainingType]ratetable.MealRate)
		}
		for typeKey, rate := range byType {
			tt, err := entity.ParseTrainingType(typeKey)
			if err != nil {
				return def, fmt.Errorf("training_meals.%s: %w", venueKey, err)
			}
			current := def.TrainingMeals[venue][tt]
			path := "training_meals." + venueKey + "." + typeKey
			if err := overlayAmount(&current.Meal, rate.Meal, path+".meal"); err != nil {
				return def, err
			}
			if err := overlayAmount(&current.Snack, rate.Snack, path+".snack"); err != nil {
				return def, err
			}
			def.TrainingMeals[venue][tt] = current
		}
	}

	if err := r.Policy.overlay(&def.Policy); err != nil {
		return def, err
	}
	return def, nil
}

func overlayGrade(row *ratetable.RateRow, cfg GradeRateConfig) error {
	fields := []struct {
		dst  *decimal.Decimal
		raw  string
		name string
	}{
		{&row.PerDiemDaily, cfg.PerDiemDaily, "per_diem_daily"},
		{&row.AccommodationLumpSum, cfg.AccommodationLumpSum, "accommodation_lump_sum"},
		{&row.AccommodationCeiling, cfg.AccommodationCeiling, "accommodation_ceiling"},
		{&row.AccommodationCeilingDouble, cfg.AccommodationCeilingDouble, "accommodation_ceiling_double"},
		{&row.TrainingPrivateCeilingSingle, cfg.TrainingPrivateCeilingSingle, "training_private_ceiling_single"},
		{&row.TrainingPrivateCeilingDouble, cfg.TrainingPrivateCeilingDouble, "training_private_ceiling_double"},
	}
	for _, f := range fields {
		if err := overlayAmount(f.dst, f.raw, f.name); err != nil {
			return err
		}
	}
	return nil
}

func (t TaxiConfig) overlay(fares *ratetable.TaxiFares) error {
	for key, raw := range t.BaseFare {
		route, err := entity.ParseTaxiRoute(key)
		if err != nil {
			return fmt.Errorf("taxi.base_fare: %w", err)
		}
		if err := setAmount(fares.BaseFare, route, raw, "taxi.base_fare."+key); err != nil {
			return err
		}
	}
	for key, raw := range t.RouteCap {
		route, err := entity.ParseTaxiRoute(key)
		if err != nil {
			return fmt.Errorf("taxi.route_cap: %w", err)
		}
		if err := setAmount(fares.RouteCap, route, raw, "taxi.route_cap."+key); err != nil {
			return err
		}
	}

	scalars := []struct {
		dst  *decimal.Decimal
		raw  string
		name string
	}{
		{&fares.IncludedKm, t.IncludedKm, "taxi.included_km"},
		{&fares.TrafficPerMinute, t.TrafficPerMinute, "taxi.traffic_per_minute"},
		{&fares.AppBookingFee, t.AppBookingFee, "taxi.app_booking_fee"},
		{&fares.AirportFee, t.AirportFee, "taxi.airport_fee"},
	}
	for _, s := range scalars {
		if err := overlayAmount(s.dst, s.raw, s.name); err != nil {
			return err
		}
	}

	if len(t.Tiers) > 0 {
		tiers := make([]ratetable.TaxiTier, 0, len(t.Tiers))
		for i, tier := range t.Tiers {
			var parsed ratetable.TaxiTier
			if err := overlayAmount(&parsed.UpToKm, tier.UpToKm, fmt.Sprintf("taxi.tiers[%d].up_to_km", i)); err != nil {
				return err
			}
			if tier.PerKm == "" {
				return fmt.Errorf("taxi.tiers[%d].per_km is required", i)
			}
			if err := overlayAmount(&parsed.PerKm, tier.PerKm, fmt.Sprintf("taxi.tiers[%d].per_km", i)); err != nil {
				return err
			}
			tiers = append(tiers, parsed)
		}
		fares.Tiers = tiers
	}
	return nil
}

func (p PolicyConfig) overlay(policy *ratetable.Policy) error {
	if p.PartialDayThreshold != "" {
		d, err := time.ParseDuration(p.PartialDayThreshold)
		if err != nil {
			return fmt.Errorf("policy.partial_day_threshold: %w", err)
		}
		policy.PartialDayThreshold = d
	}
	if p.HalfDayThreshold != "" {
		d, err := time.ParseDuration(p.HalfDayThreshold)
		if err != nil {
			return fmt.Errorf("policy.half_day_threshold: %w", err)
		}
		policy.HalfDayThreshold = d
	}
	if p.OvernightCutoffHour != "" {
		h, err := strconv.Atoi(p.OvernightCutoffHour)
		if err != nil {
			return fmt.Errorf("policy.overnight_cutoff_hour: %w", err)
		}
		policy.OvernightCutoffHour = h
	}
	if p.MealDeduction != "" {
		f, err := parseFraction(p.MealDeduction)
		if err != nil {
			return fmt.Errorf("policy.meal_deduction: %w", err)
		}
		policy.MealDeduction = f
	}
	return nil
}

// parseFraction reads "n/d" or a whole number.
func parseFraction(raw string) (ratetable.Fraction, error) {
	num, den, found := strings.Cut(strings.TrimSpace(raw), "/")
	if !found {
		den = "1"
	}
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return ratetable.Fraction{}, fmt.Errorf("invalid numerator in %q", raw)
	}
	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil {
		return ratetable.Fraction{}, fmt.Errorf("invalid denominator in %q", raw)
	}
	return ratetable.Fraction{Numerator: n, Denominator: d}, nil
}

func overlayAmount(dst *decimal.Decimal, raw, name string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid amount %q", name, raw)
	}
	*dst = d
	return nil
}

func setAmount[K comparable](m map[K]decimal.Decimal, key K, raw, name string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	current := m[key]
	if err := overlayAmount(&current, raw, name); err != nil {
		return err
	}
	m[key] = current
	return nil
}
