package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/calculator"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/domain/expense"
	"github.com/garyjia/gov-travel-expense/pkg/utils"
	"github.com/shopspring/decimal"
)

// ClaimInput is the submitted form of a travel claim, as received over
// HTTP and stored in drafts.
type ClaimInput struct {
	Traveler      TravelerInput        `json:"traveler"`
	Trip          TripInput            `json:"trip"`
	Meals         []MealInput          `json:"meals,omitempty"`
	Accommodation []AccommodationInput `json:"accommodation,omitempty"`
	Transport     []TransportInput     `json:"transport,omitempty"`
	TrainingMeals *TrainingMealInput   `json:"training_meals,omitempty"`
}

// TravelerInput identifies the claimant
type TravelerInput struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Grade      string `json:"grade"`
	Department string `json:"department"`
}

// TripInput is the departure and return of the trip
type TripInput struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Purpose     string    `json:"purpose"`
	Destination string    `json:"destination"`
}

// MealInput marks the meals provided by the host on one day
type MealInput struct {
	Breakfast bool `json:"breakfast"`
	Lunch     bool `json:"lunch"`
	Dinner    bool `json:"dinner"`
}

// AccommodationInput is one lodging entry
type AccommodationInput struct {
	Method       string          `json:"method"`
	Nights       int             `json:"nights"`
	NightlyClaim decimal.Decimal `json:"nightly_claim"`
	RoomType     string          `json:"room_type,omitempty"`
	Purpose      string          `json:"purpose,omitempty"`
	Venue        string          `json:"venue,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// TransportInput is one trip leg. Kind selects which fields are read:
// "taxi" (route, distance_km, flat_fare, surcharges), "private_vehicle"
// (vehicle, distance_km) or "fare" (mode, fare).
type TransportInput struct {
	Kind           string              `json:"kind"`
	Description    string              `json:"description,omitempty"`
	DistanceKm     decimal.Decimal     `json:"distance_km"`
	Route          string              `json:"route,omitempty"`
	FlatFare       decimal.NullDecimal `json:"flat_fare"`
	TrafficMinutes int                 `json:"traffic_minutes,omitempty"`
	AppBooking     bool                `json:"app_booking,omitempty"`
	Airport        bool                `json:"airport,omitempty"`
	Vehicle        string              `json:"vehicle,omitempty"`
	Mode           string              `json:"mode,omitempty"`
	Fare           decimal.Decimal     `json:"fare"`
}

// TrainingMealInput is the meal budget of a training course
type TrainingMealInput struct {
	Venue  string `json:"venue,omitempty"`
	Meals  int    `json:"meals"`
	Snacks int    `json:"snacks"`
}

// ToRequest validates the input and converts it into a domain request.
func (in *ClaimInput) ToRequest() (expense.ClaimRequest, error) {
	var req expense.ClaimRequest

	traveler, err := in.Traveler.toProfile()
	if err != nil {
		return req, err
	}
	req.Traveler = traveler

	trip, err := entity.NewTripSchedule(in.Trip.Start, in.Trip.End,
		utils.SanitizeString(in.Trip.Purpose), utils.SanitizeString(in.Trip.Destination))
	if err != nil {
		return req, err
	}
	req.Trip = trip

	for _, m := range in.Meals {
		req.Meals = append(req.Meals, entity.MealSetFromFlags(m.Breakfast, m.Lunch, m.Dinner))
	}

	for i, a := range in.Accommodation {
		entry, err := a.toEntry()
		if err != nil {
			return req, fmt.Errorf("accommodation[%d]: %w", i, err)
		}
		req.Accommodation = append(req.Accommodation, entry)
	}

	for i, t := range in.Transport {
		leg, err := t.ToLeg()
		if err != nil {
			return req, fmt.Errorf("transport[%d]: %w", i, err)
		}
		req.Transport = append(req.Transport, leg)
	}

	if in.TrainingMeals != nil {
		tm, err := in.TrainingMeals.toRequest()
		if err != nil {
			return req, fmt.Errorf("training_meals: %w", err)
		}
		req.TrainingMeals = &tm
	}
	return req, nil
}

func (t TravelerInput) toProfile() (entity.TravelerProfile, error) {
	name := utils.SanitizeString(t.Name)
	if err := utils.ValidateName("traveler name", name); err != nil {
		return entity.TravelerProfile{}, fmt.Errorf("%w: %v", entity.ErrInvalidValue, err)
	}
	return entity.NewTravelerProfile(name,
		utils.SanitizeString(t.Position), t.Grade, utils.SanitizeString(t.Department))
}

func (a AccommodationInput) toEntry() (entity.AccommodationEntry, error) {
	method, err := entity.ParseAccommodationMethod(a.Method)
	if err != nil {
		return entity.AccommodationEntry{}, err
	}
	room, err := entity.ParseRoomType(a.RoomType)
	if err != nil {
		return entity.AccommodationEntry{}, err
	}
	purpose, err := entity.ParseTripPurpose(a.Purpose)
	if err != nil {
		return entity.AccommodationEntry{}, err
	}
	var venue entity.Venue
	if strings.TrimSpace(a.Venue) != "" {
		if venue, err = entity.ParseVenue(a.Venue); err != nil {
			return entity.AccommodationEntry{}, err
		}
	}
	return entity.AccommodationEntry{
		Method:         method,
		RoomType:       room,
		Purpose:        purpose,
		Venue:          venue,
		Nights:         a.Nights,
		ClaimedNightly: a.NightlyClaim,
		Description:    utils.SanitizeString(a.Description),
	}, nil
}

// ToLeg converts the input into a transport leg of the matching variant.
func (t TransportInput) ToLeg() (calculator.TransportLeg, error) {
	desc := utils.SanitizeString(t.Description)
	switch strings.ToLower(strings.TrimSpace(t.Kind)) {
	case calculator.KindTaxi:
		trip, err := t.ToTaxiTrip()
		if err != nil {
			return nil, err
		}
		return trip, nil
	case calculator.KindPrivateVehicle:
		vehicle, err := entity.ParseVehicleKind(t.Vehicle)
		if err != nil {
			return nil, err
		}
		return calculator.PrivateVehicleTrip{Vehicle: vehicle, DistanceKm: t.DistanceKm, Description: desc}, nil
	case calculator.KindPublicTransport:
		mode, err := entity.ParseFareMode(t.Mode)
		if err != nil {
			return nil, err
		}
		return calculator.FareTrip{Mode: mode, Fare: t.Fare, Description: desc}, nil
	default:
		return nil, fmt.Errorf("%w: transport kind %q", entity.ErrInvalidValue, t.Kind)
	}
}

// ToTaxiTrip reads the taxi fields regardless of Kind.
func (t TransportInput) ToTaxiTrip() (calculator.TaxiTrip, error) {
	route, err := entity.ParseTaxiRoute(t.Route)
	if err != nil {
		return calculator.TaxiTrip{}, err
	}
	return calculator.TaxiTrip{
		Route:          route,
		DistanceKm:     t.DistanceKm,
		FlatFare:       t.FlatFare,
		TrafficMinutes: t.TrafficMinutes,
		AppBooking:     t.AppBooking,
		Airport:        t.Airport,
		Description:    utils.SanitizeString(t.Description),
	}, nil
}

func (t TrainingMealInput) toRequest() (calculator.TrainingMealRequest, error) {
	var venue entity.Venue
	if strings.TrimSpace(t.Venue) != "" {
		v, err := entity.ParseVenue(t.Venue)
		if err != nil {
			return calculator.TrainingMealRequest{}, err
		}
		venue = v
	}
	return calculator.TrainingMealRequest{Venue: venue, Meals: t.Meals, Snacks: t.Snacks}, nil
}
