package entity

import (
	"fmt"
	"strings"
)

// AccommodationMethod selects how lodging is reimbursed
type AccommodationMethod string

const (
	AccommodationLumpSum       AccommodationMethod = "lump_sum"      // เหมาจ่าย
	AccommodationActualReceipt AccommodationMethod = "actual"        // จ่ายจริง
	AccommodationVehicleSleep  AccommodationMethod = "vehicle_sleep" // พักแรมบนยานพาหนะ
)

// RoomType is the occupancy of an actual-receipt room
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
)

// TripPurpose distinguishes ordinary travel from training attendance
type TripPurpose string

const (
	PurposeGeneral  TripPurpose = "general"
	PurposeTraining TripPurpose = "training"
)

// Venue is where a training is held
type Venue string

const (
	VenueState   Venue = "state"   // สถานที่ราชการ
	VenuePrivate Venue = "private" // สถานที่เอกชน
)

// VehicleKind is a private vehicle eligible for mileage compensation
type VehicleKind string

const (
	VehiclePrivateCar VehicleKind = "private_car"
	VehicleMotorcycle VehicleKind = "motorcycle"
)

// TaxiRoute is the route class of a taxi trip; it selects base fare and cap
type TaxiRoute string

const (
	TaxiIntraProvince TaxiRoute = "intraprovince"
	TaxiCrossBangkok  TaxiRoute = "cross_bkk"
	TaxiCrossOther    TaxiRoute = "cross_other"
)

// FareMode is a public transport mode reimbursed at the ticket fare
type FareMode string

const (
	FareTrain    FareMode = "train"
	FareBus      FareMode = "bus"
	FareSkytrain FareMode = "skytrain"
	FareVan      FareMode = "van"
	FareTukTuk   FareMode = "tuk_tuk"
)

// AllVehicleKinds lists vehicles the mileage table must cover.
var AllVehicleKinds = []VehicleKind{VehiclePrivateCar, VehicleMotorcycle}

// AllTaxiRoutes lists routes the taxi fare table must cover.
var AllTaxiRoutes = []TaxiRoute{TaxiIntraProvince, TaxiCrossBangkok, TaxiCrossOther}

// AllVenues lists training venues the meal table must cover.
var AllVenues = []Venue{VenueState, VenuePrivate}

func ParseAccommodationMethod(raw string) (AccommodationMethod, error) {
	return parseEnum("accommodation method", raw,
		AccommodationLumpSum, AccommodationActualReceipt, AccommodationVehicleSleep)
}

func ParseRoomType(raw string) (RoomType, error) {
	if strings.TrimSpace(raw) == "" {
		return RoomSingle, nil
	}
	return parseEnum("room type", raw, RoomSingle, RoomDouble)
}

func ParseTripPurpose(raw string) (TripPurpose, error) {
	if strings.TrimSpace(raw) == "" {
		return PurposeGeneral, nil
	}
	return parseEnum("trip purpose", raw, PurposeGeneral, PurposeTraining)
}

func ParseVenue(raw string) (Venue, error) {
	return parseEnum("venue", raw, VenueState, VenuePrivate)
}

func ParseVehicleKind(raw string) (VehicleKind, error) {
	return parseEnum("vehicle", raw, VehiclePrivateCar, VehicleMotorcycle)
}

func ParseTaxiRoute(raw string) (TaxiRoute, error) {
	if strings.TrimSpace(raw) == "" {
		return TaxiIntraProvince, nil
	}
	return parseEnum("taxi route", raw, TaxiIntraProvince, TaxiCrossBangkok, TaxiCrossOther)
}

func ParseFareMode(raw string) (FareMode, error) {
	return parseEnum("fare mode", raw, FareTrain, FareBus, FareSkytrain, FareVan, FareTukTuk)
}

// parseEnum matches raw against the allowed values after trimming and lower-casing.
func parseEnum[T ~string](kind, raw string, allowed ...T) (T, error) {
	s := strings.TrimSpace(raw)
	for _, v := range allowed {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrInvalidValue, kind, raw)
}
