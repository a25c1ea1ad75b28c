package entity

import "github.com/shopspring/decimal"

// AccommodationEntry is one lodging claim of a trip. ClaimedNightly is
// only read for the actual-receipt method.
type AccommodationEntry struct {
	Method         AccommodationMethod
	RoomType       RoomType
	Purpose        TripPurpose
	Venue          Venue
	Nights         int
	ClaimedNightly decimal.Decimal
	Description    string
}
