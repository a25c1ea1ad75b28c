package entity

import "time"

// SavedProfile is a traveler profile kept for reuse across claims
type SavedProfile struct {
	ID         int64     `json:"id"`
	FullName   string    `json:"full_name"`
	Position   string    `json:"position"`
	Grade      Grade     `json:"grade"`
	Department string    `json:"department"`
	LastUsed   time.Time `json:"last_used"`
}

// Traveler converts the stored row into the calculation profile
func (p *SavedProfile) Traveler() TravelerProfile {
	return TravelerProfile{
		Name:       p.FullName,
		Position:   p.Position,
		Grade:      p.Grade,
		Department: p.Department,
	}
}
