package entity

import "strings"

// TravelerProfile identifies the official claiming the expenses.
// Grade selects the rate-table row used by every calculator.
type TravelerProfile struct {
	Name       string
	Position   string
	Grade      Grade
	Department string
}

// NewTravelerProfile builds a profile, resolving the grade label.
func NewTravelerProfile(name, position, grade, department string) (TravelerProfile, error) {
	g, err := ParseGrade(grade)
	if err != nil {
		return TravelerProfile{}, err
	}
	return TravelerProfile{
		Name:       strings.TrimSpace(name),
		Position:   strings.TrimSpace(position),
		Grade:      g,
		Department: strings.TrimSpace(department),
	}, nil
}
