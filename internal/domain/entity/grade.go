package entity

import (
	"strconv"
	"strings"
)

// Grade is the civil-service C-level band that selects a rate-table row.
// Values are ordered: a higher band compares greater.
type Grade int

const (
	GradeC1ToC8 Grade = iota + 1
	GradeC9ToC11
)

// AllGrades lists every grade the rate table must cover.
var AllGrades = []Grade{GradeC1ToC8, GradeC9ToC11}

// TrainingType is the training classification derived from the grade.
type TrainingType string

const (
	TrainingTypeA TrainingType = "A"
	TrainingTypeB TrainingType = "B"
)

func (g Grade) String() string {
	switch g {
	case GradeC1ToC8:
		return "C1-C8"
	case GradeC9ToC11:
		return "C9-C11"
	default:
		return "Grade(" + strconv.Itoa(int(g)) + ")"
	}
}

// Valid reports whether g is one of the enumerated grades.
func (g Grade) Valid() bool {
	return g == GradeC1ToC8 || g == GradeC9ToC11
}

// TrainingType returns type A for C9 and above, type B otherwise.
func (g Grade) TrainingType() TrainingType {
	if g >= GradeC9ToC11 {
		return TrainingTypeA
	}
	return TrainingTypeB
}

// ParseGrade accepts a band label ("C1-C8", "C9-C11") or a single level ("C7").
func ParseGrade(raw string) (Grade, error) {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	switch s {
	case "C1-C8":
		return GradeC1ToC8, nil
	case "C9-C11":
		return GradeC9ToC11, nil
	}

	if strings.HasPrefix(s, "C") {
		if level, err := strconv.Atoi(s[1:]); err == nil {
			switch {
			case level >= 1 && level <= 8:
				return GradeC1ToC8, nil
			case level >= 9 && level <= 11:
				return GradeC9ToC11, nil
			}
		}
	}

	return 0, &UnknownGradeError{Grade: raw}
}

// ParseTrainingType parses "A" or "B", case-insensitive.
func ParseTrainingType(raw string) (TrainingType, error) {
	return parseEnum("training type", strings.ToUpper(raw), TrainingTypeA, TrainingTypeB)
}

// MarshalText encodes the grade as its band label.
func (g Grade) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, &UnknownGradeError{Grade: g.String()}
	}
	return []byte(g.String()), nil
}

// UnmarshalText decodes a band label or single level.
func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
