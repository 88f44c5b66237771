package models

// Level defines the difficulty level of a course
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Visibility defines whether a course is publicly listed
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ValidityKind defines the unit of a course validity period
type ValidityKind string

const (
	ValidityNone   ValidityKind = "none"
	ValidityDays   ValidityKind = "days"
	ValidityWeeks  ValidityKind = "weeks"
	ValidityMonths ValidityKind = "months"
	ValidityYears  ValidityKind = "years"
)

// IsValid reports whether the kind is one of the known units.
func (k ValidityKind) IsValid() bool {
	switch k {
	case ValidityNone, ValidityDays, ValidityWeeks, ValidityMonths, ValidityYears:
		return true
	}
	return false
}

// ValidityPeriod is a course's access policy: how long an enrollment stays
// active after purchase. Kind "none" or a non-positive duration means
// unlimited access.
type ValidityPeriod struct {
	Kind     ValidityKind `json:"type" db:"validity_kind" example:"months"`
	Duration int          `json:"duration" db:"validity_duration" example:"6"`
}

// Unlimited reports whether the policy grants unlimited access.
func (p ValidityPeriod) Unlimited() bool {
	return p.Kind == ValidityNone || p.Duration <= 0
}
