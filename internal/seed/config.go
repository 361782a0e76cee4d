package seed

import "time"

// Default sizes, roughly one secondary school shift.
const (
	DefaultSecondaryTeachers   = 30
	DefaultPrimaryTeachers     = 20
	DefaultAssistants          = 4
	DefaultAdministrativeStaff = 6
	DefaultInactiveRatio       = 0.1
)

// Config sizes the synthetic school written by Run.
type Config struct {
	SecondaryTeachers   int     `validate:"gte=0,lte=10000"` // Secondary teachers, with courses on weekdays
	PrimaryTeachers     int     `validate:"gte=0,lte=10000"` // Primary teachers
	Assistants          int     `validate:"gte=0,lte=10000"` // Auxiliary staff
	AdministrativeStaff int     `validate:"gte=0,lte=10000"` // Administrative staff
	InactiveRatio       float64 `validate:"gte=0,lte=1"`     // Share of people marked inactive

	// Today gets an active announcement and sets the school year. Zero means
	// the current date.
	Today time.Time
}

// Stats holds what a seed run wrote.
type Stats struct {
	SecondaryTeachers   int
	Courses             int
	PrimaryTeachers     int
	Assistants          int
	AdministrativeStaff int
	Inactive            int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}
