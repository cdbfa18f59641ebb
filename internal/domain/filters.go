package domain

import "time"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AgeRange is an inclusive range of customer ages.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterSpec is the conjunction of user-selected constraints.
// A nil range or an empty set leaves that dimension unrestricted.
type FilterSpec struct {
	Dates      *DateRange `json:"dates,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Genders    []string   `json:"genders,omitempty"`
	Ages       *AgeRange  `json:"ages,omitempty"`
}

// FilterOptions lists the values available for each filter dimension in a snapshot.
type FilterOptions struct {
	Categories []string  `json:"categories"`
	Genders    []string  `json:"genders"`
	MinDate    time.Time `json:"min_date"`
	MaxDate    time.Time `json:"max_date"`
	MinAge     int       `json:"min_age"`
	MaxAge     int       `json:"max_age"`
}
