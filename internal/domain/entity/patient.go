package entity

import (
	"time"
)

// DateLayout is the ISO calendar date layout used for dateOfBirth and lastVisit.
const DateLayout = "2006-01-02"

// Patient is a display-only record held by a single patient list view.
type Patient struct {
	ID          string    `json:"id"`
	MRN         string    `json:"mrn"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Status      string    `json:"status"`
	LastVisit   time.Time `json:"last_visit"`
}

// FullName joins first and last name the way the list renders it.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeOn returns the patient's age in whole years on the given day.
func (p Patient) AgeOn(today time.Time) int {
	return AgeOn(p.DateOfBirth, today)
}

// AgeOn computes the calendar age for birth on today: the year difference,
// minus one while today's month/day is still before the birth month/day.
// An exact anniversary does not decrement.
func AgeOn(birth, today time.Time) int {
	by, bm, bd := birth.Date()
	ty, tm, td := today.Date()

	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// ParseDate parses an ISO calendar date in UTC.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
