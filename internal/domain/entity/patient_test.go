package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestAgeOn(t *testing.T) {
	tests := []struct {
		name  string
		birth string
		today string
		want  int
	}{
		{name: "birthday not reached yet", birth: "1980-05-15", today: "2024-01-15", want: 43},
		{name: "exact anniversary", birth: "1990-03-10", today: "2024-03-10", want: 34},
		{name: "earlier month", birth: "1975-08-22", today: "2024-01-10", want: 48},
		{name: "same month day before", birth: "1990-03-10", today: "2024-03-09", want: 33},
		{name: "same month day after", birth: "1990-03-10", today: "2024-03-11", want: 34},
		{name: "born today", birth: "2024-06-01", today: "2024-06-01", want: 0},
		{name: "leap day in non leap year", birth: "2000-02-29", today: "2023-02-28", want: 22},
		{name: "leap day after march first", birth: "2000-02-29", today: "2023-03-01", want: 23},
		{name: "leap day anniversary", birth: "2000-02-29", today: "2024-02-29", want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgeOn(mustDate(t, tt.birth), mustDate(t, tt.today))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAgeOn_IgnoresTimeOfDay(t *testing.T) {
	birth := mustDate(t, "1990-03-10")
	today := time.Date(2024, time.March, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 34, AgeOn(birth, today))
}

func TestPatient_Helpers(t *testing.T) {
	p := Patient{
		FirstName:   "Jane",
		LastName:    "Smith",
		DateOfBirth: mustDate(t, "1975-08-22"),
	}

	assert.Equal(t, "Jane Smith", p.FullName())
	assert.Equal(t, 48, p.AgeOn(mustDate(t, "2024-01-10")))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("15/05/1980")
	assert.Error(t, err)
}
