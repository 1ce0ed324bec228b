package converter

import (
	"testing"
	"time"

	"mediforge/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestPatientToResponse(t *testing.T) {
	p := entity.Patient{
		ID:          "1",
		MRN:         "MRN001234",
		FirstName:   "John",
		LastName:    "Doe",
		DateOfBirth: time.Date(1980, time.May, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "Male",
		Status:      "Active",
		LastVisit:   time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
	today := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

	got := PatientToResponse(p, today)

	assert.Equal(t, "John Doe", got.FullName)
	assert.Equal(t, 43, got.Age)
	assert.Equal(t, "1980-05-15", got.DateOfBirth)
	assert.Equal(t, "1/15/2024", got.LastVisit)
}

func TestSnapshotToResponse_Loading(t *testing.T) {
	got := SnapshotToResponse(entity.PatientListSnapshot{State: entity.ListLoading}, time.Now())

	assert.Equal(t, "loading", got.State)
	assert.Empty(t, got.Patients)
	assert.NotNil(t, got.Patients)
	assert.Equal(t, 0, got.Total)
}
