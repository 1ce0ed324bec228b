package repository

import (
	"context"
	"time"

	"mediforge/internal/domain/entity"
	domainRepo "mediforge/internal/domain/repository"
)

type fixturePatientRepository struct {
	patients []entity.Patient
}

// NewFixturePatientRepository serves the built-in demo patients. Nothing is
// persisted; every call returns a fresh copy.
func NewFixturePatientRepository() domainRepo.PatientRepository {
	return &fixturePatientRepository{patients: fixturePatients()}
}

// NewStaticPatientRepository serves the given patients.
func NewStaticPatientRepository(patients []entity.Patient) domainRepo.PatientRepository {
	return &fixturePatientRepository{patients: patients}
}

func (r *fixturePatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]entity.Patient, len(r.patients))
	copy(out, r.patients)
	return out, nil
}

func fixturePatients() []entity.Patient {
	return []entity.Patient{
		{
			ID:          "1",
			MRN:         "MRN001234",
			FirstName:   "John",
			LastName:    "Doe",
			DateOfBirth: date(1980, time.May, 15),
			Gender:      "Male",
			Status:      "Active",
			LastVisit:   date(2024, time.January, 15),
		},
		{
			ID:          "2",
			MRN:         "MRN001235",
			FirstName:   "Jane",
			LastName:    "Smith",
			DateOfBirth: date(1975, time.August, 22),
			Gender:      "Female",
			Status:      "Active",
			LastVisit:   date(2024, time.January, 10),
		},
		{
			ID:          "3",
			MRN:         "MRN001236",
			FirstName:   "Robert",
			LastName:    "Johnson",
			DateOfBirth: date(1990, time.March, 10),
			Gender:      "Male",
			Status:      "Active",
			LastVisit:   date(2024, time.January, 8),
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
