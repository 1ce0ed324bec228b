package converter

import (
	"time"

	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"
)

// LastVisitLayout renders visit dates as month/day/year.
const LastVisitLayout = "1/2/2006"

// PatientToResponse converts a Patient entity to PatientResponse DTO, deriving age on today
func PatientToResponse(p entity.Patient, today time.Time) dto.PatientResponse {
	return dto.PatientResponse{
		ID:          p.ID,
		MRN:         p.MRN,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		DateOfBirth: p.DateOfBirth.Format(entity.DateLayout),
		Age:         p.AgeOn(today),
		Gender:      p.Gender,
		Status:      p.Status,
		LastVisit:   p.LastVisit.Format(LastVisitLayout),
	}
}

func PatientsToResponses(patients []entity.Patient, today time.Time) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		responses = append(responses, PatientToResponse(p, today))
	}
	return responses
}

// SnapshotToResponse converts a list view snapshot into its wire form
func SnapshotToResponse(snapshot entity.PatientListSnapshot, today time.Time) *dto.PatientListResponse {
	patients := PatientsToResponses(snapshot.Patients, today)
	return &dto.PatientListResponse{
		State:    string(snapshot.State),
		Patients: patients,
		Total:    len(patients),
	}
}
