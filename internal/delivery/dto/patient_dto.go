package dto

// PatientResponse is a patient as rendered by the list, with derived age
type PatientResponse struct {
	ID          string `json:"id"`
	MRN         string `json:"mrn"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Status      string `json:"status"`
	LastVisit   string `json:"last_visit"`
}

type PatientListResponse struct {
	State    string            `json:"state"`
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// PatientListMessage is pushed over the live patient list socket.
type PatientListMessage struct {
	Type    string               `json:"type"`
	ViewID  string               `json:"view_id"`
	HTML    string               `json:"html"`
	Data    *PatientListResponse `json:"data,omitempty"`
	Message string               `json:"message,omitempty"`
}
