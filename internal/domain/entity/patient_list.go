package entity

// ListState is the lifecycle state of one patient list view.
type ListState string

const (
	ListIdle      ListState = "idle"
	ListLoading   ListState = "loading"
	ListPopulated ListState = "populated"
	ListFailed    ListState = "failed"
)

// IsTerminal reports whether no further transition can leave the state.
func (s ListState) IsTerminal() bool {
	return s == ListPopulated || s == ListFailed
}

// PatientListSnapshot is a copy of a list view's state at one instant.
type PatientListSnapshot struct {
	State    ListState
	Patients []Patient
	Err      error
}
