package dto

import (
	"mediforge/internal/domain/entity"
)

// LandingPageData is everything the landing page renders for one session.
type LandingPageData struct {
	Title              string
	Description        string
	Keywords           string
	Segments           []entity.Segment
	SelectedSegment    string
	Navigating         bool
	ComplianceFeatures []entity.ComplianceFeature
	FeatureCards       []entity.FeatureCard
	HeaderLinks        []entity.NavLink
	FooterColumns      []entity.FooterColumn
	GeneratorPath      string
	SourceURL          string
	Notice             string
}

// PatientListPageData drives the patient list page shell.
type PatientListPageData struct {
	Title     string
	SocketURL string
	SourceURL string
}
