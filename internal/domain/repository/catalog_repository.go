package repository

import (
	"mediforge/internal/domain/entity"
)

// CatalogRepository serves the immutable landing page content. Returned
// slices are copies; callers may not mutate the catalog through them.
type CatalogRepository interface {
	Segments() []entity.Segment
	FindSegment(id string) (*entity.Segment, bool)
	DefaultSegmentID() string
	ComplianceFeatures() []entity.ComplianceFeature
	FeatureCards() []entity.FeatureCard
	Templates() []entity.AppTemplate
	HeaderLinks() []entity.NavLink
	FooterColumns() []entity.FooterColumn
	Compliance() []string
}
