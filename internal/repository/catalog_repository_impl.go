package repository

import (
	_ "embed"
	"errors"
	"fmt"

	"mediforge/internal/domain/entity"
	domainRepo "mediforge/internal/domain/repository"
	"mediforge/pkg/validator"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

var (
	ErrDuplicateSegment       = errors.New("duplicate segment id")
	ErrTemplateSegmentUnknown = errors.New("template references unknown segment")
)

type catalogRepository struct {
	catalog entity.Catalog
}

// NewEmbeddedCatalogRepository loads the catalog compiled into the binary.
func NewEmbeddedCatalogRepository(v *validator.CustomValidator) (domainRepo.CatalogRepository, error) {
	return NewCatalogRepository(embeddedCatalog, v)
}

// NewCatalogRepository parses and validates a YAML catalog document.
func NewCatalogRepository(data []byte, v *validator.CustomValidator) (domainRepo.CatalogRepository, error) {
	var catalog entity.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := v.Validate(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %s", v.Summary(err))
	}

	seen := make(map[string]struct{}, len(catalog.Segments))
	for _, s := range catalog.Segments {
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSegment, s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	for _, t := range catalog.Templates {
		if _, ok := seen[t.Segment]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s", ErrTemplateSegmentUnknown, t.ID, t.Segment)
		}
	}

	return &catalogRepository{catalog: catalog}, nil
}

func (r *catalogRepository) Segments() []entity.Segment {
	out := make([]entity.Segment, len(r.catalog.Segments))
	for i, s := range r.catalog.Segments {
		out[i] = cloneSegment(s)
	}
	return out
}

func (r *catalogRepository) FindSegment(id string) (*entity.Segment, bool) {
	s, ok := r.catalog.Segment(id)
	if !ok {
		return nil, false
	}
	clone := cloneSegment(s)
	return &clone, true
}

func (r *catalogRepository) DefaultSegmentID() string {
	return r.catalog.DefaultSegmentID()
}

func (r *catalogRepository) ComplianceFeatures() []entity.ComplianceFeature {
	return append([]entity.ComplianceFeature(nil), r.catalog.ComplianceFeatures...)
}

func (r *catalogRepository) FeatureCards() []entity.FeatureCard {
	return append([]entity.FeatureCard(nil), r.catalog.FeatureCards...)
}

func (r *catalogRepository) Templates() []entity.AppTemplate {
	out := make([]entity.AppTemplate, len(r.catalog.Templates))
	for i, t := range r.catalog.Templates {
		t.Features = append([]string(nil), t.Features...)
		t.Compliance = append([]string(nil), t.Compliance...)
		out[i] = t
	}
	return out
}

func (r *catalogRepository) HeaderLinks() []entity.NavLink {
	return append([]entity.NavLink(nil), r.catalog.HeaderLinks...)
}

func (r *catalogRepository) FooterColumns() []entity.FooterColumn {
	out := make([]entity.FooterColumn, len(r.catalog.FooterColumns))
	for i, c := range r.catalog.FooterColumns {
		c.Links = append([]entity.NavLink(nil), c.Links...)
		out[i] = c
	}
	return out
}

func (r *catalogRepository) Compliance() []string {
	return append([]string(nil), r.catalog.Compliance...)
}

func cloneSegment(s entity.Segment) entity.Segment {
	s.Features = append([]string(nil), s.Features...)
	return s
}
