package entity

// Segment is a healthcare vertical shown as a tab on the landing page.
type Segment struct {
	ID          string   `yaml:"id" json:"id" validate:"required"`
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features" validate:"required,min=1,dive,required"`
	Icon        string   `yaml:"icon" json:"icon" validate:"required"`
	Color       string   `yaml:"color" json:"color"`
}

// ComplianceFeature is one tile of the security and compliance grid.
type ComplianceFeature struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Icon        string `yaml:"icon" json:"icon" validate:"required"`
	Description string `yaml:"description" json:"description"`
}

// FeatureCard is one card of the product feature grid.
type FeatureCard struct {
	Title string `yaml:"title" json:"title" validate:"required"`
	Icon  string `yaml:"icon" json:"icon" validate:"required"`
	Body  string `yaml:"body" json:"body"`
}

// AppTemplate is a starter application offered for a segment.
type AppTemplate struct {
	ID          string   `yaml:"id" json:"id" validate:"required"`
	Name        string   `yaml:"name" json:"name" validate:"required"`
	Segment     string   `yaml:"segment" json:"segment" validate:"required"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
	Compliance  []string `yaml:"compliance" json:"compliance"`
}

// NavLink is a labelled relative or absolute link.
type NavLink struct {
	Label    string `yaml:"label" json:"label" validate:"required"`
	Href     string `yaml:"href" json:"href" validate:"required"`
	External bool   `yaml:"external" json:"external,omitempty"`
}

// FooterColumn groups footer links under a heading.
type FooterColumn struct {
	Heading string    `yaml:"heading" json:"heading" validate:"required"`
	Links   []NavLink `yaml:"links" json:"links" validate:"dive"`
}

// Catalog is the immutable landing page content loaded once at start.
type Catalog struct {
	Segments           []Segment           `yaml:"segments" json:"segments" validate:"required,min=1,dive"`
	ComplianceFeatures []ComplianceFeature `yaml:"compliance_features" json:"compliance_features" validate:"dive"`
	FeatureCards       []FeatureCard       `yaml:"feature_cards" json:"feature_cards" validate:"dive"`
	Templates          []AppTemplate       `yaml:"templates" json:"templates" validate:"dive"`
	HeaderLinks        []NavLink           `yaml:"header_links" json:"header_links" validate:"dive"`
	FooterColumns      []FooterColumn      `yaml:"footer_columns" json:"footer_columns" validate:"dive"`
	Compliance         []string            `yaml:"compliance" json:"compliance"`
}

// DefaultSegmentID returns the id of the first catalog segment.
func (c *Catalog) DefaultSegmentID() string {
	if len(c.Segments) == 0 {
		return ""
	}
	return c.Segments[0].ID
}

// Segment looks up a segment by id.
func (c *Catalog) Segment(id string) (Segment, bool) {
	for _, s := range c.Segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}
