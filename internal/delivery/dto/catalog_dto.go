package dto

type SegmentResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
}

type ComplianceFeatureResponse struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type TemplateResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Segment     string   `json:"segment"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Compliance  []string `json:"compliance"`
}

type TemplateListResponse struct {
	Templates []TemplateResponse `json:"templates"`
	Total     int                `json:"total"`
}

type TemplateFilter struct {
	Segment string `validate:"omitempty,max=64"`
}

// InfoResponse describes the running service
type InfoResponse struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Version       string   `json:"version"`
	Health        string   `json:"health"`
	Segments      []string `json:"segments"`
	Compliance    []string `json:"compliance"`
	GeneratorPath string   `json:"generator_path"`
	SourceURL     string   `json:"source_url"`
}

type HealthResponse struct {
	Status     string           `json:"status"`
	Service    string           `json:"service"`
	Version    string           `json:"version"`
	Timestamp  string           `json:"timestamp"`
	Compliance HealthCompliance `json:"compliance"`
}

type HealthCompliance struct {
	HIPAA        bool `json:"hipaa"`
	GDPR         bool `json:"gdpr"`
	AuditEnabled bool `json:"audit_enabled"`
}
