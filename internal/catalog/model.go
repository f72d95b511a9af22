package catalog

import "time"

// ModelRecord is one normalized model entry in the catalog.
// Fields match the persisted JSON schema exactly.
type ModelRecord struct {
	ModelID       string         `json:"model_id" yaml:"model_id"`
	Name          string         `json:"name" yaml:"name"`
	Provider      string         `json:"provider" yaml:"provider"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	ContextLength int            `json:"context_length,omitempty" yaml:"context_length,omitempty"`
	Pricing       *Pricing       `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	Capabilities  Capabilities   `json:"capabilities" yaml:"capabilities"`
	Metadata      map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UpdatedAt     time.Time      `json:"updated_at" yaml:"updated_at"`
}

// Pricing holds per-unit costs as reported by the provider.
// Values are stored raw; no per-million rescaling is applied.
type Pricing struct {
	Prompt     *float64 `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Completion *float64 `json:"completion,omitempty" yaml:"completion,omitempty"`
	Image      *float64 `json:"image,omitempty" yaml:"image,omitempty"`
	Request    *float64 `json:"request,omitempty" yaml:"request,omitempty"`
	Currency   string   `json:"currency" yaml:"currency"`
}

// Capabilities describes what a model supports.
type Capabilities struct {
	SupportsVision          bool     `json:"supports_vision" yaml:"supports_vision"`
	SupportsFunctionCalling bool     `json:"supports_function_calling" yaml:"supports_function_calling"`
	SupportsStreaming       bool     `json:"supports_streaming" yaml:"supports_streaming"`
	Modalities              []string `json:"modalities" yaml:"modalities"`
}

// ProviderSummary tracks per-provider stats inside the catalog.
type ProviderSummary struct {
	Name        string    `json:"name" yaml:"name"`
	ModelCount  int       `json:"model_count" yaml:"model_count"`
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`
}

// Catalog is the root persisted entity: all known models in insertion
// order plus per-provider summaries.
type Catalog struct {
	Models      []ModelRecord               `json:"models" yaml:"models"`
	Providers   map[string]*ProviderSummary `json:"providers" yaml:"providers"`
	LastUpdated time.Time                   `json:"last_updated" yaml:"last_updated"`
}

// NewCatalog returns an empty, initialized catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Models:    []ModelRecord{},
		Providers: make(map[string]*ProviderSummary),
	}
}

// Add appends a record and refreshes the owning provider's summary.
func (c *Catalog) Add(m ModelRecord) {
	c.Models = append(c.Models, m)

	now := time.Now().UTC()
	summary, ok := c.Providers[m.Provider]
	if !ok {
		summary = &ProviderSummary{Name: m.Provider}
		c.Providers[m.Provider] = summary
	}
	summary.ModelCount++
	summary.LastUpdated = now
	c.LastUpdated = now
}

// ModelsByProvider returns all records for a provider, in catalog order.
func (c *Catalog) ModelsByProvider(provider string) []ModelRecord {
	var out []ModelRecord
	for _, m := range c.Models {
		if m.Provider == provider {
			out = append(out, m)
		}
	}
	return out
}

// Float returns a pointer to v, for optional pricing fields.
func Float(v float64) *float64 { return &v }
