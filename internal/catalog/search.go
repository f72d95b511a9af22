package catalog

import "strings"

// SearchCriteria holds optional filters combined with AND semantics.
// Nil pointer fields mean "not specified".
type SearchCriteria struct {
	Query               string
	Provider            string
	MinContext          *int
	MaxContext          *int
	MaxPromptPrice      *float64
	MaxCompletionPrice  *float64
	SupportsVision      *bool
	SupportsFuncCalling *bool
	SupportsStreaming   *bool
	Modalities          []string
	Limit               int
}

// Search filters the catalog's records, preserving catalog order.
// Records missing a field a bound applies to are excluded.
func (c *Catalog) Search(cr SearchCriteria) []ModelRecord {
	models := c.Models

	if cr.Query != "" {
		q := strings.ToLower(cr.Query)
		models = filter(models, func(m ModelRecord) bool {
			if strings.Contains(strings.ToLower(m.ModelID), q) ||
				strings.Contains(strings.ToLower(m.Name), q) {
				return true
			}
			return m.Description != "" && strings.Contains(strings.ToLower(m.Description), q)
		})
	}

	if cr.Provider != "" {
		models = filter(models, func(m ModelRecord) bool {
			return strings.EqualFold(m.Provider, cr.Provider)
		})
	}

	if cr.MinContext != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.ContextLength != 0 && m.ContextLength >= *cr.MinContext
		})
	}
	if cr.MaxContext != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.ContextLength != 0 && m.ContextLength <= *cr.MaxContext
		})
	}

	if cr.MaxPromptPrice != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.Pricing != nil && m.Pricing.Prompt != nil && *m.Pricing.Prompt <= *cr.MaxPromptPrice
		})
	}
	if cr.MaxCompletionPrice != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.Pricing != nil && m.Pricing.Completion != nil && *m.Pricing.Completion <= *cr.MaxCompletionPrice
		})
	}

	if cr.SupportsVision != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.Capabilities.SupportsVision == *cr.SupportsVision
		})
	}
	if cr.SupportsFuncCalling != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.Capabilities.SupportsFunctionCalling == *cr.SupportsFuncCalling
		})
	}
	if cr.SupportsStreaming != nil {
		models = filter(models, func(m ModelRecord) bool {
			return m.Capabilities.SupportsStreaming == *cr.SupportsStreaming
		})
	}

	if len(cr.Modalities) > 0 {
		models = filter(models, func(m ModelRecord) bool {
			return hasAllModalities(m.Capabilities.Modalities, cr.Modalities)
		})
	}

	if cr.Limit > 0 && len(models) > cr.Limit {
		models = models[:cr.Limit]
	}

	return models
}

func filter(models []ModelRecord, keep func(ModelRecord) bool) []ModelRecord {
	out := make([]ModelRecord, 0, len(models))
	for _, m := range models {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// hasAllModalities reports whether have is a superset of want.
func hasAllModalities(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, m := range have {
		set[m] = true
	}
	for _, m := range want {
		if !set[m] {
			return false
		}
	}
	return true
}
