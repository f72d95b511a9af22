package diff

import (
	"sort"

	"github.com/everstacklabs/modelfetch/internal/catalog"
)

// Compute compares a new catalog snapshot against the previous one.
func Compute(old, updated *catalog.Catalog) *ChangeSet {
	cs := &ChangeSet{}

	oldIndex := make(map[string]*catalog.ModelRecord, len(old.Models))
	for i := range old.Models {
		oldIndex[old.Models[i].ModelID] = &old.Models[i]
	}

	newSet := make(map[string]bool, len(updated.Models))
	for i := range updated.Models {
		m := &updated.Models[i]
		newSet[m.ModelID] = true

		prev, exists := oldIndex[m.ModelID]
		if !exists {
			cs.New = append(cs.New, ModelChange{ModelID: m.ModelID, Record: m})
			continue
		}

		changes := computeFieldChanges(prev, m)
		if len(changes) > 0 {
			cs.Updated = append(cs.Updated, ModelUpdate{ModelID: m.ModelID, Record: m, Changes: changes})
		} else {
			cs.Unchanged++
		}
	}

	for i := range old.Models {
		m := &old.Models[i]
		if !newSet[m.ModelID] {
			cs.Removed = append(cs.Removed, ModelChange{ModelID: m.ModelID, Record: m})
		}
	}

	return cs
}

func computeFieldChanges(old, updated *catalog.ModelRecord) []FieldChange {
	var changes []FieldChange

	if updated.Name != "" && old.Name != updated.Name {
		changes = append(changes, FieldChange{Field: "name", OldValue: old.Name, NewValue: updated.Name})
	}
	if updated.Provider != "" && old.Provider != updated.Provider {
		changes = append(changes, FieldChange{Field: "provider", OldValue: old.Provider, NewValue: updated.Provider})
	}
	if updated.ContextLength != 0 && old.ContextLength != updated.ContextLength {
		changes = append(changes, FieldChange{Field: "context_length", OldValue: old.ContextLength, NewValue: updated.ContextLength})
	}

	// Pricing: skip nil discovered pricing (missing data, not free).
	if updated.Pricing != nil {
		if old.Pricing == nil {
			changes = append(changes, FieldChange{Field: "pricing", OldValue: nil, NewValue: updated.Pricing})
		} else {
			if !equalPrice(old.Pricing.Prompt, updated.Pricing.Prompt) {
				changes = append(changes, FieldChange{Field: "pricing.prompt", OldValue: old.Pricing.Prompt, NewValue: updated.Pricing.Prompt})
			}
			if !equalPrice(old.Pricing.Completion, updated.Pricing.Completion) {
				changes = append(changes, FieldChange{Field: "pricing.completion", OldValue: old.Pricing.Completion, NewValue: updated.Pricing.Completion})
			}
		}
	}

	if old.Capabilities.SupportsVision != updated.Capabilities.SupportsVision {
		changes = append(changes, FieldChange{Field: "capabilities.supports_vision", OldValue: old.Capabilities.SupportsVision, NewValue: updated.Capabilities.SupportsVision})
	}
	if old.Capabilities.SupportsFunctionCalling != updated.Capabilities.SupportsFunctionCalling {
		changes = append(changes, FieldChange{Field: "capabilities.supports_function_calling", OldValue: old.Capabilities.SupportsFunctionCalling, NewValue: updated.Capabilities.SupportsFunctionCalling})
	}
	if !equalStringSlices(old.Capabilities.Modalities, updated.Capabilities.Modalities) {
		changes = append(changes, FieldChange{Field: "capabilities.modalities", OldValue: old.Capabilities.Modalities, NewValue: updated.Capabilities.Modalities})
	}

	return changes
}

func equalPrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// equalStringSlices compares two string slices for equality (order-independent).
func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	sa := make([]string, len(a))
	copy(sa, a)
	sort.Strings(sa)
	sb := make([]string, len(b))
	copy(sb, b)
	sort.Strings(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
