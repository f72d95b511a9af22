package diff

import "github.com/everstacklabs/modelfetch/internal/catalog"

// ChangeSet represents the complete diff between two catalog snapshots.
type ChangeSet struct {
	New       []ModelChange
	Updated   []ModelUpdate
	Removed   []ModelChange
	Unchanged int
}

// ModelChange represents a new or removed model.
type ModelChange struct {
	ModelID string
	Record  *catalog.ModelRecord
}

// ModelUpdate represents an existing model with field changes.
type ModelUpdate struct {
	ModelID string
	Record  *catalog.ModelRecord
	Changes []FieldChange
}

// FieldChange records a single field transition.
type FieldChange struct {
	Field    string
	OldValue any
	NewValue any
}

// HasChanges reports whether the changeset has any modifications.
func (cs *ChangeSet) HasChanges() bool {
	return len(cs.New) > 0 || len(cs.Updated) > 0 || len(cs.Removed) > 0
}

// TotalChanged returns the count of new + updated models.
func (cs *ChangeSet) TotalChanged() int {
	return len(cs.New) + len(cs.Updated)
}
