package diff

import (
	"strings"
	"testing"

	"github.com/everstacklabs/modelfetch/internal/catalog"
)

func record(id string, context int) catalog.ModelRecord {
	return catalog.ModelRecord{
		ModelID:       id,
		Name:          id,
		Provider:      "openai",
		ContextLength: context,
		Capabilities:  catalog.Capabilities{SupportsStreaming: true, Modalities: []string{"text"}},
	}
}

func catalogOf(records ...catalog.ModelRecord) *catalog.Catalog {
	cat := catalog.NewCatalog()
	for _, r := range records {
		cat.Add(r)
	}
	return cat
}

func TestComputeNewModel(t *testing.T) {
	old := catalogOf(record("a", 8192))
	updated := catalogOf(record("a", 8192), record("b", 128000))

	cs := Compute(old, updated)

	if len(cs.New) != 1 || cs.New[0].ModelID != "b" {
		t.Errorf("New = %+v", cs.New)
	}
	if len(cs.Updated) != 0 || len(cs.Removed) != 0 {
		t.Errorf("unexpected changes: %+v", cs)
	}
	if cs.Unchanged != 1 {
		t.Errorf("Unchanged = %d, want 1", cs.Unchanged)
	}
}

func TestComputeFieldChanges(t *testing.T) {
	old := catalogOf(record("a", 8192))

	changed := record("a", 32768)
	changed.Pricing = &catalog.Pricing{Prompt: catalog.Float(1), Completion: catalog.Float(2), Currency: "USD"}
	changed.Capabilities.SupportsVision = true
	changed.Capabilities.Modalities = []string{"text", "image"}
	updated := catalogOf(changed)

	cs := Compute(old, updated)

	if len(cs.Updated) != 1 {
		t.Fatalf("Updated = %+v", cs.Updated)
	}
	fields := make(map[string]bool)
	for _, fc := range cs.Updated[0].Changes {
		fields[fc.Field] = true
	}
	for _, want := range []string{"context_length", "pricing", "capabilities.supports_vision", "capabilities.modalities"} {
		if !fields[want] {
			t.Errorf("missing field change %q, got %v", want, fields)
		}
	}
}

func TestComputeRemovedModel(t *testing.T) {
	old := catalogOf(record("a", 8192), record("b", 8192))
	updated := catalogOf(record("a", 8192))

	cs := Compute(old, updated)

	if len(cs.Removed) != 1 || cs.Removed[0].ModelID != "b" {
		t.Errorf("Removed = %+v", cs.Removed)
	}
}

func TestIdenticalCatalogsHaveNoChanges(t *testing.T) {
	old := catalogOf(record("a", 8192), record("b", 128000))
	updated := catalogOf(record("a", 8192), record("b", 128000))

	cs := Compute(old, updated)

	if cs.HasChanges() {
		t.Errorf("expected no changes, got %+v", cs)
	}
	if cs.Unchanged != 2 {
		t.Errorf("Unchanged = %d, want 2", cs.Unchanged)
	}
}

func TestNilPricingIsNotAChange(t *testing.T) {
	priced := record("a", 8192)
	priced.Pricing = &catalog.Pricing{Prompt: catalog.Float(1), Currency: "USD"}
	old := catalogOf(priced)

	// discovered record without pricing data
	updated := catalogOf(record("a", 8192))

	cs := Compute(old, updated)
	if len(cs.Updated) != 0 {
		t.Errorf("missing pricing should not count as a change: %+v", cs.Updated[0].Changes)
	}
}

func TestRenderPRBody(t *testing.T) {
	old := catalogOf(record("a", 8192))
	updated := catalogOf(record("a", 32768), record("b", 128000))

	body := RenderPRBody(Compute(old, updated))

	for _, want := range []string{"Catalog Update", "New Models", "Updated Models", "`b`", "context_length"} {
		if !strings.Contains(body, want) {
			t.Errorf("PR body missing %q:\n%s", want, body)
		}
	}
}
