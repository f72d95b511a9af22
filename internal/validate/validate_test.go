package validate

import (
	"strings"
	"testing"

	"github.com/everstacklabs/modelfetch/internal/catalog"
)

func validRecord() catalog.ModelRecord {
	return catalog.ModelRecord{
		ModelID:       "gpt-4o",
		Name:          "GPT-4o",
		Provider:      "openai",
		ContextLength: 128000,
		Pricing:       &catalog.Pricing{Prompt: catalog.Float(2.5), Completion: catalog.Float(10), Currency: "USD"},
		Capabilities: catalog.Capabilities{
			SupportsVision: true,
			Modalities:     []string{"text", "image"},
		},
	}
}

func TestValidRecordPassesAllChecks(t *testing.T) {
	m := validRecord()
	r := ValidateModel(&m)

	if r.HasErrors() {
		t.Errorf("expected no errors, got: %v", r.Errors())
	}
	if len(r.Warnings()) > 0 {
		t.Errorf("expected no warnings, got: %v", r.Warnings())
	}
}

func TestMissingRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*catalog.ModelRecord)
		errField string
	}{
		{"missing model_id", func(m *catalog.ModelRecord) { m.ModelID = "" }, "model_id"},
		{"missing name", func(m *catalog.ModelRecord) { m.Name = "" }, "name"},
		{"missing provider", func(m *catalog.ModelRecord) { m.Provider = "" }, "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validRecord()
			tt.mutate(&m)
			r := ValidateModel(&m)

			if !r.HasErrors() {
				t.Fatal("expected errors")
			}
			found := false
			for _, e := range r.Errors() {
				if e.Field == tt.errField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got: %v", tt.errField, r.Errors())
			}
		})
	}
}

func TestNegativeValuesAreErrors(t *testing.T) {
	m := validRecord()
	m.ContextLength = -1
	m.Pricing.Prompt = catalog.Float(-0.5)

	r := ValidateModel(&m)
	if len(r.Errors()) != 2 {
		t.Errorf("expected 2 errors, got: %v", r.Errors())
	}
}

func TestMissingTextModalityWarns(t *testing.T) {
	m := validRecord()
	m.Capabilities.Modalities = []string{"image"}

	r := ValidateModel(&m)
	if r.HasErrors() {
		t.Errorf("modality gaps should warn, not block: %v", r.Errors())
	}
	if len(r.Warnings()) == 0 {
		t.Error("expected a warning for missing text modality")
	}
}

func TestVisionWithoutImageModalityWarns(t *testing.T) {
	m := validRecord()
	m.Capabilities.Modalities = []string{"text"}

	r := ValidateModel(&m)
	if len(r.Warnings()) == 0 {
		t.Error("expected a warning for vision without image modality")
	}
}

func TestCatalogDuplicateIDs(t *testing.T) {
	cat := catalog.NewCatalog()
	cat.Add(validRecord())
	cat.Add(validRecord())

	r := ValidateCatalog(cat)
	if !r.HasErrors() {
		t.Fatal("expected duplicate model_id error")
	}
	found := false
	for _, e := range r.Errors() {
		if e.Field == "model_id" && e.Message == "duplicate model_id" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate error, got: %v", r.Errors())
	}
}

func TestCatalogSummaryCountMismatch(t *testing.T) {
	cat := catalog.NewCatalog()
	cat.Add(validRecord())
	cat.Providers["openai"].ModelCount = 7

	r := ValidateCatalog(cat)
	if !r.HasErrors() {
		t.Fatal("expected summary count error")
	}
}

func TestCatalogMissingSummary(t *testing.T) {
	cat := catalog.NewCatalog()
	cat.Models = append(cat.Models, validRecord()) // bypass Add, no summary

	r := ValidateCatalog(cat)
	if !r.HasErrors() {
		t.Fatal("expected missing summary error")
	}
}

func TestFormatResult(t *testing.T) {
	r := &Result{}
	if got := FormatResult(r); got != "Validation passed: no issues found." {
		t.Errorf("empty result format = %q", got)
	}

	r.Issues = append(r.Issues,
		Issue{SeverityError, "m1", "name", "required field is empty"},
		Issue{SeverityWarning, "m2", "context_length", "unknown (zero)"},
	)
	out := FormatResult(r)
	if out == "" {
		t.Fatal("expected formatted output")
	}
	for _, want := range []string{"Errors (1):", "Warnings (1):", "[ERROR]", "[WARN]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
