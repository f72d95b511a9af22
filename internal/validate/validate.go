package validate

import (
	"fmt"
	"strings"

	"github.com/everstacklabs/modelfetch/internal/catalog"
)

// Severity classifies validation issues.
type Severity int

const (
	SeverityError   Severity = iota // Blocks publishing
	SeverityWarning                 // Reported but doesn't block
)

// Issue represents a single validation problem.
type Issue struct {
	Severity Severity
	Model    string
	Field    string
	Message  string
}

func (i Issue) String() string {
	sev := "ERROR"
	if i.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s — %s", sev, i.Model, i.Field, i.Message)
}

// Result holds all validation issues.
type Result struct {
	Issues []Issue
}

// HasErrors returns true if there are any blocking errors.
func (r *Result) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (r *Result) Errors() []Issue {
	var errs []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			errs = append(errs, i)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (r *Result) Warnings() []Issue {
	var warns []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			warns = append(warns, i)
		}
	}
	return warns
}

// Known modality values (warn on unknown, don't block).
var knownModalities = map[string]bool{
	"text":  true,
	"image": true,
	"audio": true,
	"video": true,
	"file":  true,
}

// ValidateModel checks a single record for schema compliance.
func ValidateModel(m *catalog.ModelRecord) *Result {
	r := &Result{}

	if m.ModelID == "" {
		r.Issues = append(r.Issues, Issue{SeverityError, m.Name, "model_id", "required field is empty"})
	}
	if m.Name == "" {
		r.Issues = append(r.Issues, Issue{SeverityError, m.ModelID, "name", "required field is empty"})
	}
	if m.Provider == "" {
		r.Issues = append(r.Issues, Issue{SeverityError, m.ModelID, "provider", "required field is empty"})
	}

	if m.ContextLength < 0 {
		r.Issues = append(r.Issues, Issue{SeverityError, m.ModelID, "context_length",
			fmt.Sprintf("negative value %d", m.ContextLength)})
	} else if m.ContextLength == 0 {
		r.Issues = append(r.Issues, Issue{SeverityWarning, m.ModelID, "context_length", "unknown (zero)"})
	}

	if m.Pricing != nil {
		for field, v := range map[string]*float64{
			"pricing.prompt":     m.Pricing.Prompt,
			"pricing.completion": m.Pricing.Completion,
			"pricing.image":      m.Pricing.Image,
			"pricing.request":    m.Pricing.Request,
		} {
			if v != nil && *v < 0 {
				r.Issues = append(r.Issues, Issue{SeverityError, m.ModelID, field,
					fmt.Sprintf("negative value %f", *v)})
			}
		}
	}

	hasText := false
	for _, mod := range m.Capabilities.Modalities {
		if mod == "text" {
			hasText = true
		}
		if !knownModalities[mod] {
			r.Issues = append(r.Issues, Issue{SeverityWarning, m.ModelID, "capabilities.modalities",
				fmt.Sprintf("unknown modality %q", mod)})
		}
	}
	if !hasText {
		r.Issues = append(r.Issues, Issue{SeverityWarning, m.ModelID, "capabilities.modalities",
			`missing "text" modality`})
	}
	if m.Capabilities.SupportsVision && !contains(m.Capabilities.Modalities, "image") {
		r.Issues = append(r.Issues, Issue{SeverityWarning, m.ModelID, "capabilities",
			`supports_vision is true but modalities lack "image"`})
	}

	return r
}

// ValidateCatalog validates every record in a catalog plus its
// cross-record invariants: model_id uniqueness and provider summary
// counts that agree with the actual records.
func ValidateCatalog(cat *catalog.Catalog) *Result {
	r := &Result{}

	seen := make(map[string]bool, len(cat.Models))
	perProvider := make(map[string]int)
	for i := range cat.Models {
		m := &cat.Models[i]
		r.Issues = append(r.Issues, ValidateModel(m).Issues...)

		if m.ModelID != "" {
			if seen[m.ModelID] {
				r.Issues = append(r.Issues, Issue{SeverityError, m.ModelID, "model_id", "duplicate model_id"})
			}
			seen[m.ModelID] = true
		}
		perProvider[m.Provider]++
	}

	for name, ps := range cat.Providers {
		if got := perProvider[name]; ps.ModelCount != got {
			r.Issues = append(r.Issues, Issue{SeverityError, name, "providers",
				fmt.Sprintf("summary claims %d models, catalog has %d", ps.ModelCount, got)})
		}
	}
	for name, n := range perProvider {
		if name == "" {
			continue
		}
		if _, ok := cat.Providers[name]; !ok {
			r.Issues = append(r.Issues, Issue{SeverityError, name, "providers",
				fmt.Sprintf("%d models present but provider missing from summaries", n)})
		}
	}

	return r
}

// FormatResult formats validation results for display.
func FormatResult(r *Result) string {
	if len(r.Issues) == 0 {
		return "Validation passed: no issues found."
	}

	var b strings.Builder
	errors := r.Errors()
	warnings := r.Warnings()

	if len(errors) > 0 {
		b.WriteString(fmt.Sprintf("Errors (%d):\n", len(errors)))
		for _, e := range errors {
			b.WriteString(fmt.Sprintf("  %s\n", e))
		}
	}

	if len(warnings) > 0 {
		b.WriteString(fmt.Sprintf("Warnings (%d):\n", len(warnings)))
		for _, w := range warnings {
			b.WriteString(fmt.Sprintf("  %s\n", w))
		}
	}

	return b.String()
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
