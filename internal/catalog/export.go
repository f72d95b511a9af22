package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnsupportedFormatError indicates an export format outside the known set.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %s", e.Format)
}

// csvHeader is the fixed CSV column set. Order matters.
var csvHeader = []string{
	"model_id",
	"name",
	"provider",
	"context_length",
	"price_prompt",
	"price_completion",
	"supports_vision",
	"supports_function_calling",
	"modalities",
	"description",
}

// Export writes the catalog in the requested format and returns the
// output path. For "json" the persisted catalog file is the export; no
// file is regenerated.
func (s *Store) Export(format, outputPath string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		return s.Path(), nil
	case "csv":
		if outputPath == "" {
			outputPath = filepath.Join(s.dataDir, "models.csv")
		}
		return outputPath, s.exportCSV(outputPath)
	case "yaml":
		if outputPath == "" {
			outputPath = filepath.Join(s.dataDir, "models.yaml")
		}
		return outputPath, s.exportYAML(outputPath)
	default:
		return "", &UnsupportedFormatError{Format: format}
	}
}

// exportCSV writes one row per record. Missing scalars become empty
// strings. An empty catalog yields a header-only file.
func (s *Store) exportCSV(path string) error {
	cat := s.Load()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, m := range cat.Models {
		row := []string{
			m.ModelID,
			m.Name,
			m.Provider,
			intField(m.ContextLength),
			priceField(m.Pricing, func(p *Pricing) *float64 { return p.Prompt }),
			priceField(m.Pricing, func(p *Pricing) *float64 { return p.Completion }),
			strconv.FormatBool(m.Capabilities.SupportsVision),
			strconv.FormatBool(m.Capabilities.SupportsFunctionCalling),
			strings.Join(m.Capabilities.Modalities, ","),
			m.Description,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", m.ModelID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// exportYAML dumps the full catalog, structurally equivalent to the JSON
// document.
func (s *Store) exportYAML(path string) error {
	cat := s.Load()

	data, err := yaml.Marshal(cat)
	if err != nil {
		return fmt.Errorf("marshaling catalog to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing YAML file: %w", err)
	}
	return nil
}

func intField(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func priceField(p *Pricing, pick func(*Pricing) *float64) string {
	if p == nil {
		return ""
	}
	v := pick(p)
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
