package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CatalogFile is the name of the persisted catalog inside the data dir.
const CatalogFile = "models.json"

// Store persists the catalog as a single JSON document.
// Single-process, single-writer: every load reads the whole file, every
// save rewrites it.
type Store struct {
	dataDir string
}

// NewStore creates a store rooted at dataDir.
func NewStore(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Path returns the catalog file path.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, CatalogFile)
}

// Load reads the catalog from disk. A missing or unparseable file is
// recoverable: it logs a warning and returns a fresh empty catalog.
func (s *Store) Load() *Catalog {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read catalog, starting empty", "path", s.Path(), "error", err)
		}
		return NewCatalog()
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		slog.Warn("failed to parse catalog, starting empty", "path", s.Path(), "error", err)
		return NewCatalog()
	}

	if cat.Providers == nil {
		cat.Providers = make(map[string]*ProviderSummary)
	}
	return &cat
}

// Save writes the full catalog, creating the data dir as needed.
// Unlike Load, a failed write propagates.
func (s *Store) Save(cat *Catalog) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(s.Path(), data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// MergeStats reports what a merge did.
type MergeStats struct {
	Added    int
	Replaced int
}

// Merge loads the current catalog and upserts the given records into it,
// keyed by model_id: an existing record with the same id is replaced in
// place (list position preserved), anything else is appended and counted
// against its provider's summary. The caller is responsible for Save.
func (s *Store) Merge(records []ModelRecord) (*Catalog, MergeStats) {
	cat := s.Load()

	index := make(map[string]int, len(cat.Models))
	for i, m := range cat.Models {
		index[m.ModelID] = i
	}

	var stats MergeStats
	for _, rec := range records {
		if i, ok := index[rec.ModelID]; ok {
			cat.Models[i] = rec
			stats.Replaced++
			continue
		}
		cat.Add(rec)
		index[rec.ModelID] = len(cat.Models) - 1
		stats.Added++
	}

	return cat, stats
}
