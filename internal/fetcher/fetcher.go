package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	"github.com/everstacklabs/modelfetch/internal/catalog"
)

// maxConcurrentFetches bounds parallel provider fetches. Adapters share
// no mutable state, so one goroutine per provider is safe; the bound
// just keeps the fan-out polite.
const maxConcurrentFetches = 4

// ErrNoModels is returned when zero records were fetched across all
// attempted providers.
var ErrNoModels = errors.New("no models fetched")

// Fetcher runs provider fetches and merges results into the catalog.
type Fetcher struct {
	store *catalog.Store
}

// New creates a Fetcher on top of a catalog store.
func New(store *catalog.Store) *Fetcher {
	return &Fetcher{store: store}
}

// ProviderResult is the outcome of one provider's fetch. Failures are
// collected here rather than aborting the run: one provider's error
// never cancels the others.
type ProviderResult struct {
	Provider string
	Models   []catalog.ModelRecord
	Err      error
}

// Summary reports what a fetch run did.
type Summary struct {
	FetchedCount int
	TotalModels  int
	Added        int
	Replaced     int
	Providers    map[string]int
	Failures     map[string]error
}

// Fetch runs the named providers concurrently, merges (or rebuilds) the
// catalog from their records, and saves it. It fails hard only when no
// records were fetched from any attempted provider.
func (f *Fetcher) Fetch(ctx context.Context, providers []string, merge bool) (*catalog.Catalog, *Summary, error) {
	if len(providers) == 0 {
		return nil, nil, fmt.Errorf("no providers selected")
	}

	results := f.fetchAll(ctx, providers)

	var all []catalog.ModelRecord
	failures := make(map[string]error)
	for _, r := range results {
		if r.Err != nil {
			slog.Error("fetch failed", "provider", r.Provider, "error", r.Err)
			failures[r.Provider] = r.Err
			continue
		}
		all = append(all, r.Models...)
	}

	if len(all) == 0 {
		return nil, nil, ErrNoModels
	}

	var (
		cat   *catalog.Catalog
		stats catalog.MergeStats
	)
	if merge {
		cat, stats = f.store.Merge(all)
	} else {
		cat = catalog.NewCatalog()
		for _, m := range all {
			cat.Add(m)
		}
		stats = catalog.MergeStats{Added: len(all)}
	}

	if err := f.store.Save(cat); err != nil {
		return nil, nil, fmt.Errorf("saving catalog: %w", err)
	}
	slog.Info("catalog saved", "path", f.store.Path(), "models", len(cat.Models))

	summary := &Summary{
		FetchedCount: len(all),
		TotalModels:  len(cat.Models),
		Added:        stats.Added,
		Replaced:     stats.Replaced,
		Providers:    make(map[string]int, len(cat.Providers)),
		Failures:     failures,
	}
	for name, ps := range cat.Providers {
		summary.Providers[name] = ps.ModelCount
	}

	return cat, summary, nil
}

// fetchAll runs the providers with bounded parallelism and collects
// per-provider outcomes. Goroutines never return errors to the group so
// that a failure in one provider cannot cancel the rest.
func (f *Fetcher) fetchAll(ctx context.Context, providers []string) []ProviderResult {
	results := make([]ProviderResult, len(providers))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, name := range providers {
		i, name := i, name
		g.Go(func() error {
			results[i] = fetchOne(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func fetchOne(ctx context.Context, name string) ProviderResult {
	a, err := adapter.Get(name)
	if err != nil {
		return ProviderResult{Provider: name, Err: err}
	}

	if !a.ValidateCredentials() {
		return ProviderResult{Provider: name, Err: &adapter.CredentialError{Provider: name}}
	}

	models, err := a.FetchModels(ctx)
	if err != nil {
		return ProviderResult{Provider: name, Err: err}
	}

	slog.Info("fetch complete", "provider", name, "models", len(models))
	return ProviderResult{Provider: name, Models: models}
}
