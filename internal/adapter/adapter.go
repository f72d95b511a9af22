package adapter

import (
	"context"

	"github.com/everstacklabs/modelfetch/internal/catalog"
)

// Adapter fetches and normalizes models from one provider.
type Adapter interface {
	// Name returns the provider name (e.g., "openai").
	Name() string
	// ValidateCredentials reports whether the adapter has enough
	// configuration to attempt a fetch. No I/O.
	ValidateCredentials() bool
	// FetchModels calls the provider's model-listing endpoint, following
	// pagination to the end, and returns all parsed records. Records
	// without a model id are dropped with a warning; a failed page aborts
	// the whole fetch.
	FetchModels(ctx context.Context) ([]catalog.ModelRecord, error)
}

// PruneMetadata drops nil-valued keys before a record is stored.
// Returns nil when nothing remains.
func PruneMetadata(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		if v != nil {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
