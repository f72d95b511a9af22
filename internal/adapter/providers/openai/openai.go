package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	"github.com/everstacklabs/modelfetch/internal/catalog"
	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

func init() {
	adapter.Register(&OpenAI{defaults: builtinDefaults()})
}

// DefaultBaseURL is the OpenAI API root.
const DefaultBaseURL = "https://api.openai.com/v1"

// OpenAI fetches models from the OpenAI API. The listing endpoint
// returns only identifiers, so pricing and capabilities come from a
// static per-model table.
type OpenAI struct {
	apiKey   string
	baseURL  string
	client   *httpclient.Client
	defaults Defaults
}

// Defaults supplies the pricing and capability data the live API omits.
type Defaults struct {
	Pricing      map[string]PricingDefault
	Capabilities map[string]CapabilityDefault
}

// PricingDefault is USD per million tokens, stored raw.
type PricingDefault struct {
	Prompt     float64
	Completion float64
}

// CapabilityDefault mirrors one static capabilities entry.
type CapabilityDefault struct {
	Vision          bool
	FunctionCalling bool
	Streaming       bool
	ContextLength   int
	Modalities      []string
}

func (o *OpenAI) Name() string { return "openai" }

// ValidateCredentials always succeeds: a key is recommended but the
// listing endpoint does not mandate one here.
func (o *OpenAI) ValidateCredentials() bool { return true }

// Configure sets up the adapter with credentials and HTTP client.
func (o *OpenAI) Configure(apiKey, baseURL string, client *httpclient.Client) {
	o.apiKey = apiKey
	o.baseURL = baseURL
	if o.baseURL == "" {
		o.baseURL = DefaultBaseURL
	}
	o.client = client
}

// OpenAI /v1/models response types.
type modelsResponse struct {
	Data []json.RawMessage `json:"data"`
}

type apiModel struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

func (o *OpenAI) FetchModels(ctx context.Context) ([]catalog.ModelRecord, error) {
	headers := map[string]string{}
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	}

	resp, err := o.client.Get(ctx, o.baseURL+"/models", headers, nil)
	if err != nil {
		return nil, &adapter.TransportError{Provider: o.Name(), Err: err}
	}

	var modelsResp modelsResponse
	if err := json.Unmarshal(resp.Body, &modelsResp); err != nil {
		return nil, fmt.Errorf("parsing models response: %w", err)
	}

	var models []catalog.ModelRecord
	for _, raw := range modelsResp.Data {
		m, err := o.parseModel(raw)
		if err != nil {
			slog.Warn("skipping unparseable openai model", "error", err)
			continue
		}
		if m != nil {
			models = append(models, *m)
		}
	}

	slog.Info("openai fetch complete", "models", len(models))
	return models, nil
}

// parseModel maps one OpenAI record to the catalog schema, filling
// pricing and capabilities from the static tables. Returns nil for
// records without a model id.
func (o *OpenAI) parseModel(raw json.RawMessage) (*catalog.ModelRecord, error) {
	var am apiModel
	if err := json.Unmarshal(raw, &am); err != nil {
		return nil, err
	}
	if am.ID == "" {
		return nil, nil
	}

	var pricing *catalog.Pricing
	if p, ok := o.defaults.Pricing[am.ID]; ok {
		pricing = &catalog.Pricing{
			Prompt:     catalog.Float(p.Prompt),
			Completion: catalog.Float(p.Completion),
			Currency:   "USD",
		}
	}

	caps, contextLength := o.capabilities(am.ID)

	metadata := map[string]any{
		"owned_by": am.OwnedBy,
	}
	if am.Object != "" {
		metadata["object"] = am.Object
	}
	if am.Created != 0 {
		metadata["created"] = am.Created
	}

	return &catalog.ModelRecord{
		ModelID:       am.ID,
		Name:          am.ID, // OpenAI has no display name
		Provider:      o.Name(),
		Description:   describe(am.ID),
		ContextLength: contextLength,
		Pricing:       pricing,
		Capabilities:  caps,
		Metadata:      adapter.PruneMetadata(metadata),
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

// capabilities looks up the static table by exact id. Absent entries get
// the schema defaults: all flags false, text-only modalities.
func (o *OpenAI) capabilities(id string) (catalog.Capabilities, int) {
	cd, ok := o.defaults.Capabilities[id]
	if !ok {
		return catalog.Capabilities{Modalities: []string{"text"}}, 0
	}
	return catalog.Capabilities{
		SupportsVision:          cd.Vision,
		SupportsFunctionCalling: cd.FunctionCalling,
		SupportsStreaming:       cd.Streaming,
		Modalities:              cd.Modalities,
	}, cd.ContextLength
}

func describe(id string) string {
	switch {
	case strings.HasPrefix(id, "ft:"):
		return "Fine-tuned OpenAI model: " + id
	case strings.HasPrefix(id, "gpt-5"):
		return "OpenAI GPT-5 - next-generation model with advanced reasoning and multimodal capabilities"
	case strings.HasPrefix(id, "gpt-4o"):
		return "OpenAI GPT-4o - flagship model with vision and function calling"
	case strings.HasPrefix(id, "o1"):
		return "OpenAI o1 - advanced reasoning model"
	case strings.HasPrefix(id, "gpt-4-turbo"):
		return "OpenAI GPT-4 Turbo - fast and capable with large context"
	case strings.HasPrefix(id, "gpt-4"):
		return "OpenAI GPT-4 - advanced language model"
	case strings.HasPrefix(id, "gpt-3.5"):
		return "OpenAI GPT-3.5 Turbo - fast and cost-effective"
	case strings.Contains(id, "embedding"):
		return "OpenAI embedding model: " + id
	default:
		return "OpenAI model: " + id
	}
}
