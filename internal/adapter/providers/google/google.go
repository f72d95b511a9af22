package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	"github.com/everstacklabs/modelfetch/internal/catalog"
	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

func init() {
	adapter.Register(&Google{defaults: builtinDefaults()})
}

// DefaultBaseURL is the Gemini API root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// pageSize requested per page; the API caps it at 1000.
const pageSize = 50

// Google fetches Gemini models from the Generative Language API. The
// endpoint requires a key and paginates with page tokens. Pricing comes
// from a static table; context length from inputTokenLimit.
type Google struct {
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
	Modalities      []string
}

func (g *Google) Name() string { return "google" }

// ValidateCredentials requires an API key.
func (g *Google) ValidateCredentials() bool { return g.apiKey != "" }

// Configure sets up the adapter with credentials and HTTP client.
func (g *Google) Configure(apiKey, baseURL string, client *httpclient.Client) {
	g.apiKey = apiKey
	g.baseURL = baseURL
	if g.baseURL == "" {
		g.baseURL = DefaultBaseURL
	}
	g.client = client
}

// Gemini /v1beta/models response types.
type modelsResponse struct {
	Models        []json.RawMessage `json:"models"`
	NextPageToken string            `json:"nextPageToken"`
}

type apiModel struct {
	Name                       string   `json:"name"`
	BaseModelID                string   `json:"baseModelId"`
	Version                    string   `json:"version"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	InputTokenLimit            int      `json:"inputTokenLimit"`
	OutputTokenLimit           int      `json:"outputTokenLimit"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

func (g *Google) FetchModels(ctx context.Context) ([]catalog.ModelRecord, error) {
	if !g.ValidateCredentials() {
		return nil, &adapter.CredentialError{Provider: g.Name()}
	}

	headers := map[string]string{
		"x-goog-api-key": g.apiKey,
	}

	var models []catalog.ModelRecord
	pageToken := ""

	for {
		params := url.Values{"pageSize": {strconv.Itoa(pageSize)}}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		resp, err := g.client.Get(ctx, g.baseURL+"/models", headers, params)
		if err != nil {
			return nil, &adapter.TransportError{Provider: g.Name(), Err: err}
		}

		var page modelsResponse
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("parsing models response: %w", err)
		}

		for _, raw := range page.Models {
			m, err := g.parseModel(raw)
			if err != nil {
				slog.Warn("skipping unparseable google model", "error", err)
				continue
			}
			if m != nil {
				models = append(models, *m)
			}
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	slog.Info("google fetch complete", "models", len(models))
	return models, nil
}

// parseModel maps one Gemini record to the catalog schema. The API
// returns names like "models/gemini-2.0-flash"; the prefix is stripped
// for the model id. Returns nil for records without a name.
func (g *Google) parseModel(raw json.RawMessage) (*catalog.ModelRecord, error) {
	var am apiModel
	if err := json.Unmarshal(raw, &am); err != nil {
		return nil, err
	}
	if am.Name == "" {
		return nil, nil
	}

	id := strings.TrimPrefix(am.Name, "models/")

	displayName := am.DisplayName
	if displayName == "" {
		displayName = id
	}

	description := am.Description
	if description == "" {
		description = "Google Gemini model: " + displayName
	}

	var pricing *catalog.Pricing
	if p, ok := g.defaults.Pricing[id]; ok {
		pricing = &catalog.Pricing{
			Prompt:     catalog.Float(p.Prompt),
			Completion: catalog.Float(p.Completion),
			Currency:   "USD",
		}
	}

	metadata := map[string]any{
		"full_name": am.Name,
	}
	if am.OutputTokenLimit != 0 {
		metadata["output_token_limit"] = am.OutputTokenLimit
	}
	if len(am.SupportedGenerationMethods) > 0 {
		metadata["supported_methods"] = am.SupportedGenerationMethods
	}
	if am.BaseModelID != "" {
		metadata["base_model_id"] = am.BaseModelID
	}
	if am.Version != "" {
		metadata["version"] = am.Version
	}

	return &catalog.ModelRecord{
		ModelID:       id,
		Name:          displayName,
		Provider:      g.Name(),
		Description:   description,
		ContextLength: am.InputTokenLimit,
		Pricing:       pricing,
		Capabilities:  g.capabilities(id),
		Metadata:      adapter.PruneMetadata(metadata),
		UpdatedAt:     time.Now().UTC(),
	}, nil
}

// capabilities looks up the static table by exact id. Gemini models
// default to function calling and streaming support even when absent
// from the table.
func (g *Google) capabilities(id string) catalog.Capabilities {
	cd, ok := g.defaults.Capabilities[id]
	if !ok {
		return catalog.Capabilities{
			SupportsFunctionCalling: true,
			SupportsStreaming:       true,
			Modalities:              []string{"text"},
		}
	}
	return catalog.Capabilities{
		SupportsVision:          cd.Vision,
		SupportsFunctionCalling: cd.FunctionCalling,
		SupportsStreaming:       cd.Streaming,
		Modalities:              cd.Modalities,
	}
}
