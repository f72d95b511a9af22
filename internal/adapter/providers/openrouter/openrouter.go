package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	"github.com/everstacklabs/modelfetch/internal/catalog"
	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

func init() {
	adapter.Register(&OpenRouter{})
}

// DefaultBaseURL is the OpenRouter API root.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter fetches models from the OpenRouter API. It carries the
// largest catalog and reports live pricing, so no static tables are
// needed. Listing works without an API key.
type OpenRouter struct {
	apiKey  string
	baseURL string
	client  *httpclient.Client
}

func (o *OpenRouter) Name() string { return "openrouter" }

// ValidateCredentials always succeeds: listing is anonymous.
func (o *OpenRouter) ValidateCredentials() bool { return true }

// Configure sets up the adapter with credentials and HTTP client.
func (o *OpenRouter) Configure(apiKey, baseURL string, client *httpclient.Client) {
	o.apiKey = apiKey
	o.baseURL = baseURL
	if o.baseURL == "" {
		o.baseURL = DefaultBaseURL
	}
	o.client = client
}

// OpenRouter /models response types. Records are kept raw so a single
// malformed entry can be skipped without dropping the page.
type modelsResponse struct {
	Data []json.RawMessage `json:"data"`
}

type apiModel struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ContextLength    int             `json:"context_length"`
	MaxContextLen    int             `json:"max_context_length"`
	Pricing          apiPricing      `json:"pricing"`
	Architecture     apiArchitecture `json:"architecture"`
	TopProvider      apiTopProvider  `json:"top_provider"`
	SupportedParams  []string        `json:"supported_parameters"`
	PerRequestLimits map[string]any  `json:"per_request_limits"`
}

type apiPricing struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
	Image      string `json:"image"`
	Request    string `json:"request"`
}

type apiArchitecture struct {
	Modality  string `json:"modality"`
	Tokenizer string `json:"tokenizer"`
}

type apiTopProvider struct {
	Name string `json:"name"`
}

func (o *OpenRouter) FetchModels(ctx context.Context) ([]catalog.ModelRecord, error) {
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
			slog.Warn("skipping unparseable openrouter model", "error", err)
			continue
		}
		if m != nil {
			models = append(models, *m)
		}
	}

	slog.Info("openrouter fetch complete", "models", len(models))
	return models, nil
}

// parseModel maps one OpenRouter record to the catalog schema. Returns
// nil for records without a model id.
func (o *OpenRouter) parseModel(raw json.RawMessage) (*catalog.ModelRecord, error) {
	var am apiModel
	if err := json.Unmarshal(raw, &am); err != nil {
		return nil, err
	}
	if am.ID == "" {
		return nil, nil
	}

	name := am.Name
	if name == "" {
		name = am.ID
	}

	contextLength := am.ContextLength
	if contextLength == 0 {
		contextLength = am.MaxContextLen
	}

	metadata := adapter.PruneMetadata(map[string]any{
		"architecture":       nonEmpty(am.Architecture.Tokenizer),
		"top_provider":       nonEmpty(am.TopProvider.Name),
		"per_request_limits": am.PerRequestLimits,
	})

	return &catalog.ModelRecord{
		ModelID:       am.ID,
		Name:          name,
		Provider:      o.Name(),
		Description:   am.Description,
		ContextLength: contextLength,
		Pricing:       parsePricing(am.Pricing),
		Capabilities: catalog.Capabilities{
			SupportsVision:          supportsVision(am.Architecture.Modality),
			SupportsFunctionCalling: supportsFunctionCalling(am.SupportedParams),
			SupportsStreaming:       true, // streaming is universal on OpenRouter
			Modalities:              parseModalities(am.Architecture.Modality),
		},
		Metadata:  metadata,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// parsePricing converts string-encoded prices to floats. Unparseable or
// absent fields stay nil; an entirely empty block yields nil Pricing.
func parsePricing(p apiPricing) *catalog.Pricing {
	prompt := parsePrice(p.Prompt)
	completion := parsePrice(p.Completion)
	image := parsePrice(p.Image)
	request := parsePrice(p.Request)
	if prompt == nil && completion == nil && image == nil && request == nil {
		return nil
	}
	return &catalog.Pricing{
		Prompt:     prompt,
		Completion: completion,
		Image:      image,
		Request:    request,
		Currency:   "USD",
	}
}

func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func supportsVision(modality string) bool {
	return strings.Contains(strings.ToLower(modality), "image")
}

func supportsFunctionCalling(params []string) bool {
	for _, p := range params {
		if p == "tools" || p == "functions" {
			return true
		}
	}
	return false
}

// parseModalities splits the architecture modality string (e.g.
// "text+image->text") into a modality list that always leads with "text".
func parseModalities(modality string) []string {
	var modalities []string
	for _, part := range strings.Split(strings.ReplaceAll(modality, ",", "+"), "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			modalities = append(modalities, part)
		}
	}
	if !contains(modalities, "text") {
		modalities = append([]string{"text"}, modalities...)
	}
	return modalities
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
