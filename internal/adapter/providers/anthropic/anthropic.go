package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	"github.com/everstacklabs/modelfetch/internal/catalog"
	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

func init() {
	adapter.Register(&Anthropic{defaults: loadDefaults()})
}

// DefaultBaseURL is the Anthropic API root.
const DefaultBaseURL = "https://api.anthropic.com/v1"

// apiVersion is the pinned anthropic-version header value.
const apiVersion = "2023-06-01"

// pageLimit is the maximum page size the models endpoint allows.
const pageLimit = 100

// Anthropic fetches Claude models from the Anthropic API. The endpoint
// requires a key and paginates with after_id cursors. Pricing and
// capability data come from the embedded defaults table.
type Anthropic struct {
	apiKey   string
	baseURL  string
	client   *httpclient.Client
	defaults Defaults
}

func (a *Anthropic) Name() string { return "anthropic" }

// ValidateCredentials requires an API key.
func (a *Anthropic) ValidateCredentials() bool { return a.apiKey != "" }

// Configure sets up the adapter with credentials and HTTP client.
func (a *Anthropic) Configure(apiKey, baseURL string, client *httpclient.Client) {
	a.apiKey = apiKey
	a.baseURL = baseURL
	if a.baseURL == "" {
		a.baseURL = DefaultBaseURL
	}
	a.client = client
}

// Anthropic /v1/models response types.
type modelsResponse struct {
	Data    []json.RawMessage `json:"data"`
	HasMore bool              `json:"has_more"`
	LastID  string            `json:"last_id"`
}

type apiModel struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CreatedAt   string `json:"created_at"`
	Type        string `json:"type"`
}

func (a *Anthropic) FetchModels(ctx context.Context) ([]catalog.ModelRecord, error) {
	if !a.ValidateCredentials() {
		return nil, &adapter.CredentialError{Provider: a.Name()}
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": apiVersion,
	}

	var models []catalog.ModelRecord
	afterID := ""

	for {
		params := url.Values{"limit": {strconv.Itoa(pageLimit)}}
		if afterID != "" {
			params.Set("after_id", afterID)
		}

		resp, err := a.client.Get(ctx, a.baseURL+"/models", headers, params)
		if err != nil {
			return nil, &adapter.TransportError{Provider: a.Name(), Err: err}
		}

		var page modelsResponse
		if err := json.Unmarshal(resp.Body, &page); err != nil {
			return nil, fmt.Errorf("parsing models response: %w", err)
		}

		lastID := ""
		for _, raw := range page.Data {
			m, id, err := a.parseModel(raw)
			if err != nil {
				slog.Warn("skipping unparseable anthropic model", "error", err)
				continue
			}
			lastID = id
			if m != nil {
				models = append(models, *m)
			}
		}

		if !page.HasMore || len(page.Data) == 0 {
			break
		}
		afterID = page.LastID
		if afterID == "" {
			afterID = lastID
		}
		if afterID == "" {
			break
		}
	}

	slog.Info("anthropic fetch complete", "models", len(models))
	return models, nil
}

// parseModel maps one Anthropic record to the catalog schema. The raw id
// is returned separately so pagination can continue past skipped records.
func (a *Anthropic) parseModel(raw json.RawMessage) (*catalog.ModelRecord, string, error) {
	var am apiModel
	if err := json.Unmarshal(raw, &am); err != nil {
		return nil, "", err
	}
	if am.ID == "" {
		return nil, "", nil
	}

	name := am.DisplayName
	if name == "" {
		name = am.ID
	}

	var pricing *catalog.Pricing
	if p, ok := a.defaults.Pricing[am.ID]; ok {
		pricing = &catalog.Pricing{
			Prompt:     catalog.Float(p.Prompt),
			Completion: catalog.Float(p.Completion),
			Currency:   "USD",
		}
	}

	caps, contextLength := a.capabilities(am.ID)

	metadata := map[string]any{}
	if am.Type != "" {
		metadata["type"] = am.Type
	}
	if am.CreatedAt != "" {
		metadata["created_at"] = am.CreatedAt
	}

	return &catalog.ModelRecord{
		ModelID:       am.ID,
		Name:          name,
		Provider:      a.Name(),
		Description:   "Anthropic Claude model: " + name,
		ContextLength: contextLength,
		Pricing:       pricing,
		Capabilities:  caps,
		Metadata:      adapter.PruneMetadata(metadata),
		UpdatedAt:     time.Now().UTC(),
	}, am.ID, nil
}

// capabilities looks up the defaults table by exact id. Claude models
// default to function calling and streaming support even when absent
// from the table.
func (a *Anthropic) capabilities(id string) (catalog.Capabilities, int) {
	cd, ok := a.defaults.Capabilities[id]
	if !ok {
		return catalog.Capabilities{
			SupportsFunctionCalling: true,
			SupportsStreaming:       true,
			Modalities:              []string{"text"},
		}, 0
	}

	rc := cd.resolve()
	modalities := rc.Modalities
	if len(modalities) == 0 {
		modalities = []string{"text"}
	}
	return catalog.Capabilities{
		SupportsVision:          rc.Vision,
		SupportsFunctionCalling: rc.FunctionCalling,
		SupportsStreaming:       rc.Streaming,
		Modalities:              modalities,
	}, rc.ContextLength
}
