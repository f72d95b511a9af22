package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

const sampleModel = `{
	"id": "openai/gpt-4o",
	"name": "OpenAI: GPT-4o",
	"description": "Multimodal flagship",
	"context_length": 128000,
	"pricing": {"prompt": "0.0000025", "completion": "0.00001"},
	"architecture": {"modality": "text+image", "tokenizer": "GPT"},
	"top_provider": {"name": "OpenAI"},
	"supported_parameters": ["tools", "temperature"]
}`

func newTestAdapter(srv *httptest.Server, apiKey string) *OpenRouter {
	o := &OpenRouter{}
	o.Configure(apiKey, srv.URL, httpclient.New())
	return o
}

func TestFetchModelsWithoutAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no Authorization header without a key")
		}
		fmt.Fprintf(w, `{"data":[%s]}`, sampleModel)
	}))
	defer srv.Close()

	o := newTestAdapter(srv, "")
	if !o.ValidateCredentials() {
		t.Fatal("openrouter listing should not require credentials")
	}

	models, err := o.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(models))
	}
}

func TestFetchModelsSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q, want Bearer sk-test", got)
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	o := newTestAdapter(srv, "sk-test")
	if _, err := o.FetchModels(context.Background()); err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
}

func TestParseModelFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data":[%s]}`, sampleModel)
	}))
	defer srv.Close()

	models, err := newTestAdapter(srv, "").FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	m := models[0]

	if m.ModelID != "openai/gpt-4o" {
		t.Errorf("model_id = %q", m.ModelID)
	}
	if m.Name != "OpenAI: GPT-4o" {
		t.Errorf("name = %q", m.Name)
	}
	if m.Provider != "openrouter" {
		t.Errorf("provider = %q", m.Provider)
	}
	if m.ContextLength != 128000 {
		t.Errorf("context_length = %d", m.ContextLength)
	}
	if m.Pricing == nil || m.Pricing.Prompt == nil || *m.Pricing.Prompt != 0.0000025 {
		t.Errorf("pricing = %+v", m.Pricing)
	}
	if !m.Capabilities.SupportsVision {
		t.Error("image modality should imply vision")
	}
	if !m.Capabilities.SupportsFunctionCalling {
		t.Error("tools parameter should imply function calling")
	}
	if !m.Capabilities.SupportsStreaming {
		t.Error("streaming should be true")
	}
	want := []string{"text", "image"}
	if len(m.Capabilities.Modalities) != 2 || m.Capabilities.Modalities[0] != want[0] || m.Capabilities.Modalities[1] != want[1] {
		t.Errorf("modalities = %v, want %v", m.Capabilities.Modalities, want)
	}
	if m.Metadata["top_provider"] != "OpenAI" {
		t.Errorf("metadata = %v", m.Metadata)
	}
}

func TestMalformedRecordIsSkipped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// second record has a context_length of the wrong type
		fmt.Fprintf(w, `{"data":[%s,{"id":"bad","context_length":"lots"},{"id":""}]}`, sampleModel)
	}))
	defer srv.Close()

	models, err := newTestAdapter(srv, "").FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected only the good record, got %d", len(models))
	}
	if models[0].ModelID != "openai/gpt-4o" {
		t.Errorf("model = %q", models[0].ModelID)
	}
}

func TestEmptyPricingStaysNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"free/model","pricing":{}}]}`)
	}))
	defer srv.Close()

	models, err := newTestAdapter(srv, "").FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if models[0].Pricing != nil {
		t.Errorf("empty pricing block should yield nil, got %+v", models[0].Pricing)
	}
}

func TestParseModalities(t *testing.T) {
	tests := []struct {
		modality string
		want     []string
	}{
		{"text", []string{"text"}},
		{"text+image", []string{"text", "image"}},
		{"image", []string{"text", "image"}}, // text always leads
		{"", []string{"text"}},
	}
	for _, tt := range tests {
		got := parseModalities(tt.modality)
		if len(got) != len(tt.want) {
			t.Errorf("parseModalities(%q) = %v, want %v", tt.modality, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseModalities(%q) = %v, want %v", tt.modality, got, tt.want)
			}
		}
	}
}
