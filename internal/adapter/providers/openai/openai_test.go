package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

func newTestAdapter(srv *httptest.Server, apiKey string) *OpenAI {
	o := &OpenAI{defaults: builtinDefaults()}
	o.Configure(apiKey, srv.URL, httpclient.New())
	return o
}

func TestFetchModelsFillsStaticTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorization = %q", got)
		}
		fmt.Fprint(w, `{"data":[{"id":"gpt-4o","object":"model","created":1715367049,"owned_by":"openai"}]}`)
	}))
	defer srv.Close()

	models, err := newTestAdapter(srv, "sk-test").FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(models))
	}
	m := models[0]

	if m.Name != "gpt-4o" {
		t.Errorf("name = %q, want id as name", m.Name)
	}
	if m.Pricing == nil || *m.Pricing.Prompt != 2.50 || *m.Pricing.Completion != 10.00 {
		t.Errorf("pricing = %+v", m.Pricing)
	}
	if m.ContextLength != 128000 {
		t.Errorf("context_length = %d", m.ContextLength)
	}
	if !m.Capabilities.SupportsVision || !m.Capabilities.SupportsFunctionCalling || !m.Capabilities.SupportsStreaming {
		t.Errorf("capabilities = %+v", m.Capabilities)
	}
	if m.Metadata["owned_by"] != "openai" {
		t.Errorf("metadata = %v", m.Metadata)
	}
}

func TestUnknownModelGetsSchemaDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"gpt-experimental-2099","owned_by":"openai"}]}`)
	}))
	defer srv.Close()

	models, err := newTestAdapter(srv, "").FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	m := models[0]

	if m.Pricing != nil {
		t.Errorf("unknown model should have nil pricing, got %+v", m.Pricing)
	}
	if m.ContextLength != 0 {
		t.Errorf("context_length = %d, want 0", m.ContextLength)
	}
	if m.Capabilities.SupportsVision || m.Capabilities.SupportsFunctionCalling || m.Capabilities.SupportsStreaming {
		t.Errorf("unknown model should have all-false capabilities: %+v", m.Capabilities)
	}
	if len(m.Capabilities.Modalities) != 1 || m.Capabilities.Modalities[0] != "text" {
		t.Errorf("modalities = %v, want [text]", m.Capabilities.Modalities)
	}
}

func TestRecordsWithoutIDAreDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"object":"model"},{"id":"gpt-4o-mini"}]}`)
	}))
	defer srv.Close()

	models, err := newTestAdapter(srv, "").FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if len(models) != 1 || models[0].ModelID != "gpt-4o-mini" {
		t.Errorf("models = %+v", models)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"ft:gpt-4o:acme::abc123", "Fine-tuned OpenAI model: ft:gpt-4o:acme::abc123"},
		{"gpt-4o-mini", "OpenAI GPT-4o - flagship model with vision and function calling"},
		{"o1-preview", "OpenAI o1 - advanced reasoning model"},
		{"gpt-4-turbo", "OpenAI GPT-4 Turbo - fast and capable with large context"},
		{"gpt-3.5-turbo", "OpenAI GPT-3.5 Turbo - fast and cost-effective"},
		{"text-embedding-3-large", "OpenAI embedding model: text-embedding-3-large"},
		{"whisper-1", "OpenAI model: whisper-1"},
	}
	for _, tt := range tests {
		if got := describe(tt.id); got != tt.want {
			t.Errorf("describe(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
