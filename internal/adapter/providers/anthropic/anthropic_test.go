package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/everstacklabs/modelfetch/internal/adapter"
	"github.com/everstacklabs/modelfetch/internal/httpclient"
)

func TestFetchModelsRequiresAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	a := &Anthropic{defaults: loadDefaults()}
	a.Configure("", srv.URL, httpclient.New())

	_, err := a.FetchModels(context.Background())

	var credErr *adapter.CredentialError
	if !errors.As(err, &credErr) {
		t.Fatalf("expected CredentialError, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no HTTP calls without a key, got %d", calls)
	}
}

func TestFetchModelsPaginates(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++

		if got := r.Header.Get("x-api-key"); got != "test-key" {
			t.Errorf("x-api-key = %q, want test-key", got)
		}
		if got := r.Header.Get("anthropic-version"); got != "2023-06-01" {
			t.Errorf("anthropic-version = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "100" {
			t.Errorf("limit = %q, want 100", got)
		}

		after := r.URL.Query().Get("after_id")
		switch after {
		case "":
			fmt.Fprint(w, `{"data":[{"id":"a","display_name":"Model A"}],"has_more":true,"last_id":"a"}`)
		case "a":
			fmt.Fprint(w, `{"data":[{"id":"b","display_name":"Model B"}],"has_more":false}`)
		default:
			t.Errorf("unexpected after_id %q", after)
			fmt.Fprint(w, `{"data":[],"has_more":false}`)
		}
	}))
	defer srv.Close()

	a := &Anthropic{defaults: loadDefaults()}
	a.Configure("test-key", srv.URL, httpclient.New())

	models, err := a.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}

	if calls != 2 {
		t.Errorf("expected exactly 2 HTTP calls, got %d", calls)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(models))
	}
	if models[0].ModelID != "a" || models[1].ModelID != "b" {
		t.Errorf("models = %q, %q; want a, b", models[0].ModelID, models[1].ModelID)
	}
	if models[0].Name != "Model A" {
		t.Errorf("name = %q, want Model A", models[0].Name)
	}
	if models[0].Provider != "anthropic" {
		t.Errorf("provider = %q", models[0].Provider)
	}
}

func TestFetchModelsSkipsRecordsWithoutID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"display_name":"no id"},{"id":"claude-3-haiku-20240307"}],"has_more":false}`)
	}))
	defer srv.Close()

	a := &Anthropic{defaults: loadDefaults()}
	a.Configure("test-key", srv.URL, httpclient.New())

	models, err := a.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(models))
	}
	if models[0].ModelID != "claude-3-haiku-20240307" {
		t.Errorf("model = %q", models[0].ModelID)
	}
}

func TestKnownModelGetsDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"claude-sonnet-4-5","display_name":"Claude Sonnet 4.5"}],"has_more":false}`)
	}))
	defer srv.Close()

	a := &Anthropic{defaults: loadDefaults()}
	a.Configure("test-key", srv.URL, httpclient.New())

	models, err := a.FetchModels(context.Background())
	if err != nil {
		t.Fatalf("FetchModels failed: %v", err)
	}
	m := models[0]

	if m.Pricing == nil || m.Pricing.Prompt == nil {
		t.Fatal("expected pricing from defaults table")
	}
	if m.ContextLength != 200000 {
		t.Errorf("context_length = %d, want 200000", m.ContextLength)
	}
	if !m.Capabilities.SupportsVision {
		t.Error("expected vision support")
	}
	if !m.Capabilities.SupportsFunctionCalling || !m.Capabilities.SupportsStreaming {
		t.Error("expected function calling and streaming defaults")
	}
}

func TestUnknownModelGetsConservativeDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"claude-future-99"}],"has_more":false}`)
	}))
	defer srv.Close()

	a := &Anthropic{defaults: loadDefaults()}
	a.Configure("test-key", srv.URL, httpclient.New())

	models, err := a.FetchModels(context.Background())
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
	// Claude models still default to function calling and streaming
	if !m.Capabilities.SupportsFunctionCalling || !m.Capabilities.SupportsStreaming {
		t.Error("expected function calling and streaming to default true")
	}
	if m.Capabilities.SupportsVision {
		t.Error("unknown model should not claim vision")
	}
	if len(m.Capabilities.Modalities) != 1 || m.Capabilities.Modalities[0] != "text" {
		t.Errorf("modalities = %v, want [text]", m.Capabilities.Modalities)
	}
}
