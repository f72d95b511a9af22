package anthropic

import (
	"encoding/json"
	"log/slog"

	_ "embed"
)

// The models endpoint returns no pricing or capability data, so the
// defaults live in an embedded JSON document that is maintained against
// the published pricing page.
// Source: https://www.anthropic.com/pricing

//go:embed defaults.json
var defaultsJSON []byte

// Defaults supplies per-model pricing and capability data.
type Defaults struct {
	Pricing      map[string]PricingDefault    `json:"pricing"`
	Capabilities map[string]capabilityDefault `json:"capabilities"`
}

// PricingDefault is USD per million tokens, stored raw.
type PricingDefault struct {
	Prompt     float64 `json:"prompt"`
	Completion float64 `json:"completion"`
}

// capabilityDefault keeps booleans as pointers so that fields absent
// from the JSON fall back to the Claude defaults (tools and streaming
// on, vision off).
type capabilityDefault struct {
	Vision          bool     `json:"vision"`
	FunctionCalling *bool    `json:"function_calling"`
	Streaming       *bool    `json:"streaming"`
	ContextLength   int      `json:"context_length"`
	Modalities      []string `json:"modalities"`
}

type resolvedCapability struct {
	Vision          bool
	FunctionCalling bool
	Streaming       bool
	ContextLength   int
	Modalities      []string
}

func (c capabilityDefault) resolve() resolvedCapability {
	return resolvedCapability{
		Vision:          c.Vision,
		FunctionCalling: boolOr(c.FunctionCalling, true),
		Streaming:       boolOr(c.Streaming, true),
		ContextLength:   c.ContextLength,
		Modalities:      c.Modalities,
	}
}

func boolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}

// loadDefaults parses the embedded document. A broken document is a
// build-time mistake, not a runtime condition, so it degrades to empty
// tables with a warning rather than failing the program.
func loadDefaults() Defaults {
	var d Defaults
	if err := json.Unmarshal(defaultsJSON, &d); err != nil {
		slog.Warn("failed to parse embedded anthropic defaults", "error", err)
	}
	if d.Pricing == nil {
		d.Pricing = map[string]PricingDefault{}
	}
	if d.Capabilities == nil {
		d.Capabilities = map[string]capabilityDefault{}
	}
	return d
}
