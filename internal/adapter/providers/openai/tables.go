package openai

// Static pricing and capability tables for OpenAI models. The /v1/models
// endpoint exposes neither, so these mirror the published pricing page.
// Prices are USD per million tokens and are stored as-is.
// Source: https://openai.com/api/pricing/

func builtinDefaults() Defaults {
	return Defaults{
		Pricing:      pricingTable(),
		Capabilities: capabilityTable(),
	}
}

func pricingTable() map[string]PricingDefault {
	return map[string]PricingDefault{
		// GPT-5 series
		"gpt-5":      {Prompt: 1.25, Completion: 10.00},
		"gpt-5-mini": {Prompt: 0.25, Completion: 2.00},
		"gpt-5-nano": {Prompt: 0.10, Completion: 0.50},
		// GPT-4o series
		"gpt-4o":                 {Prompt: 2.50, Completion: 10.00},
		"gpt-4o-2024-11-20":      {Prompt: 2.50, Completion: 10.00},
		"gpt-4o-2024-08-06":      {Prompt: 2.50, Completion: 10.00},
		"gpt-4o-2024-05-13":      {Prompt: 5.00, Completion: 15.00},
		"gpt-4o-mini":            {Prompt: 0.15, Completion: 0.60},
		"gpt-4o-mini-2024-07-18": {Prompt: 0.15, Completion: 0.60},
		"chatgpt-4o-latest":      {Prompt: 5.00, Completion: 15.00},
		// o1 series
		"o1":                     {Prompt: 15.00, Completion: 60.00},
		"o1-2024-12-17":          {Prompt: 15.00, Completion: 60.00},
		"o1-mini":                {Prompt: 3.00, Completion: 12.00},
		"o1-mini-2024-09-12":     {Prompt: 3.00, Completion: 12.00},
		"o1-preview":             {Prompt: 15.00, Completion: 60.00},
		"o1-preview-2024-09-12":  {Prompt: 15.00, Completion: 60.00},
		// GPT-4 Turbo
		"gpt-4-turbo":               {Prompt: 10.00, Completion: 30.00},
		"gpt-4-turbo-2024-04-09":    {Prompt: 10.00, Completion: 30.00},
		"gpt-4-turbo-preview":       {Prompt: 10.00, Completion: 30.00},
		"gpt-4-0125-preview":        {Prompt: 10.00, Completion: 30.00},
		"gpt-4-1106-preview":        {Prompt: 10.00, Completion: 30.00},
		"gpt-4-1106-vision-preview": {Prompt: 10.00, Completion: 30.00},
		// GPT-4
		"gpt-4":          {Prompt: 30.00, Completion: 60.00},
		"gpt-4-0613":     {Prompt: 30.00, Completion: 60.00},
		"gpt-4-32k":      {Prompt: 60.00, Completion: 120.00},
		"gpt-4-32k-0613": {Prompt: 60.00, Completion: 120.00},
		// GPT-3.5 Turbo
		"gpt-3.5-turbo":      {Prompt: 0.50, Completion: 1.50},
		"gpt-3.5-turbo-0125": {Prompt: 0.50, Completion: 1.50},
		"gpt-3.5-turbo-1106": {Prompt: 1.00, Completion: 2.00},
		"gpt-3.5-turbo-16k":  {Prompt: 3.00, Completion: 4.00},
		// Embedding models
		"text-embedding-3-small": {Prompt: 0.02, Completion: 0.0},
		"text-embedding-3-large": {Prompt: 0.13, Completion: 0.0},
		"text-embedding-ada-002": {Prompt: 0.10, Completion: 0.0},
	}
}

func capabilityTable() map[string]CapabilityDefault {
	multimodal := []string{"text", "image"}
	textOnly := []string{"text"}

	chat := func(ctx int) CapabilityDefault {
		return CapabilityDefault{FunctionCalling: true, Streaming: true, ContextLength: ctx, Modalities: textOnly}
	}
	vision := func(ctx int) CapabilityDefault {
		return CapabilityDefault{Vision: true, FunctionCalling: true, Streaming: true, ContextLength: ctx, Modalities: multimodal}
	}
	reasoning := func(ctx int) CapabilityDefault {
		return CapabilityDefault{ContextLength: ctx, Modalities: textOnly}
	}
	embedding := CapabilityDefault{ContextLength: 8191, Modalities: textOnly}

	return map[string]CapabilityDefault{
		// GPT-5 series
		"gpt-5":      vision(272000),
		"gpt-5-mini": vision(272000),
		"gpt-5-nano": vision(272000),
		// GPT-4o series
		"gpt-4o":                 vision(128000),
		"gpt-4o-2024-11-20":      vision(128000),
		"gpt-4o-2024-08-06":      vision(128000),
		"gpt-4o-2024-05-13":      vision(128000),
		"gpt-4o-mini":            vision(128000),
		"gpt-4o-mini-2024-07-18": vision(128000),
		"chatgpt-4o-latest":      vision(128000),
		// o1 series — no streaming, vision, or tools
		"o1":                    reasoning(200000),
		"o1-2024-12-17":         reasoning(200000),
		"o1-mini":               reasoning(128000),
		"o1-mini-2024-09-12":    reasoning(128000),
		"o1-preview":            reasoning(128000),
		"o1-preview-2024-09-12": reasoning(128000),
		// GPT-4 Turbo
		"gpt-4-turbo":               vision(128000),
		"gpt-4-turbo-2024-04-09":    vision(128000),
		"gpt-4-turbo-preview":       chat(128000),
		"gpt-4-0125-preview":        chat(128000),
		"gpt-4-1106-preview":        chat(128000),
		"gpt-4-1106-vision-preview": vision(128000),
		// GPT-4
		"gpt-4":          chat(8192),
		"gpt-4-0613":     chat(8192),
		"gpt-4-32k":      chat(32768),
		"gpt-4-32k-0613": chat(32768),
		// GPT-3.5 Turbo
		"gpt-3.5-turbo":      chat(16385),
		"gpt-3.5-turbo-0125": chat(16385),
		"gpt-3.5-turbo-1106": chat(16385),
		"gpt-3.5-turbo-16k":  chat(16385),
		// Embedding models
		"text-embedding-3-small": embedding,
		"text-embedding-3-large": embedding,
		"text-embedding-ada-002": embedding,
	}
}
