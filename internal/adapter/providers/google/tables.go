package google

// Static pricing and capability tables for Gemini models. The models
// endpoint exposes capabilities only indirectly and pricing not at all,
// so these mirror the published pricing page. Prices are USD per million
// tokens and are stored as-is.
// Source: https://ai.google.dev/gemini-api/docs/pricing

func builtinDefaults() Defaults {
	return Defaults{
		Pricing:      pricingTable(),
		Capabilities: capabilityTable(),
	}
}

func pricingTable() map[string]PricingDefault {
	return map[string]PricingDefault{
		// Gemini 2.5 Pro
		"gemini-2.5-pro":         {Prompt: 1.25, Completion: 5.00},
		"gemini-2.5-pro-preview": {Prompt: 1.25, Completion: 5.00},
		"gemini-2.5-pro-latest":  {Prompt: 1.25, Completion: 5.00},
		// Gemini 2.5 Flash
		"gemini-2.5-flash":         {Prompt: 0.075, Completion: 0.30},
		"gemini-2.5-flash-preview": {Prompt: 0.075, Completion: 0.30},
		"gemini-2.5-flash-latest":  {Prompt: 0.075, Completion: 0.30},
		// Gemini 2.0 Flash
		"gemini-2.0-flash":         {Prompt: 0.10, Completion: 0.40},
		"gemini-2.0-flash-exp":     {Prompt: 0.10, Completion: 0.40},
		"gemini-2.0-flash-preview": {Prompt: 0.10, Completion: 0.40},
		// Gemini 1.5
		"gemini-1.5-pro":             {Prompt: 1.25, Completion: 5.00},
		"gemini-1.5-pro-latest":      {Prompt: 1.25, Completion: 5.00},
		"gemini-1.5-flash":           {Prompt: 0.075, Completion: 0.30},
		"gemini-1.5-flash-latest":    {Prompt: 0.075, Completion: 0.30},
		"gemini-1.5-flash-8b":        {Prompt: 0.0375, Completion: 0.15},
		"gemini-1.5-flash-8b-latest": {Prompt: 0.0375, Completion: 0.15},
		// Gemini 1.0
		"gemini-1.0-pro":        {Prompt: 0.50, Completion: 1.50},
		"gemini-1.0-pro-latest": {Prompt: 0.50, Completion: 1.50},
	}
}

func capabilityTable() map[string]CapabilityDefault {
	fullMultimodal := CapabilityDefault{
		Vision:          true,
		FunctionCalling: true,
		Streaming:       true,
		Modalities:      []string{"text", "image", "video", "audio"},
	}
	textImage := CapabilityDefault{
		Vision:          true,
		FunctionCalling: true,
		Streaming:       true,
		Modalities:      []string{"text", "image"},
	}

	return map[string]CapabilityDefault{
		"gemini-2.5-pro":             fullMultimodal,
		"gemini-2.5-pro-preview":     fullMultimodal,
		"gemini-2.5-pro-latest":      fullMultimodal,
		"gemini-2.5-flash":           fullMultimodal,
		"gemini-2.5-flash-preview":   fullMultimodal,
		"gemini-2.5-flash-latest":    fullMultimodal,
		"gemini-2.0-flash":           fullMultimodal,
		"gemini-2.0-flash-exp":       fullMultimodal,
		"gemini-2.0-flash-preview":   fullMultimodal,
		"gemini-1.5-pro":             fullMultimodal,
		"gemini-1.5-pro-latest":      fullMultimodal,
		"gemini-1.5-flash":           fullMultimodal,
		"gemini-1.5-flash-latest":    fullMultimodal,
		"gemini-1.5-flash-8b":        fullMultimodal,
		"gemini-1.5-flash-8b-latest": fullMultimodal,
		// Gemini 1.0 handles text and image only
		"gemini-1.0-pro":        textImage,
		"gemini-1.0-pro-latest": textImage,
	}
}
