// Package pricing computes LLM call costs from per-model token prices.
//
// Prices are per million tokens, standard tier:
//   - OpenAI: https://openai.com/api/pricing/
//   - Groq: https://console.groq.com/docs/models
package pricing

import (
	"math"
	"sort"
)

// ModelPricing holds per-million-token prices for a model. CachedInput is
// zero for models without prompt caching.
type ModelPricing struct {
	Input       float64
	Output      float64
	CachedInput float64
}

var pricing = map[string]ModelPricing{
	// OpenAI GPT-5
	"gpt-5.1":             {Input: 1.25, Output: 10.00, CachedInput: 0.125},
	"gpt-5":               {Input: 1.25, Output: 10.00, CachedInput: 0.125},
	"gpt-5-mini":          {Input: 0.25, Output: 2.00, CachedInput: 0.025},
	"gpt-5-nano":          {Input: 0.05, Output: 0.40, CachedInput: 0.005},
	"gpt-5-chat-latest":   {Input: 1.25, Output: 10.00, CachedInput: 0.125},
	"gpt-5.1-chat-latest": {Input: 1.25, Output: 10.00, CachedInput: 0.125},
	"gpt-5-codex":         {Input: 1.25, Output: 10.00, CachedInput: 0.125},
	"gpt-5.1-codex":       {Input: 1.25, Output: 10.00, CachedInput: 0.125},
	"gpt-5-pro":           {Input: 15.00, Output: 120.00},

	// OpenAI GPT-4.1
	"gpt-4.1":      {Input: 2.00, Output: 8.00, CachedInput: 0.50},
	"gpt-4.1-mini": {Input: 0.40, Output: 1.60, CachedInput: 0.10},
	"gpt-4.1-nano": {Input: 0.10, Output: 0.40, CachedInput: 0.025},

	// OpenAI GPT-4o
	"gpt-4o":            {Input: 2.50, Output: 10.00, CachedInput: 1.25},
	"gpt-4o-mini":       {Input: 0.15, Output: 0.60, CachedInput: 0.075},
	"gpt-4o-2024-05-13": {Input: 5.00, Output: 15.00},
	"gpt-4o-2024-08-06": {Input: 2.50, Output: 10.00, CachedInput: 1.25},

	// OpenAI reasoning models
	"o1":                      {Input: 15.00, Output: 60.00, CachedInput: 7.50},
	"o1-pro":                  {Input: 150.00, Output: 600.00},
	"o3":                      {Input: 2.00, Output: 8.00, CachedInput: 0.50},
	"o3-pro":                  {Input: 20.00, Output: 80.00},
	"o3-deep-research":        {Input: 10.00, Output: 40.00, CachedInput: 2.50},
	"o4-mini":                 {Input: 1.10, Output: 4.40, CachedInput: 0.275},
	"o4-mini-deep-research":   {Input: 2.00, Output: 8.00, CachedInput: 0.50},
	"o3-mini":                 {Input: 1.10, Output: 4.40, CachedInput: 0.55},
	"o1-mini":                 {Input: 1.10, Output: 4.40, CachedInput: 0.55},

	// OpenAI embeddings
	"text-embedding-3-small": {Input: 0.02},
	"text-embedding-3-large": {Input: 0.13},
	"text-embedding-ada-002": {Input: 0.10},

	// Groq
	"openai/gpt-oss-120b": {Input: 0.15, Output: 0.60, CachedInput: 0.075},

	// Legacy OpenAI
	"gpt-4-turbo-2024-04-09": {Input: 10.00, Output: 30.00},
	"gpt-3.5-turbo":          {Input: 0.50, Output: 1.50},
}

// defaultPricing applies to unknown models (gpt-5-mini rates).
var defaultPricing = ModelPricing{Input: 0.25, Output: 2.00, CachedInput: 0.025}

// Cost is the computed cost breakdown for a single call, in USD.
type Cost struct {
	Input  float64
	Output float64
	Cached float64
	Total  float64
}

// Calculate computes the cost of a call. Cached input tokens are billed at
// the cached rate when the model supports prompt caching, otherwise they
// cost nothing extra.
func Calculate(model string, inputTokens, outputTokens, cachedTokens int64) Cost {
	p, ok := pricing[model]
	if !ok {
		p = defaultPricing
	}

	c := Cost{
		Input:  round8(float64(inputTokens) / 1e6 * p.Input),
		Output: round8(float64(outputTokens) / 1e6 * p.Output),
	}
	if cachedTokens > 0 && p.CachedInput > 0 {
		c.Cached = round8(float64(cachedTokens) / 1e6 * p.CachedInput)
	}
	c.Total = round8(c.Input + c.Output + c.Cached)
	return c
}

// For returns the pricing for a model, if configured.
func For(model string) (ModelPricing, bool) {
	p, ok := pricing[model]
	return p, ok
}

// SupportedModels lists all models with configured pricing, sorted.
func SupportedModels() []string {
	models := make([]string, 0, len(pricing))
	for m := range pricing {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
