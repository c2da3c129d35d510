package domain

import "time"

// Operation types recorded for LLM calls.
const (
	OpChat               = "chat"
	OpEmbedding          = "embedding"
	OpOCR                = "ocr"
	OpAnalyzePrompt      = "analyze_prompt"
	OpGenerateSuggestion = "generate_suggestion"
)

// ValidOperationType reports whether s names a known operation type.
func ValidOperationType(s string) bool {
	switch s {
	case OpChat, OpEmbedding, OpOCR, OpAnalyzePrompt, OpGenerateSuggestion:
		return true
	}
	return false
}

// LLMCall is one recorded LLM invocation with its token counts and costs.
type LLMCall struct {
	ID            string    `json:"id"`
	BusinessID    string    `json:"business_id"`
	ExecutionID   string    `json:"execution_id,omitempty"`
	OperationType string    `json:"operation_type"`
	Provider      string    `json:"provider"`
	Model         string    `json:"model"`
	InputTokens   int64     `json:"input_tokens"`
	OutputTokens  int64     `json:"output_tokens"`
	TotalTokens   int64     `json:"total_tokens"`
	CachedTokens  int64     `json:"cached_tokens"`
	InputCost     float64   `json:"input_cost"`
	OutputCost    float64   `json:"output_cost"`
	CachedCost    float64   `json:"cached_cost"`
	TotalCost     float64   `json:"total_cost"`
	DurationMS    int64     `json:"duration_ms"`
	CacheHit      bool      `json:"cache_hit"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// DateRange bounds a usage report, inclusive of both days.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UsageSummary aggregates all calls in a report's range.
type UsageSummary struct {
	TotalCalls        int64     `json:"total_calls"`
	TotalInputTokens  int64     `json:"total_input_tokens"`
	TotalOutputTokens int64     `json:"total_output_tokens"`
	TotalTokens       int64     `json:"total_tokens"`
	TotalCost         float64   `json:"total_cost"`
	AvgTokensPerCall  int64     `json:"avg_tokens_per_call"`
	AvgDurationMS     int64     `json:"avg_duration_ms"`
	DateRange         DateRange `json:"date_range"`
}

// UsageBucket is one row of a usage breakdown: calls grouped by time
// period, operation type, or model.
type UsageBucket struct {
	Period       string  `json:"period"`
	Calls        int64   `json:"calls"`
	InputTokens  int64   `json:"input_tokens"`
	OutputTokens int64   `json:"output_tokens"`
	TotalTokens  int64   `json:"total_tokens"`
	TotalCost    float64 `json:"total_cost"`
}

// UsageReport is the full analytics payload.
type UsageReport struct {
	Summary     UsageSummary           `json:"summary"`
	Breakdown   []UsageBucket          `json:"breakdown"`
	ByOperation map[string]UsageBucket `json:"by_operation"`
	ByModel     map[string]UsageBucket `json:"by_model"`
}
