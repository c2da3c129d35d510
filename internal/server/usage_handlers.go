package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/saymetristan/whaapy-ai/internal/domain"
	"github.com/saymetristan/whaapy-ai/internal/pricing"
	"github.com/saymetristan/whaapy-ai/internal/store"
)

// recordUsageRequest is the body of POST /ai/usage. Costs are computed
// server-side from the pricing table; callers only report token counts.
type recordUsageRequest struct {
	BusinessID    string `json:"business_id"`
	ExecutionID   string `json:"execution_id,omitempty"`
	OperationType string `json:"operation_type"`
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	InputTokens   int64  `json:"input_tokens"`
	OutputTokens  int64  `json:"output_tokens"`
	CachedTokens  int64  `json:"cached_tokens,omitempty"`
	CacheHit      bool   `json:"cache_hit,omitempty"`
	DurationMS    int64  `json:"duration_ms,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (req recordUsageRequest) validate() error {
	if req.BusinessID == "" {
		return fmt.Errorf("business_id is required")
	}
	if !domain.ValidOperationType(req.OperationType) {
		return fmt.Errorf("unknown operation_type: %q", req.OperationType)
	}
	if req.Provider == "" || req.Model == "" {
		return fmt.Errorf("provider and model are required")
	}
	if req.InputTokens < 0 || req.OutputTokens < 0 || req.CachedTokens < 0 {
		return fmt.Errorf("token counts must be non-negative")
	}
	return nil
}

// handleRecordUsage stores one LLM call with its computed costs.
func (s *Server) handleRecordUsage(w http.ResponseWriter, r *http.Request) {
	var req recordUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cost := pricing.Calculate(req.Model, req.InputTokens, req.OutputTokens, req.CachedTokens)
	call := domain.LLMCall{
		BusinessID:    req.BusinessID,
		ExecutionID:   req.ExecutionID,
		OperationType: req.OperationType,
		Provider:      req.Provider,
		Model:         req.Model,
		InputTokens:   req.InputTokens,
		OutputTokens:  req.OutputTokens,
		CachedTokens:  req.CachedTokens,
		InputCost:     cost.Input,
		OutputCost:    cost.Output,
		CachedCost:    cost.Cached,
		TotalCost:     cost.Total,
		DurationMS:    req.DurationMS,
		CacheHit:      req.CacheHit,
		Error:         req.Error,
	}

	if err := s.usage.Insert(r.Context(), &call); err != nil {
		s.log.Error().Err(err).Str("business", req.BusinessID).Msg("recording llm call")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, dataResponse{Data: call})
}

var validGroupBy = []string{"hour", "day", "week", "month", "operation", "model"}

// defaultUsageWindowDays is the report range when no dates are given.
const defaultUsageWindowDays = 30

// handleTokenUsage answers GET /ai/analytics/token-usage with a usage
// summary and breakdowns for a business over a date range.
func (s *Server) handleTokenUsage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	businessID := q.Get("business_id")
	if businessID == "" {
		writeError(w, http.StatusBadRequest, "business_id is required")
		return
	}

	groupBy := q.Get("group_by")
	if groupBy == "" {
		groupBy = "day"
	}
	if !slices.Contains(validGroupBy, groupBy) {
		writeError(w, http.StatusBadRequest,
			"group_by must be one of: "+strings.Join(validGroupBy, ", "))
		return
	}

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -defaultUsageWindowDays)
	var err error
	if v := q.Get("start_date"); v != "" {
		if start, err = time.Parse(time.DateOnly, v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date, use YYYY-MM-DD")
			return
		}
	}
	if v := q.Get("end_date"); v != "" {
		if end, err = time.Parse(time.DateOnly, v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date, use YYYY-MM-DD")
			return
		}
	}

	report, err := s.usage.Report(r.Context(), store.UsageQuery{
		BusinessID:    businessID,
		Start:         start,
		End:           end.AddDate(0, 0, 1), // include the whole end day
		OperationType: q.Get("operation_type"),
		GroupBy:       groupBy,
	})
	if err != nil {
		s.log.Error().Err(err).Str("business", businessID).Msg("building usage report")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// The report is its own envelope: summary, breakdown, by_operation,
	// by_model at the top level.
	writeJSON(w, http.StatusOK, report)
}
