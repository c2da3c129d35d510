package store

import (
	"context"
	"testing"
	"time"

	"github.com/saymetristan/whaapy-ai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCall(t *testing.T, s *UsageStore, businessID, op, model string, in, out int64, cost float64, at time.Time) {
	t.Helper()
	err := s.Insert(context.Background(), &domain.LLMCall{
		BusinessID:    businessID,
		OperationType: op,
		Provider:      "openai",
		Model:         model,
		InputTokens:   in,
		OutputTokens:  out,
		TotalCost:     cost,
		DurationMS:    120,
		CreatedAt:     at,
	})
	require.NoError(t, err)
}

func TestUsageStore_Insert(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)

	call := &domain.LLMCall{
		BusinessID:    "biz-1",
		OperationType: domain.OpChat,
		Provider:      "openai",
		Model:         "gpt-5-mini",
		InputTokens:   1000,
		OutputTokens:  500,
	}
	require.NoError(t, s.Insert(context.Background(), call))

	assert.NotEmpty(t, call.ID)
	assert.Equal(t, int64(1500), call.TotalTokens)
	assert.False(t, call.CreatedAt.IsZero())
}

func TestUsageStore_Report_Summary(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 1000, 500, 0.00125, now)
	seedCall(t, s, "biz-1", domain.OpEmbedding, "text-embedding-3-small", 2000, 0, 0.00004, now.Add(time.Hour))
	seedCall(t, s, "biz-other", domain.OpChat, "gpt-5-mini", 9999, 9999, 9.0, now)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      now.AddDate(0, 0, -1),
		End:        now.AddDate(0, 0, 1),
		GroupBy:    "day",
	})
	require.NoError(t, err)

	sum := report.Summary
	assert.Equal(t, int64(2), sum.TotalCalls)
	assert.Equal(t, int64(3000), sum.TotalInputTokens)
	assert.Equal(t, int64(500), sum.TotalOutputTokens)
	assert.Equal(t, int64(3500), sum.TotalTokens)
	assert.InDelta(t, 0.00129, sum.TotalCost, 1e-9)
	assert.Equal(t, int64(1750), sum.AvgTokensPerCall)
	assert.Equal(t, int64(120), sum.AvgDurationMS)
}

func TestUsageStore_Report_Empty(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      time.Now().AddDate(0, 0, -30),
		End:        time.Now().AddDate(0, 0, 1),
		GroupBy:    "day",
	})
	require.NoError(t, err)

	assert.Zero(t, report.Summary.TotalCalls)
	assert.Zero(t, report.Summary.TotalCost)
	assert.Empty(t, report.Breakdown)
	assert.Empty(t, report.ByOperation)
	assert.Empty(t, report.ByModel)
}

func TestUsageStore_Report_OperationFilter(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 1000, 500, 0.001, now)
	seedCall(t, s, "biz-1", domain.OpEmbedding, "text-embedding-3-small", 2000, 0, 0.0001, now)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID:    "biz-1",
		Start:         now.AddDate(0, 0, -1),
		End:           now.AddDate(0, 0, 1),
		OperationType: domain.OpChat,
		GroupBy:       "day",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.Summary.TotalCalls)
	assert.Equal(t, int64(1500), report.Summary.TotalTokens)
}

func TestUsageStore_Report_FixedBreakdownsIgnoreOperationFilter(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 1000, 500, 0.001, now)
	seedCall(t, s, "biz-1", domain.OpEmbedding, "text-embedding-3-small", 2000, 0, 0.0001, now)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID:    "biz-1",
		Start:         now.AddDate(0, 0, -1),
		End:           now.AddDate(0, 0, 1),
		OperationType: domain.OpChat,
		GroupBy:       "day",
	})
	require.NoError(t, err)

	// Summary and the main breakdown honor the filter.
	assert.Equal(t, int64(1), report.Summary.TotalCalls)
	require.Len(t, report.Breakdown, 1)
	assert.Equal(t, int64(1500), report.Breakdown[0].TotalTokens)

	// The fixed groupings always cover the whole date range.
	require.Contains(t, report.ByOperation, domain.OpEmbedding)
	assert.Equal(t, int64(2000), report.ByOperation[domain.OpEmbedding].TotalTokens)
	require.Contains(t, report.ByModel, "text-embedding-3-small")
}

func TestUsageStore_Report_ModelBreakdownHeaviestFirst(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "a-light-model", 100, 50, 0.001, now)
	seedCall(t, s, "biz-1", domain.OpChat, "z-heavy-model", 5000, 2500, 0.01, now)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      now.AddDate(0, 0, -1),
		End:        now.AddDate(0, 0, 1),
		GroupBy:    "model",
	})
	require.NoError(t, err)

	// Ordered by total tokens, not by label.
	require.Len(t, report.Breakdown, 2)
	assert.Equal(t, "z-heavy-model", report.Breakdown[0].Period)
	assert.Equal(t, "a-light-model", report.Breakdown[1].Period)
}

func TestUsageStore_Report_DateRangeExclusive(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 100, 0.001, now.AddDate(0, 0, -40))
	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 200, 200, 0.002, now)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      now.AddDate(0, 0, -30),
		End:        now.AddDate(0, 0, 1),
		GroupBy:    "day",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), report.Summary.TotalCalls)
	assert.Equal(t, int64(400), report.Summary.TotalTokens)
}

func TestUsageStore_Report_GroupByDay(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	day1 := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 50, 0.001, day1)
	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 50, 0.001, day1.Add(2*time.Hour))
	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 50, 0.001, day2)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      day1.AddDate(0, 0, -1),
		End:        day2.AddDate(0, 0, 1),
		GroupBy:    "day",
	})
	require.NoError(t, err)

	require.Len(t, report.Breakdown, 2)
	// ordered most recent first
	assert.Equal(t, "2026-08-20", report.Breakdown[0].Period)
	assert.Equal(t, int64(1), report.Breakdown[0].Calls)
	assert.Equal(t, "2026-08-19", report.Breakdown[1].Period)
	assert.Equal(t, int64(2), report.Breakdown[1].Calls)
	assert.Equal(t, int64(300), report.Breakdown[1].TotalTokens)
}

func TestUsageStore_Report_GroupByModelAndOperation(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 50, 0.001, now)
	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5", 200, 100, 0.01, now)
	seedCall(t, s, "biz-1", domain.OpEmbedding, "text-embedding-3-small", 500, 0, 0.00001, now)

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      now.AddDate(0, 0, -1),
		End:        now.AddDate(0, 0, 1),
		GroupBy:    "model",
	})
	require.NoError(t, err)

	require.Len(t, report.Breakdown, 3)

	require.Contains(t, report.ByOperation, domain.OpChat)
	assert.Equal(t, int64(2), report.ByOperation[domain.OpChat].Calls)
	require.Contains(t, report.ByOperation, domain.OpEmbedding)
	assert.Equal(t, int64(1), report.ByOperation[domain.OpEmbedding].Calls)

	require.Contains(t, report.ByModel, "gpt-5-mini")
	assert.Equal(t, int64(150), report.ByModel["gpt-5-mini"].TotalTokens)
	require.Contains(t, report.ByModel, "gpt-5")
	assert.Equal(t, int64(300), report.ByModel["gpt-5"].TotalTokens)
}

func TestUsageStore_Report_GroupByHour(t *testing.T) {
	db := testDB(t)
	s := NewUsageStore(db)
	at := time.Date(2026, 8, 20, 9, 15, 0, 0, time.UTC)

	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 50, 0.001, at)
	seedCall(t, s, "biz-1", domain.OpChat, "gpt-5-mini", 100, 50, 0.001, at.Add(20*time.Minute))

	report, err := s.Report(context.Background(), UsageQuery{
		BusinessID: "biz-1",
		Start:      at.AddDate(0, 0, -1),
		End:        at.AddDate(0, 0, 1),
		GroupBy:    "hour",
	})
	require.NoError(t, err)

	require.Len(t, report.Breakdown, 1)
	assert.Equal(t, "2026-08-20 09:00", report.Breakdown[0].Period)
	assert.Equal(t, int64(2), report.Breakdown[0].Calls)
}
