package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saymetristan/whaapy-ai/internal/domain"
)

// UsageStore persists and aggregates recorded LLM calls.
type UsageStore struct {
	db *DB
}

// NewUsageStore creates a usage store using the given database.
func NewUsageStore(db *DB) *UsageStore {
	return &UsageStore{db: db}
}

// Insert records one LLM call. The ID and CreatedAt are assigned here if
// unset.
func (s *UsageStore) Insert(ctx context.Context, call *domain.LLMCall) error {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now().UTC()
	}
	call.TotalTokens = call.InputTokens + call.OutputTokens

	_, err := s.db.sql.ExecContext(ctx,
		s.db.dialect.Rebind(`INSERT INTO llm_calls (
			id, business_id, execution_id, operation_type, provider, model,
			input_tokens, output_tokens, total_tokens, cached_tokens,
			input_cost, output_cost, cached_cost, total_cost,
			duration_ms, cache_hit, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		call.ID, call.BusinessID, call.ExecutionID, call.OperationType,
		call.Provider, call.Model,
		call.InputTokens, call.OutputTokens, call.TotalTokens, call.CachedTokens,
		call.InputCost, call.OutputCost, call.CachedCost, call.TotalCost,
		call.DurationMS, call.CacheHit, call.Error, formatTime(call.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("recording llm call: %w", err)
	}
	return nil
}

// UsageQuery selects the calls included in a usage report. End is
// exclusive. OperationType empty means all operations.
type UsageQuery struct {
	BusinessID    string
	Start         time.Time
	End           time.Time
	OperationType string
	GroupBy       string // hour | day | week | month | operation | model
}

// breakdownLimit caps the number of buckets returned per grouping.
const breakdownLimit = 100

// Report aggregates recorded calls into a summary plus breakdowns by the
// requested grouping, by operation type, and by model. The operation-type
// filter applies to the summary and the main breakdown only; the fixed
// by-operation and by-model groupings always cover the whole date range.
func (s *UsageStore) Report(ctx context.Context, q UsageQuery) (*domain.UsageReport, error) {
	baseWhere := "WHERE business_id = ? AND created_at >= ? AND created_at < ?"
	baseArgs := []any{q.BusinessID, formatTime(q.Start), formatTime(q.End)}

	where, args := baseWhere, baseArgs
	if q.OperationType != "" {
		where += " AND operation_type = ?"
		args = append(append([]any{}, baseArgs...), q.OperationType)
	}

	report := &domain.UsageReport{}

	summary, err := s.summarize(ctx, where, args)
	if err != nil {
		return nil, err
	}
	report.Summary = *summary
	report.Summary.DateRange = domain.DateRange{
		Start: q.Start.UTC().Format(time.DateOnly),
		End:   q.End.UTC().AddDate(0, 0, -1).Format(time.DateOnly),
	}

	// Time groupings read newest-first; operation/model groupings read
	// heaviest-first.
	groupExpr := s.groupExpr(q.GroupBy)
	order := "1 DESC"
	if q.GroupBy == "operation" || q.GroupBy == "model" {
		order = "5 DESC"
	}
	report.Breakdown, err = s.breakdown(ctx, groupExpr, order, where, args)
	if err != nil {
		return nil, err
	}

	byOp, err := s.breakdown(ctx, "operation_type", "5 DESC", baseWhere, baseArgs)
	if err != nil {
		return nil, err
	}
	report.ByOperation = bucketMap(byOp)

	byModel, err := s.breakdown(ctx, "model", "5 DESC", baseWhere, baseArgs)
	if err != nil {
		return nil, err
	}
	report.ByModel = bucketMap(byModel)

	return report, nil
}

func (s *UsageStore) groupExpr(groupBy string) string {
	switch groupBy {
	case "operation":
		return "operation_type"
	case "model":
		return "model"
	default:
		return s.db.dialect.PeriodExpr(groupBy)
	}
}

func (s *UsageStore) summarize(ctx context.Context, where string, args []any) (*domain.UsageSummary, error) {
	var sum domain.UsageSummary
	var avgTokens, avgDuration float64

	err := s.db.sql.QueryRowContext(ctx,
		s.db.dialect.Rebind(`SELECT
			COUNT(*),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(total_tokens), 0),
			COALESCE(SUM(total_cost), 0),
			COALESCE(AVG(total_tokens), 0),
			COALESCE(AVG(duration_ms), 0)
		FROM llm_calls `+where),
		args...,
	).Scan(
		&sum.TotalCalls, &sum.TotalInputTokens, &sum.TotalOutputTokens,
		&sum.TotalTokens, &sum.TotalCost, &avgTokens, &avgDuration,
	)
	if err != nil {
		return nil, fmt.Errorf("summarizing usage: %w", err)
	}

	sum.AvgTokensPerCall = int64(avgTokens)
	sum.AvgDurationMS = int64(avgDuration)
	return &sum, nil
}

// breakdown groups calls by groupExpr. orderBy is an ORDER BY clause over
// the selected columns: "1 DESC" for newest-period-first, "5 DESC" for
// heaviest-token-usage-first.
func (s *UsageStore) breakdown(ctx context.Context, groupExpr, orderBy, where string, args []any) ([]domain.UsageBucket, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		s.db.dialect.Rebind(fmt.Sprintf(`SELECT
			%s AS period,
			COUNT(*),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(SUM(total_tokens), 0),
			COALESCE(SUM(total_cost), 0)
		FROM llm_calls %s
		GROUP BY 1
		ORDER BY %s
		LIMIT %d`, groupExpr, where, orderBy, breakdownLimit)),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("usage breakdown: %w", err)
	}
	defer rows.Close()

	buckets := []domain.UsageBucket{}
	for rows.Next() {
		var b domain.UsageBucket
		if err := rows.Scan(
			&b.Period, &b.Calls, &b.InputTokens, &b.OutputTokens,
			&b.TotalTokens, &b.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("scanning usage bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func bucketMap(buckets []domain.UsageBucket) map[string]domain.UsageBucket {
	m := make(map[string]domain.UsageBucket, len(buckets))
	for _, b := range buckets {
		m[b.Period] = b
	}
	return m
}
