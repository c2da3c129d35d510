package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/saymetristan/whaapy-ai/internal/domain"
)

// ErrNotFound is returned when no record exists for the requested key.
var ErrNotFound = errors.New("not found")

// AgentConfigStore persists per-business agent configurations.
type AgentConfigStore struct {
	db *DB
}

// NewAgentConfigStore creates a config store using the given database.
func NewAgentConfigStore(db *DB) *AgentConfigStore {
	return &AgentConfigStore{db: db}
}

const agentConfigColumns = `id, business_id, system_prompt, provider, model,
	temperature, max_tokens, enabled, created_at, updated_at`

// Get returns the config for a business, or ErrNotFound.
func (s *AgentConfigStore) Get(ctx context.Context, businessID string) (*domain.AgentConfig, error) {
	row := s.db.sql.QueryRowContext(ctx,
		s.db.dialect.Rebind(
			"SELECT "+agentConfigColumns+" FROM agent_configs WHERE business_id = ?"),
		businessID,
	)
	cfg, err := scanAgentConfig(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("agent config for business %s: %w", businessID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading agent config: %w", err)
	}
	return cfg, nil
}

// Upsert creates or partially updates the config for a business inside a
// single transaction keyed on business_id. Fields absent from the update
// keep their stored (or default) values; concurrent writers resolve
// last-writer-wins under the row lock.
func (s *AgentConfigStore) Upsert(ctx context.Context, businessID string, upd domain.AgentConfigUpdate) (*domain.AgentConfig, error) {
	tx, err := s.db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		s.db.dialect.Rebind(
			"SELECT "+agentConfigColumns+" FROM agent_configs WHERE business_id = ?"+s.db.dialect.LockClause()),
		businessID,
	)

	cfg, err := scanAgentConfig(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		created := domain.DefaultAgentConfig(businessID)
		created.ID = uuid.New().String()
		created.CreatedAt = time.Now().UTC()
		created.UpdatedAt = created.CreatedAt
		upd.ApplyTo(&created)
		cfg = &created

		if _, err := tx.ExecContext(ctx,
			s.db.dialect.Rebind(`INSERT INTO agent_configs (`+agentConfigColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			cfg.ID, cfg.BusinessID, cfg.SystemPrompt, cfg.Provider, cfg.Model,
			cfg.Temperature, cfg.MaxTokens, cfg.Enabled,
			formatTime(cfg.CreatedAt), formatTime(cfg.UpdatedAt),
		); err != nil {
			return nil, fmt.Errorf("creating agent config: %w", err)
		}

	case err != nil:
		return nil, fmt.Errorf("loading agent config: %w", err)

	default:
		upd.ApplyTo(cfg)
		cfg.UpdatedAt = time.Now().UTC()

		if _, err := tx.ExecContext(ctx,
			s.db.dialect.Rebind(`UPDATE agent_configs
			 SET system_prompt = ?, provider = ?, model = ?, temperature = ?,
			     max_tokens = ?, enabled = ?, updated_at = ?
			 WHERE business_id = ?`),
			cfg.SystemPrompt, cfg.Provider, cfg.Model, cfg.Temperature,
			cfg.MaxTokens, cfg.Enabled, formatTime(cfg.UpdatedAt), businessID,
		); err != nil {
			return nil, fmt.Errorf("updating agent config: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert: %w", err)
	}
	return cfg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAgentConfig(row rowScanner) (*domain.AgentConfig, error) {
	var cfg domain.AgentConfig
	var createdAt, updatedAt string

	err := row.Scan(
		&cfg.ID, &cfg.BusinessID, &cfg.SystemPrompt, &cfg.Provider, &cfg.Model,
		&cfg.Temperature, &cfg.MaxTokens, &cfg.Enabled, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = parseTime(createdAt)
	cfg.UpdatedAt = parseTime(updatedAt)
	return &cfg, nil
}
