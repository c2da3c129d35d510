// Package domain defines the core types for per-business AI agent
// configuration and LLM usage accounting.
package domain

import "time"

// DefaultSystemPrompt is assigned to newly created agent configs.
const DefaultSystemPrompt = `You are a professional and friendly customer support assistant.

Your goals:
- Answer customer questions clearly and precisely
- Use the knowledge base information when it is available
- Stay courteous and keep a professional tone
- If you don't know something, admit it and offer to hand off to a human

Rules:
- Never make up information
- Be brief and to the point
- Keep the conversation focused on helping the customer`

// AgentConfig is the stored per-business AI agent settings record.
// Exactly one record exists per business_id.
type AgentConfig struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	SystemPrompt string    `json:"system_prompt"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	Temperature  float64   `json:"temperature"`
	MaxTokens    int       `json:"max_tokens"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultAgentConfig returns the config a business starts from. The ID and
// timestamps are filled in by the store on insert.
func DefaultAgentConfig(businessID string) AgentConfig {
	return AgentConfig{
		BusinessID:   businessID,
		SystemPrompt: DefaultSystemPrompt,
		Provider:     "openai",
		Model:        "gpt-5-mini",
		Temperature:  0.2,
		MaxTokens:    2000,
		Enabled:      true,
	}
}

// AgentConfigUpdate is a partial update: nil fields are left untouched.
type AgentConfigUpdate struct {
	SystemPrompt *string  `json:"system_prompt,omitempty"`
	Provider     *string  `json:"provider,omitempty"`
	Model        *string  `json:"model,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	MaxTokens    *int     `json:"max_tokens,omitempty"`
	Enabled      *bool    `json:"enabled,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u AgentConfigUpdate) IsEmpty() bool {
	return u.SystemPrompt == nil &&
		u.Provider == nil &&
		u.Model == nil &&
		u.Temperature == nil &&
		u.MaxTokens == nil &&
		u.Enabled == nil
}

// ApplyTo overwrites the set fields on the given config.
func (u AgentConfigUpdate) ApplyTo(c *AgentConfig) {
	if u.SystemPrompt != nil {
		c.SystemPrompt = *u.SystemPrompt
	}
	if u.Provider != nil {
		c.Provider = *u.Provider
	}
	if u.Model != nil {
		c.Model = *u.Model
	}
	if u.Temperature != nil {
		c.Temperature = *u.Temperature
	}
	if u.MaxTokens != nil {
		c.MaxTokens = *u.MaxTokens
	}
	if u.Enabled != nil {
		c.Enabled = *u.Enabled
	}
}
