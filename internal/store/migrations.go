package store

// migration represents a single schema migration. The SQL is written in
// the dialect-neutral subset both Postgres and SQLite accept.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create agent configs",
		SQL: `
			CREATE TABLE agent_configs (
				id            TEXT PRIMARY KEY,
				business_id   TEXT NOT NULL,
				system_prompt TEXT NOT NULL,
				provider      TEXT NOT NULL,
				model         TEXT NOT NULL,
				temperature   DOUBLE PRECISION NOT NULL,
				max_tokens    INTEGER NOT NULL,
				enabled       BOOLEAN NOT NULL,
				created_at    TEXT NOT NULL,
				updated_at    TEXT NOT NULL
			);

			CREATE UNIQUE INDEX idx_agent_configs_business ON agent_configs (business_id);
		`,
	},
	{
		Version: 2,
		Name:    "create llm calls",
		SQL: `
			CREATE TABLE llm_calls (
				id             TEXT PRIMARY KEY,
				business_id    TEXT NOT NULL,
				execution_id   TEXT NOT NULL DEFAULT '',
				operation_type TEXT NOT NULL,
				provider       TEXT NOT NULL,
				model          TEXT NOT NULL,
				input_tokens   INTEGER NOT NULL DEFAULT 0,
				output_tokens  INTEGER NOT NULL DEFAULT 0,
				total_tokens   INTEGER NOT NULL DEFAULT 0,
				cached_tokens  INTEGER NOT NULL DEFAULT 0,
				input_cost     DOUBLE PRECISION NOT NULL DEFAULT 0,
				output_cost    DOUBLE PRECISION NOT NULL DEFAULT 0,
				cached_cost    DOUBLE PRECISION NOT NULL DEFAULT 0,
				total_cost     DOUBLE PRECISION NOT NULL DEFAULT 0,
				duration_ms    INTEGER NOT NULL DEFAULT 0,
				cache_hit      BOOLEAN NOT NULL DEFAULT FALSE,
				error          TEXT NOT NULL DEFAULT '',
				created_at     TEXT NOT NULL
			);

			CREATE INDEX idx_llm_calls_business_created ON llm_calls (business_id, created_at);
			CREATE INDEX idx_llm_calls_business_operation ON llm_calls (business_id, operation_type);
		`,
	},
}
