package models

import (
	"time"

	"github.com/google/uuid"
)

// UsageLogEntry is an append-only billing record for one LLM call. Writing it
// is telemetry, never a correctness requirement.
type UsageLogEntry struct {
	ID               uuid.UUID  `db:"id"`
	Model            string     `db:"model"`
	Feature          string     `db:"feature"`
	PromptTokens     int        `db:"prompt_tokens"`
	CompletionTokens int        `db:"completion_tokens"`
	TotalTokens      int        `db:"total_tokens"`
	CostUSD          float64    `db:"cost_usd"`
	CompanyID        uuid.UUID  `db:"company_id"`
	UserID           *uuid.UUID `db:"user_id"`
	CreatedAt        time.Time  `db:"created_at"`
}
