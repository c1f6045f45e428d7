package models

import (
	"time"

	"github.com/google/uuid"
)

// PromptTemplate is a per-company, per-category override injected into the
// compiled prompt when active. At most one active template per company and
// category is honoured.
type PromptTemplate struct {
	ID        uuid.UUID       `db:"id"`
	CompanyID uuid.UUID       `db:"company_id"`
	Category  ContentCategory `db:"category"`
	Content   string          `db:"content"`
	Active    bool            `db:"active"`
	CreatedAt time.Time       `db:"created_at"`
}
