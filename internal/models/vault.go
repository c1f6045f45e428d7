package models

import (
	"time"

	"github.com/google/uuid"
)

// VaultDocument is uploaded reference material. Content can be arbitrarily
// long; the assembler applies a character budget before it reaches a prompt.
type VaultDocument struct {
	ID        uuid.UUID `db:"id"`
	CompanyID uuid.UUID `db:"company_id"`
	Filename  string    `db:"filename"`
	Content   string    `db:"content"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}
