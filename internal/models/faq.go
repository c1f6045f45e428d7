package models

import (
	"time"

	"github.com/google/uuid"
)

// Bot scopes FAQ entries. A company has at most one default active bot, which
// is resolved implicitly when a request names no bot.
type Bot struct {
	ID        uuid.UUID `db:"id"`
	CompanyID uuid.UUID `db:"company_id"`
	Name      string    `db:"name"`
	IsDefault bool      `db:"is_default"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

type FAQEntry struct {
	ID        uuid.UUID `db:"id"`
	BotID     uuid.UUID `db:"bot_id"`
	Question  string    `db:"question"`
	Answer    string    `db:"answer"`
	Category  string    `db:"category"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}
