package models

import (
	"time"

	"github.com/google/uuid"
)

// StyleProfile is the analysed writing style of a company, at most one per
// company. Produced by the style analysis call from approved samples.
type StyleProfile struct {
	ID               uuid.UUID `db:"id"`
	CompanyID        uuid.UUID `db:"company_id"`
	Tone             string    `db:"tone"`
	AvgWordCount     int       `db:"avg_word_count"`
	Vocabulary       []string  `db:"vocabulary"`
	CommonPhrases    []string  `db:"common_phrases"`
	PreferredFormats []string  `db:"preferred_formats"`
	Summary          string    `db:"summary"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
