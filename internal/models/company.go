package models

import (
	"time"

	"github.com/google/uuid"
)

// Company holds the profile and identity material the generation pipeline
// reads. Owned by the company-profile subsystem; read-only here.
type Company struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Industry     string    `db:"industry"`
	Website      string    `db:"website"`
	WritingDNA   string    `db:"writing_dna"`
	Values       string    `db:"brand_values"`
	Philosophy   string    `db:"philosophy"`
	Founders     string    `db:"founders"`
	History      string    `db:"history"`
	Achievements string    `db:"achievements"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
