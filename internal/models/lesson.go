package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonSeverity string

const (
	SeverityHigh   LessonSeverity = "high"
	SeverityMedium LessonSeverity = "medium"
	SeverityLow    LessonSeverity = "low"
)

type LessonSource string

const (
	LessonSourceRejection     LessonSource = "rejection"
	LessonSourceConsolidation LessonSource = "consolidation"
)

// Lesson is a stored correction derived from rejected output. ContentType nil
// means the rule applies to every category. Lessons are soft-deleted only:
// consolidation flips Active to false and inserts a smaller replacement set,
// keeping the audit trail intact.
type Lesson struct {
	ID          uuid.UUID        `db:"id"`
	CompanyID   uuid.UUID        `db:"company_id"`
	Feedback    string           `db:"feedback"`
	Severity    LessonSeverity   `db:"severity"`
	ContentType *ContentCategory `db:"content_type"`
	Source      LessonSource     `db:"source"`
	Active      bool             `db:"active"`
	CreatedAt   time.Time        `db:"created_at"`
}
