package models

import (
	"time"

	"github.com/google/uuid"
)

type ContentCategory string

const (
	CategoryNewsletter    ContentCategory = "newsletter"
	CategoryOffer         ContentCategory = "offer"
	CategoryWebinar       ContentCategory = "webinar"
	CategorySocialMedia   ContentCategory = "social_media"
	CategoryAnnouncement  ContentCategory = "announcement"
	CategoryBlogPost      ContentCategory = "blog_post"
	CategoryCourseContent ContentCategory = "course_content"
	CategorySalesPage     ContentCategory = "sales_page"
	CategoryColdEmail     ContentCategory = "cold_email"
)

// AllCategories lists every content category in a fixed order. Each category
// maps to its own physical table; the set is shared with the prompt compiler
// and the API layer.
var AllCategories = []ContentCategory{
	CategoryNewsletter,
	CategoryOffer,
	CategoryWebinar,
	CategorySocialMedia,
	CategoryAnnouncement,
	CategoryBlogPost,
	CategoryCourseContent,
	CategorySalesPage,
	CategoryColdEmail,
}

func (c ContentCategory) Valid() bool {
	for _, cat := range AllCategories {
		if c == cat {
			return true
		}
	}
	return false
}

type ContentStatus string

const (
	StatusDraft    ContentStatus = "draft"
	StatusApproved ContentStatus = "approved"
	StatusRejected ContentStatus = "rejected"
)

// ContentItem is one generated piece of content. The nine categories are
// stored in separate tables but share this one shape; Category is immutable
// after creation. A regeneration inserts a new row with RevisionOf pointing
// at its predecessor.
type ContentItem struct {
	ID             uuid.UUID       `db:"id"`
	CompanyID      uuid.UUID       `db:"company_id"`
	UserID         uuid.UUID       `db:"user_id"`
	Category       ContentCategory `db:"-"`
	Prompt         string          `db:"prompt"`
	Output         string          `db:"output"`
	Status         ContentStatus   `db:"status"`
	Feedback       *string         `db:"feedback"`
	RevisionOf     *uuid.UUID      `db:"revision_of"`
	RevisionNumber int             `db:"revision_number"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}
