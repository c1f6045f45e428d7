package repository

import (
	"testing"
	"time"

	"copymill/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemAt(category models.ContentCategory, createdAt time.Time) *models.ContentItem {
	return &models.ContentItem{
		ID:        uuid.New(),
		Category:  category,
		CreatedAt: createdAt,
	}
}

func TestTableFor(t *testing.T) {
	for _, category := range models.AllCategories {
		table, err := tableFor(category)
		require.NoError(t, err)
		assert.NotEmpty(t, table)
	}

	_, err := tableFor(models.ContentCategory("press_release"))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestMergePage_InterleavesPartitionsNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	items := []*models.ContentItem{
		itemAt(models.CategoryNewsletter, base.Add(3*time.Hour)),
		itemAt(models.CategoryNewsletter, base),
		itemAt(models.CategoryBlogPost, base.Add(5*time.Hour)),
		itemAt(models.CategoryColdEmail, base.Add(1*time.Hour)),
		itemAt(models.CategoryColdEmail, base.Add(4*time.Hour)),
	}

	page := mergePage(items, 1, 3)
	require.Len(t, page, 3)
	assert.Equal(t, models.CategoryBlogPost, page[0].Category)
	assert.Equal(t, models.CategoryColdEmail, page[1].Category)
	assert.Equal(t, models.CategoryNewsletter, page[2].Category)
	assert.True(t, page[0].CreatedAt.After(page[1].CreatedAt))
	assert.True(t, page[1].CreatedAt.After(page[2].CreatedAt))
}

func TestMergePage_SecondPage(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	items := make([]*models.ContentItem, 7)
	for i := range items {
		items[i] = itemAt(models.CategoryOffer, base.Add(time.Duration(i)*time.Minute))
	}

	page := mergePage(items, 2, 3)
	require.Len(t, page, 3)
	// Newest-first, so page 2 starts at the fourth newest.
	assert.Equal(t, base.Add(3*time.Minute), page[0].CreatedAt)
	assert.Equal(t, base.Add(1*time.Minute), page[2].CreatedAt)
}

func TestMergePage_PastTheEnd(t *testing.T) {
	base := time.Now().UTC()
	items := []*models.ContentItem{
		itemAt(models.CategoryWebinar, base),
		itemAt(models.CategoryWebinar, base.Add(time.Minute)),
	}

	assert.Empty(t, mergePage(items, 3, 10))
	assert.Len(t, mergePage(items, 1, 10), 2)
	assert.Empty(t, mergePage(nil, 1, 10))
}

func TestMergePage_TiesBreakByID(t *testing.T) {
	same := time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC)
	items := []*models.ContentItem{
		itemAt(models.CategoryNewsletter, same),
		itemAt(models.CategorySalesPage, same),
		itemAt(models.CategoryAnnouncement, same),
	}

	first := mergePage(append([]*models.ContentItem{}, items...), 1, 3)
	second := mergePage([]*models.ContentItem{items[2], items[0], items[1]}, 1, 3)

	require.Len(t, first, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		if i > 0 {
			assert.Less(t, first[i-1].ID.String(), first[i].ID.String())
		}
	}
}
