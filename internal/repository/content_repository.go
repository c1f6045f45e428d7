package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"copymill/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var contentColumns = []string{
	"id", "company_id", "user_id", "prompt", "output", "status",
	"feedback", "revision_of", "revision_number", "created_at", "updated_at",
}

// contentTables maps each category to its physical table. The nine tables
// share one row shape; only the table name differs.
var contentTables = map[models.ContentCategory]string{
	models.CategoryNewsletter:    "content_newsletters",
	models.CategoryOffer:         "content_offers",
	models.CategoryWebinar:       "content_webinars",
	models.CategorySocialMedia:   "content_social_media",
	models.CategoryAnnouncement:  "content_announcements",
	models.CategoryBlogPost:      "content_blog_posts",
	models.CategoryCourseContent: "content_course_content",
	models.CategorySalesPage:     "content_sales_pages",
	models.CategoryColdEmail:     "content_cold_emails",
}

// ContentRepository is the polymorphic store over the nine category
// partitions. Cross-partition reads fan out one query per table and merge the
// results, which requires content ids to be globally unique across tables.
type ContentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewContentRepository(db *pgxpool.Pool, logger *zap.Logger) *ContentRepository {
	return &ContentRepository{
		db:     db,
		logger: logger,
	}
}

func tableFor(category models.ContentCategory) (string, error) {
	table, ok := contentTables[category]
	if !ok {
		return "", ErrInvalidCategory
	}
	return table, nil
}

func (r *ContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	table, err := tableFor(item.Category)
	if err != nil {
		return err
	}

	query := squirrel.Insert(table).
		Columns(contentColumns...).
		Values(item.ID, item.CompanyID, item.UserID, item.Prompt, item.Output, item.Status,
			item.Feedback, item.RevisionOf, item.RevisionNumber, item.CreatedAt, item.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Update mutates the mutable fields of an existing row in its partition.
// Category itself is immutable and only selects the table.
func (r *ContentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	table, err := tableFor(item.Category)
	if err != nil {
		return err
	}

	query := squirrel.Update(table).
		Set("output", item.Output).
		Set("status", item.Status).
		Set("feedback", item.Feedback).
		Set("updated_at", item.UpdatedAt).
		Where(squirrel.Eq{"id": item.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetHistory returns one page of the logically unified, createdAt-descending
// history across all partitions. No single table holds global order, so each
// partition is counted and over-fetched (page*limit+limit rows) in parallel,
// then the concatenation is sorted and sliced to the exact page window. Exact
// as long as no single partition dominates the window by more than the
// over-fetch; very deep pages can drift.
func (r *ContentRepository) GetHistory(ctx context.Context, companyID uuid.UUID, page, limit int) ([]*models.ContentItem, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	fetchCap := uint64(page*limit + limit)

	var (
		mu    sync.Mutex
		items []*models.ContentItem
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range models.AllCategories {
		category := category
		table := contentTables[category]

		g.Go(func() error {
			count, err := r.countPartition(gctx, table, companyID)
			if err != nil {
				return err
			}
			mu.Lock()
			total += count
			mu.Unlock()
			return nil
		})

		g.Go(func() error {
			partition, err := r.fetchPartition(gctx, category, table, companyID, fetchCap)
			if err != nil {
				return err
			}
			mu.Lock()
			items = append(items, partition...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	return mergePage(items, page, limit), total, nil
}

func (r *ContentRepository) countPartition(ctx context.Context, table string, companyID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"company_id": companyID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ContentRepository) fetchPartition(ctx context.Context, category models.ContentCategory, table string, companyID uuid.UUID, limit uint64) ([]*models.ContentItem, error) {
	query := squirrel.Select(contentColumns...).
		From(table).
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContentItems(rows, category)
}

// mergePage sorts the concatenated partition results newest-first and slices
// out the requested page window. Ties on createdAt break by id so the order
// is stable across calls.
func mergePage(items []*models.ContentItem, page, limit int) []*models.ContentItem {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID.String() < items[j].ID.String()
	})

	start := (page - 1) * limit
	if start >= len(items) {
		return []*models.ContentItem{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// FindByID looks an item up without knowing its category: one query per
// partition in parallel, first hit wins. Relies on globally unique ids.
func (r *ContentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ContentItem, error) {
	var (
		mu    sync.Mutex
		found *models.ContentItem
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, category := range models.AllCategories {
		category := category
		table := contentTables[category]

		g.Go(func() error {
			item, err := r.findInPartition(gctx, category, table, id)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil
				}
				return err
			}
			mu.Lock()
			if found == nil {
				found = item
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (r *ContentRepository) findInPartition(ctx context.Context, category models.ContentCategory, table string, id uuid.UUID) (*models.ContentItem, error) {
	query := squirrel.Select(contentColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, sql, args...)
	item := &models.ContentItem{Category: category}
	if err := row.Scan(
		&item.ID, &item.CompanyID, &item.UserID, &item.Prompt, &item.Output, &item.Status,
		&item.Feedback, &item.RevisionOf, &item.RevisionNumber, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return item, nil
}

// GetRecentByStatus returns the newest items of one category filtered by
// status, used for example posts in the generation context and for style
// analysis samples.
func (r *ContentRepository) GetRecentByStatus(ctx context.Context, companyID uuid.UUID, category models.ContentCategory, status models.ContentStatus, limit int) ([]*models.ContentItem, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}

	query := squirrel.Select(contentColumns...).
		From(table).
		Where(squirrel.Eq{"company_id": companyID, "status": status}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContentItems(rows, category)
}

func scanContentItems(rows pgx.Rows, category models.ContentCategory) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	for rows.Next() {
		item := models.ContentItem{Category: category}
		if err := rows.Scan(
			&item.ID, &item.CompanyID, &item.UserID, &item.Prompt, &item.Output, &item.Status,
			&item.Feedback, &item.RevisionOf, &item.RevisionNumber, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}
